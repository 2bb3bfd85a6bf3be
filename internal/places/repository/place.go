package repository

import (
	"context"
	"fmt"
	"time"

	placeserrors "stayhub/internal/places/errors"
	"stayhub/pkg/docstore"
	"stayhub/pkg/model"
)

type PlaceRepository interface {
	FindAll(ctx context.Context) ([]model.Place, error)
	FindByID(ctx context.Context, id string) (*model.Place, error)
	FindByOwner(ctx context.Context, ownerID string) ([]model.Place, error)
	Create(ctx context.Context, place *model.Place) error
	Update(ctx context.Context, id string, fn func(place *model.Place) error) (*model.Place, error)
	Delete(ctx context.Context, id string) (*model.Place, error)
}

type docPlaceRepository struct {
	collection *docstore.Collection[model.Place]
}

func NewPlaceRepository(db *docstore.Database) PlaceRepository {
	return &docPlaceRepository{
		collection: docstore.NewCollection[model.Place](db, docstore.Places),
	}
}

func (r *docPlaceRepository) FindAll(ctx context.Context) ([]model.Place, error) {
	return r.collection.Load(ctx)
}

func (r *docPlaceRepository) FindByID(ctx context.Context, id string) (*model.Place, error) {
	places, err := r.collection.Load(ctx)
	if err != nil {
		return nil, err
	}
	place, ok := docstore.Find(places, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", placeserrors.ErrNotFound, id)
	}
	return &place, nil
}

func (r *docPlaceRepository) FindByOwner(ctx context.Context, ownerID string) ([]model.Place, error) {
	places, err := r.collection.Load(ctx)
	if err != nil {
		return nil, err
	}
	owned := []model.Place{}
	for _, p := range places {
		if p.OwnerID == ownerID {
			owned = append(owned, p)
		}
	}
	return owned, nil
}

func (r *docPlaceRepository) Create(ctx context.Context, place *model.Place) error {
	if place.CreatedAt.IsZero() {
		place.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	return r.collection.Mutate(ctx, func(places []model.Place) ([]model.Place, error) {
		return append(places, *place), nil
	})
}

// Update applies fn to a copy of the stored place and writes it back. The
// id and creation time cannot be changed by fn.
func (r *docPlaceRepository) Update(ctx context.Context, id string, fn func(place *model.Place) error) (*model.Place, error) {
	var updated model.Place
	err := r.collection.Mutate(ctx, func(places []model.Place) ([]model.Place, error) {
		i := docstore.IndexOf(places, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", placeserrors.ErrNotFound, id)
		}
		updated = places[i]
		if err := fn(&updated); err != nil {
			return nil, err
		}
		updated.ID = places[i].ID
		updated.CreatedAt = places[i].CreatedAt
		places[i] = updated
		return places, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *docPlaceRepository) Delete(ctx context.Context, id string) (*model.Place, error) {
	var removed model.Place
	err := r.collection.Mutate(ctx, func(places []model.Place) ([]model.Place, error) {
		place, ok := docstore.Find(places, id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", placeserrors.ErrNotFound, id)
		}
		removed = place
		rest, _ := docstore.Remove(places, id)
		return rest, nil
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}
