package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	ownerserrors "stayhub/internal/owners/errors"
	"stayhub/pkg/docstore"
	"stayhub/pkg/model"
)

type OwnerRepository interface {
	FindAll(ctx context.Context) ([]model.Owner, error)
	FindByID(ctx context.Context, id string) (*model.Owner, error)
	Create(ctx context.Context, owner *model.Owner) error
	Update(ctx context.Context, id string, fn func(owner *model.Owner) error) (*model.Owner, error)
	Delete(ctx context.Context, id string) error
}

type docOwnerRepository struct {
	collection *docstore.Collection[model.Owner]
}

func NewOwnerRepository(db *docstore.Database) OwnerRepository {
	return &docOwnerRepository{
		collection: docstore.NewCollection[model.Owner](db, docstore.Owners),
	}
}

func (r *docOwnerRepository) FindAll(ctx context.Context) ([]model.Owner, error) {
	return r.collection.Load(ctx)
}

func (r *docOwnerRepository) FindByID(ctx context.Context, id string) (*model.Owner, error) {
	owners, err := r.collection.Load(ctx)
	if err != nil {
		return nil, err
	}
	owner, ok := docstore.Find(owners, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ownerserrors.ErrNotFound, id)
	}
	return &owner, nil
}

func (r *docOwnerRepository) Create(ctx context.Context, owner *model.Owner) error {
	if owner.CreatedAt.IsZero() {
		owner.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	return r.collection.Mutate(ctx, func(owners []model.Owner) ([]model.Owner, error) {
		if emailTaken(owners, owner.Email, "") {
			return nil, fmt.Errorf("%w: %s", ownerserrors.ErrEmailTaken, owner.Email)
		}
		return append(owners, *owner), nil
	})
}

func (r *docOwnerRepository) Update(ctx context.Context, id string, fn func(owner *model.Owner) error) (*model.Owner, error) {
	var updated model.Owner
	err := r.collection.Mutate(ctx, func(owners []model.Owner) ([]model.Owner, error) {
		i := docstore.IndexOf(owners, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ownerserrors.ErrNotFound, id)
		}
		updated = owners[i]
		if err := fn(&updated); err != nil {
			return nil, err
		}
		updated.ID = owners[i].ID
		updated.CreatedAt = owners[i].CreatedAt
		if emailTaken(owners, updated.Email, id) {
			return nil, fmt.Errorf("%w: %s", ownerserrors.ErrEmailTaken, updated.Email)
		}
		owners[i] = updated
		return owners, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *docOwnerRepository) Delete(ctx context.Context, id string) error {
	return r.collection.Mutate(ctx, func(owners []model.Owner) ([]model.Owner, error) {
		rest, ok := docstore.Remove(owners, id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ownerserrors.ErrNotFound, id)
		}
		return rest, nil
	})
}

func emailTaken(owners []model.Owner, email, exceptID string) bool {
	for _, o := range owners {
		if o.ID != exceptID && strings.EqualFold(o.Email, email) {
			return true
		}
	}
	return false
}
