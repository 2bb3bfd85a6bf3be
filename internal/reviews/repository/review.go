package repository

import (
	"context"
	"fmt"
	"time"

	reviewserrors "stayhub/internal/reviews/errors"
	"stayhub/pkg/docstore"
	"stayhub/pkg/model"
)

type ReviewRepository interface {
	FindByID(ctx context.Context, id string) (*model.Review, error)
	FindByPlace(ctx context.Context, placeID string) ([]model.Review, error)
	Create(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id string) (*model.Review, error)
	DeleteByPlace(ctx context.Context, placeID string) (int, error)
}

type docReviewRepository struct {
	collection *docstore.Collection[model.Review]
}

func NewReviewRepository(db *docstore.Database) ReviewRepository {
	return &docReviewRepository{
		collection: docstore.NewCollection[model.Review](db, docstore.Reviews),
	}
}

func (r *docReviewRepository) FindByID(ctx context.Context, id string) (*model.Review, error) {
	reviews, err := r.collection.Load(ctx)
	if err != nil {
		return nil, err
	}
	review, ok := docstore.Find(reviews, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", reviewserrors.ErrNotFound, id)
	}
	return &review, nil
}

func (r *docReviewRepository) FindByPlace(ctx context.Context, placeID string) ([]model.Review, error) {
	reviews, err := r.collection.Load(ctx)
	if err != nil {
		return nil, err
	}
	matched := []model.Review{}
	for _, rv := range reviews {
		if rv.PlaceID == placeID {
			matched = append(matched, rv)
		}
	}
	return matched, nil
}

func (r *docReviewRepository) Create(ctx context.Context, review *model.Review) error {
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	return r.collection.Mutate(ctx, func(reviews []model.Review) ([]model.Review, error) {
		return append(reviews, *review), nil
	})
}

func (r *docReviewRepository) Delete(ctx context.Context, id string) (*model.Review, error) {
	var removed model.Review
	err := r.collection.Mutate(ctx, func(reviews []model.Review) ([]model.Review, error) {
		review, ok := docstore.Find(reviews, id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", reviewserrors.ErrNotFound, id)
		}
		removed = review
		rest, _ := docstore.Remove(reviews, id)
		return rest, nil
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

// DeleteByPlace drops every review of a place and reports how many went.
func (r *docReviewRepository) DeleteByPlace(ctx context.Context, placeID string) (int, error) {
	removed := 0
	err := r.collection.Mutate(ctx, func(reviews []model.Review) ([]model.Review, error) {
		kept := make([]model.Review, 0, len(reviews))
		for _, rv := range reviews {
			if rv.PlaceID == placeID {
				removed++
				continue
			}
			kept = append(kept, rv)
		}
		return kept, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
