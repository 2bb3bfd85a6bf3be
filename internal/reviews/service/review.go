package service

import (
	"context"
	"errors"
	"slices"

	"github.com/google/uuid"

	placeserrors "stayhub/internal/places/errors"
	placesrepo "stayhub/internal/places/repository"
	reviewserrors "stayhub/internal/reviews/errors"
	"stayhub/internal/reviews/repository"
	userserrors "stayhub/internal/users/errors"
	usersrepo "stayhub/internal/users/repository"
	"stayhub/pkg/config"
	"stayhub/pkg/docstore"
	apperrors "stayhub/pkg/errors"
	"stayhub/pkg/model"
	"stayhub/pkg/sanitizer"
	appvalidator "stayhub/pkg/validator"
)

type ReviewService interface {
	Create(ctx context.Context, placeID string, input *model.ReviewInput) (*model.Review, error)
	GetByID(ctx context.Context, id string) (*model.Review, error)
	ListByPlace(ctx context.Context, placeID string) ([]model.Review, error)
	Delete(ctx context.Context, id string) error
}

type reviewService struct {
	repo      repository.ReviewRepository
	places    placesrepo.PlaceRepository
	users     usersrepo.UserRepository
	validator *appvalidator.Validator
	cfg       *config.Config
}

func NewReviewService(
	repo repository.ReviewRepository,
	places placesrepo.PlaceRepository,
	users usersrepo.UserRepository,
	validator *appvalidator.Validator,
	cfg *config.Config,
) ReviewService {
	return &reviewService{
		repo:      repo,
		places:    places,
		users:     users,
		validator: validator,
		cfg:       cfg,
	}
}

// Create stores the review and links it from the place. When the place
// cannot be updated the review is removed again.
func (s *reviewService) Create(ctx context.Context, placeID string, input *model.ReviewInput) (*model.Review, error) {
	log := s.cfg.Log.FromContext(ctx)

	input.Comment = sanitizer.NormalizeMultiline(input.Comment)
	if err := s.validator.Struct(input); err != nil {
		log.Warn("Review validation failed", "place_id", placeID, "error", err)
		var fieldErrs appvalidator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return nil, apperrors.Validation("Review validation failed", fieldErrs.Details())
		}
		return nil, apperrors.Internal("Failed to validate review", err)
	}

	if _, err := s.places.FindByID(ctx, placeID); err != nil {
		if errors.Is(err, placeserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Place", placeID).WithCause(reviewserrors.ErrPlaceNotFound)
		}
		return nil, docstore.AsAppError("retrieve place", err)
	}
	if _, err := s.users.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", input.UserID).WithCause(reviewserrors.ErrUserNotFound)
		}
		return nil, docstore.AsAppError("retrieve user", err)
	}

	review := &model.Review{
		ID:      uuid.NewString(),
		PlaceID: placeID,
		UserID:  input.UserID,
		Rating:  input.Rating,
		Comment: input.Comment,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		log.Error("Failed to create review", "place_id", placeID, "error", err)
		return nil, docstore.AsAppError("create review", err)
	}

	_, err := s.places.Update(ctx, placeID, func(p *model.Place) error {
		p.Reviews = append(p.Reviews, review.ID)
		return nil
	})
	if err != nil {
		log.Error("Failed to link review to place", "id", review.ID, "place_id", placeID, "error", err)
		if _, rollbackErr := s.repo.Delete(ctx, review.ID); rollbackErr != nil {
			log.Error("Failed to remove unlinked review", "id", review.ID, "error", rollbackErr)
		}
		if errors.Is(err, placeserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Place", placeID).WithCause(reviewserrors.ErrPlaceNotFound)
		}
		return nil, docstore.AsAppError("link review", err)
	}

	log.Info("Review created successfully", "id", review.ID, "place_id", placeID, "rating", review.Rating)
	return review, nil
}

func (s *reviewService) GetByID(ctx context.Context, id string) (*model.Review, error) {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, reviewserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Review", id).WithCause(err)
		}
		s.cfg.Log.FromContext(ctx).Error("Failed to retrieve review", "id", id, "error", err)
		return nil, docstore.AsAppError("retrieve review", err)
	}
	return review, nil
}

func (s *reviewService) ListByPlace(ctx context.Context, placeID string) ([]model.Review, error) {
	if _, err := s.places.FindByID(ctx, placeID); err != nil {
		if errors.Is(err, placeserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Place", placeID).WithCause(reviewserrors.ErrPlaceNotFound)
		}
		return nil, docstore.AsAppError("retrieve place", err)
	}

	reviews, err := s.repo.FindByPlace(ctx, placeID)
	if err != nil {
		s.cfg.Log.FromContext(ctx).Error("Failed to list reviews", "place_id", placeID, "error", err)
		return nil, docstore.AsAppError("list reviews", err)
	}
	return reviews, nil
}

// Delete removes the review and unlinks it from its place. A place that is
// already gone is not an error.
func (s *reviewService) Delete(ctx context.Context, id string) error {
	log := s.cfg.Log.FromContext(ctx)

	review, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, reviewserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Review", id).WithCause(err)
		}
		log.Error("Failed to delete review", "id", id, "error", err)
		return docstore.AsAppError("delete review", err)
	}

	_, err = s.places.Update(ctx, review.PlaceID, func(p *model.Place) error {
		p.Reviews = slices.DeleteFunc(p.Reviews, func(rid string) bool { return rid == id })
		return nil
	})
	if err != nil && !errors.Is(err, placeserrors.ErrNotFound) {
		log.Error("Failed to unlink review from place", "id", id, "place_id", review.PlaceID, "error", err)
		return docstore.AsAppError("unlink review", err)
	}

	log.Info("Review deleted successfully", "id", id, "place_id", review.PlaceID)
	return nil
}
