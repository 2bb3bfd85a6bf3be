package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	ownerserrors "stayhub/internal/owners/errors"
	"stayhub/internal/owners/repository"
	placesrepo "stayhub/internal/places/repository"
	"stayhub/pkg/config"
	"stayhub/pkg/docstore"
	apperrors "stayhub/pkg/errors"
	"stayhub/pkg/model"
	"stayhub/pkg/sanitizer"
	appvalidator "stayhub/pkg/validator"
)

type OwnerService interface {
	Create(ctx context.Context, input *model.OwnerInput) (*model.Owner, error)
	GetByID(ctx context.Context, id string) (*model.Owner, error)
	GetAll(ctx context.Context) ([]model.Owner, error)
	Update(ctx context.Context, id string, input *model.OwnerInput) (*model.Owner, error)
	Delete(ctx context.Context, id string) error
}

type ownerService struct {
	repo      repository.OwnerRepository
	places    placesrepo.PlaceRepository
	validator *appvalidator.Validator
	cfg       *config.Config
}

func NewOwnerService(
	repo repository.OwnerRepository,
	places placesrepo.PlaceRepository,
	validator *appvalidator.Validator,
	cfg *config.Config,
) OwnerService {
	return &ownerService{
		repo:      repo,
		places:    places,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *ownerService) Create(ctx context.Context, input *model.OwnerInput) (*model.Owner, error) {
	log := s.cfg.Log.FromContext(ctx)

	sanitize(input)
	if err := s.validate(input); err != nil {
		log.Warn("Owner validation failed", "error", err)
		return nil, err
	}

	owner := &model.Owner{
		ID:      uuid.NewString(),
		Name:    input.Name,
		Surname: input.Surname,
		Email:   input.Email,
		Phone:   input.Phone,
	}
	if err := s.repo.Create(ctx, owner); err != nil {
		return nil, s.translate(ctx, "create owner", owner.ID, err)
	}

	log.Info("Owner created successfully", "id", owner.ID)
	return owner, nil
}

func (s *ownerService) GetByID(ctx context.Context, id string) (*model.Owner, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Owner ID cannot be empty")
	}

	owner, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(ctx, "retrieve owner", id, err)
	}
	return owner, nil
}

func (s *ownerService) GetAll(ctx context.Context) ([]model.Owner, error) {
	owners, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.FromContext(ctx).Error("Failed to list owners", "error", err)
		return nil, docstore.AsAppError("list owners", err)
	}
	return owners, nil
}

func (s *ownerService) Update(ctx context.Context, id string, input *model.OwnerInput) (*model.Owner, error) {
	log := s.cfg.Log.FromContext(ctx)

	sanitize(input)
	if err := s.validate(input); err != nil {
		log.Warn("Owner update validation failed", "id", id, "error", err)
		return nil, err
	}

	owner, err := s.repo.Update(ctx, id, func(o *model.Owner) error {
		o.Name = input.Name
		o.Surname = input.Surname
		o.Email = input.Email
		o.Phone = input.Phone
		return nil
	})
	if err != nil {
		return nil, s.translate(ctx, "update owner", id, err)
	}

	log.Info("Owner updated successfully", "id", id)
	return owner, nil
}

// Delete refuses to orphan places.
func (s *ownerService) Delete(ctx context.Context, id string) error {
	log := s.cfg.Log.FromContext(ctx)

	places, err := s.places.FindByOwner(ctx, id)
	if err != nil {
		log.Error("Failed to load owner places", "id", id, "error", err)
		return docstore.AsAppError("load owner places", err)
	}
	if len(places) > 0 {
		return apperrors.Conflict(fmt.Sprintf("Owner has %d place(s) and cannot be deleted", len(places))).
			WithCause(ownerserrors.ErrHasPlaces)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.translate(ctx, "delete owner", id, err)
	}

	log.Info("Owner deleted successfully", "id", id)
	return nil
}

func (s *ownerService) validate(input *model.OwnerInput) error {
	err := s.validator.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs appvalidator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return apperrors.Validation("Owner validation failed", fieldErrs.Details())
	}
	return apperrors.Internal("Failed to validate owner", err)
}

func (s *ownerService) translate(ctx context.Context, operation, id string, err error) error {
	switch {
	case errors.Is(err, ownerserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Owner", id).WithCause(err)
	case errors.Is(err, ownerserrors.ErrEmailTaken):
		return apperrors.Conflict("An owner with this email already exists").WithCause(err)
	}
	s.cfg.Log.FromContext(ctx).Error("Owner store operation failed", "operation", operation, "id", id, "error", err)
	return docstore.AsAppError(operation, err)
}

func sanitize(input *model.OwnerInput) {
	input.Name = sanitizer.TrimAndNormalize(input.Name)
	input.Surname = sanitizer.TrimAndNormalize(input.Surname)
	input.Email = sanitizer.NormalizeEmail(input.Email)
	input.Phone = sanitizer.NormalizePhone(input.Phone)
}
