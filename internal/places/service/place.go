package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	bookingsrepo "stayhub/internal/bookings/repository"
	ownerserrors "stayhub/internal/owners/errors"
	ownersrepo "stayhub/internal/owners/repository"
	placeserrors "stayhub/internal/places/errors"
	"stayhub/internal/places/repository"
	"stayhub/internal/places/validator"
	reviewsrepo "stayhub/internal/reviews/repository"
	"stayhub/pkg/config"
	"stayhub/pkg/docstore"
	apperrors "stayhub/pkg/errors"
	"stayhub/pkg/imagehost"
	"stayhub/pkg/model"
	"stayhub/pkg/sanitizer"
	appvalidator "stayhub/pkg/validator"
)

// KmPerDegree converts search distances to a latitude/longitude box.
const KmPerDegree = 110.574

const imageFolder = "places"

type PlaceService interface {
	Create(ctx context.Context, ownerID string, input *model.PlaceInput) (*model.Place, error)
	GetByID(ctx context.Context, id string) (*model.Place, error)
	Search(ctx context.Context, filter *model.PlaceFilter) ([]model.Place, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Place, error)
	Update(ctx context.Context, id string, input *model.PlaceInput) (*model.Place, error)
	Delete(ctx context.Context, id string) error
	AddImage(ctx context.Context, id, filename string, data []byte) (*model.Place, error)
}

type placeService struct {
	repo      repository.PlaceRepository
	owners    ownersrepo.OwnerRepository
	bookings  bookingsrepo.BookingRepository
	reviews   reviewsrepo.ReviewRepository
	validator *validator.PlaceValidator
	images    imagehost.Host
	cfg       *config.Config
}

func NewPlaceService(
	repo repository.PlaceRepository,
	owners ownersrepo.OwnerRepository,
	bookings bookingsrepo.BookingRepository,
	reviews reviewsrepo.ReviewRepository,
	validator *validator.PlaceValidator,
	images imagehost.Host,
	cfg *config.Config,
) PlaceService {
	return &placeService{
		repo:      repo,
		owners:    owners,
		bookings:  bookings,
		reviews:   reviews,
		validator: validator,
		images:    images,
		cfg:       cfg,
	}
}

func (s *placeService) Create(ctx context.Context, ownerID string, input *model.PlaceInput) (*model.Place, error) {
	log := s.cfg.Log.FromContext(ctx)

	sanitize(input)
	window, err := s.validator.Validate(input)
	if err != nil {
		log.Warn("Place validation failed", "owner_id", ownerID, "error", err)
		return nil, validationError(err)
	}

	if _, err := s.owners.FindByID(ctx, ownerID); err != nil {
		if errors.Is(err, ownerserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Owner", ownerID).WithCause(placeserrors.ErrOwnerNotFound)
		}
		log.Error("Failed to check place owner", "owner_id", ownerID, "error", err)
		return nil, docstore.AsAppError("retrieve owner", err)
	}

	place := &model.Place{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Images:     []string{},
		Reviews:    []string{},
		Facilities: []string{},
	}
	apply(place, input, window)

	if err := s.repo.Create(ctx, place); err != nil {
		log.Error("Failed to create place", "owner_id", ownerID, "error", err)
		return nil, docstore.AsAppError("create place", err)
	}

	log.Info("Place created successfully", "id", place.ID, "owner_id", ownerID, "city", place.Address.City)
	return place, nil
}

func (s *placeService) GetByID(ctx context.Context, id string) (*model.Place, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Place ID cannot be empty")
	}

	place, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(ctx, "retrieve place", id, err)
	}
	return place, nil
}

// Search returns places matching every set filter. City matches exactly
// (case-insensitive), title by substring, and the distance filter is a
// square box of distance/KmPerDegree degrees around the given point.
func (s *placeService) Search(ctx context.Context, filter *model.PlaceFilter) ([]model.Place, error) {
	if filter == nil {
		filter = &model.PlaceFilter{}
	}
	if errs := s.validator.ValidateFilter(filter); len(errs) > 0 {
		return nil, apperrors.Validation("Invalid search filter", errs.Details()).WithCause(placeserrors.ErrInvalidFilter)
	}

	places, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.FromContext(ctx).Error("Failed to list places", "error", err)
		return nil, docstore.AsAppError("list places", err)
	}

	matched := []model.Place{}
	for _, p := range places {
		if matches(&p, filter) {
			matched = append(matched, p)
		}
	}

	s.cfg.Log.FromContext(ctx).Debug("Place search completed", "count", len(matched), "total", len(places))
	return matched, nil
}

func (s *placeService) ListByOwner(ctx context.Context, ownerID string) ([]model.Place, error) {
	if _, err := s.owners.FindByID(ctx, ownerID); err != nil {
		if errors.Is(err, ownerserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Owner", ownerID).WithCause(placeserrors.ErrOwnerNotFound)
		}
		return nil, docstore.AsAppError("retrieve owner", err)
	}

	places, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		s.cfg.Log.FromContext(ctx).Error("Failed to list owner places", "owner_id", ownerID, "error", err)
		return nil, docstore.AsAppError("list places", err)
	}
	return places, nil
}

// Update replaces the editable fields of a place. The new availability must
// still cover every booking already accepted for it.
func (s *placeService) Update(ctx context.Context, id string, input *model.PlaceInput) (*model.Place, error) {
	log := s.cfg.Log.FromContext(ctx)

	sanitize(input)
	window, err := s.validator.Validate(input)
	if err != nil {
		log.Warn("Place update validation failed", "id", id, "error", err)
		return nil, validationError(err)
	}

	bookings, err := s.bookings.FindByPlace(ctx, id)
	if err != nil {
		log.Error("Failed to load place bookings", "id", id, "error", err)
		return nil, docstore.AsAppError("load place bookings", err)
	}
	for _, b := range bookings {
		if !window.Contains(b.Period) {
			return nil, apperrors.Conflict(fmt.Sprintf(
				"Booking %s (%s) falls outside the new availability %s", b.ID, b.Period, window,
			)).WithCause(placeserrors.ErrBookingsOutsideAvailability)
		}
	}

	place, err := s.repo.Update(ctx, id, func(p *model.Place) error {
		apply(p, input, window)
		return nil
	})
	if err != nil {
		return nil, s.translate(ctx, "update place", id, err)
	}

	log.Info("Place updated successfully", "id", id)
	return place, nil
}

// Delete removes a place that has no bookings, together with its reviews.
func (s *placeService) Delete(ctx context.Context, id string) error {
	log := s.cfg.Log.FromContext(ctx)

	bookings, err := s.bookings.FindByPlace(ctx, id)
	if err != nil {
		log.Error("Failed to load place bookings", "id", id, "error", err)
		return docstore.AsAppError("load place bookings", err)
	}
	if len(bookings) > 0 {
		return apperrors.Conflict(fmt.Sprintf("Place has %d booking(s) and cannot be deleted", len(bookings))).
			WithCause(placeserrors.ErrHasBookings)
	}

	if _, err := s.repo.Delete(ctx, id); err != nil {
		return s.translate(ctx, "delete place", id, err)
	}

	removed, err := s.reviews.DeleteByPlace(ctx, id)
	if err != nil {
		log.Error("Failed to delete reviews of removed place", "id", id, "error", err)
	}

	log.Info("Place deleted successfully", "id", id, "reviews_removed", removed)
	return nil
}

func (s *placeService) AddImage(ctx context.Context, id, filename string, data []byte) (*model.Place, error) {
	log := s.cfg.Log.FromContext(ctx)

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, s.translate(ctx, "retrieve place", id, err)
	}

	url, err := s.images.Upload(ctx, imageFolder, filename, data)
	if err != nil {
		log.Warn("Place image rejected", "id", id, "error", err)
		return nil, imagehost.AsAppError(err)
	}

	place, err := s.repo.Update(ctx, id, func(p *model.Place) error {
		p.Images = append(p.Images, url)
		return nil
	})
	if err != nil {
		return nil, s.translate(ctx, "update place", id, err)
	}

	log.Info("Place image added", "id", id, "url", url)
	return place, nil
}

// --- Helpers ---

func (s *placeService) translate(ctx context.Context, operation, id string, err error) error {
	if errors.Is(err, placeserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Place", id).WithCause(err)
	}
	s.cfg.Log.FromContext(ctx).Error("Place store operation failed", "operation", operation, "id", id, "error", err)
	return docstore.AsAppError(operation, err)
}

func validationError(err error) error {
	if errors.Is(err, placeserrors.ErrInvalidAvailability) {
		return apperrors.Validation("Invalid availability", map[string]any{
			"end": "end must be on or after start",
		}).WithCause(err)
	}
	var fieldErrs appvalidator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return apperrors.Validation("Place validation failed", fieldErrs.Details())
	}
	return apperrors.Internal("Failed to validate place", err)
}

func sanitize(input *model.PlaceInput) {
	input.Title = sanitizer.TrimAndNormalize(input.Title)
	input.Description = sanitizer.NormalizeMultiline(input.Description)
	input.RoomsInfo = sanitizer.TrimAndNormalize(input.RoomsInfo)
	input.Address.Street = sanitizer.TrimAndNormalize(input.Address.Street)
	input.Address.City = sanitizer.TrimAndNormalize(input.Address.City)
	input.Address.PostalCode = sanitizer.TrimAndNormalize(input.Address.PostalCode)
	input.Address.Country = sanitizer.TrimAndNormalize(input.Address.Country)
	input.Facilities = sanitizer.NormalizeFacilities(input.Facilities)
}

// apply copies a validated body onto p. Server-owned fields are untouched.
func apply(p *model.Place, input *model.PlaceInput, window model.DateRange) {
	p.Title = input.Title
	p.Description = input.Description
	p.Address = model.Address{
		Street:     input.Address.Street,
		City:       input.Address.City,
		PostalCode: input.Address.PostalCode,
		Country:    input.Address.Country,
		Latitude:   *input.Address.Latitude,
		Longitude:  *input.Address.Longitude,
	}
	p.Price = *input.Price
	p.RoomsInfo = input.RoomsInfo
	p.Availability = window
	p.Facilities = input.Facilities
}

func matches(p *model.Place, f *model.PlaceFilter) bool {
	if f.City != "" && !strings.Contains(strings.ToLower(p.Address.City), strings.ToLower(strings.TrimSpace(f.City))) {
		return false
	}
	if f.Title != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(strings.TrimSpace(f.Title))) {
		return false
	}
	if f.PriceMin != nil && p.Price < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && p.Price > *f.PriceMax {
		return false
	}
	if f.Latitude != nil && f.Longitude != nil && f.DistanceKm != nil {
		degrees := *f.DistanceKm / KmPerDegree
		if math.Abs(p.Address.Latitude-*f.Latitude) > degrees || math.Abs(p.Address.Longitude-*f.Longitude) > degrees {
			return false
		}
	}
	if f.StartDate != nil && !p.Availability.Includes(*f.StartDate) {
		return false
	}
	return true
}
