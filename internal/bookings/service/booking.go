package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	bookingserrors "stayhub/internal/bookings/errors"
	"stayhub/internal/bookings/repository"
	"stayhub/internal/bookings/validator"
	placeserrors "stayhub/internal/places/errors"
	placesrepo "stayhub/internal/places/repository"
	userserrors "stayhub/internal/users/errors"
	usersrepo "stayhub/internal/users/repository"
	"stayhub/pkg/config"
	"stayhub/pkg/docstore"
	apperrors "stayhub/pkg/errors"
	"stayhub/pkg/kafka"
	"stayhub/pkg/model"
	appvalidator "stayhub/pkg/validator"
)

type BookingService interface {
	Create(ctx context.Context, userID string, input *model.BookingInput) (*model.Booking, error)
	Cancel(ctx context.Context, userID, bookingID string) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]model.Booking, error)
	ListByPlace(ctx context.Context, placeID string) ([]model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	places    placesrepo.PlaceRepository
	users     usersrepo.UserRepository
	validator *validator.BookingValidator
	publisher kafka.BookingPublisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	places placesrepo.PlaceRepository,
	users usersrepo.UserRepository,
	validator *validator.BookingValidator,
	publisher kafka.BookingPublisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		places:    places,
		users:     users,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create admits a booking for userID. Checks run in a fixed order: input,
// place, user, availability window, overlap. Only the overlap check and the
// write happen under the bookings lock.
func (s *bookingService) Create(ctx context.Context, userID string, input *model.BookingInput) (*model.Booking, error) {
	log := s.cfg.Log.FromContext(ctx)

	period, err := s.validator.Validate(input)
	if err != nil {
		log.Warn("Booking validation failed", "user_id", userID, "error", err)
		return nil, s.validationError(err)
	}

	place, user, err := s.lookup(ctx, input.PlaceID, userID)
	if err != nil {
		log.Error("Failed to load booking participants", "place_id", input.PlaceID, "user_id", userID, "error", err)
		return nil, docstore.AsAppError("load booking participants", err)
	}
	if place == nil {
		return nil, apperrors.NotFoundWithID("Place", input.PlaceID).WithCause(bookingserrors.ErrPlaceNotFound)
	}
	if user == nil {
		return nil, apperrors.NotFoundWithID("User", userID).WithCause(bookingserrors.ErrUserNotFound)
	}

	if !place.Availability.Contains(period) {
		log.Warn("Booking outside availability",
			"place_id", place.ID,
			"requested", period.String(),
			"availability", place.Availability.String(),
		)
		return nil, apperrors.Conflict(fmt.Sprintf(
			"Requested dates %s are outside the place availability %s", period, place.Availability,
		)).WithCause(bookingserrors.ErrOutsideAvailability)
	}

	booking, err := s.repo.Insert(ctx, func(existing []model.Booking) (*model.Booking, error) {
		for _, b := range existing {
			if b.PlaceID == place.ID && b.Period.Overlaps(period) {
				return nil, apperrors.Conflict(fmt.Sprintf(
					"Requested dates %s overlap an existing booking (%s)", period, b.Period,
				)).WithCause(bookingserrors.ErrSlotUnavailable)
			}
		}
		return &model.Booking{
			ID:        uuid.NewString(),
			PlaceID:   place.ID,
			UserID:    user.ID,
			Period:    period,
			UserName:  user.FullName(),
			UserEmail: user.Email,
		}, nil
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			log.Warn("Booking rejected", "place_id", place.ID, "requested", period.String(), "error", err)
		} else {
			log.Error("Failed to persist booking", "place_id", place.ID, "error", err)
		}
		return nil, docstore.AsAppError("save booking", err)
	}

	log.Info("Booking created successfully",
		"id", booking.ID,
		"place_id", booking.PlaceID,
		"user_id", booking.UserID,
		"period", booking.Period.String(),
	)

	if err := s.publisher.PublishBookingCreated(ctx, bookingEvent(booking, place.Title)); err != nil {
		log.Error("Failed to publish booking event", "id", booking.ID, "event", kafka.EventBookingCreated, "error", err)
	}
	return booking, nil
}

// lookup fetches the place and the user concurrently. A missing record comes
// back as nil so the caller can report not-found in a fixed order; only store
// failures are returned as errors.
func (s *bookingService) lookup(ctx context.Context, placeID, userID string) (*model.Place, *model.User, error) {
	var place *model.Place
	var user *model.User

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.places.FindByID(gctx, placeID)
		if errors.Is(err, placeserrors.ErrNotFound) {
			return nil
		}
		place = p
		return err
	})
	g.Go(func() error {
		u, err := s.users.FindByID(gctx, userID)
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil
		}
		user = u
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return place, user, nil
}

func (s *bookingService) Cancel(ctx context.Context, userID, bookingID string) error {
	log := s.cfg.Log.FromContext(ctx)

	if bookingID == "" || userID == "" {
		return apperrors.InvalidInput("Booking ID and user ID are required")
	}

	booking, err := s.repo.DeleteForUser(ctx, bookingID, userID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", bookingID).WithCause(err)
		}
		log.Error("Failed to cancel booking", "id", bookingID, "error", err)
		return docstore.AsAppError("cancel booking", err)
	}

	log.Info("Booking cancelled successfully", "id", booking.ID, "place_id", booking.PlaceID, "user_id", userID)

	placeTitle := ""
	if place, err := s.places.FindByID(ctx, booking.PlaceID); err == nil {
		placeTitle = place.Title
	} else {
		log.Warn("Place lookup failed for cancellation event", "place_id", booking.PlaceID, "error", err)
	}

	if err := s.publisher.PublishBookingCancelled(ctx, bookingEvent(booking, placeTitle)); err != nil {
		log.Error("Failed to publish booking event", "id", booking.ID, "event", kafka.EventBookingCancelled, "error", err)
	}
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id).WithCause(err)
		}
		s.cfg.Log.FromContext(ctx).Error("Failed to retrieve booking", "id", id, "error", err)
		return nil, docstore.AsAppError("retrieve booking", err)
	}
	return booking, nil
}

func (s *bookingService) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", userID).WithCause(bookingserrors.ErrUserNotFound)
		}
		return nil, docstore.AsAppError("retrieve user", err)
	}

	bookings, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		s.cfg.Log.FromContext(ctx).Error("Failed to list user bookings", "user_id", userID, "error", err)
		return nil, docstore.AsAppError("list bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) ListByPlace(ctx context.Context, placeID string) ([]model.Booking, error) {
	if _, err := s.places.FindByID(ctx, placeID); err != nil {
		if errors.Is(err, placeserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Place", placeID).WithCause(bookingserrors.ErrPlaceNotFound)
		}
		return nil, docstore.AsAppError("retrieve place", err)
	}

	bookings, err := s.repo.FindByPlace(ctx, placeID)
	if err != nil {
		s.cfg.Log.FromContext(ctx).Error("Failed to list place bookings", "place_id", placeID, "error", err)
		return nil, docstore.AsAppError("list bookings", err)
	}
	return bookings, nil
}

// --- Helpers ---

func (s *bookingService) validationError(err error) error {
	if errors.Is(err, bookingserrors.ErrInvalidRange) {
		return apperrors.Validation("Invalid booking dates", map[string]any{
			"end": "end must be on or after start",
		}).WithCause(err)
	}
	var fieldErrs appvalidator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return apperrors.Validation("Booking validation failed", fieldErrs.Details())
	}
	return apperrors.Internal("Failed to validate booking", err)
}

func bookingEvent(b *model.Booking, placeTitle string) model.BookingEvent {
	return model.BookingEvent{
		BookingID:  b.ID,
		PlaceID:    b.PlaceID,
		PlaceTitle: placeTitle,
		UserID:     b.UserID,
		UserName:   b.UserName,
		UserEmail:  b.UserEmail,
		Start:      b.Period.Start,
		End:        b.Period.End,
		OccurredAt: time.Now().UTC(),
	}
}
