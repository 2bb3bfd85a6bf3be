package repository

import (
	"context"
	"fmt"
	"time"

	bookingserrors "stayhub/internal/bookings/errors"
	"stayhub/pkg/docstore"
	"stayhub/pkg/model"
)

// AdmitFunc decides, against the current bookings, whether a new booking may
// be added. Returning an error aborts the insert without writing.
type AdmitFunc func(existing []model.Booking) (*model.Booking, error)

type BookingRepository interface {
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindByPlace(ctx context.Context, placeID string) ([]model.Booking, error)
	FindByUser(ctx context.Context, userID string) ([]model.Booking, error)
	Insert(ctx context.Context, admit AdmitFunc) (*model.Booking, error)
	DeleteForUser(ctx context.Context, id, userID string) (*model.Booking, error)
}

type docBookingRepository struct {
	collection *docstore.Collection[model.Booking]
}

func NewBookingRepository(db *docstore.Database) BookingRepository {
	return &docBookingRepository{
		collection: docstore.NewCollection[model.Booking](db, docstore.Bookings),
	}
}

func (r *docBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	bookings, err := r.collection.Load(ctx)
	if err != nil {
		return nil, err
	}
	booking, ok := docstore.Find(bookings, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrNotFound, id)
	}
	return &booking, nil
}

func (r *docBookingRepository) FindByPlace(ctx context.Context, placeID string) ([]model.Booking, error) {
	return r.filter(ctx, func(b model.Booking) bool { return b.PlaceID == placeID })
}

func (r *docBookingRepository) FindByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	return r.filter(ctx, func(b model.Booking) bool { return b.UserID == userID })
}

func (r *docBookingRepository) filter(ctx context.Context, keep func(model.Booking) bool) ([]model.Booking, error) {
	bookings, err := r.collection.Load(ctx)
	if err != nil {
		return nil, err
	}
	matched := []model.Booking{}
	for _, b := range bookings {
		if keep(b) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// Insert loads the whole collection, lets admit decide and persists the
// result, all under the bookings lock. Two concurrent inserts in one
// process therefore never observe the same snapshot.
func (r *docBookingRepository) Insert(ctx context.Context, admit AdmitFunc) (*model.Booking, error) {
	var created *model.Booking
	err := r.collection.Mutate(ctx, func(bookings []model.Booking) ([]model.Booking, error) {
		booking, err := admit(bookings)
		if err != nil {
			return nil, err
		}
		if booking.CreatedAt.IsZero() {
			booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
		}
		created = booking
		return append(bookings, *booking), nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteForUser removes the booking only when it belongs to userID.
func (r *docBookingRepository) DeleteForUser(ctx context.Context, id, userID string) (*model.Booking, error) {
	var removed model.Booking
	err := r.collection.Mutate(ctx, func(bookings []model.Booking) ([]model.Booking, error) {
		booking, ok := docstore.Find(bookings, id)
		if !ok || booking.UserID != userID {
			return nil, fmt.Errorf("%w: %s", bookingserrors.ErrNotFound, id)
		}
		removed = booking
		rest, _ := docstore.Remove(bookings, id)
		return rest, nil
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}
