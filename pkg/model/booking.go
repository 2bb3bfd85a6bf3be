package model

import "time"

type Booking struct {
	ID        string    `json:"id"`
	PlaceID   string    `json:"placeId"`
	UserID    string    `json:"userId"`
	Period    DateRange `json:"period"`
	UserName  string    `json:"userName"`
	UserEmail string    `json:"userEmail"`
	CreatedAt time.Time `json:"createdAt"`
}

func (b Booking) GetID() string { return b.ID }

type BookingInput struct {
	PlaceID string `json:"placeId" validate:"required,max=64"`
	Start   string `json:"start" validate:"required,datetime=2006-01-02"`
	End     string `json:"end" validate:"required,datetime=2006-01-02"`
}

// BookingEvent is published after a booking is admitted or cancelled.
type BookingEvent struct {
	BookingID  string    `json:"bookingId"`
	PlaceID    string    `json:"placeId"`
	PlaceTitle string    `json:"placeTitle,omitempty"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName"`
	UserEmail  string    `json:"userEmail"`
	Start      Date      `json:"start"`
	End        Date      `json:"end"`
	OccurredAt time.Time `json:"occurredAt"`
}
