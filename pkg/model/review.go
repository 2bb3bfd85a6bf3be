package model

import "time"

type Review struct {
	ID        string    `json:"id"`
	PlaceID   string    `json:"placeId"`
	UserID    string    `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r Review) GetID() string { return r.ID }

type ReviewInput struct {
	UserID  string `json:"userId" validate:"required,max=64"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,min=3,max=2000"`
}
