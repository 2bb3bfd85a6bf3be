package model

import "time"

type Address struct {
	Street     string  `json:"street"`
	City       string  `json:"city"`
	PostalCode string  `json:"postalCode"`
	Country    string  `json:"country"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

type Place struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Address      Address   `json:"address"`
	Price        float64   `json:"price"`
	RoomsInfo    string    `json:"roomsInfo,omitempty"`
	Availability DateRange `json:"availability"`
	OwnerID      string    `json:"ownerId"`
	Facilities   []string  `json:"facilities"`
	Images       []string  `json:"images"`
	Reviews      []string  `json:"reviews"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (p Place) GetID() string { return p.ID }

// PlaceInput is the create/replace body for a place. Dates stay strings so
// the validator can report malformed values per field.
type PlaceInput struct {
	Title       string       `json:"title" validate:"required,min=4,max=120"`
	Description string       `json:"description" validate:"required,min=10,max=4000"`
	Address     AddressInput `json:"address"`
	Price       *float64     `json:"price" validate:"required,gte=0"`
	RoomsInfo   string       `json:"roomsInfo" validate:"omitempty,max=500"`
	Start       string       `json:"start" validate:"required,datetime=2006-01-02"`
	End         string       `json:"end" validate:"required,datetime=2006-01-02"`
	Facilities  []string     `json:"facilities" validate:"omitempty,max=50,dive,required,max=60"`
}

type AddressInput struct {
	Street     string   `json:"street" validate:"required,min=2,max=200"`
	City       string   `json:"city" validate:"required,min=2,max=100"`
	PostalCode string   `json:"postalCode" validate:"required,max=20"`
	Country    string   `json:"country" validate:"required,min=2,max=100"`
	Latitude   *float64 `json:"latitude" validate:"required,latitude"`
	Longitude  *float64 `json:"longitude" validate:"required,longitude"`
}

// PlaceFilter carries the optional place search criteria. Nil means unset.
type PlaceFilter struct {
	City       string
	Title      string
	PriceMin   *float64
	PriceMax   *float64
	Latitude   *float64
	Longitude  *float64
	DistanceKm *float64
	StartDate  *Date
}
