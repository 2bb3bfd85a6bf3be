package model

import "time"

const RoleClient = "client"

type UserAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}

type User struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Surname      string      `json:"surname"`
	Email        string      `json:"email"`
	YearOfBirth  int         `json:"yearOfBirth"`
	Address      UserAddress `json:"address"`
	Role         string      `json:"role"`
	Image        string      `json:"image,omitempty"`
	PasswordHash string      `json:"passwordHash,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}

func (u User) GetID() string { return u.ID }

func (u User) FullName() string {
	return u.Name + " " + u.Surname
}

// Public strips fields that must never leave the service.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

type UserInput struct {
	Name        string           `json:"name" validate:"required,min=2,max=60"`
	Surname     string           `json:"surname" validate:"required,min=2,max=60"`
	Email       string           `json:"email" validate:"required,email,max=254"`
	YearOfBirth int              `json:"yearOfBirth" validate:"required,min=1900,max=2100"`
	Address     UserAddressInput `json:"address"`
	Password    string           `json:"password" validate:"required,min=8,max=72,alphanum"`
}

type UserAddressInput struct {
	Street     string `json:"street" validate:"required,min=5,max=200"`
	City       string `json:"city" validate:"required,min=2,max=100"`
	Country    string `json:"country" validate:"required,min=2,max=100"`
	PostalCode string `json:"postalCode" validate:"required,max=20"`
}
