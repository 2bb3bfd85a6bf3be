package model

import "time"

type Owner struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (o Owner) GetID() string { return o.ID }

type OwnerInput struct {
	Name    string `json:"name" validate:"required,min=2,max=60"`
	Surname string `json:"surname" validate:"required,min=2,max=60"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Phone   string `json:"phone" validate:"omitempty,e164"`
}
