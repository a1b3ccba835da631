package dto

import "time"

type ItemGetDTO struct {
	ID          string    `json:"id"`
	BoxID       string    `json:"boxId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ItemPageDTO is returned by the item listing once a limit or cursor is given.
// NextCursor is null on the last page.
type ItemPageDTO struct {
	Items      []ItemGetDTO `json:"items"`
	NextCursor *string      `json:"nextCursor"`
}

type ItemCreateDTO struct {
	BoxID       string `json:"boxId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Image       string `json:"image"`
}

type ItemUpdateDTO struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`
	BoxID       *string `json:"boxId,omitempty"`
}
