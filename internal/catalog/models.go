package catalog

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("item not found")
	ErrInvalidInput = errors.New("invalid input")
)

type Kind string

const (
	KindProduct Kind = "product"
	KindEvent   Kind = "event"
)

func (k Kind) Valid() bool { return k == KindProduct || k == KindEvent }

// Item is a catalog entry, either a product or an event. Kind-specific
// fields are only meaningful for the matching kind; nothing enforces
// exclusivity, the other branch is simply ignored.
type Item struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"priceCents"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// product
	Category string `json:"category,omitempty"`

	// event
	EventDate *time.Time `json:"eventDate,omitempty"`
	Location  string     `json:"location,omitempty"`
	Capacity  *int       `json:"capacity,omitempty"`
	StartTime string     `json:"startTime,omitempty"`
	EndTime   string     `json:"endTime,omitempty"`
}

type CreateInput struct {
	Kind        Kind       `json:"kind"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	PriceCents  int64      `json:"priceCents"`
	Thumbnail   string     `json:"thumbnail"`
	Stock       int        `json:"stock"`
	Category    string     `json:"category"`
	EventDate   *time.Time `json:"eventDate"`
	Location    string     `json:"location"`
	Capacity    *int       `json:"capacity"`
	StartTime   string     `json:"startTime"`
	EndTime     string     `json:"endTime"`
}

func (in CreateInput) Validate() error {
	if !in.Kind.Valid() {
		return ErrInvalidInput
	}
	if in.Name == "" {
		return ErrInvalidInput
	}
	if in.PriceCents <= 0 {
		return ErrInvalidInput
	}
	if in.Stock < 0 {
		return ErrInvalidInput
	}
	if in.Capacity != nil && *in.Capacity < 1 {
		return ErrInvalidInput
	}
	return nil
}

// UpdatePatch carries a partial update; nil fields stay untouched.
type UpdatePatch struct {
	Kind        *Kind      `json:"kind"`
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	PriceCents  *int64     `json:"priceCents"`
	Thumbnail   *string    `json:"thumbnail"`
	Stock       *int       `json:"stock"`
	Category    *string    `json:"category"`
	EventDate   *time.Time `json:"eventDate"`
	Location    *string    `json:"location"`
	Capacity    *int       `json:"capacity"`
	StartTime   *string    `json:"startTime"`
	EndTime     *string    `json:"endTime"`
}

func (p UpdatePatch) Validate() error {
	if p.Kind != nil && !p.Kind.Valid() {
		return ErrInvalidInput
	}
	if p.Name != nil && *p.Name == "" {
		return ErrInvalidInput
	}
	if p.PriceCents != nil && *p.PriceCents <= 0 {
		return ErrInvalidInput
	}
	if p.Stock != nil && *p.Stock < 0 {
		return ErrInvalidInput
	}
	if p.Capacity != nil && *p.Capacity < 1 {
		return ErrInvalidInput
	}
	return nil
}
