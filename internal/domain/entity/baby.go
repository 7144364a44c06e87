package entity

import (
	"time"

	"github.com/google/uuid"
)

// Color is the tag used to theme a baby profile in the clients
type Color string

const (
	ColorBlue     Color = "blue"
	ColorPink     Color = "pink"
	ColorMint     Color = "mint"
	ColorLavender Color = "lavender"
	ColorPeach    Color = "peach"
)

// Valid returns true if the color is one of the known tags
func (c Color) Valid() bool {
	switch c {
	case ColorBlue, ColorPink, ColorMint, ColorLavender, ColorPeach:
		return true
	}
	return false
}

// Baby represents a tracked baby profile
type Baby struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birth_date"`
	ImageURL  *string   `json:"image_url,omitempty"`
	Color     Color     `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// BabyUpdate carries the editable subset of Baby fields.
// Nil fields are left unchanged.
type BabyUpdate struct {
	Name      *string    `json:"name,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	ImageURL  *string    `json:"image_url,omitempty"`
	Color     *Color     `json:"color,omitempty"`
}

// Apply merges the update into the baby
func (u *BabyUpdate) Apply(b *Baby) {
	if u.Name != nil {
		b.Name = *u.Name
	}
	if u.BirthDate != nil {
		b.BirthDate = *u.BirthDate
	}
	if u.ImageURL != nil {
		b.ImageURL = u.ImageURL
	}
	if u.Color != nil {
		b.Color = *u.Color
	}
}
