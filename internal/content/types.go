package content

import "time"

// ItemType distinguishes sellable media kinds.
type ItemType string

const (
	TypePhoto ItemType = "photo"
	TypeVideo ItemType = "video"
)

// Item is one sellable piece of content. FileID references media already
// uploaded to Telegram's servers, so delivery is a single send call.
type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        ItemType  `json:"type"`
	FileID      string    `json:"file_id"`
	PriceStars  int64     `json:"price_stars"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateInput is the input for creating a catalog item.
type CreateInput struct {
	Title       string
	Description string
	Type        ItemType
	FileID      string
	PriceStars  int64
	Active      bool
}

// UpdateInput is the input for updating a catalog item. Nil fields are left
// unchanged.
type UpdateInput struct {
	Title       *string
	Description *string
	FileID      *string
	PriceStars  *int64
	Active      *bool
}

// Purchase records one completed Stars payment for an item.
type Purchase struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ItemID    string    `json:"item_id"`
	Stars     int64     `json:"stars"`
	ChargeID  string    `json:"charge_id"`
	CreatedAt time.Time `json:"created_at"`
}
