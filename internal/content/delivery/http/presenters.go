package http

import (
	"time"

	"companion-bot/internal/content"
)

// --- Request DTOs ---

type createReq struct {
	Title       string `json:"title"       binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=1000"`
	Type        string `json:"type"        binding:"required,oneof=photo video"`
	FileID      string `json:"file_id"     binding:"required"`
	PriceStars  int64  `json:"price_stars" binding:"required,min=1"`
	Active      bool   `json:"active"`
}

func (r createReq) toInput() content.CreateInput {
	return content.CreateInput{
		Title:       r.Title,
		Description: r.Description,
		Type:        content.ItemType(r.Type),
		FileID:      r.FileID,
		PriceStars:  r.PriceStars,
		Active:      r.Active,
	}
}

// ---

type listReq struct {
	OnlyActive bool `form:"only_active"`
}

// ---

type updateReq struct {
	ID          string  `json:"-"` // populated from URI param
	Title       *string `json:"title"       binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	FileID      *string `json:"file_id"     binding:"omitempty,min=1"`
	PriceStars  *int64  `json:"price_stars" binding:"omitempty,min=1"`
	Active      *bool   `json:"active"`
}

func (r updateReq) toInput() content.UpdateInput {
	return content.UpdateInput{
		Title:       r.Title,
		Description: r.Description,
		FileID:      r.FileID,
		PriceStars:  r.PriceStars,
		Active:      r.Active,
	}
}

// --- Response DTOs ---

type itemResp struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	FileID      string    `json:"file_id"`
	PriceStars  int64     `json:"price_stars"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newItemResp(item content.Item) itemResp {
	return itemResp{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Type:        string(item.Type),
		FileID:      item.FileID,
		PriceStars:  item.PriceStars,
		Active:      item.Active,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

type listResp struct {
	Items []itemResp `json:"items"`
	Total int        `json:"total"`
}

func newListResp(items []content.Item) listResp {
	out := make([]itemResp, len(items))
	for i, item := range items {
		out[i] = newItemResp(item)
	}
	return listResp{Items: out, Total: len(out)}
}
