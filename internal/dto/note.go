package dto

import (
	"time"

	"github.com/notemind/notemind/internal/model"
)

type CreateNoteRequest struct {
	Title   string             `json:"title" binding:"required,max=100"`
	Content string             `json:"content" binding:"required"`
	Tags    []model.NoteTagRef `json:"tags" binding:"omitempty,dive"`
	Color   string             `json:"color" binding:"omitempty,hexcolor"`
}

type UpdateNoteRequest struct {
	Title    string             `json:"title" binding:"omitempty,max=100"`
	Content  *string            `json:"content"`
	Tags     []model.NoteTagRef `json:"tags" binding:"omitempty,dive"`
	Color    string             `json:"color" binding:"omitempty,hexcolor"`
	IsPinned *bool              `json:"isPinned"`
}

// NoteFilter carries the list query parameters.
type NoteFilter struct {
	Search string `form:"search"`
	Tag    string `form:"tag"`
	Sort   string `form:"sort" binding:"omitempty,oneof=newest oldest title updated"`
}

type NoteResponse struct {
	ID         uint               `json:"id"`
	Title      string             `json:"title"`
	Content    string             `json:"content"`
	Summary    string             `json:"summary,omitempty"`
	Tags       []model.NoteTagRef `json:"tags"`
	Color      string             `json:"color"`
	IsPinned   bool               `json:"isPinned"`
	LastEdited time.Time          `json:"lastEdited"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

type SummarizeRequest struct {
	Length string `json:"length" binding:"omitempty,oneof=short medium long"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
	Source  string `json:"source"` // "ai" or "fallback"
}
