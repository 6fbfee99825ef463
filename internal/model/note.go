package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultNoteColor is applied when a note is created without a color.
const DefaultNoteColor = "#ffffff"

// NoteTagRef is a denormalized tag reference embedded in a note. The note
// carries the tag's name and color at attach time; editing the tag later does
// not rewrite existing notes.
type NoteTagRef struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type Note struct {
	gorm.Model
	Title      string                          `gorm:"column:title;size:100;not null"`
	Content    string                          `gorm:"column:content;type:text;not null"`
	Summary    string                          `gorm:"column:summary;type:text"`
	Tags       datatypes.JSONSlice[NoteTagRef] `gorm:"column:tags"`
	Color      string                          `gorm:"column:color;default:#ffffff"`
	IsPinned   bool                            `gorm:"column:is_pinned;default:false"`
	LastEdited time.Time                       `gorm:"column:last_edited"`
	UserID     uint                            `gorm:"column:user_id;not null;index:idx_notes_user_id"`
}
