package model

import "gorm.io/gorm"

// DefaultTagColor is applied when a tag is created without a color.
const DefaultTagColor = "#05D7B3"

type Tag struct {
	gorm.Model
	Name   string `gorm:"column:name;size:50;not null;index:idx_tags_user_name"`
	Color  string `gorm:"column:color;default:#05D7B3"`
	UserID uint   `gorm:"column:user_id;not null;index:idx_tags_user_name"`
}
