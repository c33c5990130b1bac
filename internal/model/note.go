package model

import (
	"time"

	"gorm.io/gorm"
)

// DefaultCategory is assigned when a note is created without a category.
// The UI offers a fixed label set (general, work, personal, ideas, todo) but
// storage accepts any value.
const DefaultCategory = "general"

// Note represents a single note owned by exactly one user. Deletion is a
// soft delete: DeletedAt is set and every read path filters the row out.
type Note struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	Title     string         `json:"title" gorm:"size:255;not null"`
	Content   string         `json:"content" gorm:"type:text"`
	Category  string         `json:"category" gorm:"size:50;default:'general'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// CategoryCount is a per-category note tally for one user's dashboard.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}
