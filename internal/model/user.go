package model

import "time"

// User represents a registered account in the notes application.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:50;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:100;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}
