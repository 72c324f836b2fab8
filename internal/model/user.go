package model

import "time"

// User represents a registered account. Accounts provisioned through a
// federated login carry a "firebase:<uid>" sentinel in PasswordHash instead
// of a real hash; the password login path rejects that value.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}
