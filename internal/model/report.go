package model

import "time"

// Report is an immutable record of a single reported incident. Reports are
// never updated or deleted; created_at is the sole sort key (descending).
type Report struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"index;not null"`
	Latitude     float64   `json:"latitude" gorm:"not null"`
	Longitude    float64   `json:"longitude" gorm:"not null"`
	Description  string    `json:"description" gorm:"type:text;not null"`
	Date         string    `json:"date" gorm:"size:32;not null"`
	Time         string    `json:"time" gorm:"size:32;not null"`
	Address      string    `json:"address" gorm:"size:512"`
	IncidentType string    `json:"incident_type" gorm:"size:64;not null;index"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
}

// ReportView is the handler-facing projection of a Report with the creation
// timestamp rendered as ISO-8601 text.
type ReportView struct {
	ID           uint    `json:"id"`
	UserID       uint    `json:"user_id"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Description  string  `json:"description"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	Address      string  `json:"address"`
	IncidentType string  `json:"incident_type"`
	CreatedAt    string  `json:"created_at"`
}
