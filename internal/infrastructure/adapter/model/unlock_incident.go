package model

import (
	"time"
)

// UnlockIncident represents the database model for operator incident reports
type UnlockIncident struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	RequestID  string    `gorm:"not null;index;size:36"`
	ResourceID string    `gorm:"not null;index;size:36"`
	UserID     string    `gorm:"not null;size:36"`
	Detail     string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null"`
	Resolved   bool      `gorm:"not null;default:false;index"`
	ResolvedAt *time.Time
}

// TableName specifies the table name for UnlockIncident
func (UnlockIncident) TableName() string {
	return "unlock_incidents"
}
