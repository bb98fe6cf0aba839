package model

import (
	"time"
)

// UnlockRecord represents the database model for unlock attempts
type UnlockRecord struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	RequestID     string    `gorm:"uniqueIndex;not null;size:36"`
	ResourceID    string    `gorm:"not null;index;size:36"`
	UserID        string    `gorm:"not null;index;size:36"`
	Kind          string    `gorm:"not null;size:50"`
	CreditsSpent  int64     `gorm:"not null;default:0"`
	Status        string    `gorm:"not null;size:20"`
	ErrorStage    string    `gorm:"size:50"`
	CreatedAt     time.Time `gorm:"not null"`
	CompletedAt   *time.Time
	ResultBalance int64 `gorm:"not null;default:0"`
}

// TableName specifies the table name for UnlockRecord
func (UnlockRecord) TableName() string {
	return "unlock_records"
}
