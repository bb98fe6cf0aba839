package model

import (
	"time"
)

// Resource represents the database model for gated resources
type Resource struct {
	ID         string    `gorm:"primaryKey;size:36"`
	UserID     string    `gorm:"not null;index;size:36"`
	Kind       string    `gorm:"not null;size:50"`
	LockStatus string    `gorm:"not null;size:20;default:locked"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name for Resource
func (Resource) TableName() string {
	return "resources"
}
