package model

import (
	"time"
)

// CreditBalance represents the database model for per-user credit balances.
// The check constraint is a second line of defense; the conditional decrement
// in the repository is what actually keeps balances non-negative.
type CreditBalance struct {
	UserID    string    `gorm:"primaryKey;size:36"`
	Credits   int64     `gorm:"not null;default:0;check:credits >= 0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for CreditBalance
func (CreditBalance) TableName() string {
	return "credit_balances"
}
