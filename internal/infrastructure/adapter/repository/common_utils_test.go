package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	domainerrs "github.com/yorby-ai/entitlement-service/internal/domain/error"
)

func TestErrorClassifierClassify(t *testing.T) {
	classifier := NewErrorClassifier()

	tests := []struct {
		name     string
		err      error
		expected ErrorClass
	}{
		{
			name:     "Nil error",
			err:      nil,
			expected: ClassUnknown,
		},
		{
			name:     "Pgx duplicate key",
			err:      errors.New(`ERROR: duplicate key value violates unique constraint "unlock_records_request_id_key" (SQLSTATE 23505)`),
			expected: ClassDuplicateKey,
		},
		{
			name:     "SQLite unique constraint",
			err:      errors.New("UNIQUE constraint failed: credit_balances.user_id"),
			expected: ClassDuplicateKey,
		},
		{
			name:     "Deadlock",
			err:      errors.New("ERROR: deadlock detected (SQLSTATE 40P01)"),
			expected: ClassSerialization,
		},
		{
			name:     "Serialization failure",
			err:      errors.New("ERROR: could not serialize access due to concurrent update (SQLSTATE 40001)"),
			expected: ClassSerialization,
		},
		{
			name:     "Foreign key violation",
			err:      errors.New("ERROR: insert or update on table violates foreign key constraint (SQLSTATE 23503)"),
			expected: ClassConstraint,
		},
		{
			name:     "Connection refused",
			err:      errors.New("dial tcp 127.0.0.1:5432: connection refused"),
			expected: ClassUnavailable,
		},
		{
			name:     "Statement timeout",
			err:      errors.New("canceling statement due to statement timeout"),
			expected: ClassUnavailable,
		},
		{
			name:     "Server shutting down",
			err:      errors.New("FATAL: the database system is shutting down"),
			expected: ClassUnavailable,
		},
		{
			name:     "Unrecognized error",
			err:      errors.New("something unexpected"),
			expected: ClassUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifier.Classify(tt.err))
		})
	}
}

func TestErrorClassifierTranslate(t *testing.T) {
	classifier := NewErrorClassifier()

	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{
			name:     "Duplicate key becomes a constraint violation",
			err:      errors.New("duplicate key value violates unique constraint"),
			sentinel: domainerrs.ErrConstraintViolation,
		},
		{
			name:     "Foreign key becomes a constraint violation",
			err:      errors.New("violates foreign key constraint"),
			sentinel: domainerrs.ErrConstraintViolation,
		},
		{
			name:     "Deadlock becomes a retryable conflict",
			err:      errors.New("ERROR: deadlock detected (SQLSTATE 40P01)"),
			sentinel: domainerrs.ErrDatabaseConflict,
		},
		{
			name:     "Connection failure becomes a connection error",
			err:      errors.New("dial tcp 127.0.0.1:5432: connection refused"),
			sentinel: domainerrs.ErrDatabaseConnection,
		},
		{
			name:     "Unrecognized error becomes a connection error",
			err:      errors.New("something unexpected"),
			sentinel: domainerrs.ErrDatabaseConnection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classifier.Translate(tt.err), tt.sentinel)
		})
	}
}
