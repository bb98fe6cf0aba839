package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientCredits = 4001
	CodeInvalidResourceID   = 4002
	CodeInvalidUserID       = 4003
	CodeDuplicateEvent      = 4004
	CodeConstraintViolation = 4005
	CodeResourceNotFound    = 4040
	CodeBalanceNotFound     = 4041
	CodeUnauthorized        = 4010

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrInsufficientCredits is returned when a user's balance cannot cover an unlock
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrResourceNotFound is returned when the requested resource doesn't exist
	// or is not owned by the requesting user
	ErrResourceNotFound = errors.New("resource not found")

	// ErrBalanceNotFound is returned when no credit balance row exists for the user
	ErrBalanceNotFound = errors.New("credit balance not found")

	// ErrInvalidResourceID is returned when the resource ID is empty or malformed
	ErrInvalidResourceID = errors.New("invalid resource ID")

	// ErrInvalidUserID is returned when the user ID is empty or malformed
	ErrInvalidUserID = errors.New("invalid user ID")

	// ErrInvalidResourceKind is returned when the resource kind is not one of the allowed values
	ErrInvalidResourceKind = errors.New("invalid resource kind")

	// ErrInvalidCreditAmount is returned when a credit amount is zero or negative
	ErrInvalidCreditAmount = errors.New("credit amount must be positive")

	// ErrStoreRead is returned when reading lock status or balance fails;
	// nothing has been mutated when this surfaces
	ErrStoreRead = errors.New("entitlement store read failed")

	// ErrLockWrite is returned when flipping the lock status fails;
	// no compensation is needed because nothing else was mutated
	ErrLockWrite = errors.New("lock status write failed")

	// ErrCreditWrite is returned when the debit fails after the lock status was
	// already flipped; a compensating write has been attempted
	ErrCreditWrite = errors.New("credit debit write failed")

	// ErrCompensationFailed is returned internally when restoring the lock status
	// after a failed debit also fails, leaving the store inconsistent
	ErrCompensationFailed = errors.New("lock status compensation failed")

	// ErrUnauthorized is returned when no verified user identity accompanies a request
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDuplicateEvent is returned when a webhook event was already processed
	ErrDuplicateEvent = errors.New("event already processed")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrDatabaseConflict is returned when the database aborts a statement on a
	// deadlock or serialization conflict; the request is safe to retry
	ErrDatabaseConflict = errors.New("database conflict")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientCredits):
		return CodeInsufficientCredits
	case errors.Is(err, ErrResourceNotFound):
		return CodeResourceNotFound
	case errors.Is(err, ErrBalanceNotFound):
		return CodeBalanceNotFound
	case errors.Is(err, ErrInvalidResourceID):
		return CodeInvalidResourceID
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrDuplicateEvent):
		return CodeDuplicateEvent
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	default:
		return CodeInternalServer
	}
}

// UnlockStage identifies the step of the unlock sequence an error belongs to.
// The distinction is logged internally and never exposed to callers.
type UnlockStage string

const (
	StageStatusRead   UnlockStage = "status_read"
	StageBalanceRead  UnlockStage = "balance_read"
	StageLockWrite    UnlockStage = "lock_write"
	StageCreditWrite  UnlockStage = "credit_write"
	StageCompensation UnlockStage = "compensation"
)

// UnlockError carries the internal detail of a failed unlock attempt
type UnlockError struct {
	ResourceID  string
	UserID      string
	RequestID   string
	Stage       UnlockStage
	Compensated bool
	Err         error
}

// Error implements the error interface
func (e *UnlockError) Error() string {
	return fmt.Sprintf("unlock failed at %s for resource %s (user: %s): %v",
		e.Stage, e.ResourceID, e.UserID, e.Err)
}

// Unwrap returns the underlying error
func (e *UnlockError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *UnlockError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "unlock_error",
		"resource_id": e.ResourceID,
		"user_id":     e.UserID,
		"request_id":  e.RequestID,
		"stage":       string(e.Stage),
		"compensated": e.Compensated,
		"error":       e.Err.Error(),
		"error_code":  ErrorCode(e.Err),
	}
}

// InsufficientCreditsError provides detailed error information for a balance
// that cannot cover an unlock
type InsufficientCreditsError struct {
	UserID    string
	Required  int64
	Available int64
}

// Error implements the error interface
func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits for user %s: required %d, available %d",
		e.UserID, e.Required, e.Available)
}

// Is checks if the target error is an ErrInsufficientCredits
func (e *InsufficientCreditsError) Is(target error) bool {
	return target == ErrInsufficientCredits
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientCreditsError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_credits",
		"user_id":    e.UserID,
		"required":   e.Required,
		"available":  e.Available,
		"error_code": CodeInsufficientCredits,
	}
}

// NewInsufficientCreditsError creates a new detailed insufficient credits error
func NewInsufficientCreditsError(userID string, required, available int64) error {
	return &InsufficientCreditsError{
		UserID:    userID,
		Required:  required,
		Available: available,
	}
}

// NewUnlockError creates a detailed unlock error for the given stage
func NewUnlockError(resourceID, userID, requestID string, stage UnlockStage, err error) *UnlockError {
	return &UnlockError{
		ResourceID: resourceID,
		UserID:     userID,
		RequestID:  requestID,
		Stage:      stage,
		Err:        err,
	}
}

// IsInsufficientCreditsError checks if the error is related to insufficient credits
func IsInsufficientCreditsError(err error) bool {
	return errors.Is(err, ErrInsufficientCredits)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrResourceNotFound) || errors.Is(err, ErrBalanceNotFound)
}

// IsDuplicateEventError checks if the error is a duplicate webhook event error
func IsDuplicateEventError(err error) bool {
	return errors.Is(err, ErrDuplicateEvent)
}
