package repository

import (
	"fmt"
	"strings"

	errs "github.com/yorby-ai/entitlement-service/internal/domain/error"
)

// ErrorClass buckets raw driver errors so the repositories can map them onto
// domain sentinels without parsing driver strings at every call site.
type ErrorClass string

const (
	ClassUnknown       ErrorClass = ""
	ClassDuplicateKey  ErrorClass = "duplicate_key"
	ClassSerialization ErrorClass = "serialization"
	ClassConstraint    ErrorClass = "constraint"
	ClassUnavailable   ErrorClass = "unavailable"
)

// classMarkers lists the substrings the postgres driver and the net stack put
// into their error strings, checked in declaration order. The SQLSTATE tags
// cover pgx-formatted errors, the plain phrases cover pq-style messages and
// the sqlite driver used in tests.
var classMarkers = []struct {
	class   ErrorClass
	markers []string
}{
	{ClassDuplicateKey, []string{
		"SQLSTATE 23505",
		"duplicate key",
		"UNIQUE constraint",
	}},
	{ClassSerialization, []string{
		"SQLSTATE 40001",
		"SQLSTATE 40P01",
		"deadlock",
		"could not serialize access",
		"lock timeout",
	}},
	{ClassConstraint, []string{
		"SQLSTATE 23",
		"violates",
		"constraint",
	}},
	{ClassUnavailable, []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"no such host",
		"dial tcp",
		"timeout",
		"EOF",
		"the database system is",
	}},
}

// ErrorClassifier maps raw driver errors onto coarse classes and from there
// onto the sentinels the domain layer reacts to.
type ErrorClassifier struct{}

// NewErrorClassifier creates a new ErrorClassifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// Classify returns the class of a driver error, ClassUnknown when no marker
// matches
func (c *ErrorClassifier) Classify(err error) ErrorClass {
	if err == nil {
		return ClassUnknown
	}

	msg := err.Error()
	for _, entry := range classMarkers {
		for _, marker := range entry.markers {
			if strings.Contains(msg, marker) {
				return entry.class
			}
		}
	}

	return ClassUnknown
}

// Translate converts a classified driver error into a domain sentinel.
// Serialization conflicts wrap ErrDatabaseConflict so callers know a retry is
// safe; anything unrecognized is treated as a connectivity problem and rides
// the generic failure path.
func (c *ErrorClassifier) Translate(err error) error {
	switch c.Classify(err) {
	case ClassDuplicateKey, ClassConstraint:
		return errs.ErrConstraintViolation
	case ClassSerialization:
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConflict, err.Error())
	default:
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
}
