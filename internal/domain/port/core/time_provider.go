package core

import (
	"context"
	"time"
)

// TimeProvider abstracts time operations so entity timestamps and timeouts
// are controllable in tests.
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc)
}
