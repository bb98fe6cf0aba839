package time

import (
	"context"
	"time"

	"github.com/yorby-ai/entitlement-service/internal/domain/port/core"
)

// RealTimeProvider implements the TimeProvider interface using the system clock
type RealTimeProvider struct{}

// NewRealTimeProvider creates a new RealTimeProvider instance
func NewRealTimeProvider() core.TimeProvider {
	return &RealTimeProvider{}
}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t
func (p *RealTimeProvider) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// WithTimeout returns a context with the given timeout
func (p *RealTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}
