package unlock

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainerrs "github.com/yorby-ai/entitlement-service/internal/domain/error"
	portuse "github.com/yorby-ai/entitlement-service/internal/domain/port/usecase"
)

func TestValidateUnlock(t *testing.T) {
	validResourceID := "0f8fad5b-d9cb-469f-a165-70867728950e"

	tests := []struct {
		name        string
		reqCtx      portuse.RequestContext
		resourceID  string
		expectedErr error
	}{
		{
			name:       "Valid Request",
			reqCtx:     portuse.RequestContext{UserID: "user-42", RequestID: "req-1"},
			resourceID: validResourceID,
		},
		{
			name:        "Missing User",
			reqCtx:      portuse.RequestContext{RequestID: "req-1"},
			resourceID:  validResourceID,
			expectedErr: domainerrs.ErrUnauthorized,
		},
		{
			name:        "Missing Request ID",
			reqCtx:      portuse.RequestContext{UserID: "user-42"},
			resourceID:  validResourceID,
			expectedErr: domainerrs.ErrInvalidRequest,
		},
		{
			name:        "Empty Resource ID",
			reqCtx:      portuse.RequestContext{UserID: "user-42", RequestID: "req-1"},
			resourceID:  "",
			expectedErr: domainerrs.ErrInvalidResourceID,
		},
		{
			name:        "Resource ID Is Not A UUID",
			reqCtx:      portuse.RequestContext{UserID: "user-42", RequestID: "req-1"},
			resourceID:  "not-a-uuid",
			expectedErr: domainerrs.ErrInvalidResourceID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewValidator()

			err := validator.ValidateUnlock(tt.reqCtx, tt.resourceID)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
