package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/yorby-ai/entitlement-service/internal/domain/entity"
	domainerrs "github.com/yorby-ai/entitlement-service/internal/domain/error"
	mcore "github.com/yorby-ai/entitlement-service/mocks/port/core"
	mpers "github.com/yorby-ai/entitlement-service/mocks/port/persistence"
)

func TestGetResource(t *testing.T) {
	ctx := context.Background()
	userID := "user-42"
	resourceID := "0f8fad5b-d9cb-469f-a165-70867728950e"

	lockedResource := func() *entity.Resource {
		tp := new(mcore.MockTimeProvider)
		tp.On("Now").Return(time.Now())
		res, err := entity.NewResource(resourceID, userID, entity.KindJob, tp)
		assert.NoError(t, err)
		return res
	}

	tests := []struct {
		name        string
		userID      string
		resourceID  string
		setupMocks  func(*mpers.MockResourceRepository)
		expectedErr error
	}{
		{
			name:       "Owned Resource",
			userID:     userID,
			resourceID: resourceID,
			setupMocks: func(resourceRepo *mpers.MockResourceRepository) {
				resourceRepo.On("GetByID", mock.Anything, resourceID, userID).
					Return(lockedResource(), nil)
			},
		},
		{
			name:       "Foreign Resource Reads As Not Found",
			userID:     "someone-else",
			resourceID: resourceID,
			setupMocks: func(resourceRepo *mpers.MockResourceRepository) {
				resourceRepo.On("GetByID", mock.Anything, resourceID, "someone-else").
					Return(nil, domainerrs.ErrResourceNotFound)
			},
			expectedErr: domainerrs.ErrResourceNotFound,
		},
		{
			name:        "Missing User ID",
			userID:      "",
			resourceID:  resourceID,
			setupMocks:  func(*mpers.MockResourceRepository) {},
			expectedErr: domainerrs.ErrInvalidUserID,
		},
		{
			name:        "Missing Resource ID",
			userID:      userID,
			resourceID:  "",
			setupMocks:  func(*mpers.MockResourceRepository) {},
			expectedErr: domainerrs.ErrInvalidResourceID,
		},
		{
			name:       "Store Failure Propagates",
			userID:     userID,
			resourceID: resourceID,
			setupMocks: func(resourceRepo *mpers.MockResourceRepository) {
				resourceRepo.On("GetByID", mock.Anything, resourceID, userID).
					Return(nil, domainerrs.ErrDatabaseConnection)
			},
			expectedErr: domainerrs.ErrDatabaseConnection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockResourceRepo := new(mpers.MockResourceRepository)
			mockLogger := new(mcore.MockLogger)
			mockLogger.On("Error", mock.Anything, mock.Anything).Maybe()

			tt.setupMocks(mockResourceRepo)

			useCase := NewUseCase(mockResourceRepo, mockLogger)

			res, err := useCase.GetResource(ctx, tt.userID, tt.resourceID)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, res)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, resourceID, res.ID)
				assert.Equal(t, entity.StatusLocked, res.LockStatus)
			}
		})
	}
}
