package credit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/yorby-ai/entitlement-service/internal/domain/entity"
	domainerrs "github.com/yorby-ai/entitlement-service/internal/domain/error"
	portuse "github.com/yorby-ai/entitlement-service/internal/domain/port/usecase"
	mcore "github.com/yorby-ai/entitlement-service/mocks/port/core"
	mevents "github.com/yorby-ai/entitlement-service/mocks/port/events"
	mpers "github.com/yorby-ai/entitlement-service/mocks/port/persistence"
)

// MockIdempotencyStore is a testify mock for the IdempotencyStore interface
type MockIdempotencyStore struct {
	mock.Mock
}

func (_m *MockIdempotencyStore) SetNX(ctx context.Context, key string, value any, expiration time.Duration) (bool, error) {
	ret := _m.Called(ctx, key, value, expiration)
	return ret.Bool(0), ret.Error(1)
}

func (_m *MockIdempotencyStore) Del(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)
	return ret.Error(0)
}

func newBalance(t *testing.T, userID string, credits int64) *entity.CreditBalance {
	t.Helper()
	tp := new(mcore.MockTimeProvider)
	tp.On("Now").Return(time.Now())
	balance, err := entity.NewCreditBalance(userID, credits, tp)
	assert.NoError(t, err)
	return balance
}

func TestGetBalance(t *testing.T) {
	ctx := context.Background()
	userID := "user-42"

	tests := []struct {
		name            string
		userID          string
		setupMocks      func(*mpers.MockCreditRepository)
		expectedErr     error
		expectedCredits int64
	}{
		{
			name:   "Existing Balance",
			userID: userID,
			setupMocks: func(creditRepo *mpers.MockCreditRepository) {
				creditRepo.On("GetBalance", mock.Anything, userID).
					Return(newBalance(t, userID, 7), nil)
			},
			expectedCredits: 7,
		},
		{
			name:   "Missing Balance Row Reads As Zero",
			userID: userID,
			setupMocks: func(creditRepo *mpers.MockCreditRepository) {
				creditRepo.On("GetBalance", mock.Anything, userID).
					Return(nil, domainerrs.ErrBalanceNotFound)
			},
			expectedCredits: 0,
		},
		{
			name:        "Missing User ID",
			userID:      "",
			setupMocks:  func(creditRepo *mpers.MockCreditRepository) {},
			expectedErr: domainerrs.ErrInvalidUserID,
		},
		{
			name:   "Store Failure Propagates",
			userID: userID,
			setupMocks: func(creditRepo *mpers.MockCreditRepository) {
				creditRepo.On("GetBalance", mock.Anything, userID).
					Return(nil, domainerrs.ErrDatabaseConnection)
			},
			expectedErr: domainerrs.ErrDatabaseConnection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCreditRepo := new(mpers.MockCreditRepository)
			mockIdempotency := new(MockIdempotencyStore)
			mockPublisher := new(mevents.MockPublisher)
			mockTimeProvider := new(mcore.MockTimeProvider)
			mockLogger := new(mcore.MockLogger)

			mockLogger.On("Info", mock.Anything, mock.Anything).Maybe()
			mockLogger.On("Error", mock.Anything, mock.Anything).Maybe()

			tt.setupMocks(mockCreditRepo)

			useCase := NewUseCase(mockCreditRepo, mockIdempotency, mockPublisher, mockTimeProvider, mockLogger)

			balance, err := useCase.GetBalance(ctx, tt.userID)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, balance)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.userID, balance.UserID)
				assert.Equal(t, tt.expectedCredits, balance.Credits)
			}
		})
	}
}

func TestGrantCredits(t *testing.T) {
	ctx := context.Background()
	userID := "user-42"
	eventID := "evt_1Nv3xK2eZvKYlo2C"
	eventKey := "checkout:event:" + eventID
	now := time.Now()

	validReq := portuse.GrantRequest{EventID: eventID, UserID: userID, Credits: 30}

	tests := []struct {
		name            string
		req             portuse.GrantRequest
		setupMocks      func(*mpers.MockCreditRepository, *MockIdempotencyStore, *mevents.MockPublisher, *mcore.MockTimeProvider)
		expectedErr     error
		expectedCredits int64
		expectRelease   bool
	}{
		{
			name: "Successful Grant Publishes The Event",
			req:  validReq,
			setupMocks: func(creditRepo *mpers.MockCreditRepository, idempotency *MockIdempotencyStore, publisher *mevents.MockPublisher, timeProvider *mcore.MockTimeProvider) {
				idempotency.On("SetNX", mock.Anything, eventKey, "processed", mock.AnythingOfType("time.Duration")).
					Return(true, nil)
				creditRepo.On("Grant", mock.Anything, userID, int64(30)).
					Return(newBalance(t, userID, 31), nil)
				publisher.On("PublishCreditsGranted", mock.Anything, mock.AnythingOfType("events.CreditsGrantedEvent")).Return(nil)
				timeProvider.On("Now").Return(now)
			},
			expectedCredits: 31,
		},
		{
			name: "Duplicate Event Is Rejected Before The Write",
			req:  validReq,
			setupMocks: func(creditRepo *mpers.MockCreditRepository, idempotency *MockIdempotencyStore, publisher *mevents.MockPublisher, timeProvider *mcore.MockTimeProvider) {
				idempotency.On("SetNX", mock.Anything, eventKey, "processed", mock.AnythingOfType("time.Duration")).
					Return(false, nil)
			},
			expectedErr: domainerrs.ErrDuplicateEvent,
		},
		{
			name: "Idempotency Store Failure",
			req:  validReq,
			setupMocks: func(creditRepo *mpers.MockCreditRepository, idempotency *MockIdempotencyStore, publisher *mevents.MockPublisher, timeProvider *mcore.MockTimeProvider) {
				idempotency.On("SetNX", mock.Anything, eventKey, "processed", mock.AnythingOfType("time.Duration")).
					Return(false, domainerrs.ErrInternalServer)
			},
			expectedErr: domainerrs.ErrInternalServer,
		},
		{
			name: "Grant Failure Releases The Event ID For Redelivery",
			req:  validReq,
			setupMocks: func(creditRepo *mpers.MockCreditRepository, idempotency *MockIdempotencyStore, publisher *mevents.MockPublisher, timeProvider *mcore.MockTimeProvider) {
				idempotency.On("SetNX", mock.Anything, eventKey, "processed", mock.AnythingOfType("time.Duration")).
					Return(true, nil)
				creditRepo.On("Grant", mock.Anything, userID, int64(30)).
					Return(nil, domainerrs.ErrDatabaseConnection)
				idempotency.On("Del", mock.Anything, eventKey).Return(nil)
			},
			expectedErr:   domainerrs.ErrDatabaseConnection,
			expectRelease: true,
		},
		{
			name: "Failed Release Still Returns The Grant Error",
			req:  validReq,
			setupMocks: func(creditRepo *mpers.MockCreditRepository, idempotency *MockIdempotencyStore, publisher *mevents.MockPublisher, timeProvider *mcore.MockTimeProvider) {
				idempotency.On("SetNX", mock.Anything, eventKey, "processed", mock.AnythingOfType("time.Duration")).
					Return(true, nil)
				creditRepo.On("Grant", mock.Anything, userID, int64(30)).
					Return(nil, domainerrs.ErrDatabaseConnection)
				idempotency.On("Del", mock.Anything, eventKey).Return(domainerrs.ErrInternalServer)
			},
			expectedErr:   domainerrs.ErrDatabaseConnection,
			expectRelease: true,
		},
		{
			name: "Missing Event ID",
			req:  portuse.GrantRequest{UserID: userID, Credits: 30},
			setupMocks: func(*mpers.MockCreditRepository, *MockIdempotencyStore, *mevents.MockPublisher, *mcore.MockTimeProvider) {
			},
			expectedErr: domainerrs.ErrInvalidRequest,
		},
		{
			name: "Missing User ID",
			req:  portuse.GrantRequest{EventID: eventID, Credits: 30},
			setupMocks: func(*mpers.MockCreditRepository, *MockIdempotencyStore, *mevents.MockPublisher, *mcore.MockTimeProvider) {
			},
			expectedErr: domainerrs.ErrInvalidUserID,
		},
		{
			name: "Non-Positive Credits",
			req:  portuse.GrantRequest{EventID: eventID, UserID: userID, Credits: 0},
			setupMocks: func(*mpers.MockCreditRepository, *MockIdempotencyStore, *mevents.MockPublisher, *mcore.MockTimeProvider) {
			},
			expectedErr: domainerrs.ErrInvalidCreditAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCreditRepo := new(mpers.MockCreditRepository)
			mockIdempotency := new(MockIdempotencyStore)
			mockPublisher := new(mevents.MockPublisher)
			mockTimeProvider := new(mcore.MockTimeProvider)
			mockLogger := new(mcore.MockLogger)

			mockLogger.On("Info", mock.Anything, mock.Anything).Maybe()
			mockLogger.On("Warn", mock.Anything, mock.Anything).Maybe()
			mockLogger.On("Error", mock.Anything, mock.Anything).Maybe()

			tt.setupMocks(mockCreditRepo, mockIdempotency, mockPublisher, mockTimeProvider)

			useCase := NewUseCase(mockCreditRepo, mockIdempotency, mockPublisher, mockTimeProvider, mockLogger)

			balance, err := useCase.GrantCredits(ctx, tt.req)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, balance)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.req.UserID, balance.UserID)
				assert.Equal(t, tt.expectedCredits, balance.Credits)
				mockPublisher.AssertCalled(t, "PublishCreditsGranted", mock.Anything, mock.AnythingOfType("events.CreditsGrantedEvent"))
			}

			if tt.expectRelease {
				mockIdempotency.AssertCalled(t, "Del", mock.Anything, eventKey)
			}
		})
	}
}
