package unlock

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
	mpers "github.com/yorby-ai/entitlement-service/mocks/port/persistence"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const testTxKey contextKey = "tx"

func TestAtomicUnlock(t *testing.T) {
	ctx := context.Background()
	userID := "user-42"
	resourceID := "0f8fad5b-d9cb-469f-a165-70867728950e"
	requestID := "req-12345"
	now := time.Now()

	reqCtx := portuse.RequestContext{UserID: userID, RequestID: requestID}
	txCtx := context.WithValue(ctx, testTxKey, "mockTransaction")

	tests := []struct {
		name            string
		setupMocks      func(*mpers.MockUnitOfWork, *mpers.MockResourceRepository, *mpers.MockCreditRepository, *mpers.MockUnlockRecordRepository, *mcore.MockTimeProvider, *mcore.MockLogger)
		expectedErr     error
		checkErr        func(*testing.T, error)
		expectedSpent   int64
		expectedBalance int64
		expectRollback  bool
	}{
		{
			name: "Successful Unlock Commits Once",
			setupMocks: func(uow *mpers.MockUnitOfWork, resourceRepo *mpers.MockResourceRepository, creditRepo *mpers.MockCreditRepository, recordRepo *mpers.MockUnlockRecordRepository, timeProvider *mcore.MockTimeProvider, logger *mcore.MockLogger) {
				uow.On("Begin", mock.Anything).Return(txCtx, nil)
				uow.On("GetResourceRepository", txCtx).Return(resourceRepo)
				uow.On("GetCreditRepository", txCtx).Return(creditRepo)
				uow.On("GetUnlockRecordRepository", txCtx).Return(recordRepo)
				uow.On("Commit", txCtx).Return(nil)

				resourceRepo.On("GetByIDForUpdate", txCtx, resourceID, userID).
					Return(newTestResource(t, resourceID, userID, entity.StatusLocked, now), nil)
				creditRepo.On("GetBalanceForUpdate", txCtx, userID).
					Return(newTestBalance(t, userID, 2, now), nil)
				resourceRepo.On("SetLockStatus", txCtx, resourceID, entity.StatusUnlocked).Return(nil)
				creditRepo.On("Decrement", txCtx, userID, entity.UnlockCost).
					Return(newTestBalance(t, userID, 1, now), nil)
				recordRepo.On("Create", txCtx, mock.AnythingOfType("*entity.UnlockRecord")).Return(nil)

				timeProvider.On("Now").Return(now)
				logger.On("Info", mock.Anything, mock.Anything).Maybe()
			},
			expectedSpent:   entity.UnlockCost,
			expectedBalance: 1,
		},
		{
			name: "Already Unlocked Commits Without Debit And Reports The Real Balance",
			setupMocks: func(uow *mpers.MockUnitOfWork, resourceRepo *mpers.MockResourceRepository, creditRepo *mpers.MockCreditRepository, recordRepo *mpers.MockUnlockRecordRepository, timeProvider *mcore.MockTimeProvider, logger *mcore.MockLogger) {
				uow.On("Begin", mock.Anything).Return(txCtx, nil)
				uow.On("GetResourceRepository", txCtx).Return(resourceRepo)
				uow.On("GetCreditRepository", txCtx).Return(creditRepo)
				uow.On("GetUnlockRecordRepository", txCtx).Return(recordRepo)
				uow.On("Commit", txCtx).Return(nil)

				resourceRepo.On("GetByIDForUpdate", txCtx, resourceID, userID).
					Return(newTestResource(t, resourceID, userID, entity.StatusUnlocked, now), nil)
				creditRepo.On("GetBalance", txCtx, userID).
					Return(newTestBalance(t, userID, 5, now), nil)
				recordRepo.On("Create", txCtx, mock.AnythingOfType("*entity.UnlockRecord")).Return(nil)

				timeProvider.On("Now").Return(now)
				logger.On("Info", mock.Anything, mock.Anything).Maybe()
			},
			expectedSpent:   0,
			expectedBalance: 5,
		},
		{
			name: "Repeat Unlock With No Balance Row Reports Zero",
			setupMocks: func(uow *mpers.MockUnitOfWork, resourceRepo *mpers.MockResourceRepository, creditRepo *mpers.MockCreditRepository, recordRepo *mpers.MockUnlockRecordRepository, timeProvider *mcore.MockTimeProvider, logger *mcore.MockLogger) {
				uow.On("Begin", mock.Anything).Return(txCtx, nil)
				uow.On("GetResourceRepository", txCtx).Return(resourceRepo)
				uow.On("GetCreditRepository", txCtx).Return(creditRepo)
				uow.On("GetUnlockRecordRepository", txCtx).Return(recordRepo)
				uow.On("Commit", txCtx).Return(nil)

				resourceRepo.On("GetByIDForUpdate", txCtx, resourceID, userID).
					Return(newTestResource(t, resourceID, userID, entity.StatusUnlocked, now), nil)
				creditRepo.On("GetBalance", txCtx, userID).
					Return(nil, domainerrs.ErrBalanceNotFound)
				recordRepo.On("Create", txCtx, mock.AnythingOfType("*entity.UnlockRecord")).Return(nil)

				timeProvider.On("Now").Return(now)
				logger.On("Info", mock.Anything, mock.Anything).Maybe()
			},
			expectedSpent:   0,
			expectedBalance: 0,
		},
		{
			name: "Repeat Unlock Balance Read Failure Rolls Back",
			setupMocks: func(uow *mpers.MockUnitOfWork, resourceRepo *mpers.MockResourceRepository, creditRepo *mpers.MockCreditRepository, recordRepo *mpers.MockUnlockRecordRepository, timeProvider *mcore.MockTimeProvider, logger *mcore.MockLogger) {
				uow.On("Begin", mock.Anything).Return(txCtx, nil)
				uow.On("GetResourceRepository", txCtx).Return(resourceRepo)
				uow.On("GetCreditRepository", txCtx).Return(creditRepo)
				uow.On("GetUnlockRecordRepository", txCtx).Return(recordRepo)
				uow.On("Rollback", txCtx).Return(nil)

				resourceRepo.On("GetByIDForUpdate", txCtx, resourceID, userID).
					Return(newTestResource(t, resourceID, userID, entity.StatusUnlocked, now), nil)
				creditRepo.On("GetBalance", txCtx, userID).
					Return(nil, domainerrs.ErrDatabaseConnection)

				timeProvider.On("Now").Return(now)
			},
			checkErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domainerrs.ErrStoreRead)
			},
			expectRollback: true,
		},
		{
			name: "Insufficient Credits Rolls Back",
			setupMocks: func(uow *mpers.MockUnitOfWork, resourceRepo *mpers.MockResourceRepository, creditRepo *mpers.MockCreditRepository, recordRepo *mpers.MockUnlockRecordRepository, timeProvider *mcore.MockTimeProvider, logger *mcore.MockLogger) {
				uow.On("Begin", mock.Anything).Return(txCtx, nil)
				uow.On("GetResourceRepository", txCtx).Return(resourceRepo)
				uow.On("GetCreditRepository", txCtx).Return(creditRepo)
				uow.On("GetUnlockRecordRepository", txCtx).Return(recordRepo)
				uow.On("Rollback", txCtx).Return(nil)

				resourceRepo.On("GetByIDForUpdate", txCtx, resourceID, userID).
					Return(newTestResource(t, resourceID, userID, entity.StatusLocked, now), nil)
				creditRepo.On("GetBalanceForUpdate", txCtx, userID).
					Return(newTestBalance(t, userID, 0, now), nil)

				timeProvider.On("Now").Return(now)
			},
			checkErr: func(t *testing.T, err error) {
				assert.True(t, domainerrs.IsInsufficientCreditsError(err))
			},
			expectRollback: true,
		},
		{
			name: "Missing Balance Row Rolls Back As Insufficient",
			setupMocks: func(uow *mpers.MockUnitOfWork, resourceRepo *mpers.MockResourceRepository, creditRepo *mpers.MockCreditRepository, recordRepo *mpers.MockUnlockRecordRepository, timeProvider *mcore.MockTimeProvider, logger *mcore.MockLogger) {
				uow.On("Begin", mock.Anything).Return(txCtx, nil)
				uow.On("GetResourceRepository", txCtx).Return(resourceRepo)
				uow.On("GetCreditRepository", txCtx).Return(creditRepo)
				uow.On("GetUnlockRecordRepository", txCtx).Return(recordRepo)
				uow.On("Rollback", txCtx).Return(nil)

				resourceRepo.On("GetByIDForUpdate", txCtx, resourceID, userID).
					Return(newTestResource(t, resourceID, userID, entity.StatusLocked, now), nil)
				creditRepo.On("GetBalanceForUpdate", txCtx, userID).
					Return(nil, domainerrs.ErrBalanceNotFound)

				timeProvider.On("Now").Return(now)
			},
			checkErr: func(t *testing.T, err error) {
				assert.True(t, domainerrs.IsInsufficientCreditsError(err))
			},
			expectRollback: true,
		},
		{
			name: "Resource Not Found Rolls Back",
			setupMocks: func(uow *mpers.MockUnitOfWork, resourceRepo *mpers.MockResourceRepository, creditRepo *mpers.MockCreditRepository, recordRepo *mpers.MockUnlockRecordRepository, timeProvider *mcore.MockTimeProvider, logger *mcore.MockLogger) {
				uow.On("Begin", mock.Anything).Return(txCtx, nil)
				uow.On("GetResourceRepository", txCtx).Return(resourceRepo)
				uow.On("GetCreditRepository", txCtx).Return(creditRepo)
				uow.On("GetUnlockRecordRepository", txCtx).Return(recordRepo)
				uow.On("Rollback", txCtx).Return(nil)

				resourceRepo.On("GetByIDForUpdate", txCtx, resourceID, userID).
					Return(nil, domainerrs.ErrResourceNotFound)
			},
			expectedErr:    domainerrs.ErrResourceNotFound,
			expectRollback: true,
		},
		{
			name: "Debit Failure Rolls The Status Flip Back",
			setupMocks: func(uow *mpers.MockUnitOfWork, resourceRepo *mpers.MockResourceRepository, creditRepo *mpers.MockCreditRepository, recordRepo *mpers.MockUnlockRecordRepository, timeProvider *mcore.MockTimeProvider, logger *mcore.MockLogger) {
				uow.On("Begin", mock.Anything).Return(txCtx, nil)
				uow.On("GetResourceRepository", txCtx).Return(resourceRepo)
				uow.On("GetCreditRepository", txCtx).Return(creditRepo)
				uow.On("GetUnlockRecordRepository", txCtx).Return(recordRepo)
				uow.On("Rollback", txCtx).Return(nil)

				resourceRepo.On("GetByIDForUpdate", txCtx, resourceID, userID).
					Return(newTestResource(t, resourceID, userID, entity.StatusLocked, now), nil)
				creditRepo.On("GetBalanceForUpdate", txCtx, userID).
					Return(newTestBalance(t, userID, 2, now), nil)
				resourceRepo.On("SetLockStatus", txCtx, resourceID, entity.StatusUnlocked).Return(nil)
				creditRepo.On("Decrement", txCtx, userID, entity.UnlockCost).
					Return(nil, domainerrs.ErrDatabaseConnection)

				timeProvider.On("Now").Return(now)
			},
			expectedErr:    domainerrs.ErrCreditWrite,
			expectRollback: true,
		},
		{
			name: "Audit Record Failure Aborts The Unlock",
			setupMocks: func(uow *mpers.MockUnitOfWork, resourceRepo *mpers.MockResourceRepository, creditRepo *mpers.MockCreditRepository, recordRepo *mpers.MockUnlockRecordRepository, timeProvider *mcore.MockTimeProvider, logger *mcore.MockLogger) {
				uow.On("Begin", mock.Anything).Return(txCtx, nil)
				uow.On("GetResourceRepository", txCtx).Return(resourceRepo)
				uow.On("GetCreditRepository", txCtx).Return(creditRepo)
				uow.On("GetUnlockRecordRepository", txCtx).Return(recordRepo)
				uow.On("Rollback", txCtx).Return(nil)

				resourceRepo.On("GetByIDForUpdate", txCtx, resourceID, userID).
					Return(newTestResource(t, resourceID, userID, entity.StatusLocked, now), nil)
				creditRepo.On("GetBalanceForUpdate", txCtx, userID).
					Return(newTestBalance(t, userID, 2, now), nil)
				resourceRepo.On("SetLockStatus", txCtx, resourceID, entity.StatusUnlocked).Return(nil)
				creditRepo.On("Decrement", txCtx, userID, entity.UnlockCost).
					Return(newTestBalance(t, userID, 1, now), nil)
				recordRepo.On("Create", txCtx, mock.AnythingOfType("*entity.UnlockRecord")).
					Return(domainerrs.ErrDatabaseConnection)

				timeProvider.On("Now").Return(now)
			},
			expectedErr:    domainerrs.ErrCreditWrite,
			expectRollback: true,
		},
		{
			name: "Begin Failure",
			setupMocks: func(uow *mpers.MockUnitOfWork, resourceRepo *mpers.MockResourceRepository, creditRepo *mpers.MockCreditRepository, recordRepo *mpers.MockUnlockRecordRepository, timeProvider *mcore.MockTimeProvider, logger *mcore.MockLogger) {
				uow.On("Begin", mock.Anything).Return(nil, domainerrs.ErrDatabaseConnection)
				logger.On("Error", mock.Anything, mock.Anything).Maybe()
			},
			expectedErr: domainerrs.ErrStoreRead,
		},
		{
			name: "Commit Failure",
			setupMocks: func(uow *mpers.MockUnitOfWork, resourceRepo *mpers.MockResourceRepository, creditRepo *mpers.MockCreditRepository, recordRepo *mpers.MockUnlockRecordRepository, timeProvider *mcore.MockTimeProvider, logger *mcore.MockLogger) {
				uow.On("Begin", mock.Anything).Return(txCtx, nil)
				uow.On("GetResourceRepository", txCtx).Return(resourceRepo)
				uow.On("GetCreditRepository", txCtx).Return(creditRepo)
				uow.On("GetUnlockRecordRepository", txCtx).Return(recordRepo)
				uow.On("Commit", txCtx).Return(domainerrs.ErrDatabaseConnection)

				resourceRepo.On("GetByIDForUpdate", txCtx, resourceID, userID).
					Return(newTestResource(t, resourceID, userID, entity.StatusLocked, now), nil)
				creditRepo.On("GetBalanceForUpdate", txCtx, userID).
					Return(newTestBalance(t, userID, 2, now), nil)
				resourceRepo.On("SetLockStatus", txCtx, resourceID, entity.StatusUnlocked).Return(nil)
				creditRepo.On("Decrement", txCtx, userID, entity.UnlockCost).
					Return(newTestBalance(t, userID, 1, now), nil)
				recordRepo.On("Create", txCtx, mock.AnythingOfType("*entity.UnlockRecord")).Return(nil)

				timeProvider.On("Now").Return(now)
				logger.On("Error", mock.Anything, mock.Anything).Maybe()
			},
			expectedErr: domainerrs.ErrCreditWrite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUow := new(mpers.MockUnitOfWork)
			mockResourceRepo := new(mpers.MockResourceRepository)
			mockCreditRepo := new(mpers.MockCreditRepository)
			mockRecordRepo := new(mpers.MockUnlockRecordRepository)
			mockTimeProvider := new(mcore.MockTimeProvider)
			mockLogger := new(mcore.MockLogger)

			mockLogger.On("Info", mock.Anything, mock.Anything).Maybe()
			mockLogger.On("Warn", mock.Anything, mock.Anything).Maybe()
			mockLogger.On("Error", mock.Anything, mock.Anything).Maybe()

			tt.setupMocks(mockUow, mockResourceRepo, mockCreditRepo, mockRecordRepo, mockTimeProvider, mockLogger)

			unlocker := NewAtomicUnlocker(mockUow, mockTimeProvider, mockLogger)

			record, err := unlocker.Unlock(ctx, reqCtx, resourceID)

			if tt.expectedErr != nil || tt.checkErr != nil {
				assert.Error(t, err)
				assert.Nil(t, record)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
				if tt.checkErr != nil {
					tt.checkErr(t, err)
				}
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, record)
				assert.Equal(t, entity.UnlockCompleted, record.Status)
				assert.Equal(t, tt.expectedSpent, record.CreditsSpent)
				assert.Equal(t, tt.expectedBalance, record.ResultBalance)
			}

			if tt.expectRollback {
				mockUow.AssertCalled(t, "Rollback", txCtx)
				mockUow.AssertNotCalled(t, "Commit", mock.Anything)
			}
		})
	}
}

func TestAtomicUnlockRepeatPersistsAnAuditRecord(t *testing.T) {
	ctx := context.Background()
	userID := "user-42"
	resourceID := "0f8fad5b-d9cb-469f-a165-70867728950e"
	now := time.Now()
	txCtx := context.WithValue(ctx, testTxKey, "mockTransaction")

	mockUow := new(mpers.MockUnitOfWork)
	mockResourceRepo := new(mpers.MockResourceRepository)
	mockCreditRepo := new(mpers.MockCreditRepository)
	mockRecordRepo := new(mpers.MockUnlockRecordRepository)
	mockTimeProvider := new(mcore.MockTimeProvider)
	mockLogger := new(mcore.MockLogger)

	mockTimeProvider.On("Now").Return(now)
	mockLogger.On("Info", mock.Anything, mock.Anything).Maybe()

	mockUow.On("Begin", mock.Anything).Return(txCtx, nil)
	mockUow.On("GetResourceRepository", txCtx).Return(mockResourceRepo)
	mockUow.On("GetCreditRepository", txCtx).Return(mockCreditRepo)
	mockUow.On("GetUnlockRecordRepository", txCtx).Return(mockRecordRepo)
	mockUow.On("Commit", txCtx).Return(nil)

	mockResourceRepo.On("GetByIDForUpdate", txCtx, resourceID, userID).
		Return(newTestResource(t, resourceID, userID, entity.StatusUnlocked, now), nil)
	mockCreditRepo.On("GetBalance", txCtx, userID).
		Return(newTestBalance(t, userID, 3, now), nil)
	mockRecordRepo.On("Create", txCtx, mock.AnythingOfType("*entity.UnlockRecord")).Return(nil)

	unlocker := NewAtomicUnlocker(mockUow, mockTimeProvider, mockLogger)

	record, err := unlocker.Unlock(ctx, portuse.RequestContext{UserID: userID, RequestID: "req-1"}, resourceID)

	assert.NoError(t, err)
	assert.NotNil(t, record)
	// A free repeat leaves the same audit trail as a charged unlock.
	mockRecordRepo.AssertCalled(t, "Create", txCtx, mock.AnythingOfType("*entity.UnlockRecord"))
	mockCreditRepo.AssertNotCalled(t, "Decrement", mock.Anything, mock.Anything, mock.Anything)
}
