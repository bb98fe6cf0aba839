package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/yorby-ai/entitlement-service/internal/domain/error"
	coremocks "github.com/yorby-ai/entitlement-service/mocks/port/core"
)

func TestNewCreditBalance(t *testing.T) {
	fixedTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mockTime := new(coremocks.MockTimeProvider)
	mockTime.On("Now").Return(fixedTime)

	t.Run("Valid balance creation", func(t *testing.T) {
		balance, err := NewCreditBalance("user-42", 30, mockTime)

		require.NoError(t, err)
		assert.Equal(t, "user-42", balance.UserID)
		assert.Equal(t, int64(30), balance.Credits())
		assert.Equal(t, fixedTime, balance.CreatedAt)
		assert.Equal(t, fixedTime, balance.UpdatedAt)
	})

	t.Run("Zero initial credits are valid", func(t *testing.T) {
		balance, err := NewCreditBalance("user-42", 0, mockTime)

		require.NoError(t, err)
		assert.Equal(t, int64(0), balance.Credits())
	})

	t.Run("Empty user ID", func(t *testing.T) {
		balance, err := NewCreditBalance("", 30, mockTime)

		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
		assert.Nil(t, balance)
	})

	t.Run("Negative initial credits", func(t *testing.T) {
		balance, err := NewCreditBalance("user-42", -1, mockTime)

		assert.ErrorIs(t, err, errs.ErrInvalidCreditAmount)
		assert.Nil(t, balance)
	})
}

func TestCreditBalanceSpend(t *testing.T) {
	fixedTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mockTime := new(coremocks.MockTimeProvider)
	mockTime.On("Now").Return(fixedTime)

	t.Run("Spend within balance", func(t *testing.T) {
		balance, _ := NewCreditBalance("user-42", 3, mockTime)

		err := balance.Spend(UnlockCost, mockTime)

		require.NoError(t, err)
		assert.Equal(t, int64(2), balance.Credits())
	})

	t.Run("Spend down to zero", func(t *testing.T) {
		balance, _ := NewCreditBalance("user-42", 1, mockTime)

		err := balance.Spend(1, mockTime)

		require.NoError(t, err)
		assert.Equal(t, int64(0), balance.Credits())
		assert.False(t, balance.CanSpend(UnlockCost))
	})

	t.Run("Spend beyond balance is rejected", func(t *testing.T) {
		balance, _ := NewCreditBalance("user-42", 0, mockTime)

		err := balance.Spend(1, mockTime)

		assert.True(t, errs.IsInsufficientCreditsError(err))
		assert.Equal(t, int64(0), balance.Credits())
	})

	t.Run("Non-positive amounts are rejected", func(t *testing.T) {
		balance, _ := NewCreditBalance("user-42", 3, mockTime)

		assert.ErrorIs(t, balance.Spend(0, mockTime), errs.ErrInvalidCreditAmount)
		assert.ErrorIs(t, balance.Spend(-1, mockTime), errs.ErrInvalidCreditAmount)
		assert.Equal(t, int64(3), balance.Credits())
	})
}

func TestCreditBalanceGrant(t *testing.T) {
	fixedTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mockTime := new(coremocks.MockTimeProvider)
	mockTime.On("Now").Return(fixedTime)

	t.Run("Grant adds credits", func(t *testing.T) {
		balance, _ := NewCreditBalance("user-42", 1, mockTime)

		err := balance.Grant(30, mockTime)

		require.NoError(t, err)
		assert.Equal(t, int64(31), balance.Credits())
	})

	t.Run("Non-positive grant is rejected", func(t *testing.T) {
		balance, _ := NewCreditBalance("user-42", 1, mockTime)

		assert.ErrorIs(t, balance.Grant(0, mockTime), errs.ErrInvalidCreditAmount)
		assert.Equal(t, int64(1), balance.Credits())
	})
}
