package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/yorby-ai/entitlement-service/internal/domain/error"
	coremocks "github.com/yorby-ai/entitlement-service/mocks/port/core"
)

func TestNewResource(t *testing.T) {
	fixedTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mockTime := new(coremocks.MockTimeProvider)
	mockTime.On("Now").Return(fixedTime)

	t.Run("Valid resource starts locked", func(t *testing.T) {
		res, err := NewResource("res-1", "user-42", KindResume, mockTime)

		require.NoError(t, err)
		assert.Equal(t, StatusLocked, res.LockStatus)
		assert.False(t, res.IsUnlocked())
		assert.True(t, res.IsOwnedBy("user-42"))
		assert.False(t, res.IsOwnedBy("someone-else"))
	})

	t.Run("All kinds are accepted", func(t *testing.T) {
		for _, kind := range []ResourceKind{KindResume, KindJob, KindInterviewCopilot} {
			res, err := NewResource("res-1", "user-42", kind, mockTime)
			require.NoError(t, err)
			assert.Equal(t, kind, res.Kind)
		}
	})

	t.Run("Empty resource ID", func(t *testing.T) {
		res, err := NewResource("", "user-42", KindResume, mockTime)

		assert.ErrorIs(t, err, errs.ErrInvalidResourceID)
		assert.Nil(t, res)
	})

	t.Run("Empty user ID", func(t *testing.T) {
		res, err := NewResource("res-1", "", KindResume, mockTime)

		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
		assert.Nil(t, res)
	})

	t.Run("Unknown kind", func(t *testing.T) {
		res, err := NewResource("res-1", "user-42", ResourceKind("cover_letter"), mockTime)

		assert.ErrorIs(t, err, errs.ErrInvalidResourceKind)
		assert.Nil(t, res)
	})
}

func TestResourceUnlockAndRelock(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	unlockedAt := createdAt.Add(time.Minute)

	createTime := new(coremocks.MockTimeProvider)
	createTime.On("Now").Return(createdAt)
	unlockTime := new(coremocks.MockTimeProvider)
	unlockTime.On("Now").Return(unlockedAt)

	res, err := NewResource("res-1", "user-42", KindResume, createTime)
	require.NoError(t, err)

	res.Unlock(unlockTime)
	assert.True(t, res.IsUnlocked())
	assert.Equal(t, unlockedAt, res.UpdatedAt)

	res.Relock(unlockTime)
	assert.False(t, res.IsUnlocked())
	assert.Equal(t, StatusLocked, res.LockStatus)
}
