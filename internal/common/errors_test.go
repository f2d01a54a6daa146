package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_IsMatchesKindSentinel(t *testing.T) {
	tests := []struct {
		err      error
		sentinel error
		kind     Kind
	}{
		{Validation("email is required"), ErrValidation, KindValidation},
		{NotFound("user %s not found", "u1"), ErrNotFound, KindNotFound},
		{InvalidCredentials(), ErrInvalidCredentials, KindInvalidCredentials},
		{DuplicateEmail("a@x.com"), ErrDuplicateEmail, KindDuplicateEmail},
		{Storage(errors.New("disk full")), ErrStorage, KindStorage},
	}
	for _, tc := range tests {
		t.Run(string(tc.kind), func(t *testing.T) {
			require.ErrorIs(t, tc.err, tc.sentinel)
			assert.Equal(t, tc.kind, KindOf(tc.err))

			wrapped := fmt.Errorf("register: %w", tc.err)
			require.ErrorIs(t, wrapped, tc.sentinel)
			assert.Equal(t, tc.kind, KindOf(wrapped))
		})
	}
}

func TestError_StorageKeepsCause(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := Storage(cause)
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, KindStorage, KindOf(errors.New("boom")))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("x: %w", ErrNotFound)))
}

func TestResultOf(t *testing.T) {
	ok := ResultOf(42, nil)
	assert.True(t, ok.OK)
	assert.Equal(t, 42, ok.Value)

	failed := ResultOf(0, NotFound("application %s not found", "a1"))
	assert.False(t, failed.OK)
	assert.Equal(t, KindNotFound, failed.Kind)
	assert.Equal(t, "application a1 not found", failed.Message)

	internal := ResultOf("", Storage(errors.New("serialization failed")))
	assert.Equal(t, KindStorage, internal.Kind)
	assert.Equal(t, StorageMessage, internal.Message)

	done := Done(nil)
	assert.True(t, done.OK)
}
