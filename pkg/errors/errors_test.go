package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrors.New("dial tcp: timeout")
	err := Wrap(CodeGeocodeError, "geocoding failed", cause)

	require.EqualError(t, err, "geocoding failed: dial tcp: timeout")
	require.ErrorIs(t, err, cause)
	require.True(t, IsCode(err, CodeGeocodeError))
	require.False(t, IsCode(err, CodeForecastError))
}

func TestCodeOfWrappedChain(t *testing.T) {
	err := fmt.Errorf("search: %w", Wrap(CodeNotFound, "session not found", nil))
	require.Equal(t, CodeNotFound, CodeOf(err))
	require.Equal(t, "", CodeOf(stderrors.New("plain")))
	require.Equal(t, "", CodeOf(nil))
}
