package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitError_Error(t *testing.T) {
	err := NewExitError(ExitFailure, "plain message")
	assert.Equal(t, "plain message", err.Error())

	wrapped := WrapExitError(ExitCommandError, "outer", errors.New("inner"))
	assert.Equal(t, "outer: inner", wrapped.Error())
}

func TestExitError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	wrapped := WrapExitError(ExitFailure, "outer", inner)
	assert.ErrorIs(t, wrapped, inner)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad config")))

	// ExitErrors survive further wrapping.
	deep := fmt.Errorf("context: %w", NewExitError(ExitCommandError, "bad config"))
	assert.Equal(t, ExitCommandError, GetExitCode(deep))
}
