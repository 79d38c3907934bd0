package serrors_test

import (
	"errors"
	"fmt"
	"scanconsole/pkg/serrors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_Formatting(t *testing.T) {
	cause := errors.New("dial tcp: refused")

	require.Equal(t, "bad input", serrors.With(serrors.ErrValidation, "bad %s", "input").Error())
	require.Equal(t, "could not reach backend: dial tcp: refused",
		serrors.Wrap(serrors.ErrTransport, cause, "could not reach backend").Error())
	require.Equal(t, "dial tcp: refused", serrors.Wrap(serrors.ErrTransport, cause, "").Error())
	require.Equal(t, "NOT_FOUND", serrors.KindOnly(serrors.ErrNotFound).Error())
}

func TestError_IsMatchesKindAndCause(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("outer: %w", serrors.Wrap(serrors.ErrTransport, cause, "request failed"))

	require.ErrorIs(t, err, serrors.ErrTransport)
	require.ErrorIs(t, err, cause)
	require.NotErrorIs(t, err, serrors.ErrRejected)
}

func TestError_As(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", serrors.With(serrors.ErrRejected, "quota exceeded"))

	var se *serrors.Error
	require.ErrorAs(t, err, &se)
	require.Equal(t, serrors.ErrRejected, se.Kind())
	require.Equal(t, "quota exceeded", se.Message())
	require.Nil(t, se.Cause())
}

func TestKindOf(t *testing.T) {
	require.Equal(t, serrors.ErrTerminal, serrors.KindOf(fmt.Errorf("x: %w", serrors.KindOnly(serrors.ErrTerminal))))
	require.Nil(t, serrors.KindOf(errors.New("plain")))
}

func TestUserMessage(t *testing.T) {
	require.Equal(t, "", serrors.UserMessage(nil))
	require.Equal(t, "Please enter a URL.",
		serrors.UserMessage(serrors.Wrap(serrors.ErrValidation, errors.New("empty"), "Please enter a URL.")))
	require.Equal(t, "plain", serrors.UserMessage(errors.New("plain")))
}
