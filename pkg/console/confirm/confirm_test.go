package confirm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
)

type confirmerStub struct {
	answer bool
	err    error
	prompt Prompt
	calls  int
}

func (s *confirmerStub) Confirm(_ context.Context, prompt Prompt) (bool, error) {
	s.calls++
	s.prompt = prompt
	return s.answer, s.err
}

type notifierStub struct {
	messages []string
	levels   []Level
}

func (s *notifierStub) Notify(message string, level Level) {
	s.messages = append(s.messages, message)
	s.levels = append(s.levels, level)
}

func deletePrompt() Prompt {
	return Prompt{Title: "Delete Banner Rate", Message: "This action cannot be undone.", Severity: SeverityWarning}
}

func TestDecliningRunsNothing(t *testing.T) {
	confirmer := &confirmerStub{answer: false}
	notifier := &notifierStub{}
	runner := NewRunner(confirmer, notifier, nil)

	called := false
	err := runner.Run(context.Background(), deletePrompt(), "deleted", func(context.Context) error {
		called = true
		return nil
	}, nil)

	require.NoError(t, err)
	assert.False(t, called)
	assert.Empty(t, notifier.messages)
}

func TestRepeatedDeclineStaysIdempotent(t *testing.T) {
	confirmer := &confirmerStub{answer: false}
	notifier := &notifierStub{}
	runner := NewRunner(confirmer, notifier, nil)

	for i := 0; i < 3; i++ {
		require.NoError(t, runner.Run(context.Background(), deletePrompt(), "deleted", func(context.Context) error {
			t.Fatal("action must not run")
			return nil
		}, nil))
	}
	assert.Equal(t, 3, confirmer.calls)
	assert.Empty(t, notifier.messages)
}

func TestConfirmedSuccessNotifiesAndRefreshes(t *testing.T) {
	confirmer := &confirmerStub{answer: true}
	notifier := &notifierStub{}
	runner := NewRunner(confirmer, notifier, nil)

	refreshed := false
	err := runner.Run(context.Background(), deletePrompt(), "Banner rate deleted successfully", func(context.Context) error {
		return nil
	}, func() { refreshed = true })

	require.NoError(t, err)
	assert.True(t, refreshed)
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "Banner rate deleted successfully", notifier.messages[0])
	assert.Equal(t, LevelSuccess, notifier.levels[0])
}

func TestFailureSurfacesServerMessageWithoutRefresh(t *testing.T) {
	confirmer := &confirmerStub{answer: true}
	notifier := &notifierStub{}
	runner := NewRunner(confirmer, notifier, nil)

	serverErr := appErrors.Clone(appErrors.ErrInUse, "in use")
	refreshed := false
	err := runner.Run(context.Background(), deletePrompt(), "deleted", func(context.Context) error {
		return serverErr
	}, func() { refreshed = true })

	require.Error(t, err)
	assert.False(t, refreshed)
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "in use", notifier.messages[0])
	assert.Equal(t, LevelError, notifier.levels[0])
}

func TestFailureFallsBackToGenericMessage(t *testing.T) {
	confirmer := &confirmerStub{answer: true}
	notifier := &notifierStub{}
	runner := NewRunner(confirmer, notifier, nil)

	err := runner.Run(context.Background(), deletePrompt(), "deleted", func(context.Context) error {
		return errors.New("connection reset")
	}, nil)

	require.Error(t, err)
	require.Len(t, notifier.messages, 1)
	// Plain errors are wrapped as internal errors with a generic message.
	assert.Equal(t, appErrors.ErrInternal.Message, notifier.messages[0])
}

func TestPromptErrorAborts(t *testing.T) {
	confirmer := &confirmerStub{err: errors.New("dialog torn down")}
	notifier := &notifierStub{}
	runner := NewRunner(confirmer, notifier, nil)

	err := runner.Run(context.Background(), deletePrompt(), "deleted", func(context.Context) error {
		t.Fatal("action must not run")
		return nil
	}, nil)

	require.Error(t, err)
	assert.Empty(t, notifier.messages)
}
