// Package confirm wraps destructive operations behind a confirmation prompt
// and a toast notification on completion or failure.
package confirm

import (
	"context"

	"go.uber.org/zap"

	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
)

// Severity qualifies a confirmation prompt.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Level qualifies a toast notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// Prompt describes a yes/no confirmation dialog.
type Prompt struct {
	Title    string
	Message  string
	Severity Severity
}

// Confirmer presents the prompt and reports the user's choice.
type Confirmer interface {
	Confirm(ctx context.Context, prompt Prompt) (bool, error)
}

// Notifier shows a toast.
type Notifier interface {
	Notify(message string, level Level)
}

const genericFailureMessage = "The operation failed, please try again"

// Runner executes confirmed actions. Declining the prompt performs no call
// and touches no state; failures notify with the server's message when it
// carries one. State is only mutated by the caller after the server
// confirms, never optimistically.
type Runner struct {
	confirmer Confirmer
	notifier  Notifier
	logger    *zap.Logger
}

// NewRunner builds a runner; a nil logger falls back to a no-op.
func NewRunner(confirmer Confirmer, notifier Notifier, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{confirmer: confirmer, notifier: notifier, logger: logger}
}

// Run presents the prompt and, only if confirmed, invokes the action.
// successMessage is toasted on success before the optional onSuccess refresh
// callback runs. The action's error is returned as-is for the caller.
func (r *Runner) Run(ctx context.Context, prompt Prompt, successMessage string, action func(context.Context) error, onSuccess func()) error {
	confirmed, err := r.confirmer.Confirm(ctx, prompt)
	if err != nil {
		r.logger.Warn("confirmation prompt failed", zap.String("title", prompt.Title), zap.Error(err))
		return err
	}
	if !confirmed {
		return nil
	}

	if err := action(ctx); err != nil {
		message := appErrors.FromError(err).Message
		if message == "" {
			message = genericFailureMessage
		}
		r.notifier.Notify(message, LevelError)
		r.logger.Warn("confirmed action failed", zap.String("title", prompt.Title), zap.Error(err))
		return err
	}

	r.notifier.Notify(successMessage, LevelSuccess)
	if onSuccess != nil {
		onSuccess()
	}
	return nil
}
