package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/eventra-live/eventra-admin-api/pkg/console/confirm"
)

// terminalConfirmer asks a yes/no question on the terminal. Anything other
// than "y" or "yes" declines.
type terminalConfirmer struct {
	in  io.Reader
	out io.Writer
}

func (t *terminalConfirmer) Confirm(_ context.Context, prompt confirm.Prompt) (bool, error) {
	fmt.Fprintf(t.out, "%s\n%s [y/N]: ", prompt.Title, prompt.Message)
	scanner := bufio.NewScanner(t.in)
	if !scanner.Scan() {
		return false, scanner.Err()
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes", nil
}

// terminalNotifier prints toasts as single lines.
type terminalNotifier struct {
	out io.Writer
}

func (t *terminalNotifier) Notify(message string, level confirm.Level) {
	fmt.Fprintf(t.out, "[%s] %s\n", level, message)
}
