package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eventra-live/eventra-admin-api/pkg/console/confirm"
)

func newRemoveCmd(root *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <resource> <id>",
		Short: "Delete a record after confirmation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := root.apiClient()
			if err != nil {
				return err
			}

			var confirmer confirm.Confirmer = &terminalConfirmer{in: cmd.InOrStdin(), out: cmd.OutOrStdout()}
			if yes {
				confirmer = autoConfirmer{}
			}
			runner := confirm.NewRunner(confirmer, &terminalNotifier{out: cmd.OutOrStdout()}, nil)

			return runner.Run(cmd.Context(),
				confirm.Prompt{
					Title:    fmt.Sprintf("Delete %s %s", args[0], args[1]),
					Message:  "This cannot be undone. Continue?",
					Severity: confirm.SeverityDanger,
				},
				"Record deleted",
				func(ctx context.Context) error {
					return api.Remove(ctx, args[0], args[1])
				},
				nil,
			)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

type autoConfirmer struct{}

func (autoConfirmer) Confirm(context.Context, confirm.Prompt) (bool, error) {
	return true, nil
}
