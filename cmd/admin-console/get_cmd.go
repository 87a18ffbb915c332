package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <resource> <id>",
		Short: "Fetch a single record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := root.apiClient()
			if err != nil {
				return err
			}

			data, err := api.Get(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			var pretty bytes.Buffer
			if err := json.Indent(&pretty, data, "", "  "); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), pretty.String())
			return nil
		},
	}
	return cmd
}
