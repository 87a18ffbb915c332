package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(root *rootOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login --email <address> --password <password>",
		Short: "Authenticate and print the session tokens",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" || password == "" {
				return errors.New("--email and --password are required")
			}

			api, _, err := root.apiClient()
			if err != nil {
				return err
			}

			data, err := api.CreateOrUpdate(cmd.Context(), "auth/login", "", map[string]string{
				"email":    email,
				"password": password,
			})
			if err != nil {
				return err
			}

			var session struct {
				AccessToken  string `json:"accessToken"`
				RefreshToken string `json:"refreshToken"`
				ExpiresIn    int64  `json:"expiresIn"`
			}
			if err := json.Unmarshal(data, &session); err != nil {
				return fmt.Errorf("unexpected login response: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "export CONSOLE_TOKEN=%s\n", session.AccessToken)
			fmt.Fprintf(cmd.OutOrStdout(), "# refresh token: %s (expires in %ds)\n", session.RefreshToken, session.ExpiresIn)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	return cmd
}
