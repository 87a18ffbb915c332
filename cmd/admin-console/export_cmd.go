package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

type exportJobView struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	DownloadURL  string `json:"downloadUrl"`
	ErrorMessage string `json:"errorMessage"`
}

func newExportCmd(root *rootOptions) *cobra.Command {
	var (
		format        string
		paymentStatus string
		wait          bool
	)

	cmd := &cobra.Command{
		Use:   "export <eventId>",
		Short: "Queue a registration export and optionally wait for the file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := root.apiClient()
			if err != nil {
				return err
			}

			payload := map[string]string{
				"eventId": args[0],
				"format":  format,
			}
			if paymentStatus != "" {
				payload["paymentStatus"] = paymentStatus
			}

			data, err := api.CreateOrUpdate(cmd.Context(), "exports", "", payload)
			if err != nil {
				return err
			}

			var job exportJobView
			if err := json.Unmarshal(data, &job); err != nil {
				return fmt.Errorf("unexpected export response: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "queued export %s\n", job.ID)

			if !wait {
				return nil
			}

			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-cmd.Context().Done():
					return cmd.Context().Err()
				case <-ticker.C:
				}

				data, err := api.Get(cmd.Context(), "exports", job.ID)
				if err != nil {
					return err
				}
				if err := json.Unmarshal(data, &job); err != nil {
					return fmt.Errorf("unexpected export status response: %w", err)
				}

				switch job.Status {
				case "FINISHED":
					fmt.Fprintf(cmd.OutOrStdout(), "ready: %s\n", job.DownloadURL)
					return nil
				case "FAILED":
					return errors.New("export failed: " + job.ErrorMessage)
				}
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "export format, csv or pdf")
	cmd.Flags().StringVar(&paymentStatus, "payment-status", "", "only include registrations with this payment status")
	cmd.Flags().BoolVar(&wait, "wait", false, "poll until the export finishes")
	return cmd
}
