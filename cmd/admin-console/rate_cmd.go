package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/eventra-live/eventra-admin-api/pkg/console/form"
)

type rateValues struct {
	Days string
	Cost string
}

// rateForm validates the banner rate dialog the same way the web console
// does, before anything reaches the server.
func rateForm() *form.Form[rateValues] {
	return form.New(form.Config[rateValues]{
		Fields: map[string][]form.Rule[rateValues]{
			"days": {
				form.Required(func(v rateValues) string { return v.Days }, "days is required"),
				form.Custom(func(v rateValues) bool {
					n, err := strconv.Atoi(v.Days)
					return err == nil && n >= 1 && n <= 365
				}, "days must be between 1 and 365"),
			},
			"cost": {
				form.Required(func(v rateValues) string { return v.Cost }, "cost is required"),
				form.GreaterThan(func(v rateValues) float64 {
					f, _ := strconv.ParseFloat(v.Cost, 64)
					return f
				}, 0, "cost must be greater than zero"),
			},
		},
		Empty: func() rateValues { return rateValues{} },
	})
}

func newRateCmd(root *rootOptions) *cobra.Command {
	var (
		id   string
		days string
		cost string
	)

	cmd := &cobra.Command{
		Use:   "rate --days <n> --cost <amount> [--id <id>]",
		Short: "Create or update a banner rate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, _, err := root.apiClient()
			if err != nil {
				return err
			}

			f := rateForm()
			var initial *rateValues
			if id != "" {
				initial = &rateValues{Days: days, Cost: cost}
			}
			f.Open(initial)
			if !f.IsEditing() {
				f.SetValues(rateValues{Days: days, Cost: cost})
			}

			err = f.Submit(cmd.Context(), func(ctx context.Context, v rateValues) error {
				daysN, _ := strconv.Atoi(v.Days)
				costN, _ := strconv.ParseFloat(v.Cost, 64)
				_, err := api.CreateOrUpdate(ctx, "banner-rates", id, map[string]interface{}{
					"days": daysN,
					"cost": costN,
				})
				if err == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "saved")
				}
				return err
			})
			if errors.Is(err, form.ErrValidationFailed) {
				for _, line := range formErrorLines(f.Errors()) {
					fmt.Fprintln(cmd.ErrOrStderr(), line)
				}
			}
			return err
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "rate ID to update, omit to create")
	cmd.Flags().StringVar(&days, "days", "", "rate duration in days")
	cmd.Flags().StringVar(&cost, "cost", "", "rate cost")
	return cmd
}

func formErrorLines(errs map[string]string) []string {
	lines := make([]string, 0, len(errs))
	for field, msg := range errs {
		lines = append(lines, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(lines)
	return lines
}
