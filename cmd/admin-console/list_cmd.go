package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eventra-live/eventra-admin-api/pkg/console/screen"
)

func newListCmd(root *rootOptions) *cobra.Command {
	var (
		pageNum int
		limit   int
		search  string
		filters []string
	)

	cmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "List a resource page by page (events, registrations, users, ...)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, console, err := root.apiClient()
			if err != nil {
				return err
			}

			filterMap := map[string]string{}
			for _, pair := range filters {
				key, value, ok := strings.Cut(pair, "=")
				if !ok {
					return fmt.Errorf("invalid --filter %q, expected key=value", pair)
				}
				filterMap[key] = value
			}

			pageSize := limit
			if pageSize < 1 {
				pageSize = console.PageSize
			}

			scr := screen.New[json.RawMessage](args[0], api, screen.Options{
				PageSize:       pageSize,
				DebounceWindow: console.DebounceWindow,
				Search:         search,
				Filters:        filterMap,
			})
			defer scr.Controller().Close()

			if pageNum > 1 {
				scr.Controller().SetPage(pageNum)
			}

			if err := scr.Refresh(cmd.Context()); err != nil {
				return err
			}
			if scr.Phase() != screen.PhaseLoaded {
				return errors.New("list fetch did not complete")
			}

			result := scr.Result()
			for _, doc := range result.Items {
				fmt.Fprintln(cmd.OutOrStdout(), string(doc))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# page %d/%d, %d total\n",
				result.Page, result.TotalPages, result.TotalItems)
			return nil
		},
	}

	cmd.Flags().IntVar(&pageNum, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 0, "page size (default from CONSOLE_PAGE_SIZE)")
	cmd.Flags().StringVar(&search, "search", "", "search text")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "resource filter as key=value, repeatable")
	return cmd
}
