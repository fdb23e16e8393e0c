package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jgmartins/pubharvest/internal/output"
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Preview a query: matching PMIDs without fetching or exporting",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		query := strings.Join(args, " ")

		result, err := client.Search(cmd.Context(), query, flagLimit)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		return output.FormatSearchResult(os.Stdout, result, outputCfg())
	},
}
