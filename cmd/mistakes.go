package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mistakesCmd = &cobra.Command{
	Use:   "mistakes",
	Short: "List your most frequent mistakes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		recs, err := s.MistakeRepo().Top(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query mistakes: %w", err)
		}
		printRecords(cmd.OutOrStdout(), recs)
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show mistake counts per type and suggested focus areas",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		report, err := buildReport(cmd.Context(), s.MistakeRepo())
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), report)
		return nil
	},
}

func init() {
	mistakesCmd.Flags().IntP("limit", "n", 10, "Number of mistakes to show")
}
