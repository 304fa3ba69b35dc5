package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStandingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standings [date]",
		Short: "Show a session's leaderboard",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Standings
			if err := client.Get(sessionPath(dateArg(args))+"/standings", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the all-time leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Summary
			if err := client.Get("/api/v1/stats", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newRecordsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "records",
		Short: "Show recently archived round records",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/records"
			if cmd.Flags().Changed("limit") {
				path = fmt.Sprintf("%s?limit=%d", path, limit)
			}

			var result RecordList
			if err := client.Get(path, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of records to show (1-100)")

	return cmd
}
