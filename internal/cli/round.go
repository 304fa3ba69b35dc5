package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

// addRoundRequest matches the API request body
type addRoundRequest struct {
	Mode          string `json:"mode"`
	Host          *int   `json:"host"`
	Friends       []int  `json:"friends,omitempty"`
	Bid           int    `json:"bid"`
	OpponentScore *int   `json:"opponent_score"`
}

func newRoundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "round",
		Short: "Round operations",
	}

	cmd.AddCommand(newRoundAddCmd())

	return cmd
}

func newRoundAddCmd() *cobra.Command {
	var (
		date     string
		mode     string
		host     int
		friends  []int
		bid      int
		opponent int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a round in a session",
		Long: `Record a round. Players are given by roster seat (0-5).

Examples:
  ffscore round add --host 0 --friend 1 --bid 150 --opponent 130
  ffscore round add --mode 1v5 --host 2 --opponent 120
  ffscore round add --host 3 --bid 160 --opponent 90   # No Bids`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("host") {
				return errors.New("--host is required")
			}
			if !cmd.Flags().Changed("opponent") {
				return errors.New("--opponent is required")
			}

			body := addRoundRequest{
				Mode:          mode,
				Host:          &host,
				Friends:       friends,
				Bid:           bid,
				OpponentScore: &opponent,
			}

			var result Round
			if err := client.Post(sessionPath(date)+"/rounds", body, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "today", "Session date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&mode, "mode", "Normal", "Round mode: Normal, 1v5")
	cmd.Flags().IntVar(&host, "host", 0, "Host seat")
	cmd.Flags().IntSliceVar(&friends, "friend", nil, "Friend seat (repeatable)")
	cmd.Flags().IntVar(&bid, "bid", 0, "Winning bid, 160 for No Bids (ignored for 1v5)")
	cmd.Flags().IntVar(&opponent, "opponent", 0, "Points taken by the opponents")

	return cmd
}
