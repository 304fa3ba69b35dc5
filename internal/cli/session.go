package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session operations",
		Long:  "Commands for listing, viewing and editing game sessions.",
	}

	cmd.AddCommand(newSessionListCmd())
	cmd.AddCommand(newSessionShowCmd())
	cmd.AddCommand(newSessionRenameCmd())

	return cmd
}

func newSessionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SessionList
			if err := client.Get("/api/v1/sessions", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newSessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [date]",
		Short: "Show a session's roster and rounds",
		Long: `Show a session's roster and rounds.

The date is YYYY-MM-DD and defaults to today. Today's session is created
with the default roster if it does not exist yet.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session
			if err := client.Get(sessionPath(dateArg(args)), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newSessionRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <date> <seat> <name>",
		Short: "Rename a roster seat",
		Long: `Rename the player in a roster seat (0-5).

Past rounds keep the name the player had when the round was recorded.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			seat, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid seat %q: %w", args[1], err)
			}

			body := map[string]string{"name": args[2]}
			path := fmt.Sprintf("%s/players/%d", sessionPath(args[0]), seat)

			var result Session
			if err := client.Put(path, body, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func sessionPath(date string) string {
	return "/api/v1/sessions/" + url.PathEscape(date)
}
