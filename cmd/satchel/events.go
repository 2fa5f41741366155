// Events command: inspect a user's recent activity log.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var eventsLimit int

var eventsCmd = &cobra.Command{
	Use:   "events <user-id>",
	Short: "Show a user's recent activity events, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runEvents,
}

func init() {
	eventsCmd.Flags().IntVar(&eventsLimit, "limit", 0, "maximum events to show (default 50)")
}

func runEvents(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	events, err := store.UserEvents(id, eventsLimit)
	if err != nil {
		return fmt.Errorf("get events: %w", err)
	}

	if flagJSON {
		return printJSON(cmd, events)
	}
	for _, e := range events {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.Type, e.Details)
	}
	return nil
}
