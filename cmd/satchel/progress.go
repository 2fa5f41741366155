// Progress command: inspect a user's learning progress snapshot.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress <user-id>",
	Short: "Show a user's learning progress",
	Long: `Progress prints the user's points and completed collections. A user with
no recorded progress shows the zero-value snapshot.`,
	Args: cobra.ExactArgs(1),
	RunE: runProgress,
}

func runProgress(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	progress, err := store.UserProgress(id)
	if err != nil {
		return fmt.Errorf("get progress: %w", err)
	}

	if flagJSON {
		return printJSON(cmd, progress)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Points:     %d\n", progress.Points)
	fmt.Fprintf(out, "Tutorials:  %s\n", joinOrDash(progress.CompletedTutorials))
	fmt.Fprintf(out, "Challenges: %s\n", joinOrDash(progress.CompletedChallenges))
	fmt.Fprintf(out, "Emojis:     %s\n", joinOrDash(progress.EmojiCollection))
	return nil
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
