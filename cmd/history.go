package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history <gap-id>",
	Short: "Show the append-only history of a gap",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		storyID, _ := cmd.Flags().GetString("story")
		if storyID == "" {
			return fmt.Errorf("--story is required")
		}

		result, err := loadResult(storyID)
		if err != nil {
			return err
		}

		gap := result.FindGap(args[0])
		if gap == nil {
			return fmt.Errorf("no gap %s in story %s", args[0], storyID)
		}

		fmt.Printf("%s [%s] %s\n", gap.ID, gap.Source, gap.Description)
		for _, entry := range gap.History {
			line := fmt.Sprintf("  %s  %s", entry.Timestamp.Format(time.RFC3339), entry.Action)
			if entry.PreviousValue != "" || entry.NewValue != "" {
				line += fmt.Sprintf(" (%s -> %s)", entry.PreviousValue, entry.NewValue)
			}
			if entry.Notes != "" {
				line += ": " + entry.Notes
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().String("story", "", "story identifier (required)")
	_ = historyCmd.MarkFlagRequired("story")
}
