package cmd

import (
	"fmt"
	"time"

	"github.com/gaphound/gaphound/models"
	"github.com/spf13/cobra"
)

// resolveCmd and ackCmd set the user-driven status flags that the hygiene
// engine carries forward across re-analyses. Both only ever append to a
// gap's history; entries are never edited or removed.

var resolveCmd = &cobra.Command{
	Use:   "resolve <gap-id>",
	Short: "Mark a gap as resolved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, _ := cmd.Flags().GetString("notes")
		return setGapStatus(cmd, args[0], models.ActionResolved, notes)
	},
}

var ackCmd = &cobra.Command{
	Use:   "ack <gap-id>",
	Short: "Acknowledge a gap without resolving it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, _ := cmd.Flags().GetString("notes")
		return setGapStatus(cmd, args[0], models.ActionAcknowledged, notes)
	},
}

func setGapStatus(cmd *cobra.Command, gapID string, action models.HistoryAction, notes string) error {
	storyID, _ := cmd.Flags().GetString("story")
	if storyID == "" {
		return fmt.Errorf("--story is required")
	}

	resultStore, err := getStore()
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer func() { _ = resultStore.Close() }()

	result, err := resultStore.Latest(storyID)
	if err != nil {
		return fmt.Errorf("failed to load result for story %s: %w", storyID, err)
	}

	gap := result.FindGap(gapID)
	if gap == nil {
		return fmt.Errorf("no gap %s in story %s", gapID, storyID)
	}

	switch action {
	case models.ActionResolved:
		gap.Resolved = true
	case models.ActionAcknowledged:
		gap.Acknowledged = true
	}
	gap.History = append(gap.History, models.HistoryEntry{
		Action:    action,
		Timestamp: time.Now().UTC(),
		Notes:     notes,
	})

	if err := resultStore.Save(result); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	fmt.Printf("Gap %s marked %s.\n", gap.ID, action)
	return nil
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(ackCmd)
	for _, c := range []*cobra.Command{resolveCmd, ackCmd} {
		c.Flags().String("story", "", "story identifier (required)")
		c.Flags().String("notes", "", "optional note recorded in the gap's history")
		_ = c.MarkFlagRequired("story")
	}
}
