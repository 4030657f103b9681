package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/gaphound/gaphound/internal/hygiene"
	"github.com/gaphound/gaphound/store"
	"github.com/gaphound/gaphound/types"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run gap hygiene analysis for a story",
	Long: `Analyze loads the gap findings of the PM, UX, QA, and attack analyses from
JSON files, reconciles them against the story's previous result if one is
stored, and persists the new ranked gap list. At least one analysis file must
be supplied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		storyID, _ := cmd.Flags().GetString("story")
		if storyID == "" {
			return fmt.Errorf("--story is required")
		}

		input := hygiene.Input{StoryID: storyID}

		pmFile, _ := cmd.Flags().GetString("pm")
		if pmFile != "" {
			input.PM = &types.PMAnalysis{}
			if err := readAnalysisFile(pmFile, input.PM); err != nil {
				return err
			}
		}
		uxFile, _ := cmd.Flags().GetString("ux")
		if uxFile != "" {
			input.UX = &types.UXAnalysis{}
			if err := readAnalysisFile(uxFile, input.UX); err != nil {
				return err
			}
		}
		qaFile, _ := cmd.Flags().GetString("qa")
		if qaFile != "" {
			input.QA = &types.QAAnalysis{}
			if err := readAnalysisFile(qaFile, input.QA); err != nil {
				return err
			}
		}
		attackFile, _ := cmd.Flags().GetString("attack")
		if attackFile != "" {
			input.Attack = &types.AttackAnalysis{}
			if err := readAnalysisFile(attackFile, input.Attack); err != nil {
				return err
			}
		}

		resultStore, err := getStore()
		if err != nil {
			return fmt.Errorf("failed to initialize store: %w", err)
		}
		defer func() { _ = resultStore.Close() }()

		previous, err := resultStore.Latest(storyID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("failed to load previous result: %w", err)
		}
		if previous != nil {
			slog.Debug("loaded previous result", "story", storyID, "gaps", len(previous.Gaps))
			input.Previous = previous
		}

		engine := hygiene.New(engineConfig())
		result := engine.Analyze(input)
		if !result.Analyzed {
			return fmt.Errorf("analysis failed: %s", result.Error)
		}

		if err := resultStore.Save(result); err != nil {
			return fmt.Errorf("failed to save result: %w", err)
		}

		fmt.Println(result.Summary)
		for _, w := range result.Warnings {
			fmt.Printf("  note: %s\n", w)
		}
		if len(result.ActionItems) > 0 {
			fmt.Println("\nAction items:")
			for i, item := range result.ActionItems {
				fmt.Printf("  %d. %s\n", i+1, item)
			}
		}
		fmt.Printf("\nHighest score: %d, average: %.2f. Run 'gaphound gaps --story %s' for the full list.\n",
			result.HighestScore, result.AverageScore, storyID)
		return nil
	},
}

// readAnalysisFile decodes one analysis JSON file into target.
func readAnalysisFile(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read analysis file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse analysis file %s: %w", path, err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().String("story", "", "story identifier (required)")
	analyzeCmd.Flags().String("pm", "", "path to the PM analysis JSON file")
	analyzeCmd.Flags().String("ux", "", "path to the UX analysis JSON file")
	analyzeCmd.Flags().String("qa", "", "path to the QA analysis JSON file")
	analyzeCmd.Flags().String("attack", "", "path to the attack analysis JSON file")
	_ = analyzeCmd.MarkFlagRequired("story")
}
