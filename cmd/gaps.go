package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/gaphound/gaphound/internal/utils"
	"github.com/gaphound/gaphound/models"
	"github.com/spf13/cobra"
)

// maxListedDescription keeps table rows readable.
const maxListedDescription = 80

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "List the ranked gaps of a story's latest result",
	RunE: func(cmd *cobra.Command, args []string) error {
		storyID, _ := cmd.Flags().GetString("story")
		if storyID == "" {
			return fmt.Errorf("--story is required")
		}
		category, _ := cmd.Flags().GetString("category")
		includeResolved, _ := cmd.Flags().GetBool("include-resolved")

		result, err := loadResult(storyID)
		if err != nil {
			return err
		}

		listed, err := selectGaps(result.Gaps, category, includeResolved)
		if err != nil {
			return err
		}
		if len(listed) == 0 {
			fmt.Println(result.Summary)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSCORE\tCATEGORY\tSOURCE\tSTATUS\tDESCRIPTION")
		for _, g := range listed {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n",
				g.ID, g.Score, g.Category, g.Source, gapStatus(g),
				utils.Truncate(utils.Flatten(g.Description), maxListedDescription))
		}
		return w.Flush()
	},
}

// selectGaps picks the rows the gaps command lists: resolved gaps are hidden
// unless requested, and an optional category filter narrows the rest.
func selectGaps(gaps []models.RankedGap, category string, includeResolved bool) ([]models.RankedGap, error) {
	if category != "" {
		switch models.GapCategory(category) {
		case models.CategoryMVPBlocking, models.CategoryMVPImportant, models.CategoryFuture, models.CategoryDeferred:
		default:
			return nil, fmt.Errorf("unknown category: %s (supported: %s, %s, %s, %s)",
				category, models.CategoryMVPBlocking, models.CategoryMVPImportant, models.CategoryFuture, models.CategoryDeferred)
		}
	}
	var listed []models.RankedGap
	for _, g := range gaps {
		if g.Resolved && !includeResolved {
			continue
		}
		if category != "" && string(g.Category) != category {
			continue
		}
		listed = append(listed, g)
	}
	return listed, nil
}

func gapStatus(g models.RankedGap) string {
	switch {
	case g.Resolved:
		return "resolved"
	case g.Acknowledged:
		return "acknowledged"
	default:
		return "open"
	}
}

// loadResult fetches the latest stored result for a story.
func loadResult(storyID string) (*models.HygieneResult, error) {
	resultStore, err := getStore()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}
	defer func() { _ = resultStore.Close() }()

	result, err := resultStore.Latest(storyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load result for story %s: %w", storyID, err)
	}
	return result, nil
}

func init() {
	rootCmd.AddCommand(gapsCmd)
	gapsCmd.Flags().String("story", "", "story identifier (required)")
	gapsCmd.Flags().String("category", "", "filter by category (mvp_blocking, mvp_important, future, deferred)")
	gapsCmd.Flags().Bool("include-resolved", false, "also list gaps already marked resolved")
	_ = gapsCmd.MarkFlagRequired("story")
}
