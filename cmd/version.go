package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the GapHound version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gaphound %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
