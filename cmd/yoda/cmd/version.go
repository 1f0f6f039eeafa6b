package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	gitHash = "(none)"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("yoda %s (built with %s, git hash %s)\n", Version, runtime.Version(), gitHash)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
