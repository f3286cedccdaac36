package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/pkgrel/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pkgrel %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
