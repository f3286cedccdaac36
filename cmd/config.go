package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/pkgrel/internal/config"
	"github.com/VoxDroid/pkgrel/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the project configuration (" + config.FileName + ")",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write " + config.FileName + " with the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		owner, _ := cmd.Flags().GetString("owner")
		repo, _ := cmd.Flags().GetString("repo")

		c := config.Default()
		c.Root = rootDir
		c.GitHub.Owner = owner
		c.GitHub.Repo = repo
		path := configFile
		if path == "" {
			path = c.Path(config.FileName)
		}
		if dryRun {
			b, err := c.Marshal()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "dry-run: would write %s\n%s", path, b)
			return nil
		}
		if err := c.WriteFile(path, force); err != nil {
			return err
		}
		ui.Successf(cmd.OutOrStdout(), "wrote %s", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		source := c.Source
		if source == "" {
			source = "(defaults)"
		}
		_, _ = fmt.Fprintf(out, "# source: %s\n", source)
		b, err := c.Marshal()
		if err != nil {
			return err
		}
		_, _ = out.Write(b)
		if c.GitHub.TokenEnv != "" {
			state := "unset"
			if c.Token() != "" {
				state = "set"
			}
			_, _ = fmt.Fprintf(out, "# %s: %s\n", c.GitHub.TokenEnv, state)
		}
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
	configInitCmd.Flags().String("owner", "", "GitHub repository owner")
	configInitCmd.Flags().String("repo", "", "GitHub repository name")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
