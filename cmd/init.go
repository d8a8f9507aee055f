package cmd

import (
	"github.com/spf13/cobra"

	"uplog/internal/creds"
	"uplog/internal/git"
	"uplog/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the repository without starting the loop",
	Long: "Create the repository if needed, write the ignore file, and bind the\n" +
		"remote to the authenticated URL. Idempotent; safe to re-run.",
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadRuntimeConfig()
	if err != nil {
		return err
	}

	out := ui.New(flagVerbose, flagQuiet)

	source, err := creds.NewSource(cfg.Credentials)
	if err != nil {
		return err
	}
	resolved, err := source.Resolve()
	if err != nil {
		return err
	}

	client := git.NewClient(git.NewExecRunner(), cfg.RepoDir)
	initializer := git.NewInitializer(client, cfg.LogFile, cfg.Remote)
	if err := initializer.Initialize(cmd.Context(), resolved); err != nil {
		return err
	}

	out.Successf("repository ready in %s (remote %q)", cfg.RepoDir, cfg.Remote)
	return nil
}
