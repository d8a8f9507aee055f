package cmd

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"uplog/internal/common"
	"uplog/internal/creds"
	"uplog/internal/git"
	"uplog/internal/recorder"
	"uplog/internal/sampler"
	"uplog/internal/ui"
	"uplog/pkg/errors"
)

var flagOnce bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the uptime recording loop",
	Long: "Resolve credentials, initialize the repository, then sample uptime,\n" +
		"append it to the log, and commit and push on a fixed interval.\n" +
		"The process runs until interrupted; only a configuration failure\n" +
		"makes it exit early.",
	RunE: runRecorder,
}

func init() {
	runCmd.Flags().Duration("interval", 0, "time between recording cycles (e.g. 5m)")
	runCmd.Flags().String("repo-dir", "", "repository working directory")
	runCmd.Flags().BoolVar(&flagOnce, "once", false, "perform a single cycle and exit")

	_ = viper.BindPFlag("interval", runCmd.Flags().Lookup("interval"))
	_ = viper.BindPFlag("repo_dir", runCmd.Flags().Lookup("repo-dir"))

	rootCmd.AddCommand(runCmd)
}

func runRecorder(cmd *cobra.Command, args []string) error {
	cfg, err := loadRuntimeConfig()
	if err != nil {
		return err
	}

	out := ui.New(flagVerbose, flagQuiet)

	source, err := creds.NewSource(cfg.Credentials)
	if err != nil {
		return err
	}

	// Fail fast: unresolved credentials abort before the loop starts
	resolved, err := source.Resolve()
	if err != nil {
		return err
	}

	runner := git.NewExecRunner()
	client := git.NewClient(runner, cfg.RepoDir)

	initializer := git.NewInitializer(client, cfg.LogFile, cfg.Remote)
	if err := initializer.Initialize(cmd.Context(), resolved); err != nil {
		return err
	}
	out.Verbosef("repository initialized in %s", cfg.RepoDir)

	logPath, err := common.ValidatePath(filepath.Join(cfg.RepoDir, cfg.LogFile), cfg.RepoDir)
	if err != nil {
		return errors.ConfigError(err.Error(), "log_file")
	}
	committer := git.NewCommitter(client, cfg.LogFile, cfg.CommitMessage)
	policy := git.NewSyncPolicy(cfg.Sync.Policy, client, cfg.Remote, cfg.Branch)
	samp := sampler.New(runner, cfg.RepoDir)

	rec := recorder.New(samp, logPath, time.Duration(cfg.Interval), committer, policy, out)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flagOnce {
		if err := rec.Cycle(ctx); err != nil {
			// Cycle errors are reported, not fatal, matching loop behavior
			out.Errorf("cycle failed: %v", err)
		}
		return nil
	}

	// Run blocks until the context is canceled; cancellation is the
	// normal way to stop, not an error worth a non-zero exit.
	_ = rec.Run(ctx)
	return nil
}
