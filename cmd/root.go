package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"uplog/internal/config"
	"uplog/pkg/models"
)

var (
	flagQuiet   bool
	flagVerbose bool

	rootCmd = &cobra.Command{
		Use:   "uplog",
		Short: "Record system uptime to a git-backed log",
		Long: "uplog periodically samples system uptime, appends it to a log file,\n" +
			"and commits and pushes that file to a remote repository.",
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
}

func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(config.GetConfigPath())

	viper.SetEnvPrefix("UPLOG")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found is okay; defaults apply
	}
}

// loadRuntimeConfig loads the config file and overlays any flag or
// UPLOG_* environment overrides bound through viper.
func loadRuntimeConfig() (*models.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if viper.IsSet("interval") {
		cfg.Interval = models.Duration(viper.GetDuration("interval"))
	}
	if viper.IsSet("repo_dir") {
		cfg.RepoDir = viper.GetString("repo_dir")
	}
	if viper.IsSet("remote") {
		cfg.Remote = viper.GetString("remote")
	}
	if viper.IsSet("branch") {
		cfg.Branch = viper.GetString("branch")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
