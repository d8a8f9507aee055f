package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"uplog/internal/config"
	"uplog/internal/creds"
	"uplog/pkg/models"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration setup",
	Run:   runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) {
	fmt.Println("🚀 Setting up uplog...")
	fmt.Println()

	// Check if config already exists
	if config.Exists() {
		var overwrite bool
		prompt := &survey.Confirm{
			Message: "Configuration already exists. Do you want to overwrite it?",
			Default: false,
		}
		survey.AskOne(prompt, &overwrite)
		if !overwrite {
			fmt.Println("Setup cancelled.")
			return
		}
	}

	cfg := &models.Config{}
	cfg.ApplyDefaults()

	fmt.Println("📄 Recorder Configuration")
	fmt.Println("-------------------------")

	answers := struct {
		RepoDir  string
		LogFile  string
		Interval string
		Remote   string
		Branch   string
		Policy   string
	}{}

	recorderQs := []*survey.Question{
		{
			Name: "repodir",
			Prompt: &survey.Input{
				Message: "Repository directory:",
				Default: ".",
			},
			Validate: survey.Required,
		},
		{
			Name: "logfile",
			Prompt: &survey.Input{
				Message: "Log file name:",
				Default: models.DefaultLogFile,
			},
			Validate: survey.Required,
		},
		{
			Name: "interval",
			Prompt: &survey.Input{
				Message: "Recording interval (e.g. 5m, 1h):",
				Default: "5m",
			},
			Validate: validateDuration,
		},
		{
			Name: "remote",
			Prompt: &survey.Input{
				Message: "Remote name:",
				Default: models.DefaultRemote,
			},
			Validate: survey.Required,
		},
		{
			Name: "branch",
			Prompt: &survey.Input{
				Message: "Branch:",
				Default: models.DefaultBranch,
			},
			Validate: survey.Required,
		},
		{
			Name: "policy",
			Prompt: &survey.Select{
				Message: "Push policy:",
				Options: []string{string(models.PolicyFallback), string(models.PolicyPlain), string(models.PolicyRebase)},
				Default: string(models.PolicyFallback),
			},
		},
	}

	if err := survey.Ask(recorderQs, &answers); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	cfg.RepoDir = answers.RepoDir
	cfg.LogFile = answers.LogFile
	cfg.Remote = answers.Remote
	cfg.Branch = answers.Branch
	cfg.Sync.Policy = models.SyncPolicy(answers.Policy)
	if d, err := time.ParseDuration(answers.Interval); err == nil {
		cfg.Interval = models.Duration(d)
	}

	fmt.Println()
	fmt.Println("🔑 Credentials")
	fmt.Println("-------------------------")

	var sourceChoice string
	survey.AskOne(&survey.Select{
		Message: "Where should the access token come from?",
		Options: []string{
			"environment variable (GH_TOKEN)",
			"OS keyring",
			"config file (encrypted)",
			"separate key=value file",
		},
	}, &sourceChoice)

	switch sourceChoice {
	case "OS keyring":
		cfg.Credentials.Source = models.SourceKeyring
		token := askToken()
		if err := creds.StoreToken(cfg.Credentials.KeyringService, token); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		cfg.Credentials.URL = askRepoURL()
	case "config file (encrypted)":
		cfg.Credentials.Source = models.SourceInline
		token := askToken()
		encrypted, err := creds.EncryptValue(token)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		cfg.Credentials.Token = encrypted
		cfg.Credentials.URL = askRepoURL()
	case "separate key=value file":
		cfg.Credentials.Source = models.SourceFile
		survey.AskOne(&survey.Input{
			Message: "Path to credentials file:",
		}, &cfg.Credentials.File, survey.WithValidator(survey.Required))
	default:
		cfg.Credentials.Source = models.SourceEnv
	}

	if err := config.Save(cfg); err != nil {
		fmt.Printf("Error saving configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("✅ Configuration written to %s\n", config.GetConfigFile())
	fmt.Println("Run 'uplog run' to start recording.")
}

func askToken() string {
	var token string
	survey.AskOne(&survey.Password{
		Message: "Personal access token:",
	}, &token, survey.WithValidator(survey.Required))
	return token
}

func askRepoURL() string {
	var url string
	survey.AskOne(&survey.Input{
		Message: "Repository URL (https://github.com/<user>/<repo>.git):",
	}, &url, survey.WithValidator(survey.Required))
	return url
}

func validateDuration(val interface{}) error {
	s, ok := val.(string)
	if !ok {
		return fmt.Errorf("expected a string")
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration: %v", err)
	}
	if d <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	return nil
}
