package models

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so yaml configs can say "5m" or "90s".
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// CredentialSource identifies which loader strategy resolves the token and URL.
type CredentialSource string

const (
	SourceEnv     CredentialSource = "env"
	SourceInline  CredentialSource = "inline"
	SourceFile    CredentialSource = "file"
	SourceKeyring CredentialSource = "keyring"
)

// SyncPolicy identifies how a cycle's commit is propagated to the remote.
type SyncPolicy string

const (
	PolicyPlain    SyncPolicy = "plain"
	PolicyFallback SyncPolicy = "fallback"
	PolicyRebase   SyncPolicy = "rebase"
)

// Default values applied by ApplyDefaults.
const (
	DefaultLogFile       = "uptime.log"
	DefaultRemote        = "origin"
	DefaultBranch        = "main"
	DefaultInterval      = Duration(5 * time.Minute)
	DefaultCommitMessage = "chore: record system uptime"
	DefaultTokenEnv      = "GH_TOKEN"
	DefaultURLEnv        = "GITHUB_REPO_URL"
	DefaultKeyringSvc    = "uplog"
)

type Config struct {
	LogFile       string        `yaml:"log_file"`
	RepoDir       string        `yaml:"repo_dir"`
	Interval      Duration      `yaml:"interval"`
	Remote        string        `yaml:"remote"`
	Branch        string        `yaml:"branch"`
	CommitMessage string        `yaml:"commit_message"`
	Credentials   Credentials   `yaml:"credentials"`
	Sync          Sync          `yaml:"sync"`
}

// Credentials configures the loader strategy and its inputs. Token may be
// stored ENC[...]-wrapped; resolution decrypts it transparently.
type Credentials struct {
	Source         CredentialSource `yaml:"source"`
	Token          string           `yaml:"token,omitempty"`
	URL            string           `yaml:"url,omitempty"`
	File           string           `yaml:"file,omitempty"`
	TokenEnv       string           `yaml:"token_env,omitempty"`
	URLEnv         string           `yaml:"url_env,omitempty"`
	KeyringService string           `yaml:"keyring_service,omitempty"`
}

type Sync struct {
	Policy SyncPolicy `yaml:"policy"`
}

// ApplyDefaults fills in zero-valued fields with the documented defaults.
func (c *Config) ApplyDefaults() {
	if c.LogFile == "" {
		c.LogFile = DefaultLogFile
	}
	if c.RepoDir == "" {
		c.RepoDir = "."
	}
	if c.Interval == 0 {
		c.Interval = DefaultInterval
	}
	if c.Remote == "" {
		c.Remote = DefaultRemote
	}
	if c.Branch == "" {
		c.Branch = DefaultBranch
	}
	if c.CommitMessage == "" {
		c.CommitMessage = DefaultCommitMessage
	}
	if c.Credentials.Source == "" {
		c.Credentials.Source = SourceEnv
	}
	if c.Credentials.TokenEnv == "" {
		c.Credentials.TokenEnv = DefaultTokenEnv
	}
	if c.Credentials.URLEnv == "" {
		c.Credentials.URLEnv = DefaultURLEnv
	}
	if c.Credentials.KeyringService == "" {
		c.Credentials.KeyringService = DefaultKeyringSvc
	}
	if c.Sync.Policy == "" {
		c.Sync.Policy = PolicyFallback
	}
}

// Validate checks enum values and ranges. Called after ApplyDefaults,
// before any repository work begins.
func (c *Config) Validate() error {
	switch c.Credentials.Source {
	case SourceEnv, SourceInline, SourceFile, SourceKeyring:
	default:
		return fmt.Errorf("invalid credentials.source %q (want env, inline, file, or keyring)", c.Credentials.Source)
	}

	switch c.Sync.Policy {
	case PolicyPlain, PolicyFallback, PolicyRebase:
	default:
		return fmt.Errorf("invalid sync.policy %q (want plain, fallback, or rebase)", c.Sync.Policy)
	}

	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}

	if c.Credentials.Source == SourceFile && c.Credentials.File == "" {
		return fmt.Errorf("credentials.file is required when credentials.source is file")
	}

	return nil
}
