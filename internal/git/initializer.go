package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"uplog/internal/common"
	"uplog/internal/creds"
	"uplog/pkg/errors"
)

const (
	// IgnoreFile is the ignore-rule file written once per repository.
	IgnoreFile = ".gitignore"

	ignoreCommitMessage = "chore: ignore everything but the uptime log"
)

// Initializer idempotently brings a working directory to a state where
// commits can be created and pushed to an authenticated remote. Safe to
// re-run; it only issues mutating commands when something is missing or
// different.
type Initializer struct {
	client  *Client
	logFile string
	remote  string
}

func NewInitializer(client *Client, logFile, remote string) *Initializer {
	return &Initializer{client: client, logFile: logFile, remote: remote}
}

// Initialize runs all initialization steps. No network I/O happens here;
// remote add/set-url only touch local metadata.
func (i *Initializer) Initialize(ctx context.Context, c creds.Credentials) error {
	if err := i.ensureRepository(ctx); err != nil {
		return err
	}
	if err := i.ensureIgnoreFile(ctx); err != nil {
		return err
	}
	if err := i.validate(c); err != nil {
		return err
	}
	return i.reconcileRemote(ctx, c)
}

func (i *Initializer) ensureRepository(ctx context.Context) error {
	gitDir := filepath.Join(i.client.Dir(), ".git")
	if _, err := os.Stat(gitDir); err == nil {
		return nil
	}

	if err := i.client.Init(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeRepoInit, "git init failed")
	}
	return nil
}

// ensureIgnoreFile writes an ignore file excluding everything except the
// uptime log, and commits it immediately so the repository starts clean.
func (i *Initializer) ensureIgnoreFile(ctx context.Context) error {
	path := filepath.Join(i.client.Dir(), IgnoreFile)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	content := fmt.Sprintf("*\n!%s\n", i.logFile)
	if err := os.WriteFile(path, []byte(content), common.FilePermissionNormal); err != nil {
		return errors.FileError("failed to write ignore file", path, err)
	}

	if err := i.client.Add(ctx, IgnoreFile); err != nil {
		return errors.Wrap(err, errors.ErrCodeRepoInit, "failed to stage ignore file")
	}
	if err := i.client.Commit(ctx, ignoreCommitMessage); err != nil {
		return errors.Wrap(err, errors.ErrCodeRepoInit, "failed to commit ignore file")
	}
	return nil
}

func (i *Initializer) validate(c creds.Credentials) error {
	if creds.IsPlaceholder(c.Token) {
		return errors.CredentialsError("token is unset or still a placeholder", nil)
	}
	// An empty URL is only valid when the remote is already configured
	// (the env source with a pre-authenticated remote).
	if c.URL != "" && creds.IsPlaceholder(c.URL) {
		return errors.CredentialsError("repository URL is still a placeholder", nil)
	}
	return nil
}

// reconcileRemote binds the remote name to the authenticated URL: adds it
// when absent, updates it when different, and issues no command when the
// binding already matches.
func (i *Initializer) reconcileRemote(ctx context.Context, c creds.Credentials) error {
	if c.URL == "" {
		return i.requireExistingRemote(ctx)
	}

	authURL, err := creds.InjectToken(c.URL, c.Token)
	if err != nil {
		return err
	}

	current, ok, err := i.client.RemoteGetURL(ctx, i.remote)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeRemoteConfig, "failed to query remote URL")
	}

	switch {
	case !ok:
		if err := i.client.RemoteAdd(ctx, i.remote, authURL); err != nil {
			return errors.Wrap(err, errors.ErrCodeRemoteConfig,
				fmt.Sprintf("failed to add remote %q", i.remote))
		}
	case current != authURL:
		if err := i.client.RemoteSetURL(ctx, i.remote, authURL); err != nil {
			return errors.Wrap(err, errors.ErrCodeRemoteConfig,
				fmt.Sprintf("failed to update remote %q", i.remote))
		}
	default:
		// Already bound to the target URL
	}
	return nil
}

func (i *Initializer) requireExistingRemote(ctx context.Context) error {
	remotes, err := i.client.Remotes(ctx)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeRemoteConfig, "failed to list remotes")
	}
	for _, name := range remotes {
		if name == i.remote {
			return nil
		}
	}
	return errors.New(errors.ErrCodeRemoteConfig,
		fmt.Sprintf("no repository URL configured and remote %q does not exist", i.remote)).
		WithSeverity(errors.SeverityCritical).
		WithSuggestions(
			fmt.Sprintf("git remote add %s https://<user>:$GH_TOKEN@github.com/<user>/<repo>.git", i.remote),
			"or set credentials.url in the config file",
		)
}
