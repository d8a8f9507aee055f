package git

import (
	"context"
	"errors"
	"strings"
)

// Client issues git commands against one working directory.
type Client struct {
	runner Runner
	dir    string
}

func NewClient(runner Runner, dir string) *Client {
	return &Client{runner: runner, dir: dir}
}

// Dir returns the working directory the client operates on.
func (c *Client) Dir() string {
	return c.dir
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	res, err := c.runner.Run(ctx, c.dir, "git", args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// Init creates an empty repository in the working directory.
func (c *Client) Init(ctx context.Context) error {
	_, err := c.run(ctx, "init")
	return err
}

// Add stages a path.
func (c *Client) Add(ctx context.Context, path string) error {
	_, err := c.run(ctx, "add", path)
	return err
}

// HasStagedChanges reports whether the working tree differs from HEAD,
// using porcelain status output. Empty output means nothing to commit.
func (c *Client) HasStagedChanges(ctx context.Context) (bool, error) {
	out, err := c.run(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// Commit records staged changes with the given message.
func (c *Client) Commit(ctx context.Context, message string) error {
	_, err := c.run(ctx, "commit", "-m", message)
	return err
}

// Push sends the branch to the remote.
func (c *Client) Push(ctx context.Context, remote, branch string) error {
	_, err := c.run(ctx, "push", remote, branch)
	return err
}

// PushSetUpstream pushes and records the remote branch as upstream.
func (c *Client) PushSetUpstream(ctx context.Context, remote, branch string) error {
	_, err := c.run(ctx, "push", "--set-upstream", remote, branch)
	return err
}

// Remotes lists configured remote names.
func (c *Client) Remotes(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, "remote")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// RemoteGetURL returns the URL bound to a remote name, or ok=false if the
// remote does not exist.
func (c *Client) RemoteGetURL(ctx context.Context, name string) (url string, ok bool, err error) {
	out, err := c.run(ctx, "remote", "get-url", name)
	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			// get-url exits non-zero when the remote is absent
			return "", false, nil
		}
		return "", false, err
	}
	return out, true, nil
}

// RemoteAdd binds a new remote name to a URL.
func (c *Client) RemoteAdd(ctx context.Context, name, url string) error {
	_, err := c.run(ctx, "remote", "add", name, url)
	return err
}

// RemoteSetURL rebinds an existing remote name to a URL.
func (c *Client) RemoteSetURL(ctx context.Context, name, url string) error {
	_, err := c.run(ctx, "remote", "set-url", name, url)
	return err
}

// PullRebase replays local commits on top of the remote branch.
func (c *Client) PullRebase(ctx context.Context, remote, branch string) error {
	_, err := c.run(ctx, "pull", "--rebase", remote, branch)
	return err
}

// RebaseAbort cancels an in-progress rebase.
func (c *Client) RebaseAbort(ctx context.Context) error {
	_, err := c.run(ctx, "rebase", "--abort")
	return err
}

// ResetLastCommit undoes the most recent commit, keeping the working tree.
func (c *Client) ResetLastCommit(ctx context.Context) error {
	_, err := c.run(ctx, "reset", "HEAD~1")
	return err
}
