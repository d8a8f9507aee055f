package git

import (
	"context"

	"uplog/pkg/errors"
	"uplog/pkg/models"
)

// Committer stages the log file and creates a commit when the working
// tree changed. A cycle that produced no delta is reported as committed
// false with a nil error.
type Committer struct {
	client  *Client
	logFile string
	message string
}

func NewCommitter(client *Client, logFile, message string) *Committer {
	return &Committer{client: client, logFile: logFile, message: message}
}

func (c *Committer) Commit(ctx context.Context) (committed bool, err error) {
	if err := c.client.Add(ctx, c.logFile); err != nil {
		return false, errors.Wrap(err, errors.ErrCodeCommitFailed, "failed to stage log file")
	}

	changed, err := c.client.HasStagedChanges(ctx)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeCommitFailed, "failed to check working tree status")
	}
	if !changed {
		return false, nil
	}

	if err := c.client.Commit(ctx, c.message); err != nil {
		return false, errors.Wrap(err, errors.ErrCodeCommitFailed, "failed to create commit")
	}
	return true, nil
}

// SyncPolicy propagates the cycle's commit to the remote. committed tells
// the policy whether this cycle actually created a commit, which the
// rebase policy needs to know how far to roll back on failure.
type SyncPolicy interface {
	Sync(ctx context.Context, committed bool) error
}

// NewSyncPolicy builds the configured policy.
func NewSyncPolicy(policy models.SyncPolicy, client *Client, remote, branch string) SyncPolicy {
	switch policy {
	case models.PolicyPlain:
		return &PlainSync{client: client, remote: remote, branch: branch}
	case models.PolicyRebase:
		return &RebaseSync{client: client, remote: remote, branch: branch}
	default:
		return &FallbackSync{client: client, remote: remote, branch: branch}
	}
}

// PlainSync pushes once and reports any failure.
type PlainSync struct {
	client *Client
	remote string
	branch string
}

func (s *PlainSync) Sync(ctx context.Context, _ bool) error {
	if err := s.client.Push(ctx, s.remote, s.branch); err != nil {
		return errors.Wrap(err, errors.ErrCodePushFailed, "push failed")
	}
	return nil
}

// FallbackSync pushes, and on any failure retries once with an explicit
// upstream-setting push. The retry always triggers on failure; inspecting
// the error text for a particular cause proved unreliable.
type FallbackSync struct {
	client *Client
	remote string
	branch string
}

func (s *FallbackSync) Sync(ctx context.Context, _ bool) error {
	if err := s.client.Push(ctx, s.remote, s.branch); err == nil {
		return nil
	}

	if err := s.client.PushSetUpstream(ctx, s.remote, s.branch); err != nil {
		return errors.Wrap(err, errors.ErrCodePushFailed, "push failed after set-upstream retry")
	}
	return nil
}

// RebaseSync pulls with rebase before pushing so the push is fast-forward
// even when the remote moved. A failed rebase is aborted and the cycle's
// commit undone, leaving history exactly as it was before the cycle so
// the next one retries cleanly.
type RebaseSync struct {
	client *Client
	remote string
	branch string
}

func (s *RebaseSync) Sync(ctx context.Context, committed bool) error {
	if err := s.client.PullRebase(ctx, s.remote, s.branch); err != nil {
		s.rollback(ctx, committed)
		return errors.Wrap(err, errors.ErrCodeRebaseFailed, "pull --rebase failed, cycle rolled back")
	}

	fallback := &FallbackSync{client: s.client, remote: s.remote, branch: s.branch}
	return fallback.Sync(ctx, committed)
}

// rollback restores pre-cycle state: abort the stuck rebase, then undo
// the speculative commit if this cycle created one.
func (s *RebaseSync) rollback(ctx context.Context, committed bool) {
	// Best effort; abort fails harmlessly when no rebase is in progress
	// (e.g. the pull failed before starting one).
	_ = s.client.RebaseAbort(ctx)

	if committed {
		_ = s.client.ResetLastCommit(ctx)
	}
}
