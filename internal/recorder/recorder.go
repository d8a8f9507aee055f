// Package recorder owns the sample→append→commit→sync cycle and the
// fixed-interval loop that drives it.
package recorder

import (
	"context"
	"fmt"
	"os"
	"time"

	"uplog/internal/common"
	"uplog/internal/git"
	"uplog/internal/sampler"
	"uplog/pkg/errors"
)

// Reporter is the slice of operator output the recorder needs.
type Reporter interface {
	Infof(format string, args ...interface{})
	Successf(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Recorder runs recording cycles. Cycle errors never stop the loop; only
// context cancellation does.
type Recorder struct {
	sampler  sampler.Sampler
	logPath  string
	interval time.Duration
	commit   *git.Committer
	sync     git.SyncPolicy
	ui       Reporter

	// now is replaceable in tests so appended timestamps are deterministic.
	now func() time.Time
}

func New(s sampler.Sampler, logPath string, interval time.Duration, commit *git.Committer, sync git.SyncPolicy, ui Reporter) *Recorder {
	return &Recorder{
		sampler:  s,
		logPath:  logPath,
		interval: interval,
		commit:   commit,
		sync:     sync,
		ui:       ui,
		now:      time.Now,
	}
}

// Run performs one cycle immediately, then one per interval tick until
// the context is canceled. The in-flight cycle always completes.
func (r *Recorder) Run(ctx context.Context) error {
	r.ui.Infof("recording uptime every %s to %s", r.interval, r.logPath)

	if err := r.Cycle(ctx); err != nil {
		r.ui.Errorf("cycle failed: %v", err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.ui.Infof("shutting down")
			return ctx.Err()
		case <-ticker.C:
			if err := r.Cycle(ctx); err != nil {
				r.ui.Errorf("cycle failed: %v", err)
			}
		}
	}
}

// Cycle performs one complete observation: sample, append, commit, sync.
// Each stage failing skips the rest of the cycle.
func (r *Recorder) Cycle(ctx context.Context) error {
	uptime, err := r.sampler.Sample(ctx)
	if err != nil {
		return err
	}
	r.ui.Infof("uptime: %s", uptime)

	if err := r.Append(uptime); err != nil {
		return err
	}

	committed, err := r.commit.Commit(ctx)
	if err != nil {
		return err
	}
	if !committed {
		// Duplicate observation; nothing new to push
		r.ui.Infof("no changes to commit")
		return nil
	}

	if err := r.sync.Sync(ctx, committed); err != nil {
		return err
	}

	r.ui.Successf("recorded and pushed")
	return nil
}

// Append writes one timestamped observation to the log file. The file is
// append-only; entries are never rewritten or reordered.
func (r *Recorder) Append(uptime string) error {
	f, err := os.OpenFile(r.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, common.FilePermissionNormal)
	if err != nil {
		return errors.FileError("failed to open log file", r.logPath, err)
	}
	defer f.Close()

	line := fmt.Sprintf("%s: %s\n", r.now().Format(time.RFC3339), uptime)
	if _, err := f.WriteString(line); err != nil {
		return errors.FileError("failed to append to log file", r.logPath, err)
	}
	return nil
}

// SetClock overrides the timestamp source; tests only.
func (r *Recorder) SetClock(now func() time.Time) {
	r.now = now
}
