// Package sampler obtains the current system uptime string.
package sampler

import (
	"context"
	"strings"

	"uplog/internal/git"
	"uplog/pkg/errors"
)

// Sampler produces one uptime observation per call.
type Sampler interface {
	Sample(ctx context.Context) (string, error)
}

// UptimeSampler shells out to the uptime binary and returns its trimmed
// standard output. Stderr, if any, travels with the error for the
// operator to see.
type UptimeSampler struct {
	runner git.Runner
	dir    string
}

func New(runner git.Runner, dir string) *UptimeSampler {
	return &UptimeSampler{runner: runner, dir: dir}
}

func (s *UptimeSampler) Sample(ctx context.Context) (string, error) {
	res, err := s.runner.Run(ctx, s.dir, "uptime")
	if err != nil {
		return "", errors.SampleError("uptime command failed", err)
	}
	return strings.TrimSpace(res.Stdout), nil
}
