package git_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uplog/internal/git"
)

func TestExecRunnerCapturesStdout(t *testing.T) {
	runner := git.NewExecRunner()

	res, err := runner.Run(context.Background(), t.TempDir(), "sh", "-c", "echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", res.Stdout)
	assert.Equal(t, 0, res.ExitCode)
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	runner := git.NewExecRunner()

	res, err := runner.Run(context.Background(), t.TempDir(), "sh", "-c", "echo oops >&2; exit 3")
	require.Error(t, err)
	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, res.Stderr, "oops")

	var cmdErr *git.CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Contains(t, cmdErr.Error(), "exited with code 3")
	assert.Contains(t, cmdErr.Error(), "oops")
}

func TestExecRunnerCommandNotFound(t *testing.T) {
	runner := git.NewExecRunner()

	_, err := runner.Run(context.Background(), t.TempDir(), "definitely-not-a-command-xyz")
	require.Error(t, err)

	var cmdErr *git.CommandError
	assert.False(t, errors.As(err, &cmdErr))
}
