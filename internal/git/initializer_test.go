package git_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uplog/internal/creds"
	"uplog/internal/git"
	"uplog/internal/testutil"
	"uplog/pkg/errors"
)

func newInitializer(t *testing.T) (*git.Initializer, *testutil.FakeRunner, string) {
	t.Helper()
	dir := t.TempDir()
	runner := testutil.NewFakeRunner()
	client := git.NewClient(runner, dir)
	return git.NewInitializer(client, "uptime.log", "origin"), runner, dir
}

func validCreds() creds.Credentials {
	return creds.Credentials{
		Token: "tok",
		URL:   "https://github.com/example/uptime.git",
	}
}

func markInitialized(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*\n!uptime.log\n"), 0644))
}

func TestInitializeFreshDirectory(t *testing.T) {
	initializer, runner, dir := newInitializer(t)

	// get-url reports no remote yet
	runner.Fail("git remote get-url origin", "error: No such remote 'origin'")

	require.NoError(t, initializer.Initialize(context.Background(), validCreds()))

	calls := runner.CallStrings()
	assert.Contains(t, calls, "git init")
	assert.Contains(t, calls, "git add .gitignore")
	assert.Contains(t, calls, "git commit -m chore: ignore everything but the uptime log")
	assert.Contains(t, calls, "git remote add origin https://tok@github.com/example/uptime.git")

	content, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, "*\n!uptime.log\n", string(content))
}

func TestInitializeSkipsExistingRepoAndIgnoreFile(t *testing.T) {
	initializer, runner, dir := newInitializer(t)
	markInitialized(t, dir)
	runner.Script("git remote get-url origin",
		testutil.Response{Stdout: "https://tok@github.com/example/uptime.git\n"})

	require.NoError(t, initializer.Initialize(context.Background(), validCreds()))

	calls := runner.CallStrings()
	assert.NotContains(t, calls, "git init")
	assert.Zero(t, runner.CallCount("git add"))
	assert.Zero(t, runner.CallCount("git commit"))
}

func TestInitializeRemoteIdempotence(t *testing.T) {
	// When the remote already points at the target URL, no
	// remote-modifying command may run.
	initializer, runner, dir := newInitializer(t)
	markInitialized(t, dir)
	runner.Script("git remote get-url origin",
		testutil.Response{Stdout: "https://tok@github.com/example/uptime.git"})

	require.NoError(t, initializer.Initialize(context.Background(), validCreds()))

	assert.Zero(t, runner.CallCount("git remote add"))
	assert.Zero(t, runner.CallCount("git remote set-url"))
}

func TestInitializeUpdatesChangedRemote(t *testing.T) {
	initializer, runner, dir := newInitializer(t)
	markInitialized(t, dir)
	runner.Script("git remote get-url origin",
		testutil.Response{Stdout: "https://old@github.com/example/uptime.git"})

	require.NoError(t, initializer.Initialize(context.Background(), validCreds()))

	assert.Equal(t, 1, runner.CallCount("git remote set-url origin https://tok@github.com/example/uptime.git"))
	assert.Zero(t, runner.CallCount("git remote add"))
}

func TestInitializeRejectsPlaceholderToken(t *testing.T) {
	initializer, _, dir := newInitializer(t)
	markInitialized(t, dir)

	err := initializer.Initialize(context.Background(), creds.Credentials{
		Token: "your_pat_here",
		URL:   "https://github.com/example/uptime.git",
	})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeCredentialsUnset, errors.GetCode(err))
}

func TestInitializeEnvModeRequiresExistingRemote(t *testing.T) {
	// No URL resolved: the remote must already be configured.
	initializer, runner, dir := newInitializer(t)
	markInitialized(t, dir)

	err := initializer.Initialize(context.Background(), creds.Credentials{Token: "tok"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeRemoteConfig, errors.GetCode(err))

	runner.Script("git remote", testutil.Response{Stdout: "origin\nupstream\n"})
	require.NoError(t, initializer.Initialize(context.Background(), creds.Credentials{Token: "tok"}))
	assert.Zero(t, runner.CallCount("git remote add"))
	assert.Zero(t, runner.CallCount("git remote set-url"))
}
