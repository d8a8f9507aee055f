package creds

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uplog/pkg/errors"
)

func writeCredFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestParseFile(t *testing.T) {
	path := writeCredFile(t, `
# uplog credentials
GH_TOKEN=x
GITHUB_REPO_URL=https://host/repo.git
`)

	values, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"GH_TOKEN":        "x",
		"GITHUB_REPO_URL": "https://host/repo.git",
	}, values)
}

func TestParseFileTrimsWhitespace(t *testing.T) {
	path := writeCredFile(t, "  GH_TOKEN  =  x  \n")

	values, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x", values["GH_TOKEN"])
}

func TestParseFileValueMayContainEquals(t *testing.T) {
	path := writeCredFile(t, "GH_TOKEN=abc=def==\n")

	values, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "abc=def==", values["GH_TOKEN"])
}

func TestParseFileRejectsLineWithoutSeparator(t *testing.T) {
	path := writeCredFile(t, "GH_TOKEN=x\nthis line is broken\n")

	_, err := ParseFile(path)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeCredentialsFile, errors.GetCode(err))
	assert.Contains(t, err.Error(), ":2:")
}

func TestParseFileMissingFile(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeCredentialsFile, errors.GetCode(err))
}

func TestFileSourceResolve(t *testing.T) {
	path := writeCredFile(t, "GH_TOKEN=tok\nGITHUB_REPO_URL=https://github.com/example/uptime.git\n")

	source := &FileSource{Path: path}
	c, err := source.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "tok", c.Token)
	assert.Equal(t, "https://github.com/example/uptime.git", c.URL)
}

func TestFileSourceAcceptsMinimalConfig(t *testing.T) {
	path := writeCredFile(t, "GH_TOKEN=x\nGITHUB_REPO_URL=https://host/repo.git\n")

	source := &FileSource{Path: path}
	c, err := source.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "x", c.Token)
	assert.Equal(t, "https://host/repo.git", c.URL)
}

func TestFileSourceMissingKeys(t *testing.T) {
	path := writeCredFile(t, "GH_TOKEN=tok\n")

	source := &FileSource{Path: path}
	_, err := source.Resolve()
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeCredentialsUnset, errors.GetCode(err))
}
