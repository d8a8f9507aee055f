package creds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uplog/pkg/errors"
	"uplog/pkg/models"
)

func TestInjectToken(t *testing.T) {
	url, err := InjectToken("https://github.com/example/uptime.git", "tok123")
	require.NoError(t, err)
	assert.Equal(t, "https://tok123@github.com/example/uptime.git", url)
}

func TestInjectTokenRejectsSSH(t *testing.T) {
	_, err := InjectToken("ssh://git@github.com/example/uptime.git", "tok")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeRemoteConfig, errors.GetCode(err))
}

func TestRedact(t *testing.T) {
	assert.Equal(t,
		"https://***@github.com/example/uptime.git",
		Redact("https://tok123@github.com/example/uptime.git"))
	assert.Equal(t,
		"https://github.com/example/uptime.git",
		Redact("https://github.com/example/uptime.git"))
}

func TestIsPlaceholder(t *testing.T) {
	assert.True(t, IsPlaceholder(""))
	assert.True(t, IsPlaceholder("your_pat_here"))
	assert.True(t, IsPlaceholder("https://github.com/<user>/<repo>.git"))
	assert.False(t, IsPlaceholder("ghp_realtoken"))
	assert.False(t, IsPlaceholder("https://github.com/example/uptime.git"))
	assert.False(t, IsPlaceholder("https://host/repo.git"))
}

func TestEnvSource(t *testing.T) {
	t.Setenv("TEST_GH_TOKEN", "tok-from-env")
	t.Setenv("TEST_REPO_URL", "https://github.com/example/uptime.git")

	source := &EnvSource{TokenVar: "TEST_GH_TOKEN", URLVar: "TEST_REPO_URL"}
	c, err := source.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "tok-from-env", c.Token)
	assert.Equal(t, "https://github.com/example/uptime.git", c.URL)
}

func TestEnvSourceMissingToken(t *testing.T) {
	source := &EnvSource{TokenVar: "TEST_UNSET_TOKEN_VAR", URLVar: "TEST_UNSET_URL_VAR"}
	_, err := source.Resolve()
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeCredentialsUnset, errors.GetCode(err))
}

func TestEnvSourceURLIsOptional(t *testing.T) {
	t.Setenv("TEST_GH_TOKEN", "tok")

	source := &EnvSource{TokenVar: "TEST_GH_TOKEN", URLVar: "TEST_UNSET_URL_VAR"}
	c, err := source.Resolve()
	require.NoError(t, err)
	assert.Empty(t, c.URL)
}

func TestInlineSource(t *testing.T) {
	source := &InlineSource{Token: "tok", URL: "https://github.com/example/uptime.git"}
	c, err := source.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "tok", c.Token)
}

func TestInlineSourcePlaceholder(t *testing.T) {
	source := &InlineSource{Token: "your_pat_here", URL: "https://github.com/example/uptime.git"}
	_, err := source.Resolve()
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeCredentialsUnset, errors.GetCode(err))
}

func TestNewSource(t *testing.T) {
	cfg := models.Credentials{Source: models.SourceEnv, TokenEnv: "GH_TOKEN", URLEnv: "GITHUB_REPO_URL"}
	source, err := NewSource(cfg)
	require.NoError(t, err)
	assert.IsType(t, &EnvSource{}, source)

	cfg.Source = models.SourceInline
	source, err = NewSource(cfg)
	require.NoError(t, err)
	assert.IsType(t, &InlineSource{}, source)

	cfg.Source = models.SourceFile
	source, err = NewSource(cfg)
	require.NoError(t, err)
	assert.IsType(t, &FileSource{}, source)

	cfg.Source = "vault"
	_, err = NewSource(cfg)
	require.Error(t, err)
}
