// Package creds resolves the token and repository URL that authenticate
// pushes. The four sources are interchangeable behind the Source interface;
// exactly one is selected by configuration at startup and resolved once.
package creds

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"uplog/pkg/errors"
	"uplog/pkg/models"
)

// Credentials is the fully resolved pair the repository initializer needs.
// URL may be empty for the env source, in which case the remote must
// already be configured with an embedded token.
type Credentials struct {
	Token string
	URL   string
}

// Source resolves credentials or fails definitively. A failure aborts the
// process before the recording loop starts.
type Source interface {
	Resolve() (Credentials, error)
}

// Placeholder values that documentation examples use; treating them as
// unset catches a copied-but-unedited config.
var placeholders = []string{
	"your_pat_here",
	"YOUR_TOKEN",
	"changeme",
}

// IsPlaceholder reports whether a value is empty or a documented placeholder.
func IsPlaceholder(value string) bool {
	if value == "" {
		return true
	}
	for _, p := range placeholders {
		if value == p {
			return true
		}
	}
	return strings.Contains(value, "<") && strings.Contains(value, ">")
}

// NewSource builds the configured loader strategy.
func NewSource(cfg models.Credentials) (Source, error) {
	switch cfg.Source {
	case models.SourceEnv:
		return &EnvSource{TokenVar: cfg.TokenEnv, URLVar: cfg.URLEnv}, nil
	case models.SourceInline:
		return &InlineSource{Token: cfg.Token, URL: cfg.URL}, nil
	case models.SourceFile:
		return &FileSource{Path: cfg.File}, nil
	case models.SourceKeyring:
		return &KeyringSource{Service: cfg.KeyringService, URL: cfg.URL}, nil
	default:
		return nil, errors.ConfigError(
			fmt.Sprintf("unknown credential source %q", cfg.Source), "credentials.source")
	}
}

// EnvSource reads the token (and optionally the URL) from the process
// environment. An empty URL is not an error: the remote is then expected
// to be pre-configured with the token already embedded.
type EnvSource struct {
	TokenVar string
	URLVar   string
}

func (s *EnvSource) Resolve() (Credentials, error) {
	token := os.Getenv(s.TokenVar)
	if token == "" {
		return Credentials{}, errors.CredentialsError(
			fmt.Sprintf("environment variable %s is not set", s.TokenVar), nil)
	}

	token, err := MaybeDecrypt(token)
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{Token: token, URL: os.Getenv(s.URLVar)}, nil
}

// InlineSource carries token and URL fixed in the configuration. It
// performs no parsing, only the placeholder-equality check.
type InlineSource struct {
	Token string
	URL   string
}

func (s *InlineSource) Resolve() (Credentials, error) {
	if IsPlaceholder(s.Token) || IsPlaceholder(s.URL) {
		return Credentials{}, errors.CredentialsError(
			"inline token or url is unset or still a placeholder", nil)
	}

	token, err := MaybeDecrypt(s.Token)
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{Token: token, URL: s.URL}, nil
}

// InjectToken embeds the token into the URL at the scheme boundary,
// producing e.g. https://TOKEN@github.com/user/repo.git. Only http(s)
// URLs are supported; pushes over ssh authenticate out of band.
func InjectToken(rawURL, token string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeRemoteConfig, "repository URL is not parseable")
	}

	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return "", errors.New(errors.ErrCodeRemoteConfig,
			fmt.Sprintf("cannot embed a token in a %q URL, use https", parsed.Scheme))
	}

	parsed.User = url.User(token)
	return parsed.String(), nil
}

// Redact replaces an embedded token in a URL for operator-facing output.
func Redact(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.User == nil {
		return rawURL
	}
	// url.Userinfo percent-encodes the marker, so splice it in by hand.
	parsed.User = nil
	return strings.Replace(parsed.String(), "://", "://***@", 1)
}
