package creds

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"uplog/pkg/errors"
)

// Keys recognized in a credentials file.
const (
	KeyToken = "GH_TOKEN"
	KeyURL   = "GITHUB_REPO_URL"
)

// FileSource reads credentials from a key=value file. Blank lines and
// lines starting with '#' are skipped; every other line must contain an
// '=' separator or the whole file is rejected.
type FileSource struct {
	Path string
}

func (s *FileSource) Resolve() (Credentials, error) {
	values, err := ParseFile(s.Path)
	if err != nil {
		return Credentials{}, err
	}

	token := values[KeyToken]
	url := values[KeyURL]
	if IsPlaceholder(token) || IsPlaceholder(url) {
		return Credentials{}, errors.CredentialsError(
			fmt.Sprintf("%s must define %s and %s", s.Path, KeyToken, KeyURL), nil)
	}

	token, err = MaybeDecrypt(token)
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{Token: token, URL: url}, nil
}

// ParseFile parses a key=value credentials file into a map, trimming
// whitespace around both key and value. The split is on the first '=' so
// values may themselves contain '='.
func ParseFile(path string) (map[string]string, error) {
	f, err := os.Open(path) // #nosec G304 - operator-supplied path
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCredentialsFile,
			fmt.Sprintf("cannot open credentials file %s", path))
	}
	defer f.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, errors.New(errors.ErrCodeCredentialsFile,
				fmt.Sprintf("%s:%d: line has no '=' separator", path, lineNo))
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCredentialsFile,
			fmt.Sprintf("error reading credentials file %s", path))
	}

	return values, nil
}
