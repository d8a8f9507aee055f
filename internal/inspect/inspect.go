// Package inspect reads repository state for display without spawning a
// git process.
package inspect

import (
	"fmt"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"uplog/internal/creds"
)

// CommitInfo is one commit as shown by `uplog status`.
type CommitInfo struct {
	ShortHash string
	Message   string
	When      time.Time
}

// RemoteInfo is one configured remote with its token redacted.
type RemoteInfo struct {
	Name string
	URL  string
}

type Inspector struct {
	repo *gogit.Repository
}

// Open opens an existing repository; it fails if dir is not one.
func Open(dir string) (*Inspector, error) {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot open repository at %s: %w", dir, err)
	}
	return &Inspector{repo: repo}, nil
}

// Branch returns the short name of the checked-out branch.
func (i *Inspector) Branch() (string, error) {
	head, err := i.repo.Head()
	if err != nil {
		return "", fmt.Errorf("cannot resolve HEAD: %w", err)
	}
	return head.Name().Short(), nil
}

// RecentCommits returns up to n commits from HEAD, newest first.
func (i *Inspector) RecentCommits(n int) ([]CommitInfo, error) {
	head, err := i.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("cannot resolve HEAD: %w", err)
	}

	iter, err := i.repo.Log(&gogit.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("cannot read commit log: %w", err)
	}
	defer iter.Close()

	var commits []CommitInfo
	err = iter.ForEach(func(c *object.Commit) error {
		if len(commits) >= n {
			return storer.ErrStop
		}
		commits = append(commits, CommitInfo{
			ShortHash: c.Hash.String()[:7],
			Message:   firstLine(c.Message),
			When:      c.Author.When,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return commits, nil
}

// Remotes lists configured remotes with embedded tokens redacted.
func (i *Inspector) Remotes() ([]RemoteInfo, error) {
	remotes, err := i.repo.Remotes()
	if err != nil {
		return nil, fmt.Errorf("cannot list remotes: %w", err)
	}

	infos := make([]RemoteInfo, 0, len(remotes))
	for _, r := range remotes {
		cfg := r.Config()
		url := ""
		if len(cfg.URLs) > 0 {
			url = creds.Redact(cfg.URLs[0])
		}
		infos = append(infos, RemoteInfo{Name: cfg.Name, URL: url})
	}
	return infos, nil
}

func firstLine(s string) string {
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
