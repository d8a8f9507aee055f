// Package testutil provides fakes shared by package tests.
package testutil

import (
	"context"
	"strings"
	"sync"

	"uplog/internal/git"
)

// Response scripts the outcome of one command invocation.
type Response struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// FakeRunner records every invocation and answers from a script keyed by
// the full argv string (e.g. "git status --porcelain"). Unscripted
// commands succeed with empty output, so tests only script what matters.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]Response
	calls     [][]string
}

func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: make(map[string]Response)}
}

// Script registers the outcome for an exact argv string.
func (f *FakeRunner) Script(argv string, resp Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[argv] = resp
}

// Fail is shorthand for scripting a non-zero exit.
func (f *FakeRunner) Fail(argv, stderr string) {
	f.Script(argv, Response{Stderr: stderr, ExitCode: 1})
}

func (f *FakeRunner) Run(ctx context.Context, dir string, name string, args ...string) (git.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	argv := append([]string{name}, args...)
	f.calls = append(f.calls, argv)

	key := strings.Join(argv, " ")
	resp, ok := f.responses[key]
	if !ok {
		return git.Result{}, nil
	}

	res := git.Result{Stdout: resp.Stdout, Stderr: resp.Stderr, ExitCode: resp.ExitCode}
	if resp.ExitCode != 0 {
		return res, &git.CommandError{Name: name, Args: args, Result: res}
	}
	return res, nil
}

// Calls returns every recorded argv.
func (f *FakeRunner) Calls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]string(nil), f.calls...)
}

// CallStrings returns recorded invocations as joined strings.
func (f *FakeRunner) CallStrings() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = strings.Join(c, " ")
	}
	return out
}

// CallCount returns how many recorded invocations match the argv prefix.
func (f *FakeRunner) CallCount(prefix string) int {
	n := 0
	for _, c := range f.CallStrings() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}
