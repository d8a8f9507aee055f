// Package git drives the git binary with exec, capturing output for the
// caller. Mutating operations deliberately shell out rather than use a
// library so the invocations match what an operator would type.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Result captures one finished command invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes one external command to completion in a working
// directory and captures its output. It exists so tests can substitute a
// scripted fake for the real subprocess.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) (Result, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, &CommandError{Name: name, Args: args, Result: res}
		}
		// Command did not start at all (not found, permission denied)
		return res, fmt.Errorf("failed to run %s: %w", name, err)
	}

	return res, nil
}

// CommandError reports a command that ran but exited non-zero.
type CommandError struct {
	Name   string
	Args   []string
	Result Result
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s %s exited with code %d",
		e.Name, strings.Join(e.Args, " "), e.Result.ExitCode)
	if stderr := strings.TrimSpace(e.Result.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}
