// Package runner starts external programs for the session handoff and the
// album downloader.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Runner runs an external program to completion.
type Runner interface {
	// Run executes argv[0] with the remaining arguments in dir.
	// An empty dir means the current working directory.
	Run(ctx context.Context, dir string, argv []string) error
}

// Exec implements Runner with os/exec.
type Exec struct {
	Stdout io.Writer // Child stdout, discarded when nil
	Stderr io.Writer // Child stderr, captured into the error when nil
}

// NewExec creates an Exec runner that forwards child output to stdout and stderr.
func NewExec(stdout, stderr io.Writer) *Exec {
	return &Exec{Stdout: stdout, Stderr: stderr}
}

// Run executes argv and waits for it to exit.
func (e *Exec) Run(ctx context.Context, dir string, argv []string) error {
	if len(argv) == 0 || argv[0] == "" {
		return errors.New("runner: empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = e.Stdout

	var stderr strings.Builder
	if e.Stderr != nil {
		cmd.Stderr = e.Stderr
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return fmt.Errorf("%s exited with code %d: %s", argv[0], exitErr.ExitCode(), msg)
			}
			return fmt.Errorf("%s exited with code %d", argv[0], exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run %s: %w", argv[0], err)
	}

	return nil
}
