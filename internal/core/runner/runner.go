// Package runner executes external commands for the setup sequence.
//
// Two modes are provided: Run inherits the caller's standard streams and is
// used for long, user-visible work (git clone, vcpkg install); Capture
// collects output and is used for plumbing commands whose stdout the caller
// needs (git rev-parse, tool version probes). Both fail hard on a nonzero
// exit status; there is no retry policy.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Command describes a single external command invocation.
type Command struct {
	// Name is the executable name or path, resolved via the search path
	// when it contains no separator.
	Name string
	Args []string
	// Dir is the working directory for the command. Empty means the
	// caller's current directory.
	Dir string
	// Env holds extra environment variables merged over the inherited
	// environment.
	Env map[string]string
}

// String renders the command line the way it would be typed in a shell.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

func (c Command) build(ctx context.Context) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		env := os.Environ()
		for k, v := range c.Env {
			env = append(env, fmt.Sprintf("%s=%s", k, v))
		}
		cmd.Env = env
	}
	return cmd
}

// Run executes the command with the caller's standard streams attached.
// It echoes the command line before running and returns an error carrying
// the exit status when the command fails.
func Run(ctx context.Context, c Command) error {
	fmt.Fprintf(os.Stdout, "Running: %s\n", c.String())

	cmd := c.build(ctx)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s failed with exit code %d", c.Name, exitErr.ExitCode())
		}
		return fmt.Errorf("%s: %w", c.Name, err)
	}
	return nil
}

// Capture executes the command, returning its trimmed standard output.
// On a nonzero exit the captured standard error is folded into the
// returned error so the caller can surface it.
func Capture(ctx context.Context, c Command) (string, error) {
	cmd := c.build(ctx)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(stderr.String())
			if msg != "" {
				return "", fmt.Errorf("%s failed with exit code %d: %s", c.Name, exitErr.ExitCode(), msg)
			}
			return "", fmt.Errorf("%s failed with exit code %d", c.Name, exitErr.ExitCode())
		}
		return "", fmt.Errorf("%s: %w", c.Name, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
