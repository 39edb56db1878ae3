package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/charmbracelet/log"
)

// ShellExecutor runs commands as child processes and captures their output.
type ShellExecutor struct {
	// Logger receives a debug line per command; nil disables logging.
	Logger *log.Logger
	// Stream, when set, receives output as it is produced in addition to
	// the captured copy.
	Stream io.Writer
	// RedactFlags lists flags whose values are masked in logs and errors.
	RedactFlags []string
}

// Run executes cmd and waits for it. There is no timeout: a hung toolchain
// blocks until ctx is cancelled.
func (s *ShellExecutor) Run(ctx context.Context, cmd Command) (*Output, error) {
	display := cmd.Redacted(s.RedactFlags...)
	if s.Logger != nil {
		s.Logger.Debug("exec", "cmd", display.String(), "dir", cmd.Dir)
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir

	var buf bytes.Buffer
	var w io.Writer = &buf
	if s.Stream != nil {
		w = io.MultiWriter(s.Stream, &buf)
	}
	c.Stdout = w
	c.Stderr = w

	err := c.Run()
	output := &Output{Stdout: buf.String()}
	if err == nil {
		return output, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		output.ExitCode = exitErr.ExitCode()
		return output, &CommandError{
			Command:  display,
			ExitCode: output.ExitCode,
			Output:   output.Stdout,
		}
	}
	return output, fmt.Errorf("executing %s: %w", display, err)
}
