package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Command is a single external program invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// New builds a Command from a program name and its arguments.
func New(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// String renders the command line for logs and error messages. Arguments
// containing spaces are double-quoted.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, a := range c.Args {
		if a == "" || strings.ContainsAny(a, " \t") {
			a = `"` + a + `"`
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// Redacted returns a copy of the command with the value following any of the
// given flags replaced by "***". Used to keep feed passwords out of logs.
func (c Command) Redacted(flags ...string) Command {
	out := c
	out.Args = make([]string, len(c.Args))
	copy(out.Args, c.Args)
	for i := 0; i < len(out.Args)-1; i++ {
		for _, f := range flags {
			if out.Args[i] == f {
				out.Args[i+1] = "***"
			}
		}
	}
	return out
}

// Output captures the result of a command execution.
type Output struct {
	ExitCode int
	Stdout   string
}

// Executor runs external commands. Implementations must return a
// *CommandError when the command exits non-zero.
type Executor interface {
	Run(ctx context.Context, cmd Command) (*Output, error)
}

// ErrCommandFailed is matched by every CommandError.
var ErrCommandFailed = errors.New("external command failed")

// CommandError reports a command that exited non-zero. Output holds the
// captured stdout and stderr so the caller can echo it.
type CommandError struct {
	Command  Command
	ExitCode int
	Output   string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("failed to execute: %s (exit code %d)", e.Command, e.ExitCode)
}

// Is lets errors.Is(err, ErrCommandFailed) match.
func (e *CommandError) Is(target error) bool {
	return target == ErrCommandFailed
}
