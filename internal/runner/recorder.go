package runner

import (
	"context"
	"strings"
	"sync"
)

// Recorder is an Executor that records commands instead of running them.
// Responses are matched by command-line prefix; the first match wins.
type Recorder struct {
	mu        sync.Mutex
	commands  []Command
	responses []response
}

type response struct {
	prefix   string
	stdout   string
	exitCode int
}

// Respond makes commands whose String() starts with prefix return stdout.
func (r *Recorder) Respond(prefix, stdout string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses = append(r.responses, response{prefix: prefix, stdout: stdout})
}

// Fail makes commands whose String() starts with prefix exit with exitCode.
func (r *Recorder) Fail(prefix, stdout string, exitCode int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses = append(r.responses, response{prefix: prefix, stdout: stdout, exitCode: exitCode})
}

// Run records cmd and returns the configured response.
func (r *Recorder) Run(_ context.Context, cmd Command) (*Output, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, cmd)

	line := cmd.String()
	for _, resp := range r.responses {
		if !strings.HasPrefix(line, resp.prefix) {
			continue
		}
		out := &Output{ExitCode: resp.exitCode, Stdout: resp.stdout}
		if resp.exitCode != 0 {
			return out, &CommandError{Command: cmd, ExitCode: resp.exitCode, Output: resp.stdout}
		}
		return out, nil
	}
	return &Output{}, nil
}

// Commands returns the recorded commands in execution order.
func (r *Recorder) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Lines returns the recorded command lines in execution order.
func (r *Recorder) Lines() []string {
	cmds := r.Commands()
	lines := make([]string, len(cmds))
	for i, c := range cmds {
		lines[i] = c.String()
	}
	return lines
}
