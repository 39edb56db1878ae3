package swap

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/nrs-labs/nrs/internal/manifest"
	"github.com/nrs-labs/nrs/internal/runner"
	"github.com/nrs-labs/nrs/internal/solution"
)

// ErrProjectMissing is returned when a member project's manifest does not
// exist. It aborts the whole run.
var ErrProjectMissing = errors.New("project file not found")

// Result is the outcome of swapping one project.
type Result int

const (
	// Skipped means the project does not reference the package being
	// replaced; no command was issued.
	Skipped Result = iota
	// Swapped means the remove and add commands both succeeded.
	Swapped
)

func (r Result) String() string {
	if r == Swapped {
		return "swapped"
	}
	return "skipped"
}

// Strategy swaps the reference in a single project.
type Strategy interface {
	Name() string
	Swap(ctx context.Context, project solution.Project, d Details) (Result, error)
}

// SelectStrategy returns the strategy for a project generation. outDir is
// the local package directory passed to modern add commands.
func SelectStrategy(gen manifest.Generation, exec runner.Executor, outDir string) Strategy {
	if gen == manifest.Legacy {
		return &LegacyStrategy{Exec: exec}
	}
	return &ModernStrategy{Exec: exec, LocalSource: outDir}
}

func checkProject(project solution.Project) error {
	info, err := os.Stat(project.AbsolutePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w at %s", ErrProjectMissing, project.AbsolutePath)
		}
		return fmt.Errorf("checking %s: %w", project.AbsolutePath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w at %s", ErrProjectMissing, project.AbsolutePath)
	}
	return nil
}

// ModernStrategy swaps SDK-style projects with `dotnet remove/add package`.
// The project file itself is never edited directly.
type ModernStrategy struct {
	Exec runner.Executor
	// LocalSource is the package directory used for local adds.
	LocalSource string
}

// Name implements Strategy.
func (s *ModernStrategy) Name() string { return manifest.Modern.String() }

// Swap implements Strategy.
func (s *ModernStrategy) Swap(ctx context.Context, project solution.Project, d Details) (Result, error) {
	if err := checkProject(project); err != nil {
		return Skipped, err
	}

	proj, err := manifest.ParseFile(project.AbsolutePath)
	if err != nil {
		return Skipped, fmt.Errorf("parsing %s: %w", project.Name, err)
	}
	if _, ok := proj.FindPackageReference(d.RemoveName); !ok {
		return Skipped, nil
	}

	remove := runner.New("dotnet", "remove", project.AbsolutePath, "package", d.RemoveName)
	if _, err := s.Exec.Run(ctx, remove); err != nil {
		return Skipped, fmt.Errorf("removing %s from %s: %w", d.RemoveName, project.Name, err)
	}

	args := []string{"add", project.AbsolutePath, "package", d.AddName}
	if v := d.PinnedVersion(); v != "" {
		args = append(args, "--version", v)
	}
	if d.IsLocal && s.LocalSource != "" {
		args = append(args, "--source", s.LocalSource)
	}
	if _, err := s.Exec.Run(ctx, runner.New("dotnet", args...)); err != nil {
		return Skipped, fmt.Errorf("adding %s to %s: %w", d.AddName, project.Name, err)
	}
	return Swapped, nil
}
