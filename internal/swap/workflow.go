package swap

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/nrs-labs/nrs/internal/config"
	"github.com/nrs-labs/nrs/internal/discovery"
	"github.com/nrs-labs/nrs/internal/manifest"
	"github.com/nrs-labs/nrs/internal/nuget"
	"github.com/nrs-labs/nrs/internal/runner"
	"github.com/nrs-labs/nrs/internal/solution"
)

// Request is one swap invocation.
type Request struct {
	Solution string
	Name     string
	Local    bool
	Auth     bool
	Version  string
}

// Report summarises a completed run.
type Report struct {
	SolutionPath string
	TargetPath   string
	Strategy     string
	Details      Details
	Swapped      []solution.Project
	Skipped      []solution.Project
	SourceAdded  bool
}

// Workflow runs swaps against one configuration.
type Workflow struct {
	Settings config.Settings
	Exec     runner.Executor
	// OutDir is where local packages are written and registered from.
	OutDir string
	Logger *log.Logger
}

func (w *Workflow) logger() *log.Logger {
	if w.Logger == nil {
		return log.New(io.Discard)
	}
	return w.Logger
}

// Run swaps req.Name across the projects of req.Solution. Configuration and
// discovery problems, and any missing member project, are reported before
// the first external command runs. Once commands start, a failure stops the
// run where it is; nothing is rolled back.
func (w *Workflow) Run(ctx context.Context, req Request) (*Report, error) {
	logger := w.logger()

	if err := w.validate(req); err != nil {
		return nil, err
	}
	details, err := NewDetails(req.Name, req.Local, req.Version)
	if err != nil {
		return nil, err
	}

	roots := discovery.NormalizeRoots(w.Settings.SearchPath, w.Settings.BaseDir)
	logger.Debug("search roots", "roots", discovery.Strings(roots))

	target, err := discovery.FindUnique(ctx, roots, discovery.ProjectPattern(req.Name))
	if err != nil {
		return nil, fmt.Errorf("locating project %s: %w", req.Name, err)
	}
	slnPath, projects, err := solution.Locate(ctx, roots, req.Solution)
	if err != nil {
		return nil, err
	}
	if missing := solution.Missing(projects); len(missing) > 0 {
		return nil, fmt.Errorf("%w at %s (%s)", ErrProjectMissing, missing[0].AbsolutePath, missing[0].Name)
	}

	targetManifest, err := manifest.ParseFile(target)
	if err != nil {
		return nil, err
	}
	gen := targetManifest.Generation()

	opts := []nuget.Option{nuget.WithOutDir(w.OutDir), nuget.WithLogger(logger)}
	if gen == manifest.Legacy {
		if err := w.Settings.Require(config.KeyNugetExe); err != nil {
			return nil, err
		}
		opts = append(opts, nuget.WithNugetExe(w.Settings.NugetExe))
	}
	orch := nuget.New(w.Exec, opts...)
	strategy := SelectStrategy(gen, w.Exec, w.OutDir)

	report := &Report{
		SolutionPath: slnPath,
		TargetPath:   target,
		Strategy:     strategy.Name(),
		Details:      details,
	}
	logger.Info("swapping", "package", details.String(), "solution", slnPath, "strategy", strategy.Name())

	if req.Local {
		if _, err := orch.PackLocal(ctx, target, req.Name); err != nil {
			return report, err
		}
		if report.SourceAdded, err = orch.EnsureLocalSource(ctx); err != nil {
			return report, err
		}
	} else if req.Auth {
		if report.SourceAdded, err = orch.EnsureFeedSource(ctx, w.Settings.FeedIndexURL(), w.Settings.Token); err != nil {
			return report, err
		}
	}

	slnDir := filepath.Dir(slnPath)
	for _, project := range projects {
		result, err := strategy.Swap(ctx, project, details)
		if err != nil {
			return report, err
		}
		if result == Skipped {
			logger.Debug("no reference", "project", project.Name, "package", details.RemoveName)
			report.Skipped = append(report.Skipped, project)
			continue
		}
		if err := orch.Restore(ctx, project.AbsolutePath, slnDir); err != nil {
			return report, err
		}
		logger.Info("swapped", "project", project.Name)
		report.Swapped = append(report.Swapped, project)
	}

	if err := orch.ClearLocals(ctx); err != nil {
		return report, err
	}
	return report, nil
}

func (w *Workflow) validate(req Request) error {
	if req.Name == "" {
		return fmt.Errorf("package name is required")
	}
	if req.Solution == "" {
		return fmt.Errorf("solution name is required")
	}
	if err := w.Settings.Require(config.KeySearchPath); err != nil {
		return err
	}
	if req.Local && w.OutDir == "" {
		return fmt.Errorf("local package directory is not set")
	}
	if !req.Local && req.Auth {
		return w.Settings.Require(config.KeyToken, config.KeyNugetFeed)
	}
	return nil
}
