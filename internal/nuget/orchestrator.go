package nuget

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/nrs-labs/nrs/internal/branding"
	"github.com/nrs-labs/nrs/internal/runner"
)

// LocalVersion is the fixed version every local package is packed at.
const LocalVersion = "1.0.0"

// PasswordFlags are the source-registration flags that carry the feed token.
var PasswordFlags = []string{"-p", "-Password"}

// Orchestrator drives the dotnet CLI (or nuget.exe for legacy projects).
type Orchestrator struct {
	exec     runner.Executor
	outDir   string
	nugetExe string
	logger   *log.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithOutDir sets the directory local packages are written to and
// registered from.
func WithOutDir(dir string) Option {
	return func(o *Orchestrator) { o.outDir = dir }
}

// WithNugetExe switches source management, restore and cache clearing to
// nuget.exe, as required by packages.config projects.
func WithNugetExe(path string) Option {
	return func(o *Orchestrator) { o.nugetExe = path }
}

// WithLogger sets the logger used for progress messages.
func WithLogger(l *log.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// New creates an Orchestrator that runs commands through exec.
func New(exec runner.Executor, opts ...Option) *Orchestrator {
	o := &Orchestrator{exec: exec}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return o
}

// OutDir returns the local package directory.
func (o *Orchestrator) OutDir() string { return o.outDir }

// Legacy reports whether nuget.exe is used.
func (o *Orchestrator) Legacy() bool { return o.nugetExe != "" }

func (o *Orchestrator) run(ctx context.Context, name string, args ...string) (*runner.Output, error) {
	return o.exec.Run(ctx, runner.New(name, args...))
}

// ListSources returns the package manager's source listing.
func (o *Orchestrator) ListSources(ctx context.Context) (string, error) {
	var out *runner.Output
	var err error
	if o.Legacy() {
		out, err = o.run(ctx, o.nugetExe, "sources", "list")
	} else {
		out, err = o.run(ctx, "dotnet", "nuget", "list", "source")
	}
	if err != nil {
		return "", fmt.Errorf("listing package sources: %w", err)
	}
	return out.Stdout, nil
}

// sourceNameLine matches the numbered name line of a source listing, such
// as "  2.  Localnrs_CLI [Enabled]".
var sourceNameLine = regexp.MustCompile(`^\d+\.\s+(.*?)(?:\s+\[[^\]]*\])?$`)

// HasSource reports whether a source listing contains location, which may
// be a directory, a feed URL or a source name. A listing entry must equal
// location as a whole; separators, trailing slashes and case are ignored.
func HasSource(listing, location string) bool {
	want := normalizeLocation(location)
	if want == "" {
		return false
	}
	for _, line := range strings.Split(listing, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := sourceNameLine.FindStringSubmatch(line); m != nil {
			line = m[1]
		}
		if normalizeLocation(line) == want {
			return true
		}
	}
	return false
}

func normalizeLocation(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, `\`, "/")
	s = strings.TrimRight(s, "/")
	return strings.ToLower(s)
}

// EnsureLocalSource registers the out directory as a package source unless
// the listing already contains it. It reports whether a source was added.
func (o *Orchestrator) EnsureLocalSource(ctx context.Context) (bool, error) {
	if o.outDir == "" {
		return false, fmt.Errorf("registering local source: no output directory")
	}
	listing, err := o.ListSources(ctx)
	if err != nil {
		return false, err
	}
	if HasSource(listing, o.outDir) {
		o.logger.Debug("local source already registered", "path", o.outDir)
		return false, nil
	}

	name := branding.LocalSourceName()
	if o.Legacy() {
		_, err = o.run(ctx, o.nugetExe, "sources", "add", "-Name", name, "-Source", o.outDir)
	} else {
		_, err = o.run(ctx, "dotnet", "nuget", "add", "source", o.outDir, "-n", name)
	}
	if err != nil {
		return false, fmt.Errorf("registering local source: %w", err)
	}
	o.logger.Info("registered local source", "name", name, "path", o.outDir)
	return true, nil
}

// EnsureFeedSource registers the authenticated upstream feed unless the
// listing already contains it. feedURL should already point at index.json.
func (o *Orchestrator) EnsureFeedSource(ctx context.Context, feedURL, token string) (bool, error) {
	listing, err := o.ListSources(ctx)
	if err != nil {
		return false, err
	}
	if HasSource(listing, feedURL) {
		o.logger.Debug("feed source already registered", "url", feedURL)
		return false, nil
	}

	name := branding.FeedSourceName()
	user := branding.CLIName()
	if o.Legacy() {
		_, err = o.run(ctx, o.nugetExe, "sources", "add",
			"-Name", name, "-Source", feedURL,
			"-Username", user, "-Password", token, "-StorePasswordInClearText")
	} else {
		_, err = o.run(ctx, "dotnet", "nuget", "add", "source", feedURL,
			"-n", name, "-u", user, "-p", token, "--store-password-in-clear-text")
	}
	if err != nil {
		return false, fmt.Errorf("registering feed source: %w", err)
	}
	o.logger.Info("registered feed source", "name", name, "url", feedURL)
	return true, nil
}

// LocalPackageID returns the id a library is packed under locally.
func LocalPackageID(name string) string {
	return name + branding.LocalSuffix()
}

// PackLocal restores, builds and packs the library project at csproj into
// the out directory as <name>_Local<tool> 1.0.0, returning the package id.
// Packing always goes through the dotnet CLI.
func (o *Orchestrator) PackLocal(ctx context.Context, csproj, name string) (string, error) {
	if o.outDir == "" {
		return "", fmt.Errorf("packing %s: no output directory", name)
	}
	id := LocalPackageID(name)

	if _, err := o.run(ctx, "dotnet", "restore", csproj); err != nil {
		return "", fmt.Errorf("restoring %s: %w", filepath.Base(csproj), err)
	}
	if _, err := o.run(ctx, "dotnet", "build", csproj, "--configuration", "Debug"); err != nil {
		return "", fmt.Errorf("building %s: %w", filepath.Base(csproj), err)
	}
	_, err := o.run(ctx, "dotnet", "pack", csproj,
		"--configuration", "Debug",
		"--include-symbols", "--include-source",
		"-o", o.outDir,
		"-p:PackageVersion="+LocalVersion,
		"-p:PackageID="+id)
	if err != nil {
		return "", fmt.Errorf("packing %s: %w", filepath.Base(csproj), err)
	}
	o.logger.Info("packed local package", "id", id, "version", LocalVersion)
	return id, nil
}

// Restore restores one project. Legacy projects restore into the packages
// folder next to solutionDir.
func (o *Orchestrator) Restore(ctx context.Context, project, solutionDir string) error {
	var err error
	if o.Legacy() {
		_, err = o.run(ctx, o.nugetExe, "restore", project, "-SolutionDirectory", solutionDir)
	} else {
		_, err = o.run(ctx, "dotnet", "restore", project)
	}
	if err != nil {
		return fmt.Errorf("restoring %s: %w", filepath.Base(project), err)
	}
	return nil
}

// ClearLocals clears every local package cache so a stale resolution of the
// same id and version cannot mask a swap.
func (o *Orchestrator) ClearLocals(ctx context.Context) error {
	var err error
	if o.Legacy() {
		_, err = o.run(ctx, o.nugetExe, "locals", "all", "-clear")
	} else {
		_, err = o.run(ctx, "dotnet", "nuget", "locals", "all", "--clear")
	}
	if err != nil {
		return fmt.Errorf("clearing local caches: %w", err)
	}
	return nil
}

// RemoveLocalSource unregisters the local package source. It reports false
// without running a removal when the source is not registered.
func (o *Orchestrator) RemoveLocalSource(ctx context.Context) (bool, error) {
	name := branding.LocalSourceName()
	listing, err := o.ListSources(ctx)
	if err != nil {
		return false, err
	}
	if !HasSource(listing, name) {
		return false, nil
	}

	if o.Legacy() {
		_, err = o.run(ctx, o.nugetExe, "sources", "remove", "-Name", name)
	} else {
		_, err = o.run(ctx, "dotnet", "nuget", "remove", "source", name)
	}
	if err != nil {
		return false, fmt.Errorf("removing local source: %w", err)
	}
	return true, nil
}
