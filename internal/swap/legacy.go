package swap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nrs-labs/nrs/internal/branding"
	"github.com/nrs-labs/nrs/internal/manifest"
	"github.com/nrs-labs/nrs/internal/runner"
	"github.com/nrs-labs/nrs/internal/solution"
)

// PackagesConfigFile is the package list kept next to legacy projects.
const PackagesConfigFile = "packages.config"

// LegacyStrategy swaps .NET Framework projects whose packages are listed in
// packages.config. The package manager console cmdlets do the install and
// uninstall; stale entries are then filtered out of packages.config.
type LegacyStrategy struct {
	Exec runner.Executor
}

// Name implements Strategy.
func (s *LegacyStrategy) Name() string { return manifest.Legacy.String() }

// Swap implements Strategy.
func (s *LegacyStrategy) Swap(ctx context.Context, project solution.Project, d Details) (Result, error) {
	if err := checkProject(project); err != nil {
		return Skipped, err
	}

	configPath := filepath.Join(filepath.Dir(project.AbsolutePath), PackagesConfigFile)
	pc, err := manifest.ParsePackagesConfigFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Skipped, nil
		}
		return Skipped, fmt.Errorf("parsing %s of %s: %w", PackagesConfigFile, project.Name, err)
	}
	if !pc.Has(d.RemoveName) {
		return Skipped, nil
	}

	uninstall := fmt.Sprintf("Uninstall-Package -Name %s -ProjectName %s -RemoveDependencies -Force",
		psQuote(d.RemoveName), psQuote(project.Name))
	if _, err := s.Exec.Run(ctx, runner.New("powershell", "-Command", uninstall)); err != nil {
		return Skipped, fmt.Errorf("uninstalling %s from %s: %w", d.RemoveName, project.Name, err)
	}

	install := []string{
		"Install-Package",
		"-Name", psQuote(d.AddName),
		"-ProjectName", psQuote(project.Name),
		"-Source", psQuote(sourceName(d)),
	}
	if v := d.PinnedVersion(); v != "" {
		install = append(install, "-Version", psQuote(v))
	}
	if _, err := s.Exec.Run(ctx, runner.New("powershell", "-Command", strings.Join(install, " "))); err != nil {
		return Skipped, fmt.Errorf("installing %s into %s: %w", d.AddName, project.Name, err)
	}

	// The cmdlets rewrote the file; drop any entry they left behind.
	pc, err = manifest.ParsePackagesConfigFile(configPath)
	if err != nil {
		return Swapped, fmt.Errorf("re-reading %s of %s: %w", PackagesConfigFile, project.Name, err)
	}
	if pc.Filter(d.RemoveName) > 0 {
		if err := pc.WriteFile(configPath); err != nil {
			return Swapped, fmt.Errorf("writing %s of %s: %w", PackagesConfigFile, project.Name, err)
		}
	}
	return Swapped, nil
}

func sourceName(d Details) string {
	if d.IsLocal {
		return branding.LocalSourceName()
	}
	return branding.FeedSourceName()
}

// psQuote renders s as a single-quoted PowerShell string literal.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
