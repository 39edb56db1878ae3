package userdata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nrs-labs/nrs/internal/branding"
)

// Directory and file name constants for the data directory layout.
const (
	OutDir     = "out"
	ConfigFile = "config.json"
)

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// GetDataRoot returns the directory holding config.json and packed packages.
// It checks the NRS_DATA environment variable first, then falls back to
// <executable dir>/.nrs so every installed copy of the tool keeps its own state.
func GetDataRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("DATA")); v != "" {
		return filepath.Clean(v), nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolving executable path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), branding.DataDir()), nil
}

// GetOutDir returns the directory locally packed packages are written to.
// It is also the path registered as the local package source.
func GetOutDir() (string, error) {
	root, err := GetDataRoot()
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(filepath.Join(root, OutDir)), nil
}

// GetConfigPath returns the path to config.json within the data root.
func GetConfigPath() (string, error) {
	root, err := GetDataRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, ConfigFile), nil
}

// EnsureOutDir creates the package output directory if it does not exist.
func EnsureOutDir() (string, error) {
	dir, err := GetOutDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.FromSlash(dir), DirPermNormal); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	return dir, nil
}

// ClearResult reports what Clear removed.
type ClearResult struct {
	Removed []string
	Empty   bool
}

// Clear deletes cached artifacts from the data root. With includeConfig the
// whole data root goes, config.json included; otherwise config.json is kept.
// A missing data root is reported as Empty rather than an error.
func Clear(includeConfig bool) (*ClearResult, error) {
	root, err := GetDataRoot()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(root)
	if errors.Is(err, os.ErrNotExist) {
		return &ClearResult{Empty: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading data directory %s: %w", root, err)
	}

	result := &ClearResult{}
	if includeConfig {
		for _, e := range entries {
			result.Removed = append(result.Removed, e.Name())
		}
		if err := os.RemoveAll(root); err != nil {
			return nil, fmt.Errorf("removing data directory %s: %w", root, err)
		}
		return result, nil
	}

	for _, e := range entries {
		if e.Name() == ConfigFile {
			continue
		}
		if err := os.RemoveAll(filepath.Join(root, e.Name())); err != nil {
			return nil, fmt.Errorf("removing %s: %w", e.Name(), err)
		}
		result.Removed = append(result.Removed, e.Name())
	}
	return result, nil
}
