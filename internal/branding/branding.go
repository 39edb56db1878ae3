// Package branding provides compile-time identity values for the CLI.
//
// branding.yaml is baked into the binary with //go:embed. The tool tag it
// carries is part of every locally packed package id, so changing it orphans
// references written by earlier builds.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	DataDir     string `yaml:"data_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	ToolTag     string `yaml:"tool_tag"`
	GoModule    string `yaml:"go_module"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:     "nrs",
			DisplayName: "NRS",
			Description: "Swap NuGet package references between a registry feed and a local build",
			DataDir:     ".nrs",
			EnvPrefix:   "NRS",
			ToolTag:     "nrs_CLI",
			GoModule:    "github.com/nrs-labs/nrs",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "nrs").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "NRS").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// DataDir returns the directory name, next to the executable, holding
// config.json and locally packed packages (e.g., ".nrs").
func DataDir() string { load(); return defaults.DataDir }

// EnvPrefix returns the environment variable prefix (e.g., "NRS").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ToolTag returns the tag that decorates local package ids (e.g., "nrs_CLI").
func ToolTag() string { load(); return defaults.ToolTag }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// LocalSuffix returns the local channel suffix appended to a package name,
// e.g. "_Localnrs_CLI".
func LocalSuffix() string { load(); return "_Local" + defaults.ToolTag }

// LocalSourceName returns the name the local package directory is registered
// under with the package manager (e.g., "Localnrs_CLI").
func LocalSourceName() string { load(); return "Local" + defaults.ToolTag }

// FeedSourceName returns the name the upstream feed is registered under
// (e.g., "nrs_SOURCE").
func FeedSourceName() string { load(); return defaults.CLIName + "_SOURCE" }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("DATA") → "NRS_DATA".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
