// Package cli defines the Cobra command tree for the nrs CLI. Each file
// registers one top-level command (swap, list, config, clear, doctor,
// version) with the root command. Commands build the configuration snapshot
// and the command executor, then delegate to internal packages.
package cli
