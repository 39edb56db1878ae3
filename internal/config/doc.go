// Package config manages the persisted key-value settings stored in the data
// root's config.json (token, nuget_feed, search_path, nuget_exe). Commands
// open the Store once and hand an immutable Settings snapshot to the
// packages that need it; nothing below the CLI reads configuration directly.
package config
