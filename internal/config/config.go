package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nrs-labs/nrs/internal/branding"
	"github.com/nrs-labs/nrs/internal/userdata"
	"github.com/spf13/viper"
)

const fileType = "json"

// Well-known configuration keys.
const (
	KeyToken      = "token"
	KeyNugetFeed  = "nuget_feed"
	KeySearchPath = "search_path"
	KeyNugetExe   = "nuget_exe"
)

// Store is the persisted key-value configuration backed by config.json.
// Reads go through v, which layers the environment over the file; writes go
// through file, which only ever holds what config.json holds.
type Store struct {
	v    *viper.Viper
	file *viper.Viper
	path string
}

// Open loads the store from the data root's config.json.
func Open() (*Store, error) {
	path, err := userdata.GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	return OpenFile(path)
}

// OpenFile loads the store from path. A missing file is an empty config;
// environment variables (NRS_TOKEN, NRS_NUGET_FEED, ...) override stored keys.
func OpenFile(path string) (*Store, error) {
	file := viper.New()
	file.SetConfigFile(path)
	file.SetConfigType(fileType)

	if _, err := os.Stat(path); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("checking config file %s: %w", path, err)
	}

	v := viper.New()
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()
	if err := v.MergeConfigMap(file.AllSettings()); err != nil {
		return nil, fmt.Errorf("loading config file %s: %w", path, err)
	}

	return &Store{v: v, file: file, path: path}, nil
}

// Path returns the config file location.
func (s *Store) Path() string {
	return s.path
}

// Get returns a config value by key. Returns empty string if not set.
func (s *Store) Get(key string) string {
	return s.v.GetString(key)
}

// Set writes a config key-value pair and saves the config file. Environment
// overrides are never written to the file.
func (s *Store) Set(key, value string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, userdata.DirPermNormal); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	s.file.Set(key, value)
	if err := s.file.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	s.v.Set(key, value)
	return nil
}

// Settings snapshots the store into an immutable value. baseDir is the
// directory relative search_path entries are resolved against.
func (s *Store) Settings(baseDir string) Settings {
	return Settings{
		Token:      s.Get(KeyToken),
		NugetFeed:  s.Get(KeyNugetFeed),
		SearchPath: s.Get(KeySearchPath),
		NugetExe:   s.Get(KeyNugetExe),
		BaseDir:    baseDir,
	}
}
