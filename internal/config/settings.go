package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissing is matched by every MissingError.
var ErrMissing = errors.New("configuration unset")

// MissingError reports a required configuration key that has no value.
type MissingError struct {
	Key string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("configuration %s is unset", e.Key)
}

// Is lets errors.Is(err, ErrMissing) match.
func (e *MissingError) Is(target error) bool {
	return target == ErrMissing
}

// Settings is the configuration of a single invocation. It is built once at
// startup and passed to every component that needs it.
type Settings struct {
	Token      string
	NugetFeed  string
	SearchPath string
	NugetExe   string
	BaseDir    string
}

// Value returns the setting for a well-known key.
func (s Settings) Value(key string) string {
	switch key {
	case KeyToken:
		return s.Token
	case KeyNugetFeed:
		return s.NugetFeed
	case KeySearchPath:
		return s.SearchPath
	case KeyNugetExe:
		return s.NugetExe
	default:
		return ""
	}
}

// Require returns a *MissingError for the first key without a value.
func (s Settings) Require(keys ...string) error {
	for _, k := range keys {
		if strings.TrimSpace(s.Value(k)) == "" {
			return &MissingError{Key: k}
		}
	}
	return nil
}

// FeedIndexURL returns the nuget_feed value normalised to the service index
// (".../index.json") that package sources are registered with.
func (s Settings) FeedIndexURL() string {
	feed := strings.TrimSpace(s.NugetFeed)
	if feed == "" || strings.HasSuffix(feed, "index.json") {
		return feed
	}
	if !strings.HasSuffix(feed, "/") {
		feed += "/"
	}
	return feed + "index.json"
}
