package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenFile_MissingIsEmpty(t *testing.T) {
	s, err := OpenFile(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	if got := s.Get(KeyToken); got != "" {
		t.Errorf("Get(token) = %q, want empty", got)
	}
}

func TestSetThenReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	if err := s.Set(KeySearchPath, "/repo,../libs"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set(KeyNugetFeed, "https://feed.example.com/v3"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if got := reopened.Get(KeySearchPath); got != "/repo,../libs" {
		t.Errorf("search_path = %q", got)
	}

	settings := reopened.Settings("/work")
	if settings.NugetFeed != "https://feed.example.com/v3" {
		t.Errorf("NugetFeed = %q", settings.NugetFeed)
	}
	if settings.BaseDir != "/work" {
		t.Errorf("BaseDir = %q", settings.BaseDir)
	}
}

func TestOpenFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte("{not json"), 0644)

	if _, err := OpenFile(path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte(`{"token": "stored"}`), 0644)
	t.Setenv("NRS_TOKEN", "from-env")

	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	if got := s.Get(KeyToken); got != "from-env" {
		t.Errorf("Get(token) = %q, want from-env", got)
	}
}

func TestSetKeepsEnvOutOfFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte(`{"token": "stored"}`), 0644)
	t.Setenv("NRS_TOKEN", "from-env")
	t.Setenv("NRS_NUGET_FEED", "https://env.example.com/v3")

	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	if err := s.Set(KeySearchPath, "/repo"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := s.Get(KeySearchPath); got != "/repo" {
		t.Errorf("Get(search_path) = %q, want /repo", got)
	}
	if got := s.Get(KeyToken); got != "from-env" {
		t.Errorf("Get(token) = %q, want from-env", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var stored map[string]string
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatalf("config file is not JSON: %v\n%s", err, data)
	}
	want := map[string]string{KeyToken: "stored", KeySearchPath: "/repo"}
	if len(stored) != len(want) {
		t.Fatalf("config file = %v, want %v", stored, want)
	}
	for k, v := range want {
		if stored[k] != v {
			t.Errorf("config file %s = %q, want %q", k, stored[k], v)
		}
	}
}

func TestRequire(t *testing.T) {
	s := Settings{SearchPath: "/repo", Token: "  "}

	if err := s.Require(KeySearchPath); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := s.Require(KeySearchPath, KeyToken, KeyNugetFeed)
	if !errors.Is(err, ErrMissing) {
		t.Fatalf("expected ErrMissing, got %v", err)
	}
	var missing *MissingError
	if !errors.As(err, &missing) || missing.Key != KeyToken {
		t.Errorf("expected missing key token, got %v", err)
	}
	if err.Error() != "configuration token is unset" {
		t.Errorf("unexpected message: %s", err)
	}
}

func TestFeedIndexURL(t *testing.T) {
	tests := []struct {
		feed string
		want string
	}{
		{"https://feed.example.com/v3", "https://feed.example.com/v3/index.json"},
		{"https://feed.example.com/v3/", "https://feed.example.com/v3/index.json"},
		{"https://feed.example.com/v3/index.json", "https://feed.example.com/v3/index.json"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.feed, func(t *testing.T) {
			if got := (Settings{NugetFeed: tt.feed}).FeedIndexURL(); got != tt.want {
				t.Errorf("FeedIndexURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
