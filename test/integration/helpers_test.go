//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	DataDir string // NRS_DATA: config.json and out/
	RepoDir string // search_path root holding the library and the solution
}

// setupTestEnv creates isolated temp directories and points NRS_DATA at one
// of them. dotnet gets a private HOME so source registrations and caches
// stay inside the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		DataDir: t.TempDir(),
		RepoDir: t.TempDir(),
	}
	t.Setenv("NRS_DATA", env.DataDir)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("DOTNET_CLI_HOME", home)
	t.Setenv("NUGET_PACKAGES", t.TempDir())
	t.Setenv("DOTNET_CLI_TELEMETRY_OPTOUT", "1")
	t.Setenv("DOTNET_NOLOGO", "1")
	return env
}

// requireDotnet skips the test when the dotnet CLI is not installed.
func requireDotnet(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("dotnet"); err != nil {
		t.Skip("dotnet not on PATH")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected file %s to exist: %v", path, err)
		return
	}
	if info.IsDir() {
		t.Errorf("expected %s to be a file, got directory", path)
	}
}
