package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nrs-labs/nrs/internal/discovery"
	"github.com/nrs-labs/nrs/internal/runner"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const fooLibrary = `<Project Sdk="Microsoft.NET.Sdk">
  <PropertyGroup>
    <TargetFramework>net8.0</TargetFramework>
  </PropertyGroup>
</Project>
`

const appProject = `<Project Sdk="Microsoft.NET.Sdk">
  <ItemGroup>
    <PackageReference Include="Foo" Version="1.0.0"/>
  </ItemGroup>
</Project>
`

const appSolution = `Project("{9A19103F-16F7-4668-BE54-9A1E7A4F7556}") = "App", "App\App.csproj", "{A}"
EndProject
`

// resetFlags restores every flag to its default between runs of rootCmd.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// setup points the data root at a temp dir and routes commands to a recorder.
func setup(t *testing.T) (dataDir string, rec *runner.Recorder) {
	t.Helper()
	dataDir = t.TempDir()
	t.Setenv("NRS_DATA", dataDir)
	for _, k := range []string{"NRS_TOKEN", "NRS_NUGET_FEED", "NRS_SEARCH_PATH", "NRS_NUGET_EXE"} {
		t.Setenv(k, "")
	}

	rec = &runner.Recorder{}
	orig := newExecutor
	newExecutor = func() runner.Executor { return rec }
	t.Cleanup(func() { newExecutor = orig })
	return dataDir, rec
}

func writeConfig(t *testing.T, dataDir string, values map[string]string) {
	t.Helper()
	data, err := json.Marshal(values)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "config.json"), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfigGetSet(t *testing.T) {
	dataDir, _ := setup(t)

	out, err := run(t, "config", "-k", "search_path")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if !strings.Contains(out, "Configuration search_path is unset") {
		t.Errorf("unset output = %q", out)
	}

	if _, err := run(t, "config", "-k", "search_path", "-v", "/src,/work"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dataDir, "config.json")); err != nil {
		t.Fatalf("config.json not written: %v", err)
	}

	out, err = run(t, "config", "-k", "search_path")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != "/src,/work" {
		t.Errorf("config get = %q, want %q", out, "/src,/work")
	}
}

func TestConfigSetWarnsOnInvalidFeed(t *testing.T) {
	setup(t)

	out, err := run(t, "config", "-k", "nuget_feed", "-v", "feed.example.com")
	if err != nil {
		t.Fatalf("config set: %v", err)
	}
	if !strings.Contains(out, "warning") {
		t.Errorf("expected schema warning, got %q", out)
	}
}

func TestSwapLocal(t *testing.T) {
	dataDir, rec := setup(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Foo", "Foo.csproj"), fooLibrary)
	writeFile(t, filepath.Join(root, "Sln", "MySolution.sln"), appSolution)
	app := filepath.Join(root, "Sln", "App", "App.csproj")
	writeFile(t, app, appProject)
	writeConfig(t, dataDir, map[string]string{"search_path": root})

	out, err := run(t, "swap", "-s", "MySolution", "-n", "Foo", "-l")
	if err != nil {
		t.Fatalf("swap: %v\n%s", err, out)
	}
	if !strings.Contains(out, "swapped") || !strings.Contains(out, "App/App.csproj") {
		t.Errorf("output = %q", out)
	}

	lines := rec.Lines()
	if len(lines) == 0 || lines[len(lines)-1] != "dotnet nuget locals all --clear" {
		t.Errorf("last command = %v, want locals clear", lines)
	}
	if info, err := os.Stat(filepath.Join(dataDir, "out")); err != nil || !info.IsDir() {
		t.Errorf("out directory not created: %v", err)
	}
}

func TestSwapAmbiguousIssuesNoCommands(t *testing.T) {
	dataDir, rec := setup(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "Foo.csproj"), fooLibrary)
	writeFile(t, filepath.Join(root, "b", "Foo.csproj"), fooLibrary)
	writeFile(t, filepath.Join(root, "MySolution.sln"), appSolution)
	writeConfig(t, dataDir, map[string]string{"search_path": root})

	_, err := run(t, "swap", "-s", "MySolution", "-n", "Foo", "-l")
	if !errors.Is(err, discovery.ErrAmbiguous) {
		t.Fatalf("swap error = %v, want ErrAmbiguous", err)
	}
	if n := len(rec.Commands()); n != 0 {
		t.Errorf("issued %d commands, want 0", n)
	}
}

func TestSwapRequiresFlags(t *testing.T) {
	setup(t)
	if _, err := run(t, "swap", "-n", "Foo"); err == nil {
		t.Error("expected error without --solution")
	}
}

func TestSwapMissingSearchPath(t *testing.T) {
	setup(t)
	_, err := run(t, "swap", "-s", "MySolution", "-n", "Foo")
	if err == nil || !strings.Contains(err.Error(), "search_path is unset") {
		t.Errorf("swap error = %v, want search_path unset", err)
	}
}

func TestListReportsMatches(t *testing.T) {
	dataDir, _ := setup(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Core", "Contoso.Core.csproj"), fooLibrary)
	writeFile(t, filepath.Join(root, "x", "Contoso.Data.csproj"), fooLibrary)
	writeFile(t, filepath.Join(root, "y", "Contoso.Data.csproj"), fooLibrary)

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"data": [
			{"title": "Contoso.Core", "version": "1.0.0"},
			{"title": "Contoso.Data", "version": "2.0.0"},
			{"title": "Contoso.Web", "version": "3.0.0"}
		]}`))
	}))
	defer srv.Close()
	writeConfig(t, dataDir, map[string]string{"search_path": root, "nuget_feed": srv.URL, "token": "tok"})

	out, err := run(t, "list", "-a", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q", gotAuth)
	}

	var entries []listEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("parsing output: %v\n%s", err, out)
	}
	want := map[string]int{"Contoso.Core": 1, "Contoso.Data": 2, "Contoso.Web": 0}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for _, e := range entries {
		if len(e.Matches) != want[e.Name] {
			t.Errorf("%s: %d matches, want %d", e.Name, len(e.Matches), want[e.Name])
		}
	}

	out, err = run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "2 csproj files found") {
		t.Errorf("text output does not report the ambiguous match:\n%s", out)
	}
}

func TestClear(t *testing.T) {
	dataDir, rec := setup(t)
	rec.Respond("dotnet nuget list source", "  1.  Localnrs_CLI [Enabled]\n")
	writeConfig(t, dataDir, map[string]string{"search_path": "/src"})
	writeFile(t, filepath.Join(dataDir, "out", "Foo_Localnrs_CLI.1.0.0.nupkg"), "pkg")

	out, err := run(t, "clear")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !strings.Contains(out, "except config file") {
		t.Errorf("output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(dataDir, "out")); !os.IsNotExist(err) {
		t.Error("out directory survived clear")
	}
	if _, err := os.Stat(filepath.Join(dataDir, "config.json")); err != nil {
		t.Error("config.json removed without --include-config")
	}
	if lines := rec.Lines(); len(lines) != 2 || lines[1] != "dotnet nuget remove source Localnrs_CLI" {
		t.Errorf("commands = %v", lines)
	}

	if _, err := run(t, "clear", "-i"); err != nil {
		t.Fatalf("clear -i: %v", err)
	}
	if _, err := os.Stat(dataDir); !os.IsNotExist(err) {
		t.Error("data directory survived clear --include-config")
	}
}

func TestDoctor(t *testing.T) {
	dataDir, rec := setup(t)
	rec.Respond("dotnet nuget list source", "")
	orig := lookPath
	lookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }
	t.Cleanup(func() { lookPath = orig })

	root := t.TempDir()
	writeConfig(t, dataDir, map[string]string{"search_path": root})

	out, err := run(t, "doctor")
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	for _, want := range []string{"dotnet (/usr/bin/dotnet)", "search_path is set", "nuget_feed is unset", root} {
		if !strings.Contains(out, want) {
			t.Errorf("doctor output missing %q:\n%s", want, out)
		}
	}
}

func TestDoctorReportsProblems(t *testing.T) {
	dataDir, _ := setup(t)
	orig := lookPath
	lookPath = func(name string) (string, error) { return "", errors.New("not found") }
	t.Cleanup(func() { lookPath = orig })
	writeConfig(t, dataDir, map[string]string{"search_path": filepath.Join(t.TempDir(), "gone")})

	out, err := run(t, "doctor")
	if err == nil {
		t.Fatalf("expected doctor to fail:\n%s", out)
	}
	if !strings.Contains(err.Error(), "2 problem(s)") {
		t.Errorf("error = %v, want 2 problems (dotnet and search root)", err)
	}
}

func TestPrintErrorEchoesCommandOutput(t *testing.T) {
	var buf bytes.Buffer
	err := &runner.CommandError{
		Command:  runner.New("dotnet", "build"),
		ExitCode: 1,
		Output:   "error CS0246: type not found",
	}
	printError(&buf, err)

	out := buf.String()
	if !strings.Contains(out, "error CS0246") {
		t.Errorf("output missing command output: %q", out)
	}
	if !strings.Contains(out, "failed to execute: dotnet build (exit code 1)") {
		t.Errorf("output missing error line: %q", out)
	}
}

func TestVersion(t *testing.T) {
	buildVersion, buildCommit, buildDate = "1.2.3", "abc", "today"
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != "1.2.3" {
		t.Errorf("version --short = %q", out)
	}
}
