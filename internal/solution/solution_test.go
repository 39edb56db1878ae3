package solution

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nrs-labs/nrs/internal/discovery"
)

const sampleSolution = `
Microsoft Visual Studio Solution File, Format Version 12.00
# Visual Studio Version 17
Project("{9A19103F-16F7-4668-BE54-9A1E7A4F7556}") = "App", "src\App\App.csproj", "{11111111-1111-1111-1111-111111111111}"
EndProject
Project("{2150E333-8FDC-42A3-9474-1A3956D46DE8}") = "tests", "tests", "{22222222-2222-2222-2222-222222222222}"
EndProject
Project("{9A19103F-16F7-4668-BE54-9A1E7A4F7556}") = "App.Tests", "tests\App.Tests\App.Tests.csproj", "{33333333-3333-3333-3333-333333333333}"
EndProject
Global
EndGlobal
`

func TestParseMembersNoDeclarations(t *testing.T) {
	for _, text := range []string{"", "Global\nEndGlobal\n", "not a solution at all"} {
		if got := ParseMembers(text, "/repo/My.sln"); got != nil {
			t.Errorf("ParseMembers(%q) = %v, want nil", text, got)
		}
	}
}

func TestParseMembersSingleBackslashPath(t *testing.T) {
	text := `Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "Foo", "Foo\Foo.csproj", "{AAAA}"`
	sln := filepath.Join("repo", "My.sln")

	got := ParseMembers(text, sln)
	if len(got) != 1 {
		t.Fatalf("ParseMembers returned %d projects, want 1", len(got))
	}
	if got[0].Name != "Foo" {
		t.Errorf("Name = %q, want %q", got[0].Name, "Foo")
	}
	if got[0].RelativePath != "Foo/Foo.csproj" {
		t.Errorf("RelativePath = %q, want %q", got[0].RelativePath, "Foo/Foo.csproj")
	}
	want := filepath.Join("repo", "Foo", "Foo.csproj")
	if got[0].AbsolutePath != want {
		t.Errorf("AbsolutePath = %q, want %q", got[0].AbsolutePath, want)
	}
}

func TestParseMembersSkipsFolders(t *testing.T) {
	got := ParseMembers(sampleSolution, "/repo/App.sln")
	if len(got) != 2 {
		t.Fatalf("ParseMembers returned %d projects, want 2: %v", len(got), got)
	}
	wantNames := []string{"App", "App.Tests"}
	for i, name := range wantNames {
		if got[i].Name != name {
			t.Errorf("project[%d].Name = %q, want %q", i, got[i].Name, name)
		}
	}
	if got[1].RelativePath != "tests/App.Tests/App.Tests.csproj" {
		t.Errorf("RelativePath = %q", got[1].RelativePath)
	}
}

func TestParseMembersOnlyFolders(t *testing.T) {
	text := `Project("{2150E333-8FDC-42A3-9474-1A3956D46DE8}") = "docs", "docs", "{B}"`
	got := ParseMembers(text, "/repo/My.sln")
	if got == nil || len(got) != 0 {
		t.Errorf("ParseMembers = %#v, want empty non-nil slice", got)
	}
}

func TestLocate(t *testing.T) {
	root := t.TempDir()
	slnPath := filepath.Join(root, "App", "App.sln")
	if err := os.MkdirAll(filepath.Dir(slnPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(slnPath, []byte(sampleSolution), 0o644); err != nil {
		t.Fatal(err)
	}

	path, projects, err := Locate(context.Background(), []discovery.Root{discovery.Root(root)}, "App")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if path != slnPath {
		t.Errorf("path = %q, want %q", path, slnPath)
	}
	if len(projects) != 2 {
		t.Fatalf("got %d projects, want 2", len(projects))
	}
	want := filepath.Join(root, "App", "src", "App", "App.csproj")
	if projects[0].AbsolutePath != want {
		t.Errorf("AbsolutePath = %q, want %q", projects[0].AbsolutePath, want)
	}

	missing := Missing(projects)
	if len(missing) != 2 {
		t.Errorf("Missing = %v, want both projects", missing)
	}
}

func TestLocateErrors(t *testing.T) {
	root := t.TempDir()
	roots := []discovery.Root{discovery.Root(root)}

	if _, _, err := Locate(context.Background(), roots, "Nope"); !errors.Is(err, discovery.ErrNotFound) {
		t.Errorf("Locate(missing) error = %v, want ErrNotFound", err)
	}

	for _, dir := range []string{"a", "b"} {
		p := filepath.Join(root, dir, "Dup.sln")
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(sampleSolution), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if _, _, err := Locate(context.Background(), roots, "Dup"); !errors.Is(err, discovery.ErrAmbiguous) {
		t.Errorf("Locate(dup) error = %v, want ErrAmbiguous", err)
	}

	empty := filepath.Join(root, "Empty.sln")
	if err := os.WriteFile(empty, []byte("Global\nEndGlobal\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Locate(context.Background(), roots, "Empty"); !errors.Is(err, ErrNoProjects) {
		t.Errorf("Locate(empty) error = %v, want ErrNoProjects", err)
	}
}
