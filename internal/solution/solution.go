package solution

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nrs-labs/nrs/internal/discovery"
)

// FolderTypeID is the project type of virtual solution folders.
const FolderTypeID = "{2150E333-8FDC-42A3-9474-1A3956D46DE8}"

// ErrNoProjects is returned when a solution declares no member projects.
var ErrNoProjects = errors.New("solution declares no projects")

// memberLine matches: Project("{type}") = "Name", "Relative\Path.csproj", "{id}"
var memberLine = regexp.MustCompile(`Project\(([^)]*)\)\s*=\s*"([^"]*)"\s*,\s*"([^"]*)"`)

// Project is one member of a solution.
type Project struct {
	Name         string
	RelativePath string // always forward slashes
	AbsolutePath string // host separators
}

// ParseMembers extracts the projects declared in solution text. It returns
// nil, not an empty slice, when the text has no project declarations so that
// "not a solution" can be told apart from a solution whose only entries are
// folders. No filesystem access is performed.
func ParseMembers(text, solutionPath string) []Project {
	matches := memberLine.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	dir := filepath.Dir(solutionPath)
	projects := make([]Project, 0, len(matches))
	for _, m := range matches {
		typeID := strings.ToUpper(strings.Trim(m[1], `" `))
		if typeID == FolderTypeID {
			continue
		}
		rel := strings.ReplaceAll(m[3], `\`, "/")
		projects = append(projects, Project{
			Name:         m[2],
			RelativePath: rel,
			AbsolutePath: filepath.Join(dir, filepath.FromSlash(rel)),
		})
	}
	return projects
}

// Locate finds exactly one solution named name under roots and returns its
// path and member projects.
func Locate(ctx context.Context, roots []discovery.Root, name string) (string, []Project, error) {
	path, err := discovery.FindUnique(ctx, roots, discovery.SolutionPattern(name))
	if err != nil {
		return "", nil, fmt.Errorf("locating solution: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("reading solution %s: %w", path, err)
	}

	projects := ParseMembers(string(data), path)
	if projects == nil {
		return path, nil, fmt.Errorf("%s: %w", path, ErrNoProjects)
	}
	return path, projects, nil
}

// Missing returns the projects whose manifest does not exist on disk.
func Missing(projects []Project) []Project {
	var missing []Project
	for _, p := range projects {
		if info, err := os.Stat(p.AbsolutePath); err != nil || info.IsDir() {
			missing = append(missing, p)
		}
	}
	return missing
}
