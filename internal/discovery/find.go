package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

// excludedDirs are build-output and dependency-cache directories whose copies
// of project files must never be matched.
var excludedDirs = map[string]bool{
	"bin":          true,
	"obj":          true,
	"dist":         true,
	"node_modules": true,
	".git":         true,
	".vs":          true,
}

// restoreDir is the folder legacy NuGet restores into. A directory with this
// name is only skipped when it looks like one; monorepos also use it for
// their own sources.
const restoreDir = "packages"

// isRestoreDir reports whether dir is a NuGet packages folder: it sits next
// to a solution, holds repositories.config, or holds .nupkg archives.
func isRestoreDir(dir string) bool {
	if hasMatch(os.DirFS(filepath.Dir(dir)), "*.sln") {
		return true
	}
	fsys := os.DirFS(dir)
	if _, err := fs.Stat(fsys, "repositories.config"); err == nil {
		return true
	}
	return hasMatch(fsys, "*.nupkg") || hasMatch(fsys, "*/*.nupkg")
}

func hasMatch(fsys fs.FS, pattern string) bool {
	matches, err := doublestar.Glob(fsys, pattern)
	return err == nil && len(matches) > 0
}

var (
	// ErrNotFound is returned by Unique when nothing matched.
	ErrNotFound = errors.New("no matching file found")
	// ErrAmbiguous is matched by every AmbiguousError.
	ErrAmbiguous = errors.New("ambiguous match")
)

// AmbiguousError reports a name that matched more than one file.
type AmbiguousError struct {
	Name    string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%s is ambiguous: %d matches (%s)", e.Name, len(e.Matches), strings.Join(e.Matches, ", "))
}

// Is lets errors.Is(err, ErrAmbiguous) match.
func (e *AmbiguousError) Is(target error) bool {
	return target == ErrAmbiguous
}

// ProjectPattern returns the file name pattern for a project.
func ProjectPattern(name string) string {
	return strings.TrimSuffix(name, ".csproj") + ".csproj"
}

// SolutionPattern returns the file name pattern for a solution.
func SolutionPattern(name string) string {
	return strings.TrimSuffix(name, ".sln") + ".sln"
}

// FindFiles walks every root concurrently and returns the absolute paths of
// files whose base name matches pattern (doublestar syntax). Results keep
// root order and are de-duplicated; inaccessible roots contribute nothing.
func FindFiles(ctx context.Context, roots []Root, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid file pattern %q", pattern)
	}

	results := make([][]string, len(roots))
	g, gCtx := errgroup.WithContext(ctx)
	for i, root := range roots {
		g.Go(func() error {
			matches, err := walkRoot(gCtx, string(root), pattern)
			if err != nil {
				return err
			}
			results[i] = matches
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var all []string
	for _, matches := range results {
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				all = append(all, m)
			}
		}
	}
	return all, nil
}

// walkRoot scans a single root. Only context cancellation is an error.
func walkRoot(ctx context.Context, root, pattern string) ([]string, error) {
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, nil
	}

	var matches []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			return nil // skip inaccessible entries
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			if excludedDirs[d.Name()] || (d.Name() == restoreDir && isRestoreDir(path)) {
				return filepath.SkipDir
			}
			return nil
		}
		if ok, _ := doublestar.Match(pattern, d.Name()); !ok {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil
		}
		matches = append(matches, abs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// Unique returns the single match, ErrNotFound for none, or an
// *AmbiguousError listing every match when there are several.
func Unique(matches []string, name string) (string, error) {
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s: %w", name, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousError{Name: name, Matches: matches}
	}
}

// FindUnique combines FindFiles and Unique.
func FindUnique(ctx context.Context, roots []Root, pattern string) (string, error) {
	matches, err := FindFiles(ctx, roots, pattern)
	if err != nil {
		return "", err
	}
	return Unique(matches, pattern)
}
