package discovery

import (
	"path/filepath"
	"strings"
)

// Root is an absolute, host-normalised directory to search.
type Root string

// NormalizeRoots splits a comma-separated search path, trims each entry and
// resolves relative entries against baseDir. Empty entries are dropped.
// No filesystem access happens here: a root that does not exist simply
// yields no matches later.
func NormalizeRoots(raw, baseDir string) []Root {
	var roots []Root
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		entry = filepath.FromSlash(entry)
		if !filepath.IsAbs(entry) {
			entry = filepath.Join(baseDir, entry)
		}
		if abs, err := filepath.Abs(entry); err == nil {
			entry = abs
		}
		roots = append(roots, Root(filepath.Clean(entry)))
	}
	return roots
}

// Strings returns the roots as plain paths.
func Strings(roots []Root) []string {
	out := make([]string, len(roots))
	for i, r := range roots {
		out[i] = string(r)
	}
	return out
}
