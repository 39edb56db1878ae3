package feed

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// LatestVersion returns the highest semver among the package's published
// versions, ignoring entries that do not parse. It falls back to the
// version the feed reported when none parse.
func (p Package) LatestVersion() string {
	var best *semver.Version
	var bestRaw string

	candidates := make([]string, 0, len(p.Versions)+1)
	candidates = append(candidates, p.Version)
	for _, v := range p.Versions {
		candidates = append(candidates, v.Version)
	}

	for _, raw := range candidates {
		v, err := parseSemver(raw)
		if err != nil {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best, bestRaw = v, raw
		}
	}
	if best == nil {
		return p.Version
	}
	return bestRaw
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	return semver.NewVersion(version)
}
