package swap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/nrs-labs/nrs/internal/nuget"
)

// LatestVersion asks the package manager for the newest registry version.
const LatestVersion = "latest"

// ErrInvalidVersion is returned for a requested version that is not semver.
var ErrInvalidVersion = errors.New("invalid package version")

// Details describes one swap; it is computed once per run and applied
// identically to every member project.
type Details struct {
	RemoveName string
	AddName    string
	AddVersion string
	IsLocal    bool
}

// NewDetails computes the swap for package name. A local swap replaces name
// with its local id at the fixed local version; a registry swap does the
// reverse, at version (empty means latest).
func NewDetails(name string, local bool, version string) (Details, error) {
	if local {
		return Details{
			RemoveName: name,
			AddName:    nuget.LocalPackageID(name),
			AddVersion: nuget.LocalVersion,
			IsLocal:    true,
		}, nil
	}

	version = strings.TrimSpace(version)
	if version == "" || strings.EqualFold(strings.TrimPrefix(version, "@"), LatestVersion) {
		version = LatestVersion
	} else if _, err := semver.NewVersion(version); err != nil {
		return Details{}, fmt.Errorf("%w %q: %v", ErrInvalidVersion, version, err)
	}

	return Details{
		RemoveName: nuget.LocalPackageID(name),
		AddName:    name,
		AddVersion: version,
	}, nil
}

// PinnedVersion returns the version to pass to the add command, or "" when
// the package manager should pick the latest.
func (d Details) PinnedVersion() string {
	if d.AddVersion == LatestVersion {
		return ""
	}
	return d.AddVersion
}

func (d Details) String() string {
	v := d.AddVersion
	if v == "" {
		v = LatestVersion
	}
	return fmt.Sprintf("%s -> %s@%s", d.RemoveName, d.AddName, v)
}
