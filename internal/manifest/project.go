package manifest

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// Property returns the first non-empty value of the named property across
// all property groups, in document order.
func (p *Project) Property(name string) string {
	for _, g := range p.PropertyGroups {
		for _, prop := range g.Properties {
			if prop.Name == name && prop.Value != "" {
				return prop.Value
			}
		}
	}
	return ""
}

// TargetFramework returns the project's target framework identifier. For
// multi-targeting projects the first framework listed is returned.
func (p *Project) TargetFramework() string {
	if tf := p.Property(propTargetFramework); tf != "" {
		return tf
	}
	if tfs := p.Property(propTargetFrameworks); tfs != "" {
		return strings.TrimSpace(strings.SplitN(tfs, ";", 2)[0])
	}
	return p.Property(propTargetFrameworkVersion)
}

// IsSDKStyle reports whether the project uses the SDK project format.
func (p *Project) IsSDKStyle() bool {
	if p.SDK != "" {
		return true
	}
	if root := p.doc.Root(); root != nil && root.SelectElement("Sdk") != nil {
		return true
	}
	return p.Property(propTargetFramework) != "" || p.Property(propTargetFrameworks) != ""
}

// Generation classifies the project. Only non-SDK projects that declare a
// TargetFrameworkVersion are Legacy.
func (p *Project) Generation() Generation {
	if !p.IsSDKStyle() && p.Property(propTargetFrameworkVersion) != "" {
		return Legacy
	}
	return Modern
}

// FindPackageReference returns the first registry reference whose Include
// equals name exactly, scanning item groups in document order.
func (p *Project) FindPackageReference(name string) (*PackageReference, bool) {
	for _, g := range p.ItemGroups {
		for _, ref := range g.PackageReferences {
			if ref.Include == name {
				return ref, true
			}
		}
	}
	return nil, false
}

// PackageReferences returns every registry reference across all groups.
func (p *Project) PackageReferences() []*PackageReference {
	var refs []*PackageReference
	for _, g := range p.ItemGroups {
		refs = append(refs, g.PackageReferences...)
	}
	return refs
}

// Serialize renders the project back to markup. The tool never edits a
// project file directly, so the source bytes come back unchanged.
func (p *Project) Serialize() ([]byte, error) {
	return bytes.Clone(p.src), nil
}

// Has reports whether packages.config lists a package with the given id.
func (pc *PackagesConfig) Has(id string) bool {
	for _, pkg := range pc.Packages {
		if pkg.ID == id {
			return true
		}
	}
	return false
}

// Filter removes every entry with the given id and returns how many were removed.
func (pc *PackagesConfig) Filter(id string) int {
	removed := 0
	kept := pc.Packages[:0]
	for _, pkg := range pc.Packages {
		if pkg.ID != id {
			kept = append(kept, pkg)
			continue
		}
		pc.removed = append(pc.removed, pkg.span)
		removed++
	}
	pc.Packages = kept
	return removed
}

// Serialize renders packages.config back to markup with the filtered entries
// and their lines cut out.
func (pc *PackagesConfig) Serialize() ([]byte, error) {
	return splice(pc.src, pc.removed), nil
}

// WriteFile serializes packages.config to path.
func (pc *PackagesConfig) WriteFile(path string) error {
	data, err := pc.Serialize()
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return nil
}
