package manifest

import (
	"fmt"
	"os"
	"strings"

	"github.com/beevik/etree"
)

// Parse reads .csproj markup into a Project tree.
func Parse(data []byte) (*Project, error) {
	doc, err := readDocument(data)
	if err != nil {
		return nil, err
	}

	root := doc.Root()
	p := &Project{
		SDK: root.SelectAttrValue(attrSdk, ""),
		doc: doc,
		src: data,
	}

	for _, child := range root.ChildElements() {
		switch child.Tag {
		case tagPropertyGroup:
			p.PropertyGroups = append(p.PropertyGroups, parsePropertyGroup(child))
		case tagItemGroup:
			p.ItemGroups = append(p.ItemGroups, parseItemGroup(child))
		}
	}

	return p, nil
}

// ParseFile reads and parses the project file at path.
func ParseFile(path string) (*Project, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return p, nil
}

// ParsePackagesConfig reads packages.config markup.
func ParsePackagesConfig(data []byte) (*PackagesConfig, error) {
	doc, err := readDocument(data)
	if err != nil {
		return nil, err
	}

	spans, err := childSpans(data, tagPackage)
	if err != nil {
		return nil, err
	}
	elements := doc.Root().SelectElements(tagPackage)
	if len(elements) != len(spans) {
		return nil, fmt.Errorf("%w: found %d package entries, located %d", ErrMalformed, len(elements), len(spans))
	}

	pc := &PackagesConfig{src: data}
	for i, el := range elements {
		pc.Packages = append(pc.Packages, &PackageEntry{
			ID:              el.SelectAttrValue(attrID, ""),
			Version:         el.SelectAttrValue(attrPackageVersion, ""),
			TargetFramework: el.SelectAttrValue(attrTargetFramework, ""),
			span:            spans[i],
		})
	}
	return pc, nil
}

// ParsePackagesConfigFile reads and parses the packages.config at path.
func ParsePackagesConfigFile(path string) (*PackagesConfig, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	pc, err := ParsePackagesConfig(data)
	if err != nil {
		return nil, fmt.Errorf("parsing packages config %s: %w", path, err)
	}
	return pc, nil
}

func parsePropertyGroup(el *etree.Element) *PropertyGroup {
	g := &PropertyGroup{Condition: el.SelectAttrValue("Condition", "")}
	for _, child := range el.ChildElements() {
		g.Properties = append(g.Properties, Property{
			Name:  child.Tag,
			Value: strings.TrimSpace(child.Text()),
		})
	}
	return g
}

func parseItemGroup(el *etree.Element) *ItemGroup {
	g := &ItemGroup{Condition: el.SelectAttrValue("Condition", "")}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case tagPackageReference:
			g.PackageReferences = append(g.PackageReferences, &PackageReference{
				Include: child.SelectAttrValue(attrInclude, ""),
				Version: versionOf(child),
			})
		case tagReference:
			ref := &FileReference{Include: child.SelectAttrValue(attrInclude, "")}
			if hint := child.SelectElement(tagHintPath); hint != nil {
				ref.HintPath = strings.TrimSpace(hint.Text())
			}
			g.References = append(g.References, ref)
		}
	}
	return g
}

// versionOf reads a PackageReference version from either the Version
// attribute or a nested <Version> element.
func versionOf(el *etree.Element) string {
	if v := el.SelectAttrValue(attrVersion, ""); v != "" {
		return v
	}
	if child := el.SelectElement(tagVersion); child != nil {
		return strings.TrimSpace(child.Text())
	}
	return ""
}

// readDocument parses markup strictly. Input without a root element is
// rejected: it cannot be a manifest.
func readDocument(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformed)
	}
	return doc, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
