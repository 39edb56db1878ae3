package manifest

import (
	"errors"

	"github.com/beevik/etree"
)

// ErrMalformed is returned when manifest markup cannot be parsed at all.
// Missing groups or attributes are never reported with it.
var ErrMalformed = errors.New("malformed manifest")

// Generation identifies the project system a manifest belongs to.
type Generation int

const (
	// Modern is an SDK-style project managed with `dotnet add/remove package`.
	Modern Generation = iota
	// Legacy is a .NET Framework project whose packages live in packages.config.
	Legacy
)

func (g Generation) String() string {
	switch g {
	case Legacy:
		return "legacy"
	default:
		return "modern"
	}
}

// Element and attribute names read from project files.
const (
	tagPropertyGroup    = "PropertyGroup"
	tagItemGroup        = "ItemGroup"
	tagPackageReference = "PackageReference"
	tagReference        = "Reference"
	tagHintPath         = "HintPath"
	tagVersion          = "Version"
	tagPackage          = "package"

	attrInclude         = "Include"
	attrVersion         = "Version"
	attrSdk             = "Sdk"
	attrID              = "id"
	attrPackageVersion  = "version"
	attrTargetFramework = "targetFramework"

	propTargetFramework        = "TargetFramework"
	propTargetFrameworks       = "TargetFrameworks"
	propTargetFrameworkVersion = "TargetFrameworkVersion"
)

// Project is the in-memory tree of a .csproj file. Groups are always held as
// lists; the source bytes are kept so the file is written back untouched.
type Project struct {
	SDK            string
	PropertyGroups []*PropertyGroup
	ItemGroups     []*ItemGroup

	doc *etree.Document
	src []byte
}

// PropertyGroup is an ordered list of build settings.
type PropertyGroup struct {
	Condition  string
	Properties []Property
}

// Property is a single setting such as TargetFramework.
type Property struct {
	Name  string
	Value string
}

// ItemGroup holds the reference entries of one <ItemGroup> element.
type ItemGroup struct {
	Condition         string
	PackageReferences []*PackageReference
	References        []*FileReference
}

// PackageReference is a registry reference: an Include name plus a version.
type PackageReference struct {
	Include string
	Version string
}

// FileReference is a local/file reference with an optional HintPath.
type FileReference struct {
	Include  string
	HintPath string
}

// PackagesConfig is the tree of a legacy packages.config file. Filtered
// entries are cut out of the source bytes; every other byte is kept.
type PackagesConfig struct {
	Packages []*PackageEntry

	src     []byte
	removed []span
}

// PackageEntry is one <package> line of packages.config.
type PackageEntry struct {
	ID              string
	Version         string
	TargetFramework string

	span span
}
