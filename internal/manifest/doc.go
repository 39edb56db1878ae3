// Package manifest parses MSBuild project files (.csproj) and legacy
// packages.config files, and rewrites the latter.
//
// Parsing goes through an etree document: Project and PackagesConfig expose
// the property groups, item groups and package entries the tool reasons about.
// Writing never goes back through the document. Each kept file holds its
// source bytes, and removing a packages.config entry cuts that entry's line
// out of them, so targets, imports, conditions, comments, entity escapes and
// self-closing style are all written back exactly as they were read.
package manifest
