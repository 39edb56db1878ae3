// Package userdata resolves the tool's data directory: the config.json store
// and the out/ directory that locally packed packages are written to and
// registered from. The location follows the installed binary unless NRS_DATA
// overrides it.
package userdata
