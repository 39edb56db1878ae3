// Package discovery turns the configured search_path into absolute search
// roots and finds project and solution files beneath them. Roots are walked
// in parallel; every match is returned so callers can tell a unique hit from
// an ambiguous one.
package discovery
