// Package swap rewrites which of two package references the projects of a
// solution point at: the registry package or its locally packed twin.
//
// A Strategy decides per project whether the reference being replaced is
// present and, if so, issues the remove and add commands. The Workflow
// resolves the target library and solution, runs the packaging pre-steps,
// applies the strategy to every member project in order and clears the
// package caches at the end.
package swap
