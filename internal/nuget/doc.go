// Package nuget sequences the package-manager commands around a swap:
// registering the local and feed sources, packing the library under its
// local id, restoring touched projects and clearing the resolution caches.
//
// Every call goes through a runner.Executor. A non-zero exit surfaces as a
// *runner.CommandError and is never retried.
package nuget
