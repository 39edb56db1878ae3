// Package runner executes external toolchain commands (dotnet, nuget.exe,
// PowerShell) on behalf of the swap workflow. Executor is the seam the rest
// of the module depends on: ShellExecutor runs real processes and Recorder
// captures the ordered command sequence for tests.
package runner
