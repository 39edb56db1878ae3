package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/nrs-labs/nrs/internal/config"
	"github.com/nrs-labs/nrs/internal/discovery"
	"github.com/nrs-labs/nrs/internal/nuget"
	"github.com/nrs-labs/nrs/internal/userdata"
	"github.com/spf13/cobra"
)

// lookPath finds toolchain binaries. Tests replace it.
var lookPath = exec.LookPath

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the toolchain and configuration",
	Long:  `Run diagnostic checks on the dotnet toolchain, config.json and the search path.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, settings, err := loadSettings()
		if err != nil {
			return err
		}
		d := &doctor{w: cmd.OutOrStdout()}

		fmt.Fprintln(d.w, "Toolchain:")
		dotnetFound := d.checkBinary("dotnet")
		if settings.NugetExe != "" {
			d.checkBinary(settings.NugetExe)
		}

		fmt.Fprintln(d.w, "Configuration:")
		d.checkConfigFile(store.Path())
		d.checkKey(settings, config.KeySearchPath, true)
		d.checkKey(settings, config.KeyNugetFeed, false)
		d.checkKey(settings, config.KeyToken, false)

		fmt.Fprintln(d.w, "Search path:")
		for _, root := range discovery.NormalizeRoots(settings.SearchPath, settings.BaseDir) {
			if info, err := os.Stat(string(root)); err != nil || !info.IsDir() {
				d.miss("%s does not exist", root)
				continue
			}
			d.ok("%s", root)
		}

		if dotnetFound {
			fmt.Fprintln(d.w, "Package sources:")
			d.checkLocalSource(cmd)
		}

		if d.problems > 0 {
			return fmt.Errorf("doctor found %d problem(s)", d.problems)
		}
		return nil
	},
}

type doctor struct {
	w        io.Writer
	problems int
}

func (d *doctor) ok(format string, args ...any) {
	fmt.Fprintf(d.w, "  %s %s\n", SuccessStyle.Render("[ OK ]"), fmt.Sprintf(format, args...))
}

func (d *doctor) warn(format string, args ...any) {
	fmt.Fprintf(d.w, "  %s %s\n", WarningStyle.Render("[WARN]"), fmt.Sprintf(format, args...))
}

func (d *doctor) miss(format string, args ...any) {
	d.problems++
	fmt.Fprintf(d.w, "  %s %s\n", ErrorStyle.Render("[MISS]"), fmt.Sprintf(format, args...))
}

func (d *doctor) checkBinary(name string) bool {
	path, err := lookPath(name)
	if err != nil {
		d.miss("%s not found on PATH", name)
		return false
	}
	d.ok("%s (%s)", name, path)
	return true
}

func (d *doctor) checkConfigFile(path string) {
	result, err := config.ValidateFile(path)
	if err != nil {
		d.miss("%s: %v", path, err)
		return
	}
	if !result.Valid {
		for _, issue := range result.Issues {
			d.miss("%s %s: %s", path, issue.Path, issue.Message)
		}
		return
	}
	d.ok("%s", path)
}

// checkKey reports a missing required key as a problem and a missing
// optional key as a warning.
func (d *doctor) checkKey(settings config.Settings, key string, required bool) {
	err := settings.Require(key)
	switch {
	case err == nil:
		d.ok("%s is set", key)
	case required:
		d.miss("%v", err)
	default:
		d.warn("%v", err)
	}
}

func (d *doctor) checkLocalSource(cmd *cobra.Command) {
	outDir, err := userdata.GetOutDir()
	if err != nil {
		d.warn("resolving output directory: %v", err)
		return
	}
	listing, err := nuget.New(newExecutor(), nuget.WithLogger(logger)).ListSources(cmd.Context())
	if err != nil {
		d.miss("%v", err)
		return
	}
	if nuget.HasSource(listing, outDir) {
		d.ok("local source registered (%s)", outDir)
		return
	}
	d.warn("local source not registered yet; swap --local registers it")
}
