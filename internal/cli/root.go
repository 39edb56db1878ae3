package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/nrs-labs/nrs/internal/branding"
	"github.com/nrs-labs/nrs/internal/config"
	"github.com/nrs-labs/nrs/internal/nuget"
	"github.com/nrs-labs/nrs/internal/runner"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbose bool
	logger  = log.NewWithOptions(os.Stderr, log.Options{Prefix: "nrs"})
)

// newExecutor builds the executor commands run through. Tests replace it.
var newExecutor = func() runner.Executor {
	exec := &runner.ShellExecutor{Logger: logger, RedactFlags: nuget.PasswordFlags}
	if verbose {
		exec.Stream = os.Stderr
	}
	return exec
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log every external command and stream its output")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` swaps a NuGet package reference between the registry feed and a local
build of the same library, across every project of a solution.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetOutput(cmd.ErrOrStderr())
		if verbose {
			logger.SetLevel(log.DebugLevel)
		} else {
			logger.SetLevel(log.WarnLevel)
		}
	},
}

// Execute runs the root command with build info injected via ldflags. A
// failing command has its error printed as a single red line.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// printError echoes the captured output of a failed external command before
// the error line itself.
func printError(w io.Writer, err error) {
	var cmdErr *runner.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Output != "" {
		fmt.Fprintln(w, cmdErr.Output)
	}
	fmt.Fprintln(w, ErrorStyle.Render(err.Error()))
}

// loadSettings opens the persisted configuration and snapshots it with the
// working directory as the base for relative search paths.
func loadSettings() (*config.Store, config.Settings, error) {
	store, err := config.Open()
	if err != nil {
		return nil, config.Settings{}, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, config.Settings{}, fmt.Errorf("resolving working directory: %w", err)
	}
	return store, store.Settings(cwd), nil
}
