package cli

import (
	"fmt"

	"github.com/nrs-labs/nrs/internal/swap"
	"github.com/nrs-labs/nrs/internal/userdata"
	"github.com/spf13/cobra"
)

var (
	swapSolution string
	swapName     string
	swapLocal    bool
	swapAuth     bool
	swapVersion  string
)

func init() {
	swapCmd.Flags().StringVarP(&swapSolution, "solution", "s", "", "Solution whose projects are swapped (name of the .sln file)")
	swapCmd.Flags().StringVarP(&swapName, "name", "n", "", "Package to swap; its .csproj must be on the search path")
	swapCmd.Flags().BoolVarP(&swapLocal, "local", "l", false, "Swap to a local build instead of the registry package")
	swapCmd.Flags().BoolVarP(&swapAuth, "auth", "a", false, "Register the authenticated feed before swapping to the registry")
	swapCmd.Flags().StringVarP(&swapVersion, "version", "v", swap.LatestVersion, "Registry version to swap to")
	_ = swapCmd.MarkFlagRequired("solution")
	_ = swapCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(swapCmd)
}

var swapCmd = &cobra.Command{
	Use:   "swap",
	Short: "Swap a package reference between the registry and a local build",
	Long: `Swap replaces the reference to a package in every project of a solution.

With --local the library is built and packed into the local package directory
as <name>_Local<tool> 1.0.0 and projects are pointed at it. Without it, projects
are pointed back at the registry package. Projects that do not reference the
package are left alone.`,
	Example: `  nrs swap -s MySolution -n Contoso.Core -l
  nrs swap -s MySolution -n Contoso.Core -a -v 2.1.0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, settings, err := loadSettings()
		if err != nil {
			return err
		}

		var outDir string
		if swapLocal {
			outDir, err = userdata.EnsureOutDir()
		} else {
			outDir, err = userdata.GetOutDir()
		}
		if err != nil {
			return err
		}

		wf := &swap.Workflow{
			Settings: settings,
			Exec:     newExecutor(),
			OutDir:   outDir,
			Logger:   logger,
		}
		report, err := wf.Run(cmd.Context(), swap.Request{
			Solution: swapSolution,
			Name:     swapName,
			Local:    swapLocal,
			Auth:     swapAuth,
			Version:  swapVersion,
		})
		if err != nil {
			return err
		}

		printSwapReport(cmd, report)
		return nil
	},
}

func printSwapReport(cmd *cobra.Command, report *swap.Report) {
	out := cmd.OutOrStdout()
	for _, p := range report.Swapped {
		fmt.Fprintf(out, "  %s %s\n", SuccessStyle.Render("swapped"), PathStyle.Render(p.RelativePath))
	}
	for _, p := range report.Skipped {
		fmt.Fprintf(out, "  %s %s\n", MutedStyle.Render("skipped"), MutedStyle.Render(p.RelativePath))
	}

	if len(report.Swapped) == 0 {
		fmt.Fprintln(out, WarningStyle.Render("No project references "+report.Details.RemoveName))
		return
	}
	total := len(report.Swapped) + len(report.Skipped)
	fmt.Fprintln(out, SuccessStyle.Render(fmt.Sprintf("%s in %d of %d project(s)", report.Details, len(report.Swapped), total)))
}
