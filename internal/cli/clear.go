package cli

import (
	"fmt"

	"github.com/nrs-labs/nrs/internal/nuget"
	"github.com/nrs-labs/nrs/internal/userdata"
	"github.com/spf13/cobra"
)

var clearIncludeConfig bool

func init() {
	clearCmd.Flags().BoolVarP(&clearIncludeConfig, "include-config", "i", false, "Also delete config.json")
	rootCmd.AddCommand(clearCmd)
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Unregister the local package source and delete local packages",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		removed, err := nuget.New(newExecutor(), nuget.WithLogger(logger)).RemoveLocalSource(cmd.Context())
		if err != nil {
			return err
		}
		if removed {
			fmt.Fprintln(out, MutedStyle.Render("local package source removed"))
		}

		result, err := userdata.Clear(clearIncludeConfig)
		if err != nil {
			return err
		}
		if result.Empty {
			fmt.Fprintln(out, "No data to clear.")
			return nil
		}
		for _, name := range result.Removed {
			fmt.Fprintln(out, MutedStyle.Render("  removed "+name))
		}
		if clearIncludeConfig {
			fmt.Fprintln(out, SuccessStyle.Render("All data cleared."))
		} else {
			fmt.Fprintln(out, SuccessStyle.Render("All data cleared except config file."))
		}
		return nil
	},
}
