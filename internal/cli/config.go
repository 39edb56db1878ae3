package cli

import (
	"fmt"

	"github.com/nrs-labs/nrs/internal/config"
	"github.com/spf13/cobra"
)

var (
	configKey   string
	configValue string
)

func init() {
	configCmd.Flags().StringVarP(&configKey, "key", "k", "", "Configuration key (token, nuget_feed, search_path, nuget_exe)")
	configCmd.Flags().StringVarP(&configValue, "value", "v", "", "Value to store; omit to read the key")
	_ = configCmd.MarkFlagRequired("key")
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get or set a configuration value",
	Example: `  nrs config -k search_path -v ~/src,~/work
  nrs config -k nuget_feed`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.Open()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if !cmd.Flags().Changed("value") {
			value := store.Get(configKey)
			if value == "" {
				fmt.Fprintln(out, WarningStyle.Render(fmt.Sprintf("Configuration %s is unset", configKey)))
				return nil
			}
			fmt.Fprintln(out, value)
			return nil
		}

		if err := store.Set(configKey, configValue); err != nil {
			return err
		}
		result, err := config.ValidateFile(store.Path())
		if err != nil {
			return err
		}
		for _, issue := range result.Issues {
			fmt.Fprintln(cmd.ErrOrStderr(), WarningStyle.Render(fmt.Sprintf("warning: %s: %s", issue.Path, issue.Message)))
		}
		fmt.Fprintln(out, SuccessStyle.Render(fmt.Sprintf("%s saved", configKey)))
		return nil
	},
}
