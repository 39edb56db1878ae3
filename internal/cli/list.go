package cli

import (
	"encoding/json"
	"fmt"

	"github.com/nrs-labs/nrs/internal/config"
	"github.com/nrs-labs/nrs/internal/discovery"
	"github.com/nrs-labs/nrs/internal/feed"
	"github.com/spf13/cobra"
)

var (
	listQuery string
	listAuth  bool
	listJSON  bool
)

func init() {
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Keyword to search the feed for")
	listCmd.Flags().BoolVarP(&listAuth, "auth", "a", false, "Send the configured token with the search")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(listCmd)
}

// listEntry is one feed package and its local project matches.
type listEntry struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Matches []string `json:"matches"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List feed packages and the local projects that build them",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, settings, err := loadSettings()
		if err != nil {
			return err
		}
		keys := []string{config.KeyNugetFeed, config.KeySearchPath}
		if listAuth {
			keys = append(keys, config.KeyToken)
		}
		if err := settings.Require(keys...); err != nil {
			return err
		}

		var opts []feed.Option
		if listAuth {
			opts = append(opts, feed.WithToken(settings.Token))
		}
		result, err := feed.New(settings.NugetFeed, opts...).Search(cmd.Context(), listQuery)
		if err != nil {
			return err
		}

		roots := discovery.NormalizeRoots(settings.SearchPath, settings.BaseDir)
		entries := make([]listEntry, 0, len(result.Packages))
		for _, pkg := range result.Packages {
			matches, err := discovery.FindFiles(cmd.Context(), roots, discovery.ProjectPattern(pkg.Name()))
			if err != nil {
				return err
			}
			if matches == nil {
				matches = []string{}
			}
			entries = append(entries, listEntry{Name: pkg.Name(), Version: pkg.LatestVersion(), Matches: matches})
		}

		out := cmd.OutOrStdout()
		if listJSON {
			data, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		if len(entries) == 0 {
			fmt.Fprintln(out, "No packages found.")
			return nil
		}

		fmt.Fprintln(out, SuccessStyle.Render("Available packages:"))
		for _, e := range entries {
			fmt.Fprintf(out, "%s %s\n", e.Name, MutedStyle.Render(e.Version))
			switch len(e.Matches) {
			case 0:
				fmt.Fprintln(out, MutedStyle.Render("  - no csproj found on search path"))
			case 1:
				fmt.Fprintf(out, "  - %s %s\n", SuccessStyle.Render("found csproj at"), PathStyle.Render(e.Matches[0]))
			default:
				fmt.Fprintln(out, WarningStyle.Render(fmt.Sprintf("  - %d csproj files found, swap will refuse:", len(e.Matches))))
				for _, m := range e.Matches {
					fmt.Fprintf(out, "      %s\n", PathStyle.Render(m))
				}
			}
		}
		return nil
	},
}
