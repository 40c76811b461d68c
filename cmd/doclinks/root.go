package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for doclinks.
// The root command itself performs the link check.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doclinks [docs-dir]",
		Short: "Find broken internal links in a markdown documentation tree",
		Long: `doclinks scans a directory of markdown documents, resolves every internal
[text](url) link against the filesystem and reports the links that point nowhere.

A markdown report is written into the documentation tree (tools/broken-links.md
by default) so it is published with the site. The exit status tells the build
whether to continue:

  default               exit 1 when broken links are found
  --force               report broken links but always exit 0
  --prompt              ask whether to continue when broken links are found
  --list-broken-links   list broken links without affecting the build
  --summary             print a summary of all links (no report is written)

Examples:
  # Check ./docs
  doclinks

  # Check another directory and continue regardless
  doclinks --force site/docs

  # Ask before failing the build
  doclinks --prompt

  # Store the run so 'doclinks compare' can show what changed
  doclinks --history`,
		Version:       getVersion(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCheckCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .doclinks.yaml in current, XDG config or home directory)")

	addScanFlags(cmd)

	// Exit policy flags
	cmd.Flags().Bool("force", false, "Report broken links but exit 0 regardless")
	cmd.Flags().Bool("prompt", false, "Ask whether to continue when broken links are found")
	cmd.Flags().Bool("list-broken-links", false, "Write the report and list broken links without failing")
	cmd.Flags().Bool("summary", false, "Print a summary of all links instead of checking")
	cmd.MarkFlagsMutuallyExclusive("force", "prompt")
	cmd.MarkFlagsMutuallyExclusive("list-broken-links", "summary")

	// Output flags
	cmd.Flags().BoolP("json", "j", false, "Print the result as JSON to stdout")
	cmd.Flags().Bool("history", false, "Save this run to the history database")

	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewWatchCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// addScanFlags registers the flags that shape a scan.
func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "",
		"Report file path (default: tools/broken-links.md inside the docs directory)")
	cmd.Flags().StringSliceP("exclude", "e", nil,
		"Glob pattern of directories or files to skip (repeatable, added to the defaults)")
	cmd.Flags().Int("concurrency", 0, "Number of documents processed at once (default 8)")
	cmd.Flags().Bool("html-links", false, "Also check <a href> elements embedded in markdown")
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
