package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/nao1215/doclinks/internal/history"
	"github.com/nao1215/doclinks/internal/model"
	"github.com/nao1215/doclinks/internal/report"
	"github.com/spf13/cobra"
)

// NewCompareCmd creates the compare command.
// This command compares runs stored in the history database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [docs-dir]",
		Short: "Compare link check results with earlier runs",
		Long: `Compare displays the difference between the latest run and an earlier run
of the same documentation directory:
- Broken links that appeared since the earlier run
- Broken links that were fixed
- Changes in document, link and broken link counts

Runs are only stored when doclinks is run with --history (or history: true
in the configuration file), so at least two such runs are required.

Examples:
  # Compare the latest two runs of ./docs
  doclinks compare

  # List stored runs of a directory
  doclinks compare --list site/docs

  # Compare the latest run with a specific run
  doclinks compare --with-run 0b6f4c1e-... site/docs

  # Output the comparison as JSON
  doclinks compare --json

  # List every directory with stored runs
  doclinks compare --list-roots`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false, "List stored runs of the documentation directory")
	cmd.Flags().BoolP("list-roots", "L", false, "List all documentation directories with stored runs")

	// Comparison target flags
	cmd.Flags().StringP("with-run", "i", "", "Compare with a specific run by ID (use --list to see IDs)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false, "Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false, "Output comparison result in Markdown format")
	cmd.MarkFlagsMutuallyExclusive("json", "markdown")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	listRoots, err := cmd.Flags().GetBool("list-roots")
	if err != nil {
		return err
	}
	listRuns, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	withRun, err := cmd.Flags().GetString("with-run")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", cfg.Root, err)
	}

	store, err := history.Open(cfg.DBDir, history.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	if listRoots {
		return listStoredRoots(ctx, out, store)
	}
	if listRuns {
		return listStoredRuns(ctx, out, store, root)
	}

	previous, current, err := selectRuns(ctx, store, root, withRun)
	if err != nil {
		return err
	}

	var w report.Writer
	switch {
	case cfg.JSONOutput:
		w = report.NewJSONWriter(out, report.WithPrettyPrint())
	case markdownOutput:
		w = report.NewMarkdownWriter(out)
	default:
		w = report.NewSimpleWriter(out)
	}

	if _, err := w.WriteComparison(model.CompareResults(previous, current)); err != nil {
		return fmt.Errorf("failed to write comparison: %w", err)
	}
	return nil
}

// selectRuns returns the runs to compare: the run withRun (or the second
// latest run) against the latest run of root.
func selectRuns(ctx context.Context, store *history.Store, root, withRun string) (*model.ScanResult, *model.ScanResult, error) {
	latest, err := store.Latest(ctx, root, 2)
	if err != nil {
		return nil, nil, err
	}
	if len(latest) == 0 {
		return nil, nil, fmt.Errorf("no stored runs found for %s (run doclinks --history first)", root)
	}
	current := latest[0]

	if withRun != "" {
		previous, err := store.GetRun(ctx, withRun)
		if err != nil {
			if errors.Is(err, history.ErrRunNotFound) {
				return nil, nil, fmt.Errorf("%w (use --list to see available runs)", err)
			}
			return nil, nil, err
		}
		return previous, current, nil
	}

	if len(latest) < 2 {
		return nil, nil, fmt.Errorf("at least 2 runs are required for comparison (found %d)", len(latest))
	}
	return latest[1], current, nil
}

// listStoredRoots prints every documentation directory with stored runs.
func listStoredRoots(ctx context.Context, out io.Writer, store *history.Store) error {
	roots, err := store.ListRoots(ctx)
	if err != nil {
		return err
	}

	if len(roots) == 0 {
		fmt.Fprintln(out, "No stored runs found in the history database.")
		fmt.Fprintln(out, "\nUse 'doclinks --history <docs-dir>' to store a run.")
		return nil
	}

	fmt.Fprintf(out, "Documentation directories (%d):\n\n", len(roots))
	for _, root := range roots {
		fmt.Fprintf(out, "  • %s\n", root)
	}
	fmt.Fprintln(out, "\nUse 'doclinks compare --list <docs-dir>' to see the runs of a directory.")
	return nil
}

// listStoredRuns prints the runs of root, newest first.
func listStoredRuns(ctx context.Context, out io.Writer, store *history.Store, root string) error {
	records, err := store.History(ctx, root)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintf(out, "No stored runs found for %s\n", root)
		fmt.Fprintln(out, "\nUse 'doclinks --history' to store a run.")
		return nil
	}

	fmt.Fprintf(out, "Run history for %s (%d runs):\n\n", root, len(records))
	fmt.Fprintf(out, "  %-36s  %-20s  %9s  %7s  %7s\n", "ID", "Date", "Documents", "Links", "Broken")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 87))
	for _, rec := range records {
		fmt.Fprintf(out, "  %-36s  %-20s  %9d  %7d  %7d\n",
			rec.ID,
			rec.Timestamp.Local().Format("2006-01-02 15:04:05"),
			rec.Documents,
			rec.Links,
			rec.Broken,
		)
	}

	fmt.Fprintln(out, "\nUse 'doclinks compare' to compare the latest two runs.")
	fmt.Fprintln(out, "Use 'doclinks compare --with-run <id>' to compare with a specific run.")
	return nil
}
