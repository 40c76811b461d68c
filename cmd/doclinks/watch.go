package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/nao1215/doclinks/internal/config"
	"github.com/nao1215/doclinks/internal/console"
	"github.com/nao1215/doclinks/internal/linkcheck"
	"github.com/nao1215/doclinks/internal/report"
	"github.com/nao1215/doclinks/internal/watch"
	"github.com/spf13/cobra"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [docs-dir]",
		Short: "Re-check links whenever documents change",
		Long: `Watch runs a full link check, then keeps watching the documentation directory
and runs it again after files are created, changed, renamed or removed.
The report file is rewritten on every run. Stop with Ctrl+C.

Examples:
  # Watch ./docs
  doclinks watch

  # Wait one second of quiet before re-checking
  doclinks watch --debounce 1s site/docs`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWatchCmd,
	}

	addScanFlags(cmd)
	cmd.Flags().Duration("debounce", watch.DefaultDebounce, "Quiet period after the last change before re-checking")

	return cmd
}

// runWatchCmd executes the watch command.
func runWatchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg)
	out := console.New(cmd.OutOrStdout())

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", cfg.Root, err)
	}
	reportPath, err := filepath.Abs(cfg.ReportPath())
	if err != nil {
		return fmt.Errorf("failed to resolve report path: %w", err)
	}

	skip, err := watchSkipFunc(cfg, root, reportPath)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	checker := linkcheck.New(root, append(cfg.CheckerOptions(), linkcheck.WithLogger(logger))...)
	cycle := func(ctx context.Context) error {
		return runWatchCycle(ctx, out, checker, reportPath)
	}

	out.Divider()
	out.Header("👀 DOCLINKS WATCH")
	out.Info("Watching %s (press Ctrl+C to stop)", root)
	out.Divider()

	if err := cycle(ctx); err != nil {
		return err
	}

	w := watch.New(root,
		watch.WithDebounce(debounce),
		watch.WithExtension(cfg.Extension),
		watch.WithSkip(skip),
		watch.WithLogger(logger),
	)
	return w.Run(ctx, func(ctx context.Context) error {
		out.Blank()
		out.Info("Change detected at %s, re-checking...", time.Now().Format("15:04:05"))
		return cycle(ctx)
	})
}

// runWatchCycle runs one scan, rewrites the report and prints the result.
func runWatchCycle(ctx context.Context, out *console.Console, checker *linkcheck.Checker, reportPath string) error {
	result, err := checker.Scan(ctx)
	if err != nil {
		return fmt.Errorf("link check failed: %w", err)
	}
	if err := report.SaveFile(reportPath, result); err != nil {
		return err
	}
	if _, err := report.NewSimpleWriter(out.Writer()).Write(result); err != nil {
		return err
	}

	if result.HasBrokenLinks() {
		out.Error("❌ FOUND %d BROKEN LINKS", len(result.BrokenLinks))
		out.Link("Report generated at: %s", reportPath)
	} else {
		out.Success("✅ NO BROKEN LINKS FOUND")
	}
	return nil
}

// watchSkipFunc ignores excluded paths and the report file, which every run rewrites.
func watchSkipFunc(cfg *config.Config, root, reportPath string) (watch.SkipFunc, error) {
	excluder, err := linkcheck.NewExcluder(cfg.Excludes)
	if err != nil {
		return nil, err
	}

	reportRel := ""
	if rel, err := filepath.Rel(root, reportPath); err == nil && !strings.HasPrefix(rel, "..") {
		reportRel = filepath.ToSlash(rel)
	}

	return func(rel string, _ bool) bool {
		if reportRel != "" && rel == reportRel {
			return true
		}
		return excluder.Match(rel)
	}, nil
}
