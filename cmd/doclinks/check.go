package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/doclinks/internal/config"
	"github.com/nao1215/doclinks/internal/console"
	"github.com/nao1215/doclinks/internal/history"
	"github.com/nao1215/doclinks/internal/linkcheck"
	"github.com/nao1215/doclinks/internal/model"
	"github.com/nao1215/doclinks/internal/report"
	"github.com/spf13/cobra"
)

// ErrBuildHalted is returned when broken links stop the build.
var ErrBuildHalted = errors.New("build halted")

// haltError carries the number of broken links that halted the build.
type haltError struct {
	count  int
	byUser bool
}

func (e *haltError) Error() string {
	if e.byUser {
		return fmt.Sprintf("%s by user: %d broken links found", ErrBuildHalted, e.count)
	}
	return fmt.Sprintf("%s: %d broken links found", ErrBuildHalted, e.count)
}

func (e *haltError) Unwrap() error {
	return ErrBuildHalted
}

// exitPolicy decides what happens when broken links are found.
type exitPolicy int

const (
	// policyStrict fails the build.
	policyStrict exitPolicy = iota
	// policyForce always continues.
	policyForce
	// policyPrompt asks the user.
	policyPrompt
	// policyList reports and continues.
	policyList
)

// policyFor returns the exit policy selected by cfg.
func policyFor(cfg *config.Config) exitPolicy {
	switch {
	case cfg.ListBrokenLinks:
		return policyList
	case cfg.Force:
		return policyForce
	case cfg.Prompt:
		return policyPrompt
	default:
		return policyStrict
	}
}

// runCheckCmd executes the link check of the root command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runCheck(ctx, cmd, cfg, logger)
}

// runCheck scans the tree, writes the report and applies the exit policy.
func runCheck(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	// Keep stdout clean for JSON; banners go to stderr then.
	out := console.New(cmd.OutOrStdout())
	if cfg.JSONOutput {
		out = console.New(cmd.ErrOrStderr())
	}

	out.Divider()
	out.Header("🔍 DOCLINKS")
	out.Divider()

	checker := linkcheck.New(cfg.Root, append(cfg.CheckerOptions(), linkcheck.WithLogger(logger))...)

	if cfg.Summary {
		out.Info("Generating link summary for %s...", checker.Root())
		out.Blank()
	} else {
		out.Info("Scanning %s for broken internal links...", checker.Root())
		out.Blank()
	}

	logger.Debug("starting scan",
		"root", cfg.Root,
		"concurrency", cfg.Concurrency,
		"excludes", cfg.Excludes,
		"config", cfg.ConfigFilePath,
	)

	result, err := checker.Scan(ctx)
	if err != nil {
		out.Blank()
		out.Divider()
		out.Error("❌ ERROR CHECKING LINKS")
		out.Warning("⚠️  BUILD PROCESS HALTED DUE TO ERROR")
		out.Divider()
		return fmt.Errorf("link check failed: %w", err)
	}

	if cfg.SaveHistory {
		saveHistory(ctx, cfg, result, logger)
	}

	if cfg.Summary {
		return writeSummary(cmd, cfg, result)
	}

	reportPath := cfg.ReportPath()
	if err := report.SaveFile(reportPath, result); err != nil {
		return err
	}
	logger.Debug("report written", "path", reportPath)

	if err := writeResult(cmd, cfg, result); err != nil {
		return err
	}

	return applyPolicy(cmd, out, policyFor(cfg), result, reportPath)
}

// writeResult prints the scan result as text or JSON.
func writeResult(cmd *cobra.Command, cfg *config.Config, result *model.ScanResult) error {
	var w report.Writer
	if cfg.JSONOutput {
		w = report.NewJSONWriter(cmd.OutOrStdout(), report.WithPrettyPrint(), report.WithVersion(getVersion()))
	} else {
		w = report.NewSimpleWriter(cmd.OutOrStdout(), report.WithResolvedPaths(cfg.Verbose))
	}
	if _, err := w.Write(result); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

// writeSummary prints the link summary as text or JSON.
func writeSummary(cmd *cobra.Command, cfg *config.Config, result *model.ScanResult) error {
	summary := model.NewLinkSummary(result)

	var w report.Writer
	if cfg.JSONOutput {
		w = report.NewJSONWriter(cmd.OutOrStdout(), report.WithPrettyPrint())
	} else {
		w = report.NewSimpleWriter(cmd.OutOrStdout())
	}
	if _, err := w.WriteSummary(summary); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// applyPolicy prints the verdict and returns a haltError when the build must stop.
func applyPolicy(cmd *cobra.Command, out *console.Console, policy exitPolicy, result *model.ScanResult, reportPath string) error {
	out.Blank()
	out.Divider()

	if !result.HasBrokenLinks() {
		out.Success("✅ NO BROKEN LINKS FOUND")
		out.Success("Documentation links are all valid!")
		if policy != policyList {
			out.Blank()
			out.Info("▶️  BUILD PROCESS CONTINUING")
		}
		out.Divider()
		return nil
	}

	count := len(result.BrokenLinks)
	out.Error("❌ FOUND %d BROKEN LINKS", count)
	out.Link("Report generated at: %s", reportPath)

	switch policy {
	case policyList:
		out.Divider()
		return nil

	case policyForce:
		out.Blank()
		out.Warning("⚠️  PROCEEDING WITH BUILD DESPITE BROKEN LINKS (--force flag used)")
		out.Divider()
		return nil

	case policyPrompt:
		out.Blank()
		if out.Confirm(cmd.InOrStdin(), "Broken links found. Do you want to continue anyway?") {
			out.Warning("⚠️  PROCEEDING WITH BUILD DESPITE BROKEN LINKS (user confirmed)")
			out.Divider()
			return nil
		}
		out.Warning("⚠️  BUILD PROCESS HALTED BY USER")
		out.Divider()
		return &haltError{count: count, byUser: true}

	default:
		out.Blank()
		out.Warning("⚠️  BUILD PROCESS HALTED")
		out.Warning("Please fix the broken links before continuing.")
		out.Info("To proceed despite broken links, use one of these flags:")
		out.Subheader("  doclinks --force")
		out.Subheader("  doclinks --prompt")
		out.Divider()
		return &haltError{count: count}
	}
}

// saveHistory stores the run. Failures are logged; they never fail the check.
func saveHistory(ctx context.Context, cfg *config.Config, result *model.ScanResult, logger *slog.Logger) {
	store, err := history.Open(cfg.DBDir, history.DefaultOptions())
	if err != nil {
		logger.Warn("failed to open history database", "dir", cfg.DBDir, "error", err)
		return
	}
	defer store.Close()

	id, err := store.SaveRun(ctx, result)
	if err != nil {
		logger.Warn("failed to save run", "error", err)
		return
	}
	logger.Debug("run saved to history", "id", id, "root", result.Root)
}
