package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/nao1215/doclinks/internal/config"
	doclog "github.com/nao1215/doclinks/internal/log"
	"github.com/spf13/cobra"
)

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getConfigFlag retrieves the config file flag from the command or its parent.
func getConfigFlag(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		path, err = cmd.Root().PersistentFlags().GetString("config")
		if err != nil {
			return ""
		}
	}
	return path
}

// buildConfig creates a Config from defaults, the configuration file and the
// flags of cmd, in that order of precedence. A positional argument overrides
// the root directory. Flags that cmd does not define are left alone.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.ConfigFilePath = getConfigFlag(cmd)

	// If the user named a config file it must exist; otherwise a missing file
	// just means built-in defaults.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
		cfg.ConfigFilePath = configPath
	} else if explicitConfigPath {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	flags := cmd.Flags()

	if changed(cmd, "output") {
		output, err := flags.GetString("output")
		if err != nil {
			return nil, err
		}
		// -o is relative to the working directory, unlike the config file value.
		if cfg.ReportFile, err = filepath.Abs(output); err != nil {
			return nil, fmt.Errorf("failed to resolve report path: %w", err)
		}
	}

	if changed(cmd, "exclude") {
		excludes, err := flags.GetStringSlice("exclude")
		if err != nil {
			return nil, err
		}
		cfg.Excludes = append(cfg.Excludes, excludes...)
	}

	if changed(cmd, "concurrency") {
		n, err := flags.GetInt("concurrency")
		if err != nil {
			return nil, err
		}
		cfg.Concurrency = n
	}

	var err error
	if cfg.HTMLLinks, err = boolFlag(cmd, "html-links", cfg.HTMLLinks); err != nil {
		return nil, err
	}
	if cfg.SaveHistory, err = boolFlag(cmd, "history", cfg.SaveHistory); err != nil {
		return nil, err
	}
	if cfg.Force, err = boolFlag(cmd, "force", false); err != nil {
		return nil, err
	}
	if cfg.Prompt, err = boolFlag(cmd, "prompt", false); err != nil {
		return nil, err
	}
	if cfg.ListBrokenLinks, err = boolFlag(cmd, "list-broken-links", false); err != nil {
		return nil, err
	}
	if cfg.Summary, err = boolFlag(cmd, "summary", false); err != nil {
		return nil, err
	}
	if cfg.JSONOutput, err = boolFlag(cmd, "json", false); err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.Root = args[0]
	}

	return cfg, nil
}

// changed reports whether cmd defines the flag name and the user set it.
func changed(cmd *cobra.Command, name string) bool {
	return cmd.Flags().Lookup(name) != nil && cmd.Flags().Changed(name)
}

// boolFlag returns the flag value when the user set it, otherwise fallback.
func boolFlag(cmd *cobra.Command, name string, fallback bool) (bool, error) {
	if !changed(cmd, name) {
		return fallback, nil
	}
	return cmd.Flags().GetBool(name)
}

// setupLogger creates a structured logger that redacts secrets in logged URLs.
// JSON runs log JSON lines so that tools reading both streams get one format.
func setupLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	if cfg.JSONOutput {
		return doclog.NewJSONLogger(w, cfg.Verbose)
	}
	return doclog.NewLogger(w, cfg.Verbose)
}

// commandContext returns the context of cmd, or a background context.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
