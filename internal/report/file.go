package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/doclinks/internal/model"
)

// SaveFile writes the markdown report of result to path, replacing any
// previous report. Missing parent directories are created.
func SaveFile(path string, result *model.ScanResult) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644) //nolint:gosec // report is published with the docs
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	if _, err := NewMarkdownWriter(f).Write(result); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	return f.Close()
}
