package config

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/nao1215/doclinks/internal/linkcheck"
)

// Default configuration values.
const (
	// DefaultRoot is the documentation directory checked when none is given.
	DefaultRoot = "docs"

	// DefaultReportFile is where the markdown report is written, relative to the root.
	// It sits inside the tree so the site publishes it as a page.
	DefaultReportFile = "tools/broken-links.md"

	// AppName is the application name used for XDG directory paths.
	AppName = "doclinks"
)

// Config holds all configuration options for doclinks.
// It is populated from defaults, the configuration file and CLI flags, then
// passed to the checker and the command through dependency injection.
type Config struct {
	// Root is the documentation directory to scan.
	Root string

	// Extension selects documents. Default ".md".
	Extension string

	// IndexFile is the document served for directory references. Default "index.md".
	IndexFile string

	// PublicDir holds assets served from the site root, relative to Root.
	// Empty disables the public fallback.
	PublicDir string

	// Excludes are glob patterns of directories and files that are not scanned.
	Excludes []string

	// Concurrency is the number of documents processed at once.
	// 1 processes documents strictly one after another.
	Concurrency int

	// HTMLLinks enables checking of <a href> elements embedded in markdown.
	HTMLLinks bool

	// ReportFile is the markdown report path. Relative paths are relative to Root.
	ReportFile string

	// Force reports broken links but always succeeds.
	// Mutually exclusive with Prompt.
	Force bool

	// Prompt asks the user whether to continue when broken links are found.
	// Mutually exclusive with Force.
	Prompt bool

	// ListBrokenLinks writes the report, lists broken links and always succeeds.
	// Mutually exclusive with Summary.
	ListBrokenLinks bool

	// Summary prints a link summary instead of checking. No report is written.
	// Mutually exclusive with ListBrokenLinks.
	Summary bool

	// JSONOutput prints the result as JSON to stdout.
	JSONOutput bool

	// SaveHistory stores the run in the history database.
	SaveHistory bool

	// DBDir is the directory of the history database.
	// Defaults to the XDG data directory (~/.local/share/doclinks on Linux).
	DBDir string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Root:        DefaultRoot,
		Extension:   linkcheck.DefaultExtension,
		IndexFile:   linkcheck.DefaultIndexFile,
		PublicDir:   linkcheck.DefaultPublicDir,
		Excludes:    append([]string(nil), linkcheck.DefaultExcludes...),
		Concurrency: linkcheck.DefaultConcurrency,
		ReportFile:  DefaultReportFile,
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for doclinks.
// On Linux: ~/.local/share/doclinks
// On macOS: ~/Library/Application Support/doclinks
// On Windows: %LOCALAPPDATA%\doclinks
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for doclinks.
// On Linux: ~/.config/doclinks
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ReportPath returns the absolute-or-root-relative location of the report file.
func (c *Config) ReportPath() string {
	if filepath.IsAbs(c.ReportFile) {
		return c.ReportFile
	}
	return filepath.Join(c.Root, filepath.FromSlash(c.ReportFile))
}

// CheckerOptions translates the configuration into linkcheck options.
func (c *Config) CheckerOptions() []linkcheck.Option {
	return []linkcheck.Option{
		linkcheck.WithExtension(c.Extension),
		linkcheck.WithIndexFile(c.IndexFile),
		linkcheck.WithPublicDir(c.PublicDir),
		linkcheck.WithExcludes(c.Excludes),
		linkcheck.WithConcurrency(c.Concurrency),
		linkcheck.WithHTMLLinks(c.HTMLLinks),
		linkcheck.WithIgnoreFiles(c.ReportPath()),
	}
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the sentinel errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return ErrNoRoot
	}

	if len(c.Extension) < 2 || !strings.HasPrefix(c.Extension, ".") || strings.ContainsAny(c.Extension, `/\`) {
		return ErrInvalidExtension
	}

	if c.IndexFile == "" || strings.ContainsAny(c.IndexFile, `/\`) || filepath.Ext(c.IndexFile) != c.Extension {
		return ErrInvalidIndexFile
	}

	if c.Concurrency < 1 {
		return ErrInvalidConcurrency
	}

	if c.Force && c.Prompt {
		return ErrConflictingPolicies
	}

	if c.ListBrokenLinks && c.Summary {
		return ErrConflictingModes
	}

	for _, p := range c.Excludes {
		if _, err := path.Match(strings.Trim(p, "/"), ""); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidExcludePattern, p)
		}
	}

	return nil
}
