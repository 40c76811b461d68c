package config

// File represents the structure of the .doclinks.yaml configuration file.
// Every field is optional; unset fields keep the built-in defaults.
type File struct {
	// Root is the documentation directory. A relative path is resolved
	// against the directory that contains the configuration file.
	Root string `yaml:"root,omitempty"`

	// Extension is the document extension, for example ".md".
	Extension string `yaml:"extension,omitempty"`

	// IndexFile is the document served for directory references.
	IndexFile string `yaml:"indexFile,omitempty"`

	// PublicDir is the static asset directory relative to the root.
	// An explicit empty string disables the public fallback.
	PublicDir *string `yaml:"publicDir,omitempty"`

	// Exclude replaces the default exclude patterns.
	Exclude []string `yaml:"exclude,omitempty"`

	// Output is the report path, relative to the root unless absolute.
	Output string `yaml:"output,omitempty"`

	// Concurrency is the number of documents processed at once.
	Concurrency int `yaml:"concurrency,omitempty"`

	// HTMLLinks enables checking of <a href> elements.
	HTMLLinks bool `yaml:"htmlLinks,omitempty"`

	// History stores every run in the history database.
	History bool `yaml:"history,omitempty"`

	// HistoryDir overrides the directory of the history database.
	// A relative path is resolved like Root.
	HistoryDir string `yaml:"historyDir,omitempty"`
}

// Apply copies the fields set in f onto c.
func (f *File) Apply(c *Config) {
	if f.Root != "" {
		c.Root = f.Root
	}
	if f.Extension != "" {
		c.Extension = f.Extension
	}
	if f.IndexFile != "" {
		c.IndexFile = f.IndexFile
	}
	if f.PublicDir != nil {
		c.PublicDir = *f.PublicDir
	}
	if len(f.Exclude) > 0 {
		c.Excludes = append([]string(nil), f.Exclude...)
	}
	if f.Output != "" {
		c.ReportFile = f.Output
	}
	if f.Concurrency != 0 {
		c.Concurrency = f.Concurrency
	}
	if f.HTMLLinks {
		c.HTMLLinks = true
	}
	if f.History {
		c.SaveHistory = true
	}
	if f.HistoryDir != "" {
		c.DBDir = f.HistoryDir
	}
}
