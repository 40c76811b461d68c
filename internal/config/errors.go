package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so callers can use
// errors.Is() while users still get a readable message.
var (
	// ErrNoRoot is returned when no documentation directory is configured.
	ErrNoRoot = errors.New("no documentation directory specified")

	// ErrInvalidExtension is returned when the document extension is empty,
	// does not start with a dot or contains a path separator.
	ErrInvalidExtension = errors.New("invalid document extension: must look like .md")

	// ErrInvalidIndexFile is returned when the index document name is empty,
	// contains a path separator or does not use the document extension.
	ErrInvalidIndexFile = errors.New("invalid index file: must be a document name such as index.md")

	// ErrInvalidConcurrency is returned when concurrency is less than one.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be at least 1")

	// ErrConflictingPolicies is returned when both --force and --prompt are set.
	// Only one exit policy can decide what happens to broken links.
	ErrConflictingPolicies = errors.New("conflicting policies: --force and --prompt cannot be used together")

	// ErrConflictingModes is returned when both --list-broken-links and --summary are set.
	ErrConflictingModes = errors.New("conflicting modes: --list-broken-links and --summary cannot be used together")

	// ErrInvalidExcludePattern is returned when an exclude glob is malformed.
	ErrInvalidExcludePattern = errors.New("invalid exclude pattern")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
