// Package config provides configuration structures and utilities for doclinks.
// It defines where the documentation lives, which documents are checked, how
// references are resolved and what the command does with broken links.
//
// Values are layered: NewConfig defaults, then the .doclinks.yaml file, then
// command-line flags.
package config
