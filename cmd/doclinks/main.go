// Package main provides the entry point for the doclinks CLI.
//
// doclinks checks a markdown documentation tree for internal links that do
// not resolve to a file, writes a broken links report page into the tree and
// decides whether a documentation build may continue.
//
// Usage:
//
//	doclinks [docs-dir]
//	doclinks --prompt docs
//	doclinks compare docs
//
// See --help for all available options.
package main

// main is the entry point for doclinks.
func main() {
	Execute()
}
