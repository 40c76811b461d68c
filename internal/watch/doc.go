// Package watch re-runs a callback when files under a documentation root change.
//
// Events are debounced so that an editor saving several files, or a git
// checkout touching hundreds, results in a single re-run. Callbacks never
// overlap: the next run starts only after the previous one returned.
package watch
