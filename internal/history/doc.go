// Package history stores past link check runs in a local SQLite database.
//
// History is opt-in. When enabled, every run is saved with a generated run ID
// so that later runs over the same documentation root can be compared with it.
// The database lives in a single file (doclinks.db) under the XDG data
// directory and is opened through the CGO-free modernc.org/sqlite driver.
package history
