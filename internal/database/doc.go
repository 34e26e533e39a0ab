// Package database stores binary document snapshots in SQLite.
//
// A snapshot is the parsed document of one analysis run: the normalized
// text with its provenance, every token with its annotations, and the
// analyzer results. Snapshots are written as self-contained ".docbin"
// files so they can be reloaded without re-fetching or re-parsing the
// source. The driver is modernc.org/sqlite, which needs no cgo.
package database
