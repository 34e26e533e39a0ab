// Package main provides the entry point for the rookeen CLI.
//
// rookeen fetches or reads a text, detects its language, runs a
// configurable set of linguistic analyzers on it and writes a
// structured report plus optional exports.
//
// Usage:
//
//	rookeen analyze https://example.com/article
//	rookeen analyze --stdin < article.txt
//	rookeen analyze-file article.txt
//	rookeen batch urls.txt
//
// See --help for all available options.
package main

import "os"

// main is the entry point for rookeen.
func main() {
	os.Exit(Execute())
}
