// Package source acquires the text to analyze.
//
// A Document is produced from one of three origins:
//
//   - Fetcher.Fetch downloads a web page. Requests share a token-bucket
//     Limiter, honour robots.txt unless told otherwise and retry
//     timeouts, 429 and 5xx responses with exponential backoff. HTML is
//     reduced to readable text.
//   - ReadLocal reads a file; .html and .htm files are reduced like
//     fetched pages.
//   - ReadStream reads standard input.
//
// Every document text is NFC-normalized and carries a SHA3-256 digest.
// Failures are classified with apperr: invalid URLs are usage errors,
// network and HTTP failures are fetch errors and missing or blank
// local input are IO errors.
package source
