// Package export writes the analysis of one document to files.
//
// The main report goes to <base>.<ext> in the selected format. The
// optional exports sit next to it:
//
//	<base>.parquet      one row per analyzer
//	<base>.conllu       dependency parse in CoNLL-U
//	<base>.tokens.json  token-level annotations
//	<base>.docbin       SQLite snapshot of the parsed document
//
// BasePath derives <base> from --output or from the source of the
// report.
package export
