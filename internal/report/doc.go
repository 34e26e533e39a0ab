// Package report renders AnalysisReports.
//
// Four formats are supported:
//   - JSONWriter: the canonical document, pretty-printed
//   - CSVWriter: one row per analyzer with flattened scalar results
//   - TableWriter: a terminal summary drawn with tablewriter
//   - MarkdownWriter: a shareable summary built with nao1215/markdown
//
// Writers implement the Writer interface and can be combined with
// MultiWriter. New picks a writer by format name.
package report
