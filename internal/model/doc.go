// Package model defines the analysis document produced by rookeen.
//
// The main types are:
//   - AnalysisReport: the aggregate written to stdout or result files
//   - AnalyzerResult: one analyzer's output with timing and confidence
//   - TermCount, TermScore: ranked term lists serialized as JSON pairs
//
// The JSON shape of AnalysisReport is a public contract. Fields are
// only ever added; existing keys keep their names and types.
package model
