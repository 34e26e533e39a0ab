// Package pipeline turns one input into one AnalysisReport.
//
// A request moves through a fixed sequence of states:
//
//	Acquiring → DetectingLanguage → LoadingModel → RunningAnalyzers → Aggregating → Done
//
// Each state is a Step executed by a Pipeline. Any step may end the
// request in the terminal Failed state; the error carries an apperr
// kind so the CLI can map it to an exit code. An Observer receives
// every transition.
//
// Analyzers run concurrently with errgroup, bounded by the configured
// concurrency, and their results are stored by selection index so the
// report keeps registration order. A failing analyzer produces a
// result with confidence 0 and supported=false; only mandatory
// analyzers abort the request.
//
// BatchProcessor runs the orchestrator for many URLs with a shared
// Fetcher so that one rate limiter bounds the whole batch.
package pipeline
