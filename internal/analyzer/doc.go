// Package analyzer provides the analyzer registry and the built-in
// analyzers that turn a parsed document into result maps.
//
// # Registry
//
// A Registry holds Descriptors in registration order. Names are unique
// and registration is append-only; the first ResolveSelection seals the
// registry so that a run always sees the same set of analyzers.
//
// Selection starts from every core analyzer, or from the analyzers
// named in Selection.Enable when that list is non-empty. Optional
// analyzers join only when named in Enable or switched on through
// Selection.OptionalFlags. Disable always wins. The result keeps
// registration order, so reports list analyzers in a stable order
// across runs.
//
// # Built-in analyzers
//
// RegisterBuiltins registers, in order:
//
//	lexical_stats  core      token, lemma and sentence statistics
//	pos            core      universal POS distribution
//	ner            core      named entity counts and examples
//	readability    core      textstat-style readability formulas
//	keywords       core      frequency keywords over content lemmas
//	dependency     core      dependency label distribution (needs a parser)
//	embeddings     optional  document embedding through an embedding backend
//	sentiment      optional  lexicon-based polarity
//
// Analyzers are stateless; one instance may serve concurrent requests.
package analyzer
