// Package nlp is the built-in language engine used by rookeen.
//
// It covers language tag normalization and detection, installation
// and caching of per-language models, and parsing of raw text into a
// Doc: tokens with lemmas, universal POS tags and a heuristic
// dependency parse, sentences and named entities. Models are small
// JSON lexicons installed under the model directory; the bundled
// lexicons for English, German, Spanish and French are installed on
// first use when auto-download is enabled.
package nlp
