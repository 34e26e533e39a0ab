package analyzer

import (
	"context"
	"unicode/utf8"

	"github.com/nao1215/rookeen/internal/model"
)

// topLemmaLimit is the length of lemma and keyword rankings.
const topLemmaLimit = 20

// LexicalStats reports token, lemma and sentence statistics over
// content words.
type LexicalStats struct{}

// Name implements Analyzer.
func (LexicalStats) Name() string { return string(model.AnalysisLexicalStats) }

// Analyze implements Analyzer.
func (LexicalStats) Analyze(_ context.Context, in *Input) (Output, error) {
	words := contentWords(in.Doc)

	counts := make(map[string]int, len(words))
	totalLen := 0
	for _, t := range words {
		counts[lemmaOf(in.Model, t)]++
		totalLen += utf8.RuneCountInString(t.Text)
	}

	sentLens := 0
	for i := range in.Doc.Sents {
		for _, t := range in.Doc.SentTokens(i) {
			if t.IsAlpha {
				sentLens++
			}
		}
	}

	return Output{
		Results: map[string]any{
			"total_tokens":               len(words),
			"unique_lemmas":              len(counts),
			"sentences":                  len(in.Doc.Sents),
			"avg_token_length":           ratio(totalLen, len(words)),
			"avg_sentence_length_tokens": ratio(sentLens, len(in.Doc.Sents)),
			"type_token_ratio":           ratio(len(counts), len(words)),
			"top_lemmas":                 topCounts(counts, topLemmaLimit),
		},
		Confidence: 1.0,
	}, nil
}

// Keywords ranks content lemmas by relative frequency.
type Keywords struct{}

// Name implements Analyzer.
func (Keywords) Name() string { return string(model.AnalysisKeywords) }

// Analyze implements Analyzer.
func (Keywords) Analyze(_ context.Context, in *Input) (Output, error) {
	words := contentWords(in.Doc)
	counts := make(map[string]int, len(words))
	for _, t := range words {
		counts[lemmaOf(in.Model, t)]++
	}

	top := topCounts(counts, topLemmaLimit)
	keywords := make([]model.TermScore, len(top))
	for i, tc := range top {
		keywords[i] = model.TermScore{Term: tc.Term, Score: ratio(tc.Count, len(words))}
	}

	return Output{
		Results: map[string]any{
			"method":   "frequency",
			"keywords": keywords,
		},
		Confidence: 1.0,
	}, nil
}
