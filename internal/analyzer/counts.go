package analyzer

import (
	"cmp"
	"math"
	"slices"

	"github.com/nao1215/rookeen/internal/model"
	"github.com/nao1215/rookeen/internal/nlp"
)

// topCounts returns the n most frequent terms, ordered by descending
// count and then by term.
func topCounts(counts map[string]int, n int) []model.TermCount {
	out := make([]model.TermCount, 0, len(counts))
	for term, c := range counts {
		out = append(out, model.TermCount{Term: term, Count: c})
	}
	slices.SortFunc(out, func(a, b model.TermCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Term, b.Term)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// contentWords returns alphabetic tokens that are not stop words.
func contentWords(doc *nlp.Doc) []nlp.Token {
	out := make([]nlp.Token, 0, len(doc.Tokens))
	for _, t := range doc.Tokens {
		if t.IsAlpha && !t.IsStop {
			out = append(out, t)
		}
	}
	return out
}

// lemmaOf returns the lower-cased lemma, or the text when the lemma is empty.
func lemmaOf(m *nlp.Model, t nlp.Token) string {
	lemma := t.Lemma
	if lemma == "" {
		lemma = t.Text
	}
	if m == nil {
		return lemma
	}
	return m.Lower(lemma)
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}
