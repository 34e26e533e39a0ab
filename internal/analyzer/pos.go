package analyzer

import (
	"context"

	"github.com/nao1215/rookeen/internal/model"
	"github.com/nao1215/rookeen/internal/nlp"
)

const topLemmasPerTag = 5

// POS reports the distribution of universal part-of-speech tags.
type POS struct{}

// Name implements Analyzer.
func (POS) Name() string { return string(model.AnalysisPOS) }

// Analyze implements Analyzer.
func (POS) Analyze(_ context.Context, in *Input) (Output, error) {
	counts := make(map[string]int)
	for _, t := range in.Doc.Tokens {
		counts[t.UPOS]++
	}

	ratios := make(map[string]float64, len(counts))
	for tag, c := range counts {
		ratios[tag] = ratio(c, len(in.Doc.Tokens))
	}

	buckets := make(map[string]map[string]int)
	for _, t := range contentWords(in.Doc) {
		tag := t.UPOS
		if tag == "" {
			tag = nlp.UPOSX
		}
		if buckets[tag] == nil {
			buckets[tag] = make(map[string]int)
		}
		buckets[tag][lemmaOf(in.Model, t)]++
	}
	byTag := make(map[string][]model.TermCount, len(buckets))
	for tag, lemmas := range buckets {
		byTag[tag] = topCounts(lemmas, topLemmasPerTag)
	}

	return Output{
		Results: map[string]any{
			"upos_counts":        counts,
			"upos_ratios":        ratios,
			"top_lemmas_by_upos": byTag,
		},
		Confidence: 1.0,
	}, nil
}

// Dependency reports dependency label counts and head-tag/label pairs.
type Dependency struct{}

// Name implements Analyzer.
func (Dependency) Name() string { return "dependency" }

const topHeadPairs = 20

// Analyze implements Analyzer. A model without a parser yields
// supported=false.
func (Dependency) Analyze(_ context.Context, in *Input) (Output, error) {
	if in.Model == nil || !in.Model.Has(nlp.CapParser) {
		return Output{
			Results:    map[string]any{"supported": false, "note": "Parser not available"},
			Confidence: 0.8,
		}, nil
	}

	deps := make(map[string]int)
	pairs := make(map[string]int)
	for _, t := range in.Doc.Tokens {
		deps[t.Dep]++
		head := in.Doc.Tokens[t.Head]
		pairs[head.UPOS+"->"+t.Dep]++
	}

	top := topCounts(pairs, topHeadPairs)
	headPos := make(map[string]int, len(top))
	for _, tc := range top {
		headPos[tc.Term] = tc.Count
	}

	return Output{
		Results: map[string]any{
			"supported":    true,
			"dep_counts":   deps,
			"head_pos_dep": headPos,
		},
		Confidence: 0.9,
	}, nil
}

// maxEntityExamples bounds examples per label.
const maxEntityExamples = 10

// NER reports named entities by label.
type NER struct{}

// Name implements Analyzer.
func (NER) Name() string { return string(model.AnalysisNER) }

// Analyze implements Analyzer. A model without a recognizer and no
// entities yields supported=false.
func (NER) Analyze(_ context.Context, in *Input) (Output, error) {
	ents := in.Doc.Ents
	if len(ents) == 0 && (in.Model == nil || !in.Model.Has(nlp.CapNER)) {
		return Output{
			Results: map[string]any{
				"supported":         false,
				"counts_by_label":   map[string]int{},
				"examples_by_label": map[string][]string{},
				"total_entities":    0,
			},
			Confidence: 1.0,
		}, nil
	}

	counts := make(map[string]int)
	examples := make(map[string][]string)
	for _, e := range ents {
		counts[e.Label]++
		if len(examples[e.Label]) < maxEntityExamples {
			examples[e.Label] = append(examples[e.Label], e.Text)
		}
	}

	return Output{
		Results: map[string]any{
			"supported":         true,
			"counts_by_label":   counts,
			"examples_by_label": examples,
			"total_entities":    len(ents),
		},
		Confidence: 1.0,
	}, nil
}
