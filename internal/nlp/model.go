package nlp

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrInvalidModel is returned when a lexicon is missing required fields.
	ErrInvalidModel = errors.New("invalid language model")
)

// Model is a loaded language model. It is safe for concurrent use.
type Model struct {
	lex     *Lexicon
	langTag language.Tag
	stop    map[string]struct{}
	neg     map[string]struct{}
	org     map[string]struct{}
	loc     map[string]struct{}
	abbrev  map[string]struct{}
	caps    map[string]struct{}

	prefixClitics []string
	suffixClitics []string
}

// NewModel builds a model from a lexicon.
func NewModel(lex *Lexicon) (*Model, error) {
	if lex == nil || lex.Language == "" || lex.Model == "" {
		return nil, fmt.Errorf("%w: language and model name are required", ErrInvalidModel)
	}
	tag, err := language.Parse(lex.Language)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidModel, lex.Language, err)
	}

	m := &Model{
		lex:     lex,
		langTag: tag,
		neg:     set(lex.Negations),
		org:     set(lex.OrgMarkers),
		loc:     set(lex.LocationCues),
		abbrev:  set(lex.Abbreviations),
		caps:    set(lex.Capabilities),
	}
	m.stop = set(lex.StopWords)
	for w := range lex.ClosedClass {
		m.stop[w] = struct{}{}
	}

	for w := range lex.ClosedClass {
		m.addClitic(w)
	}
	for w := range lex.Lemmas {
		m.addClitic(w)
	}
	for _, w := range lex.StopWords {
		m.addClitic(w)
	}
	// Longest first so that "n't" wins over "'t".
	byLength := func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return strings.Compare(a, b)
	}
	slices.SortFunc(m.prefixClitics, byLength)
	slices.SortFunc(m.suffixClitics, byLength)
	return m, nil
}

func (m *Model) addClitic(w string) {
	switch {
	case len(w) > 1 && strings.HasSuffix(w, "'") && !strings.Contains(w[:len(w)-1], "'"):
		if !slices.Contains(m.prefixClitics, w) {
			m.prefixClitics = append(m.prefixClitics, w)
		}
	case len(w) > 1 && (strings.HasPrefix(w, "'") || w == "n't"):
		if !slices.Contains(m.suffixClitics, w) {
			m.suffixClitics = append(m.suffixClitics, w)
		}
	}
}

func set(words []string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Language returns the language code of the model.
func (m *Model) Language() string { return m.lex.Language }

// Name returns the model name, e.g. "en_core_web_sm".
func (m *Model) Name() string { return m.lex.Model }

// Version returns the lexicon version.
func (m *Model) Version() string { return m.lex.Version }

// Capabilities returns the capabilities the model declares.
func (m *Model) Capabilities() []string {
	return slices.Clone(m.lex.Capabilities)
}

// Has reports whether the model provides capability c.
func (m *Model) Has(c string) bool {
	_, ok := m.caps[c]
	return ok
}

// Labels returns the entity label names of the model.
func (m *Model) Labels() EntityLabels { return m.lex.Labels }

// Valence returns the sentiment valence of a lower-cased word.
func (m *Model) Valence(lower string) (float64, bool) {
	v, ok := m.lex.Sentiment[lower]
	return v, ok
}

// IsNegation reports whether a lower-cased word negates what follows.
func (m *Model) IsNegation(lower string) bool {
	return m.isNegation(lower)
}

func (m *Model) isNegation(lower string) bool {
	_, ok := m.neg[lower]
	return ok
}

func (m *Model) isStop(lower string) bool {
	_, ok := m.stop[lower]
	return ok
}

// Lower folds s to lower case using the model's language rules.
func (m *Model) Lower(s string) string {
	return m.lower(s)
}

// lower creates a caser per call; casers keep state and are not safe
// for concurrent use.
func (m *Model) lower(s string) string {
	return cases.Lower(m.langTag).String(s)
}

// Parse tokenizes, tags, lemmatizes and parses text. Stages the model
// lacks capabilities for are skipped: tokens keep "X" tags, "dep"
// labels or no entities.
func (m *Model) Parse(text string) *Doc {
	raw := m.tokenize(text)
	sents := splitSentences(text, raw)

	toks := make([]Token, len(raw))
	for i, r := range raw {
		toks[i] = Token{
			Index:  i,
			Text:   r.text,
			Start:  r.start,
			End:    r.end,
			Head:   i,
			Dep:    DepDep,
			UPOS:   UPOSX,
			XPOS:   UPOSX,
			Lemma:  r.text,
			EntIOB: "O",
		}
		if r.end < len(text) {
			next := text[r.end]
			toks[i].SpaceAfter = next == ' ' || next == '\t' || next == '\n' || next == '\r'
		}
	}
	for si, s := range sents {
		for i := s.Start; i < s.End; i++ {
			toks[i].Sent = si
		}
	}

	if m.Has(CapTagger) {
		m.tag(toks, sents)
	} else {
		for i := range toks {
			toks[i].IsAlpha = isAlpha(toks[i].Text)
			toks[i].IsPunct = isPunct(toks[i].Text)
			toks[i].IsStop = m.isStop(m.lower(toks[i].Text))
		}
	}
	if !m.Has(CapLemmatizer) {
		for i := range toks {
			toks[i].Lemma = m.lower(toks[i].Text)
		}
	}
	if m.Has(CapParser) && m.Has(CapTagger) {
		m.parse(toks, sents)
	}

	doc := &Doc{
		Text:   text,
		Lang:   m.lex.Language,
		Model:  m.lex.Model,
		Tokens: toks,
		Sents:  sents,
	}
	if m.Has(CapNER) && m.Has(CapTagger) {
		doc.Ents = m.recognize(toks, sents)
	}
	return doc
}
