package nlp

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Universal part-of-speech tags.
const (
	UPOSAdj   = "ADJ"
	UPOSAdp   = "ADP"
	UPOSAdv   = "ADV"
	UPOSAux   = "AUX"
	UPOSCConj = "CCONJ"
	UPOSDet   = "DET"
	UPOSIntj  = "INTJ"
	UPOSNoun  = "NOUN"
	UPOSNum   = "NUM"
	UPOSPart  = "PART"
	UPOSPron  = "PRON"
	UPOSPropn = "PROPN"
	UPOSPunct = "PUNCT"
	UPOSSConj = "SCONJ"
	UPOSSym   = "SYM"
	UPOSVerb  = "VERB"
	UPOSX     = "X"
	UPOSSpace = "SPACE"
)

// copulas are the lemmas of linking verbs.
var copulas = map[string]struct{}{
	"be": {}, "sein": {}, "ser": {}, "estar": {}, "être": {},
}

// infinitiveMarkers precede infinitives.
var infinitiveMarkers = map[string]struct{}{
	"to": {}, "zu": {},
}

// tag assigns UPOS, XPOS, lemma and lexical flags to every token.
func (m *Model) tag(toks []Token, sents []Span) {
	for _, s := range sents {
		for i := s.Start; i < s.End; i++ {
			t := &toks[i]
			lower := m.lower(t.Text)
			t.IsAlpha = isAlpha(t.Text)
			t.IsPunct = isPunct(t.Text)
			t.UPOS = m.guessTag(toks, s, i, lower)
			t.IsStop = m.isStop(foldApostrophe(lower))
		}
		m.refine(toks, s)
		for i := s.Start; i < s.End; i++ {
			t := &toks[i]
			t.Lemma = m.lemmatize(t.Text, t.UPOS)
			t.XPOS = m.xpos(*t)
		}
	}
}

func (m *Model) guessTag(toks []Token, s Span, i int, lower string) string {
	text := toks[i].Text
	folded := foldApostrophe(lower)

	switch {
	case toks[i].IsPunct:
		if isSymbol(text) {
			return UPOSSym
		}
		return UPOSPunct
	case isNumeric(text):
		return UPOSNum
	}
	if tag, ok := m.lex.ClosedClass[folded]; ok {
		return tag
	}

	first, _ := utf8.DecodeRuneInString(text)
	upper := unicode.IsUpper(first)
	initial := i == s.Start || (i == s.Start+1 && toks[s.Start].IsPunct)

	if upper && isAcronym(text) {
		return UPOSPropn
	}
	if upper && !initial {
		if m.lex.CapitalizedNouns {
			return m.germanNoun(toks, s, i)
		}
		return UPOSPropn
	}
	if upper && initial && i+1 < s.End && startsUpperWord(toks[i+1].Text) {
		if _, closedNext := m.lex.ClosedClass[m.lower(toks[i+1].Text)]; !closedNext {
			return UPOSPropn
		}
	}

	if tag, ok := m.suffixTag(folded); ok {
		return tag
	}

	if i > s.Start {
		prev := toks[i-1]
		prevLower := m.lower(prev.Text)
		switch prev.UPOS {
		case UPOSPron:
			return UPOSVerb
		case UPOSPart:
			if _, ok := infinitiveMarkers[prevLower]; ok {
				return UPOSVerb
			}
		case UPOSAux:
			if _, ok := copulas[m.lemmatize(prev.Text, UPOSAux)]; ok {
				return UPOSAdj
			}
			return UPOSVerb
		}
	}
	return UPOSNoun
}

// germanNoun separates proper nouns from common nouns in languages that
// capitalize every noun: a capitalized word without a determiner,
// adjective or number in front is taken as a name.
func (m *Model) germanNoun(toks []Token, s Span, i int) string {
	if i == s.Start {
		return UPOSNoun
	}
	switch toks[i-1].UPOS {
	case UPOSAdp:
		if m.isLocationCue(m.lower(toks[i-1].Text)) {
			return UPOSPropn
		}
		return UPOSNoun
	case UPOSDet, UPOSAdj, UPOSNum:
		return UPOSNoun
	case UPOSPropn:
		return UPOSPropn
	}
	if i+1 < s.End && startsUpperWord(toks[i+1].Text) {
		return UPOSPropn
	}
	return UPOSNoun
}

func (m *Model) suffixTag(lower string) (string, bool) {
	n := utf8.RuneCountInString(lower)
	for _, rule := range m.lex.Suffixes {
		if strings.HasSuffix(lower, rule.Suffix) && n-utf8.RuneCountInString(rule.Suffix) >= rule.MinStem {
			return rule.Tag, true
		}
	}
	return "", false
}

// refine fixes tags that depend on the right context.
func (m *Model) refine(toks []Token, s Span) {
	for i := s.Start; i < s.End; i++ {
		t := &toks[i]
		lower := m.lower(t.Text)
		switch t.UPOS {
		case UPOSPart:
			// "to" before a nominal is a preposition.
			if _, ok := infinitiveMarkers[lower]; ok && i+1 < s.End {
				switch toks[i+1].UPOS {
				case UPOSDet, UPOSNoun, UPOSPropn, UPOSPron, UPOSNum, UPOSAdj:
					t.UPOS = UPOSAdp
				}
			}
		case UPOSAux:
			// An auxiliary without a verb to support is a main verb,
			// except for copulas.
			if _, ok := copulas[m.lemmatize(t.Text, UPOSAux)]; ok {
				continue
			}
			if !verbFollows(toks, i+1, s.End) {
				t.UPOS = UPOSVerb
			}
		case UPOSNoun:
			// Unknown words between a determiner and a noun are adjectives.
			if i > s.Start && i+1 < s.End && toks[i-1].UPOS == UPOSDet &&
				(toks[i+1].UPOS == UPOSNoun || toks[i+1].UPOS == UPOSPropn) &&
				!m.lex.CapitalizedNouns && !t.IsStop {
				if _, known := m.lex.Lemmas[lower]; !known {
					t.UPOS = UPOSAdj
				}
			}
		}
	}
}

// verbFollows reports whether a verb occurs in toks[from:to] before any
// token that closes the verb group.
func verbFollows(toks []Token, from, to int) bool {
	for j := from; j < to && j < from+4; j++ {
		switch toks[j].UPOS {
		case UPOSVerb:
			return true
		case UPOSAdv, UPOSPart, UPOSPron, UPOSAux:
			continue
		default:
			return false
		}
	}
	return false
}

// lemmatize returns the lemma of text tagged with upos.
func (m *Model) lemmatize(text, upos string) string {
	switch upos {
	case UPOSPropn:
		return text
	case UPOSPunct, UPOSSym, UPOSNum:
		return text
	}
	lower := foldApostrophe(m.lower(text))
	if lemma, ok := m.lex.Lemmas[lower]; ok {
		return lemma
	}
	n := utf8.RuneCountInString(lower)
	for _, rule := range m.lex.LemmaRules {
		if !strings.HasSuffix(lower, rule.Suffix) || !containsTag(rule.Tags, upos) {
			continue
		}
		if n-utf8.RuneCountInString(rule.Suffix) < rule.MinStem {
			continue
		}
		return strings.TrimSuffix(lower, rule.Suffix) + rule.Replace
	}
	return lower
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// xpos returns a Penn Treebank tag for English and the UPOS tag for
// other languages.
func (m *Model) xpos(t Token) string {
	if m.lex.Language != "en" {
		return t.UPOS
	}
	lower := m.lower(t.Text)
	switch t.UPOS {
	case UPOSNoun:
		if t.Lemma != lower {
			return "NNS"
		}
		return "NN"
	case UPOSPropn:
		return "NNP"
	case UPOSVerb:
		switch {
		case strings.HasSuffix(lower, "ing"):
			return "VBG"
		case strings.HasSuffix(lower, "ed"):
			return "VBD"
		case strings.HasSuffix(lower, "s") && t.Lemma != lower:
			return "VBZ"
		}
		return "VB"
	case UPOSAux:
		switch t.Lemma {
		case "be", "have", "do":
			if lower == "is" || lower == "has" || lower == "does" {
				return "VBZ"
			}
			if lower == "was" || lower == "were" || lower == "had" || lower == "did" {
				return "VBD"
			}
			return "VBP"
		}
		return "MD"
	case UPOSAdj:
		if strings.HasSuffix(lower, "est") {
			return "JJS"
		}
		return "JJ"
	case UPOSAdv:
		return "RB"
	case UPOSDet:
		return "DT"
	case UPOSPron:
		return "PRP"
	case UPOSAdp, UPOSSConj:
		return "IN"
	case UPOSCConj:
		return "CC"
	case UPOSNum:
		return "CD"
	case UPOSPart:
		if lower == "to" {
			return "TO"
		}
		return "RB"
	case UPOSIntj:
		return "UH"
	case UPOSPunct:
		switch t.Text {
		case ".", "!", "?":
			return "."
		case ",":
			return ","
		case ":", ";":
			return ":"
		}
		return "PUNCT"
	case UPOSSym:
		return "SYM"
	}
	return "XX"
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsMark(r) {
			return false
		}
	}
	return true
}

func isPunct(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

func isSymbol(s string) bool {
	for _, r := range s {
		if !unicode.IsSymbol(r) && r != '%' && r != '#' && r != '&' && r != '@' {
			return false
		}
	}
	return true
}

func isNumeric(s string) bool {
	digits := false
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits = true
		case r == '.' || r == ',' || r == '-':
		default:
			return false
		}
	}
	return digits
}

// isAcronym reports whether s is an all-caps word of two or more letters.
func isAcronym(s string) bool {
	letters := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters >= 2
}

func startsUpperWord(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
