package nlp

import (
	"strconv"
	"strings"
)

// nameConnectors may appear inside multi-word names ("Bank of America",
// "Universidad de Chile").
var nameConnectors = map[string]struct{}{
	"of": {}, "de": {}, "del": {}, "von": {}, "van": {}, "der": {}, "du": {}, "la": {},
}

// recognize finds named entities: runs of proper nouns labeled by
// organization markers, location cues and length, and four-digit years.
func (m *Model) recognize(toks []Token, sents []Span) []Entity {
	var ents []Entity
	for _, s := range sents {
		for i := s.Start; i < s.End; i++ {
			switch {
			case toks[i].UPOS == UPOSPropn:
				end := m.nameEnd(toks, i, s.End)
				ents = append(ents, m.entity(toks, s, i, end))
				i = end - 1
			case toks[i].UPOS == UPOSNum && isYear(toks[i].Text):
				ents = append(ents, Entity{Text: toks[i].Text, Label: m.lex.Labels.Date, Start: i, End: i + 1})
			}
		}
	}

	for i := range toks {
		toks[i].EntIOB = "O"
	}
	for _, e := range ents {
		for j := e.Start; j < e.End; j++ {
			toks[j].EntType = e.Label
			toks[j].EntIOB = "I"
		}
		toks[e.Start].EntIOB = "B"
	}
	return ents
}

// nameEnd returns the end of the proper noun run starting at i.
func (m *Model) nameEnd(toks []Token, i, limit int) int {
	end := i + 1
	for end < limit {
		if toks[end].UPOS == UPOSPropn {
			end++
			continue
		}
		if _, ok := nameConnectors[toks[end].Text]; ok && end+1 < limit && toks[end+1].UPOS == UPOSPropn {
			end += 2
			continue
		}
		// Trailing org markers such as "Inc." are part of the name.
		if m.isOrgMarker(toks[end].Text) && startsUpperWord(toks[end].Text) {
			end++
			continue
		}
		break
	}
	return end
}

func (m *Model) entity(toks []Token, s Span, start, end int) Entity {
	var b strings.Builder
	for j := start; j < end; j++ {
		b.WriteString(toks[j].Text)
		if j < end-1 && toks[j].SpaceAfter {
			b.WriteByte(' ')
		}
	}
	e := Entity{Text: b.String(), Start: start, End: end}

	org := false
	for j := start; j < end; j++ {
		if m.isOrgMarker(toks[j].Text) {
			org = true
			break
		}
	}
	cue := start > s.Start && m.isLocationCue(m.lower(toks[start-1].Text))

	switch {
	case org || (end-start == 1 && isAcronym(toks[start].Text)):
		e.Label = m.lex.Labels.Organization
	case cue:
		e.Label = m.lex.Labels.Location
	case end-start >= 2:
		e.Label = m.lex.Labels.Person
	default:
		e.Label = m.lex.Labels.Misc
	}
	return e
}

func (m *Model) isOrgMarker(text string) bool {
	_, ok := m.org[strings.TrimSuffix(m.lower(text), ".")]
	return ok
}

func (m *Model) isLocationCue(lower string) bool {
	_, ok := m.loc[lower]
	return ok
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 1000 && n <= 2100
}
