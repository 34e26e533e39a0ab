package nlp

// Dependency labels produced by the parser. They follow the label set
// of the spaCy English models; CoNLL-U export maps them to Universal
// Dependencies.
const (
	DepRoot     = "ROOT"
	DepPunct    = "punct"
	DepDet      = "det"
	DepAmod     = "amod"
	DepNummod   = "nummod"
	DepCompound = "compound"
	DepNsubj    = "nsubj"
	DepDobj     = "dobj"
	DepAttr     = "attr"
	DepAcomp    = "acomp"
	DepPrep     = "prep"
	DepPobj     = "pobj"
	DepAux      = "aux"
	DepNeg      = "neg"
	DepAdvmod   = "advmod"
	DepCc       = "cc"
	DepConj     = "conj"
	DepMark     = "mark"
	DepAdvcl    = "advcl"
	DepXcomp    = "xcomp"
	DepCcomp    = "ccomp"
	DepIntj     = "intj"
	DepDep      = "dep"
)

// parse attaches every token of every sentence to a head.
func (m *Model) parse(toks []Token, sents []Span) {
	for _, s := range sents {
		if s.Len() == 0 {
			continue
		}
		m.parseSentence(toks, s)
		breakCycles(toks, s)
	}
}

func (m *Model) parseSentence(toks []Token, s Span) {
	root := findRoot(toks, s)
	toks[root].Head = root
	toks[root].Dep = DepRoot

	copularRoot := toks[root].UPOS == UPOSAux
	hasObject := false

	for i := s.Start; i < s.End; i++ {
		if i == root {
			continue
		}
		t := &toks[i]
		head, dep := root, DepDep

		switch t.UPOS {
		case UPOSPunct:
			dep = DepPunct
		case UPOSDet:
			if n := nextNominal(toks, i+1, s.End); n >= 0 {
				head, dep = n, DepDet
			}
		case UPOSAdj:
			if n := nextNominal(toks, i+1, s.End); n >= 0 && n == nextNonModifier(toks, i+1, s.End) {
				head, dep = n, DepAmod
			} else if i > root {
				dep = DepAcomp
			}
		case UPOSNum, UPOSNoun, UPOSPropn, UPOSPron:
			if t.UPOS != UPOSPron && i+1 < s.End && isNominal(toks[i+1].UPOS) && toks[i+1].UPOS != UPOSPron {
				if t.UPOS == UPOSNum {
					head, dep = i+1, DepNummod
				} else {
					head, dep = i+1, DepCompound
				}
				break
			}
			head, dep = m.nominalRole(toks, s, i, root, copularRoot, &hasObject)
		case UPOSAdp:
			if p := prevPhraseHead(toks, s.Start, i); p >= 0 {
				head = p
			} else if v := prevVerb(toks, s.Start, i); v >= 0 {
				head = v
			}
			dep = DepPrep
		case UPOSAux:
			if v := nextOf(toks, i+1, s.End, UPOSVerb); v >= 0 {
				head = v
			}
			dep = DepAux
		case UPOSPart:
			lower := m.lower(t.Text)
			switch {
			case m.isNegation(foldApostrophe(lower)):
				dep = DepNeg
				if v := nextOf(toks, i+1, s.End, UPOSVerb); v >= 0 && i < root {
					head = v
				}
			default:
				if v := nextOf(toks, i+1, s.End, UPOSVerb); v >= 0 {
					head, dep = v, DepAux
				} else {
					dep = DepAdvmod
				}
			}
		case UPOSAdv:
			dep = DepAdvmod
			if i+1 < s.End && (toks[i+1].UPOS == UPOSAdj || toks[i+1].UPOS == UPOSAdv) {
				head = i + 1
			}
		case UPOSCConj:
			dep = DepCc
			if p := prevPhraseHead(toks, s.Start, i); p >= 0 {
				head = p
			}
		case UPOSSConj:
			dep = DepMark
			if v := nextOf(toks, i+1, s.End, UPOSVerb); v >= 0 && v != root {
				head = v
			}
		case UPOSVerb:
			dep = m.clauseRole(toks, s.Start, i, root)
		case UPOSIntj:
			dep = DepIntj
		}

		if head == i {
			head, dep = root, DepDep
		}
		t.Head = head
		t.Dep = dep
	}
}

// findRoot picks the first verb, else the first auxiliary, else the
// first nominal, else the first token.
func findRoot(toks []Token, s Span) int {
	for _, tags := range [][]string{{UPOSVerb}, {UPOSAux}, {UPOSNoun, UPOSPropn}} {
		for i := s.Start; i < s.End; i++ {
			if containsTag(tags, toks[i].UPOS) {
				return i
			}
		}
	}
	for i := s.Start; i < s.End; i++ {
		if !toks[i].IsPunct {
			return i
		}
	}
	return s.Start
}

// nominalRole attaches the head of a noun phrase.
func (m *Model) nominalRole(toks []Token, s Span, i, root int, copularRoot bool, hasObject *bool) (int, string) {
	if j := phraseStart(toks, s.Start, i); j > s.Start && toks[j-1].UPOS == UPOSAdp {
		return j - 1, DepPobj
	}
	if j := phraseStart(toks, s.Start, i); j > s.Start && toks[j-1].UPOS == UPOSCConj {
		if p := prevPhraseHead(toks, s.Start, j-1); p >= 0 {
			return p, DepConj
		}
	}
	switch {
	case i < root:
		return root, DepNsubj
	case copularRoot:
		return root, DepAttr
	case !*hasObject:
		*hasObject = true
		return root, DepDobj
	}
	return root, DepDep
}

// clauseRole labels a verb that is not the sentence root.
func (m *Model) clauseRole(toks []Token, start, i, root int) string {
	for j := i - 1; j >= start; j-- {
		switch toks[j].UPOS {
		case UPOSAux, UPOSAdv:
			continue
		case UPOSPart:
			if _, ok := infinitiveMarkers[m.lower(toks[j].Text)]; ok {
				return DepXcomp
			}
			continue
		case UPOSCConj:
			return DepConj
		case UPOSSConj:
			return DepAdvcl
		}
		break
	}
	return DepCcomp
}

// nextNominal finds the noun a determiner or modifier attaches to,
// skipping modifiers.
func nextNominal(toks []Token, from, to int) int {
	for j := from; j < to; j++ {
		switch toks[j].UPOS {
		case UPOSAdj, UPOSAdv, UPOSNum, UPOSDet:
			continue
		case UPOSNoun, UPOSPropn:
			// Compound runs attach to their last noun.
			for j+1 < to && (toks[j+1].UPOS == UPOSNoun || toks[j+1].UPOS == UPOSPropn) {
				j++
			}
			return j
		}
		return -1
	}
	return -1
}

func nextNonModifier(toks []Token, from, to int) int {
	for j := from; j < to; j++ {
		switch toks[j].UPOS {
		case UPOSAdj, UPOSAdv, UPOSNum:
			continue
		case UPOSCConj:
			// "big and red car"
			continue
		}
		if toks[j].UPOS == UPOSNoun || toks[j].UPOS == UPOSPropn {
			for j+1 < to && (toks[j+1].UPOS == UPOSNoun || toks[j+1].UPOS == UPOSPropn) {
				j++
			}
		}
		return j
	}
	return -1
}

func nextOf(toks []Token, from, to int, upos string) int {
	for j := from; j < to; j++ {
		if toks[j].UPOS == upos {
			return j
		}
		if toks[j].IsPunct {
			return -1
		}
	}
	return -1
}

func prevVerb(toks []Token, start, i int) int {
	for j := i - 1; j >= start; j-- {
		if toks[j].UPOS == UPOSVerb || toks[j].UPOS == UPOSAux {
			return j
		}
	}
	return -1
}

// prevPhraseHead returns the nominal or verb directly before i, ignoring
// punctuation.
func prevPhraseHead(toks []Token, start, i int) int {
	for j := i - 1; j >= start; j-- {
		switch {
		case toks[j].IsPunct:
			continue
		case isNominal(toks[j].UPOS), toks[j].UPOS == UPOSVerb, toks[j].UPOS == UPOSAdj:
			return j
		}
		return -1
	}
	return -1
}

// phraseStart returns the first token of the noun phrase ending at i.
func phraseStart(toks []Token, start, i int) int {
	j := i
	for j > start {
		switch toks[j-1].UPOS {
		case UPOSDet, UPOSAdj, UPOSNum, UPOSNoun, UPOSPropn, UPOSAdv:
			j--
			continue
		}
		break
	}
	return j
}

func isNominal(upos string) bool {
	switch upos {
	case UPOSNoun, UPOSPropn, UPOSPron, UPOSNum:
		return true
	}
	return false
}

// breakCycles reattaches tokens whose head chain does not reach the root.
func breakCycles(toks []Token, s Span) {
	root := -1
	for i := s.Start; i < s.End; i++ {
		if toks[i].Dep == DepRoot {
			root = i
			break
		}
	}
	if root < 0 {
		return
	}
	for i := s.Start; i < s.End; i++ {
		cur := i
		for steps := 0; cur != root; steps++ {
			next := toks[cur].Head
			if steps > s.Len() || next < s.Start || next >= s.End || next == cur {
				toks[i].Head = root
				toks[i].Dep = DepDep
				break
			}
			cur = next
		}
	}
}
