package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/rookeen/internal/nlp"
)

// Engine selects how dependency labels are written to CoNLL-U.
type Engine string

// CoNLL-U engines.
const (
	// EngineAuto picks the best available engine, currently HighQuality.
	EngineAuto Engine = "auto"
	// EngineHighQuality rewrites the parse to Universal Dependencies
	// relations.
	EngineHighQuality Engine = "high-quality"
	// EngineBasic writes the parser labels as they are.
	EngineBasic Engine = "basic"
)

// ErrUnknownEngine is returned by ParseEngine.
var ErrUnknownEngine = errors.New("unknown conllu engine")

// ParseEngine parses an engine name. The empty name is EngineAuto.
func ParseEngine(name string) (Engine, error) {
	switch e := Engine(strings.ToLower(strings.TrimSpace(name))); e {
	case "":
		return EngineAuto, nil
	case EngineAuto, EngineHighQuality, EngineBasic:
		return e, nil
	}
	return "", fmt.Errorf("%w: %q (want auto, high-quality or basic)", ErrUnknownEngine, name)
}

// Resolve returns the engine that actually runs.
func (e Engine) Resolve() Engine {
	if e == EngineBasic {
		return EngineBasic
	}
	return EngineHighQuality
}

var basicHeader = []string{
	"# NOTE: heuristic CoNLL-U serializer (basic engine)",
	"# This output is not guaranteed to be UD-valid for complex texts.",
	"# Use --conllu-engine high-quality for Universal Dependencies relations.",
}

// udRelations maps parser labels to Universal Dependencies relations.
// Labels not listed are lowercased.
var udRelations = map[string]string{
	nlp.DepRoot:  "root",
	nlp.DepPrep:  "case",
	nlp.DepPobj:  "obl",
	nlp.DepDobj:  "obj",
	nlp.DepAcomp: "xcomp",
	nlp.DepNeg:   "advmod",
	nlp.DepIntj:  "discourse",
	"iobj":       "iobj",
	"nsubjpass":  "nsubj:pass",
	"csubj":      "csubj",
	"csubjpass":  "csubj:pass",
	"auxpass":    "aux:pass",
	"poss":       "nmod:poss",
	"relcl":      "acl:relcl",
	"npadvmod":   "obl:npmod",
}

// conlluRow is one token line of a sentence.
type conlluRow struct {
	id     int
	index  int // position in Doc.Tokens
	token  nlp.Token
	head   int
	deprel string
}

// CoNLLU renders doc in CoNLL-U.
func CoNLLU(doc *nlp.Doc, engine Engine) string {
	var sb strings.Builder
	engine = engine.Resolve()

	if engine == EngineBasic {
		for _, line := range basicHeader {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}

	for i, s := range doc.Sents {
		rows := sentenceRows(doc, s)
		if len(rows) == 0 {
			continue
		}
		if engine == EngineHighQuality {
			normalizeUD(rows)
		}

		first, last := rows[0].token, rows[len(rows)-1].token
		fmt.Fprintf(&sb, "# sent_id = %d\n", i)
		fmt.Fprintf(&sb, "# text = %s\n", escapeField(doc.Text[first.Start:last.End]))
		for _, r := range rows {
			sb.WriteString(r.line())
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteCoNLLU writes doc to w in CoNLL-U.
func WriteCoNLLU(w io.Writer, doc *nlp.Doc, engine Engine) error {
	_, err := io.WriteString(w, CoNLLU(doc, engine))
	return err
}

// sentenceRows numbers the tokens of a sentence from 1, skipping
// whitespace tokens, and resolves heads to those numbers. A head
// outside the sentence becomes 0.
func sentenceRows(doc *nlp.Doc, s nlp.Span) []conlluRow {
	ids := make(map[int]int, s.Len())
	rows := make([]conlluRow, 0, s.Len())
	for i := s.Start; i < s.End; i++ {
		t := doc.Tokens[i]
		if t.UPOS == nlp.UPOSSpace || strings.TrimSpace(t.Text) == "" {
			continue
		}
		ids[i] = len(rows) + 1
		rows = append(rows, conlluRow{id: len(rows) + 1, index: i, token: t})
	}

	for k := range rows {
		t := rows[k].token
		switch {
		case t.IsRoot():
			rows[k].head, rows[k].deprel = 0, "root"
		default:
			rows[k].head = ids[t.Head]
			rows[k].deprel = t.Dep
		}
	}
	return rows
}

// normalizeUD rewrites a sentence in place:
//   - labels are mapped through udRelations;
//   - "prep <- pobj" pairs become "case" on the adposition and
//     "nmod" or "obl" on the noun, attached to the adposition's head;
//   - a copular root with an attr or acomp predicate hands the root to
//     the predicate and becomes "cop".
func normalizeUD(rows []conlluRow) {
	byIndex := make(map[int]int, len(rows))
	for k, r := range rows {
		byIndex[r.index] = k
	}

	for k := range rows {
		if rows[k].head == 0 {
			continue
		}
		rows[k].deprel = udRelation(rows[k].token.Dep)
		if h, ok := byIndex[rows[k].token.Head]; ok && rows[k].deprel == "obl" && isNominal(rows[h].token.UPOS) {
			rows[k].deprel = "nmod"
		}
	}

	for k := range rows {
		t := rows[k].token
		if t.Dep != nlp.DepPobj {
			continue
		}
		prep, ok := byIndex[t.Head]
		if !ok || rows[prep].token.UPOS != nlp.UPOSAdp || rows[prep].head == 0 {
			continue
		}
		grand, ok := byIndex[rows[prep].token.Head]
		if !ok || grand == k {
			continue
		}

		rows[k].head = rows[grand].id
		rows[k].deprel = "obl"
		if isNominal(rows[grand].token.UPOS) {
			rows[k].deprel = "nmod"
		}
		rows[prep].head = rows[k].id
		rows[prep].deprel = "case"
	}

	promoteCopula(rows)
}

func promoteCopula(rows []conlluRow) {
	root := -1
	for k, r := range rows {
		if r.token.IsRoot() {
			root = k
			break
		}
	}
	if root < 0 {
		return
	}
	rootTok := rows[root].token
	if rootTok.UPOS != nlp.UPOSAux && rootTok.UPOS != nlp.UPOSVerb {
		return
	}

	pred := -1
	for k, r := range rows {
		if r.token.Head != rows[root].index || k == root {
			continue
		}
		if r.token.Dep == nlp.DepAttr || (r.token.Dep == nlp.DepAcomp && rootTok.UPOS == nlp.UPOSAux) {
			pred = k
			break
		}
	}
	if pred < 0 {
		return
	}

	oldRoot, newRoot := rows[root].id, rows[pred].id
	rows[pred].head, rows[pred].deprel = 0, "root"
	rows[root].head, rows[root].deprel = newRoot, "cop"
	for k := range rows {
		if k != root && rows[k].head == oldRoot {
			rows[k].head = newRoot
		}
	}
}

func udRelation(dep string) string {
	if rel, ok := udRelations[dep]; ok {
		return rel
	}
	return strings.ToLower(dep)
}

func isNominal(upos string) bool {
	switch upos {
	case nlp.UPOSNoun, nlp.UPOSPropn, nlp.UPOSPron, nlp.UPOSAdj, nlp.UPOSNum:
		return true
	}
	return false
}

func (r conlluRow) line() string {
	misc := "_"
	if !r.token.SpaceAfter {
		misc = "SpaceAfter=No"
	}
	fields := []string{
		strconv.Itoa(r.id),
		escapeField(r.token.Text),
		escapeField(r.token.Lemma),
		escapeField(r.token.UPOS),
		escapeField(r.token.XPOS),
		"_",
		strconv.Itoa(r.head),
		escapeField(r.deprel),
		"_",
		misc,
	}
	return strings.Join(fields, "\t")
}

// escapeField makes s safe for a tab-separated CoNLL-U column.
func escapeField(s string) string {
	s = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ").Replace(s)
	s = strings.TrimSpace(s)
	if s == "" {
		return "_"
	}
	return s
}
