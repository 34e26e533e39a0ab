package export

import (
	"encoding/json"
	"io"
	"unicode/utf8"

	"github.com/nao1215/rookeen/internal/nlp"
)

// TokenDocument is the token-level JSON export.
type TokenDocument struct {
	Text   string        `json:"text"`
	Lang   string        `json:"lang"`
	Model  string        `json:"model"`
	Tokens []TokenEntry  `json:"tokens"`
	Ents   []EntityEntry `json:"ents"`
	Sents  []SpanEntry   `json:"sents"`
}

// TokenEntry is one token of a TokenDocument.
type TokenEntry struct {
	ID         int    `json:"id"`
	Text       string `json:"text"`
	Lemma      string `json:"lemma"`
	POS        string `json:"pos"`
	Tag        string `json:"tag"`
	Dep        string `json:"dep"`
	Head       int    `json:"head"`
	EntType    string `json:"ent_type"`
	EntIOB     string `json:"ent_iob"`
	Whitespace string `json:"whitespace"`
	IsStop     bool   `json:"is_stop"`
	IsAlpha    bool   `json:"is_alpha"`
	IsPunct    bool   `json:"is_punct"`

	// Idx is the character offset of the token in Text.
	Idx int `json:"idx"`
}

// EntityEntry is a named entity as a token range.
type EntityEntry struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// SpanEntry is a sentence as a token range.
type SpanEntry struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewTokenDocument converts a parsed document.
func NewTokenDocument(doc *nlp.Doc) TokenDocument {
	out := TokenDocument{
		Text:   doc.Text,
		Lang:   doc.Lang,
		Model:  doc.Model,
		Tokens: make([]TokenEntry, len(doc.Tokens)),
		Ents:   make([]EntityEntry, len(doc.Ents)),
		Sents:  make([]SpanEntry, len(doc.Sents)),
	}

	// Byte offsets grow with the token index, so character offsets are
	// counted incrementally.
	byteOff, charOff := 0, 0
	for i, t := range doc.Tokens {
		if t.Start >= byteOff && t.Start <= len(doc.Text) {
			charOff += utf8.RuneCountInString(doc.Text[byteOff:t.Start])
			byteOff = t.Start
		}
		iob := t.EntIOB
		if iob == "" {
			iob = "O"
		}
		out.Tokens[i] = TokenEntry{
			ID:         i,
			Text:       t.Text,
			Lemma:      t.Lemma,
			POS:        t.UPOS,
			Tag:        t.XPOS,
			Dep:        t.Dep,
			Head:       t.Head,
			EntType:    t.EntType,
			EntIOB:     iob,
			Whitespace: t.Whitespace(),
			IsStop:     t.IsStop,
			IsAlpha:    t.IsAlpha,
			IsPunct:    t.IsPunct,
			Idx:        charOff,
		}
	}
	for i, e := range doc.Ents {
		out.Ents[i] = EntityEntry{Start: e.Start, End: e.End, Label: e.Label, Text: e.Text}
	}
	for i, s := range doc.Sents {
		out.Sents[i] = SpanEntry{Start: s.Start, End: s.End}
	}
	return out
}

// WriteTokensJSON writes the token-level export of doc to w.
func WriteTokensJSON(w io.Writer, doc *nlp.Doc) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(NewTokenDocument(doc))
}
