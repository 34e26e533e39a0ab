package nlp

// Doc is a parsed text.
type Doc struct {
	// Text is the input text. Token offsets index into it.
	Text string

	// Lang is the language code of the model that parsed the text.
	Lang string

	// Model is the name of that model.
	Model string

	Tokens []Token

	// Sents are the sentences as token ranges in text order.
	Sents []Span

	// Ents are the named entities in text order.
	Ents []Entity
}

// Token is a single word or punctuation mark.
type Token struct {
	// Index is the position of the token in Doc.Tokens.
	Index int

	Text  string
	Lemma string

	// UPOS is the universal part-of-speech tag.
	UPOS string

	// XPOS is the language-specific tag.
	XPOS string

	// Dep is the dependency label. The sentence root has "ROOT".
	Dep string

	// Head is the index of the syntactic head. A root is its own head.
	Head int

	IsStop  bool
	IsAlpha bool
	IsPunct bool

	// SpaceAfter reports whether whitespace follows the token.
	SpaceAfter bool

	// Start and End are byte offsets into Doc.Text.
	Start int
	End   int

	// Sent is the index of the sentence in Doc.Sents.
	Sent int

	// EntType is the entity label, or "" outside entities.
	EntType string

	// EntIOB is "B" at the first token of an entity, "I" inside one
	// and "O" outside.
	EntIOB string
}

// Whitespace returns the trailing whitespace of the token: " " or "".
func (t Token) Whitespace() string {
	if t.SpaceAfter {
		return " "
	}
	return ""
}

// IsRoot reports whether the token heads its sentence.
func (t Token) IsRoot() bool {
	return t.Dep == DepRoot
}

// Span is a half-open token range [Start, End).
type Span struct {
	Start int
	End   int
}

// Len returns the number of tokens in the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Entity is a named entity.
type Entity struct {
	Text  string
	Label string

	// Start and End are token indices, End exclusive.
	Start int
	End   int
}

// SentTokens returns the tokens of sentence i.
func (d *Doc) SentTokens(i int) []Token {
	s := d.Sents[i]
	return d.Tokens[s.Start:s.End]
}

// Words returns the tokens that are not punctuation.
func (d *Doc) Words() []Token {
	words := make([]Token, 0, len(d.Tokens))
	for _, t := range d.Tokens {
		if !t.IsPunct && t.UPOS != UPOSSpace {
			words = append(words, t)
		}
	}
	return words
}
