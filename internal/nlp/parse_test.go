package nlp

import (
	"testing"
)

func mustModel(t *testing.T, lang string) *Model {
	t.Helper()

	lex, ok := BundledLexicon(lang)
	if !ok {
		t.Fatalf("no bundled lexicon for %q", lang)
	}
	m, err := NewModel(lex)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return m
}

func texts(toks []Token) []string {
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = tok.Text
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBundledLexicons(t *testing.T) {
	t.Parallel()

	for _, code := range SupportedLanguages() {
		t.Run(code, func(t *testing.T) {
			t.Parallel()

			m := mustModel(t, code)
			name, _ := ModelName(code)
			if m.Name() != name {
				t.Errorf("Name() = %q, want %q", m.Name(), name)
			}
			if m.Language() != code {
				t.Errorf("Language() = %q, want %q", m.Language(), code)
			}
			for _, c := range []string{CapTagger, CapLemmatizer, CapParser, CapNER, CapSentiment} {
				if !m.Has(c) {
					t.Errorf("Has(%q) = false", c)
				}
			}
			if m.Labels().Person == "" || m.Labels().Location == "" {
				t.Errorf("Labels() = %+v, want person and location labels", m.Labels())
			}
		})
	}

	if _, ok := BundledLexicon("ja"); ok {
		t.Error("BundledLexicon(ja) should not exist")
	}
}

func TestNewModelRejectsIncompleteLexicon(t *testing.T) {
	t.Parallel()

	if _, err := NewModel(&Lexicon{Language: "en"}); err == nil {
		t.Error("NewModel() should fail without a model name")
	}
	if _, err := NewModel(nil); err == nil {
		t.Error("NewModel(nil) should fail")
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		lang string
		text string
		want []string
	}{
		{
			name: "abbreviation and clitic",
			lang: "en",
			text: "Dr. Smith didn't go to Berlin.",
			want: []string{"Dr.", "Smith", "did", "n't", "go", "to", "Berlin", "."},
		},
		{
			name: "numbers keep separators",
			lang: "en",
			text: "It costs 1,000.50 dollars!",
			want: []string{"It", "costs", "1,000.50", "dollars", "!"},
		},
		{
			name: "punctuation runs",
			lang: "en",
			text: "Wait... what?!",
			want: []string{"Wait", "...", "what", "?", "!"},
		},
		{
			name: "hyphenated word",
			lang: "en",
			text: "A state-of-the-art tool",
			want: []string{"A", "state-of-the-art", "tool"},
		},
		{
			name: "french elision",
			lang: "fr",
			text: "L'homme qu'il voit",
			want: []string{"L'", "homme", "qu'", "il", "voit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := mustModel(t, tt.lang).Parse(tt.text)
			if got := texts(doc.Tokens); !equalStrings(got, tt.want) {
				t.Errorf("tokens = %q, want %q", got, tt.want)
			}
			for _, tok := range doc.Tokens {
				if tt.text[tok.Start:tok.End] != tok.Text {
					t.Errorf("token %q has offsets [%d,%d) pointing at %q", tok.Text, tok.Start, tok.End, tt.text[tok.Start:tok.End])
				}
			}
		})
	}
}

func TestSentences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"terminators", "Hello world. This is a test! Is it?", 3},
		{"lowercase continuation", "Hello world. This is a test! is it?", 2},
		{"abbreviation", "Mr. Brown arrived. He left.", 2},
		{"blank line", "first line\n\nsecond line", 2},
		{"closing quote stays", "He said \"stop.\" Then he left.", 2},
		{"single", "no terminator here", 1},
	}

	m := mustModel(t, "en")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := m.Parse(tt.text)
			if len(doc.Sents) != tt.want {
				t.Errorf("len(Sents) = %d, want %d", len(doc.Sents), tt.want)
			}
			for i, s := range doc.Sents {
				for _, tok := range doc.SentTokens(i) {
					if tok.Sent != i {
						t.Errorf("token %q Sent = %d, want %d", tok.Text, tok.Sent, i)
					}
				}
				if s.Len() == 0 {
					t.Errorf("sentence %d is empty", i)
				}
			}
		})
	}
}

func TestTagAndLemma(t *testing.T) {
	t.Parallel()

	m := mustModel(t, "en")
	doc := m.Parse("They quickly walked home. The children were playing.")

	want := []struct {
		text  string
		upos  string
		lemma string
	}{
		{"They", UPOSPron, "they"},
		{"quickly", UPOSAdv, "quickly"},
		{"walked", UPOSVerb, "walk"},
		{"home", UPOSNoun, "home"},
		{".", UPOSPunct, "."},
		{"The", UPOSDet, "the"},
		{"children", UPOSNoun, "child"},
		{"were", UPOSAux, "be"},
		{"playing", UPOSVerb, "play"},
		{".", UPOSPunct, "."},
	}
	if len(doc.Tokens) != len(want) {
		t.Fatalf("tokens = %q, want %d tokens", texts(doc.Tokens), len(want))
	}
	for i, w := range want {
		tok := doc.Tokens[i]
		if tok.Text != w.text || tok.UPOS != w.upos || tok.Lemma != w.lemma {
			t.Errorf("token %d = (%q, %q, %q), want (%q, %q, %q)", i, tok.Text, tok.UPOS, tok.Lemma, w.text, w.upos, w.lemma)
		}
	}
	if !doc.Tokens[5].IsStop || doc.Tokens[6].IsStop {
		t.Error("The should be a stop word and children should not")
	}
	if !doc.Tokens[4].IsPunct || doc.Tokens[3].IsPunct {
		t.Error("punctuation flags are wrong")
	}
	if doc.Tokens[2].XPOS != "VBD" {
		t.Errorf("XPOS(walked) = %q, want VBD", doc.Tokens[2].XPOS)
	}
}

func TestDependencyParse(t *testing.T) {
	t.Parallel()

	m := mustModel(t, "en")

	t.Run("auxiliary and subject", func(t *testing.T) {
		t.Parallel()

		doc := m.Parse("The children were playing.")
		want := []struct {
			dep  string
			head int
		}{
			{DepDet, 1},
			{DepNsubj, 3},
			{DepAux, 3},
			{DepRoot, 3},
			{DepPunct, 3},
		}
		for i, w := range want {
			tok := doc.Tokens[i]
			if tok.Dep != w.dep || tok.Head != w.head {
				t.Errorf("%q = (%s, %d), want (%s, %d)", tok.Text, tok.Dep, tok.Head, w.dep, w.head)
			}
		}
	})

	t.Run("copula", func(t *testing.T) {
		t.Parallel()

		doc := m.Parse("She is happy.")
		got := []string{doc.Tokens[0].Dep, doc.Tokens[1].Dep, doc.Tokens[2].Dep}
		want := []string{DepNsubj, DepRoot, DepAcomp}
		if !equalStrings(got, want) {
			t.Errorf("deps = %v, want %v", got, want)
		}
		if doc.Tokens[2].UPOS != UPOSAdj {
			t.Errorf("UPOS(happy) = %q, want ADJ", doc.Tokens[2].UPOS)
		}
	})

	t.Run("every sentence is a tree", func(t *testing.T) {
		t.Parallel()

		text := "The new system processes large amounts of data in real time. " +
			"Researchers at the University of Oxford published the results in 2021, and they were surprised. " +
			"If it works, we will use it for all projects!"
		doc := m.Parse(text)
		for si, s := range doc.Sents {
			roots := 0
			for i := s.Start; i < s.End; i++ {
				tok := doc.Tokens[i]
				if tok.IsRoot() {
					roots++
					if tok.Head != i {
						t.Errorf("root %q head = %d, want itself", tok.Text, tok.Head)
					}
					continue
				}
				if tok.Head < s.Start || tok.Head >= s.End {
					t.Errorf("%q head %d outside sentence %d", tok.Text, tok.Head, si)
				}
				// Following heads must reach the root.
				cur, steps := i, 0
				for !doc.Tokens[cur].IsRoot() && steps <= s.Len() {
					cur = doc.Tokens[cur].Head
					steps++
				}
				if !doc.Tokens[cur].IsRoot() {
					t.Errorf("%q does not reach the root", tok.Text)
				}
			}
			if roots != 1 {
				t.Errorf("sentence %d has %d roots, want 1", si, roots)
			}
		}
	})
}

func TestEntities(t *testing.T) {
	t.Parallel()

	type ent struct{ text, label string }
	tests := []struct {
		name string
		lang string
		text string
		want []ent
	}{
		{
			name: "person organization date",
			lang: "en",
			text: "Barack Obama visited the University of Chicago in 2009.",
			want: []ent{{"Barack Obama", "PERSON"}, {"University of Chicago", "ORG"}, {"2009", "DATE"}},
		},
		{
			name: "location cue",
			lang: "en",
			text: "She moved to Paris.",
			want: []ent{{"Paris", "GPE"}},
		},
		{
			name: "german names",
			lang: "de",
			text: "Angela Merkel wohnt in Berlin.",
			want: []ent{{"Angela Merkel", "PER"}, {"Berlin", "LOC"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := mustModel(t, tt.lang).Parse(tt.text)
			if len(doc.Ents) != len(tt.want) {
				t.Fatalf("Ents = %+v, want %+v", doc.Ents, tt.want)
			}
			for i, w := range tt.want {
				e := doc.Ents[i]
				if e.Text != w.text || e.Label != w.label {
					t.Errorf("entity %d = (%q, %q), want (%q, %q)", i, e.Text, e.Label, w.text, w.label)
				}
				if doc.Tokens[e.Start].EntIOB != "B" || doc.Tokens[e.Start].EntType != e.Label {
					t.Errorf("entity %q first token IOB = %q", e.Text, doc.Tokens[e.Start].EntIOB)
				}
			}
		})
	}
}

func TestParseWithoutParserCapability(t *testing.T) {
	t.Parallel()

	lex, _ := BundledLexicon("en")
	lex.Capabilities = []string{CapTagger, CapLemmatizer}
	m, err := NewModel(lex)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	if m.Has(CapParser) {
		t.Fatal("Has(parser) = true")
	}

	doc := m.Parse("Barack Obama visited Chicago.")
	if len(doc.Ents) != 0 {
		t.Errorf("Ents = %+v, want none", doc.Ents)
	}
	for _, tok := range doc.Tokens {
		if tok.Dep != DepDep {
			t.Errorf("%q Dep = %q, want %q", tok.Text, tok.Dep, DepDep)
		}
		if tok.UPOS == UPOSX {
			t.Errorf("%q is untagged", tok.Text)
		}
	}
}

func TestSentimentLexicon(t *testing.T) {
	t.Parallel()

	m := mustModel(t, "en")
	if v, ok := m.Valence("great"); !ok || v <= 0 {
		t.Errorf("Valence(great) = (%v, %v), want positive", v, ok)
	}
	if v, ok := m.Valence("terrible"); !ok || v >= 0 {
		t.Errorf("Valence(terrible) = (%v, %v), want negative", v, ok)
	}
	if !m.IsNegation("not") || m.IsNegation("great") {
		t.Error("IsNegation() is wrong")
	}
}
