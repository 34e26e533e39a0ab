package nlp

// Capabilities a model can provide.
const (
	CapTagger     = "tagger"
	CapLemmatizer = "lemmatizer"
	CapParser     = "parser"
	CapNER        = "ner"
	CapSentiment  = "sentiment"
)

// LexiconVersion is written into installed lexicons.
const LexiconVersion = "1.2.0"

// Lexicon is the on-disk form of a language model.
type Lexicon struct {
	Language     string   `json:"language"`
	Model        string   `json:"model"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`

	// StopWords are ignored by frequency-based analyzers.
	// Closed-class words are stop words as well.
	StopWords []string `json:"stop_words"`

	// ClosedClass maps function words to their universal POS tag.
	ClosedClass map[string]string `json:"closed_class"`

	// Lemmas maps irregular forms to their lemma.
	Lemmas map[string]string `json:"lemmas"`

	// Suffixes guess the tag of open-class words, first match wins.
	Suffixes []SuffixTag `json:"suffixes"`

	// LemmaRules rewrite suffixes of tagged words, first match wins.
	LemmaRules []LemmaRule `json:"lemma_rules"`

	// CapitalizedNouns is set for languages that capitalize every noun.
	CapitalizedNouns bool `json:"capitalized_nouns,omitempty"`

	// Abbreviations never end a sentence when followed by a period.
	Abbreviations []string `json:"abbreviations"`

	// Sentiment holds word valences in [-4, 4].
	Sentiment map[string]float64 `json:"sentiment,omitempty"`

	// Negations flip the valence of the next sentiment words.
	Negations []string `json:"negations,omitempty"`

	// OrgMarkers mark an entity as an organization.
	OrgMarkers []string `json:"org_markers"`

	// LocationCues are prepositions that usually introduce places.
	LocationCues []string `json:"location_cues"`

	// Labels names the entity labels of this model.
	Labels EntityLabels `json:"labels"`
}

// SuffixTag assigns Tag to words ending in Suffix whose stem keeps at
// least MinStem runes.
type SuffixTag struct {
	Suffix  string `json:"suffix"`
	Tag     string `json:"tag"`
	MinStem int    `json:"min_stem"`
}

// LemmaRule replaces Suffix with Replace for words tagged with one of Tags.
type LemmaRule struct {
	Suffix  string   `json:"suffix"`
	Replace string   `json:"replace"`
	Tags    []string `json:"tags"`
	MinStem int      `json:"min_stem"`
}

// EntityLabels are the label names a model uses.
type EntityLabels struct {
	Person       string `json:"person"`
	Organization string `json:"organization"`
	Location     string `json:"location"`
	Misc         string `json:"misc"`
	Date         string `json:"date"`
}

// allCapabilities is the capability set of bundled lexicons.
var allCapabilities = []string{CapTagger, CapLemmatizer, CapParser, CapNER, CapSentiment}

// EngineCapabilities returns the capabilities of the built-in engine.
// Installed models may declare fewer.
func EngineCapabilities() []string {
	return append([]string(nil), allCapabilities...)
}

// BundledLexicon returns the lexicon shipped with rookeen for a
// supported language code.
func BundledLexicon(code string) (*Lexicon, bool) {
	build, ok := bundled[code]
	if !ok {
		return nil, false
	}
	lex := build()
	lex.Language = code
	lex.Model = models[code]
	lex.Version = LexiconVersion
	lex.Capabilities = append([]string(nil), allCapabilities...)
	return lex, true
}

// bundled builds the shipped lexicons. Builders return fresh values so
// callers may modify them.
var bundled = map[string]func() *Lexicon{
	"en": englishLexicon,
	"de": germanLexicon,
	"es": spanishLexicon,
	"fr": frenchLexicon,
}

// closed expands "TAG: w1 w2 ..." groups into a word->tag map.
func closed(groups map[string][]string) map[string]string {
	m := make(map[string]string)
	for tag, words := range groups {
		for _, w := range words {
			if _, exists := m[w]; !exists {
				m[w] = tag
			}
		}
	}
	return m
}
