package nlp

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
)

// FallbackLanguage is used when a language cannot be determined or is not supported.
const FallbackLanguage = "en"

// LowConfidence is the detection confidence below which callers should
// warn that the language may be wrong.
const LowConfidence = 0.6

// shortTextChars is the length under which detection confidence is damped.
const shortTextChars = 200

// models maps supported language codes to model names.
var models = map[string]string{
	"en": "en_core_web_sm",
	"de": "de_core_news_sm",
	"es": "es_core_news_sm",
	"fr": "fr_core_news_sm",
}

// threeLetter maps ISO 639-2 codes of supported languages, including
// the bibliographic ger/fre variants, to their two-letter codes.
var threeLetter = map[string]string{
	"eng": "en",
	"deu": "de",
	"ger": "de",
	"spa": "es",
	"fra": "fr",
	"fre": "fr",
}

// SupportedLanguages returns the supported language codes in sorted order.
func SupportedLanguages() []string {
	codes := make([]string, 0, len(models))
	for code := range models {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// ModelName returns the model name for a supported language code.
func ModelName(code string) (string, bool) {
	name, ok := models[code]
	return name, ok
}

// ParseLanguage normalizes a language tag (en-US, eng, deu, ger, ...)
// to its two-letter base code. The second result reports whether the
// language is supported.
func ParseLanguage(tag string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(tag, "_", "-")))
	if s == "" {
		return "", false
	}
	if code, ok := threeLetter[s]; ok {
		return code, true
	}

	t, err := language.Parse(s)
	if err != nil {
		return s, false
	}
	base, _ := t.Base()
	code := base.String()
	_, ok := models[code]
	return code, ok
}

// NormalizeLanguage returns the supported two-letter code for tag, or
// FallbackLanguage when the tag is unknown or unsupported.
func NormalizeLanguage(tag string) string {
	if code, ok := ParseLanguage(tag); ok {
		return code
	}
	return FallbackLanguage
}

// profiles holds high-frequency function words used for detection.
// Unsupported languages are profiled too so that their text is not
// mistaken for a supported one.
var profiles = map[string][]string{
	"en": {"the", "and", "of", "to", "in", "is", "that", "it", "for", "was", "on", "are", "with", "as", "this", "be", "by", "not", "have", "from", "or", "which", "you", "they", "were", "their", "has", "been", "would", "there"},
	"de": {"der", "die", "und", "das", "ist", "nicht", "zu", "den", "von", "mit", "sich", "des", "auf", "für", "im", "dem", "ein", "eine", "auch", "es", "an", "als", "wird", "sind", "werden", "bei", "oder", "aus", "nach", "wie"},
	"es": {"el", "la", "de", "que", "y", "los", "del", "se", "las", "por", "un", "para", "con", "no", "una", "su", "al", "lo", "como", "más", "pero", "sus", "le", "ya", "es", "está", "son", "fue", "este", "entre"},
	"fr": {"le", "la", "les", "de", "des", "et", "est", "un", "une", "du", "que", "qui", "dans", "pour", "pas", "au", "sur", "ne", "ce", "il", "avec", "sont", "par", "plus", "aux", "cette", "elle", "ont", "été", "mais"},
	"it": {"il", "di", "che", "e", "la", "per", "gli", "non", "una", "sono", "della", "del", "nel", "alla", "anche", "questo", "come", "più", "degli", "delle"},
	"pt": {"o", "de", "que", "e", "do", "da", "em", "um", "para", "não", "uma", "os", "no", "com", "mais", "dos", "como", "mas", "ao", "ele", "das", "são", "pelo", "foi"},
	"nl": {"de", "het", "een", "van", "en", "is", "dat", "niet", "op", "te", "zijn", "voor", "met", "die", "ook", "als", "aan", "er", "maar", "om", "bij", "nog", "wordt", "worden"},
}

// profileSets is profiles indexed for lookup.
var profileSets = func() map[string]map[string]struct{} {
	sets := make(map[string]map[string]struct{}, len(profiles))
	for code, words := range profiles {
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			set[w] = struct{}{}
		}
		sets[code] = set
	}
	return sets
}()

// Detect guesses the language of text and returns a supported code
// with a confidence in [0, 1].
//
// Empty text yields (FallbackLanguage, 0) and text without any
// recognizable function words yields (FallbackLanguage, 0.3). Text
// shorter than 200 characters has its confidence multiplied by 0.8.
// A detected but unsupported language yields FallbackLanguage with the
// confidence capped at LowConfidence.
func Detect(text string) (string, float64) {
	if strings.TrimSpace(text) == "" {
		return FallbackLanguage, 0
	}

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
	if len(words) == 0 {
		return FallbackLanguage, 0.3
	}

	hits := make(map[string]int, len(profileSets))
	for _, w := range words {
		for code, set := range profileSets {
			if _, ok := set[w]; ok {
				hits[code]++
			}
		}
	}

	codes := make([]string, 0, len(hits))
	for code := range hits {
		codes = append(codes, code)
	}
	// Deterministic ranking: most hits first, then code.
	slices.SortFunc(codes, func(a, b string) int {
		if hits[a] != hits[b] {
			return hits[b] - hits[a]
		}
		return strings.Compare(a, b)
	})
	if len(codes) == 0 {
		return FallbackLanguage, 0.3
	}

	best := float64(hits[codes[0]])
	second := 0.0
	if len(codes) > 1 {
		second = float64(hits[codes[1]])
	}
	separation := best / (best + second)
	coverage := min(1.0, best/(0.2*float64(len(words))))
	confidence := separation * coverage

	if utf8.RuneCountInString(text) < shortTextChars {
		confidence *= 0.8
	}

	code := codes[0]
	if _, ok := models[code]; !ok {
		return FallbackLanguage, min(confidence, LowConfidence)
	}
	return code, confidence
}
