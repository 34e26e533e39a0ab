package nlp

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// rawToken is a token before tagging.
type rawToken struct {
	text  string
	start int
	end   int
}

// closers may follow a sentence terminator and still belong to the sentence.
const closers = "\"')]}»”’"

// tokenize splits text into words, numbers and punctuation runs.
func (m *Model) tokenize(text string) []rawToken {
	var toks []rawToken
	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case isWordRune(r):
			end := scanWord(text, i)
			if end < len(text) && text[end] == '.' && m.isAbbreviation(text[i:end]) {
				end++
			}
			toks = append(toks, m.splitClitics(text, i, end)...)
			i = end
		default:
			end := i + size
			for end < len(text) {
				next, n := utf8.DecodeRuneInString(text[end:])
				if next != r {
					break
				}
				end += n
			}
			toks = append(toks, rawToken{text: text[i:end], start: i, end: end})
			i = end
		}
	}
	return toks
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// scanWord returns the end of the word starting at start. Apostrophes,
// hyphens, periods and commas are kept when a word rune follows; commas
// and periods only join digits to digits or letters to letters.
func scanWord(text string, start int) int {
	i := start
	prev := rune(0)
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if isWordRune(r) {
			prev = r
			i += size
			continue
		}
		if i+size >= len(text) {
			break
		}
		next, _ := utf8.DecodeRuneInString(text[i+size:])
		if !isWordRune(next) {
			break
		}
		switch r {
		case '\'', '’', '-':
		case '.':
			if unicode.IsDigit(prev) != unicode.IsDigit(next) {
				return i
			}
			if unicode.IsUpper(next) && !unicode.IsUpper(prev) {
				return i
			}
		case ',':
			if !unicode.IsDigit(prev) || !unicode.IsDigit(next) {
				return i
			}
		default:
			return i
		}
		i += size
	}
	return i
}

func (m *Model) isAbbreviation(word string) bool {
	_, ok := m.abbrev[m.lower(word)]
	if ok {
		return true
	}
	// Single capital letters are initials.
	r, size := utf8.DecodeRuneInString(word)
	return size == len(word) && unicode.IsUpper(r)
}

// splitClitics separates English-style suffix clitics (n't, 's) and
// Romance-style elided prefixes (l', d') from the word text[start:end].
func (m *Model) splitClitics(text string, start, end int) []rawToken {
	word := text[start:end]
	folded := foldApostrophe(m.lower(word))

	for _, p := range m.prefixClitics {
		if len(folded) > len(p) && strings.HasPrefix(folded, p) {
			cut := start + apostropheEnd(word, len(p))
			rest := m.splitClitics(text, cut, end)
			return append([]rawToken{{text: text[start:cut], start: start, end: cut}}, rest...)
		}
	}
	for _, s := range m.suffixClitics {
		if len(folded) > len(s) && strings.HasSuffix(folded, s) {
			cut := end - suffixBytes(word, s)
			if cut <= start {
				break
			}
			// "can't" splits as ca + n't.
			return []rawToken{
				{text: text[start:cut], start: start, end: cut},
				{text: text[cut:end], start: cut, end: end},
			}
		}
	}
	return []rawToken{{text: word, start: start, end: end}}
}

// foldApostrophe maps typographic apostrophes to ASCII ones.
func foldApostrophe(s string) string {
	return strings.ReplaceAll(s, "’", "'")
}

// apostropheEnd returns the byte length in word of a folded prefix of
// n bytes, accounting for multi-byte apostrophes.
func apostropheEnd(word string, n int) int {
	folded := 0
	for i, r := range word {
		if folded >= n {
			return i
		}
		if r == '’' {
			folded++
		} else {
			folded += utf8.RuneLen(r)
		}
	}
	return len(word)
}

// suffixBytes returns the byte length in word of the folded suffix s.
func suffixBytes(word, s string) int {
	want := utf8.RuneCountInString(s)
	n := 0
	i := len(word)
	for n < want && i > 0 {
		_, size := utf8.DecodeLastRuneInString(word[:i])
		i -= size
		n++
	}
	return len(word) - i
}

// splitSentences groups tokens into sentences. A sentence ends at a
// terminator (. ! ? and runs of them) unless the next word starts in
// lower case, and always at a blank line.
func splitSentences(text string, toks []rawToken) []Span {
	var sents []Span
	start := 0
	for i := 0; i < len(toks); i++ {
		end := -1
		if isTerminator(toks[i].text) {
			j := i + 1
			for j < len(toks) && strings.Contains(closers, toks[j].text) {
				j++
			}
			if j >= len(toks) || !startsLower(toks[j].text) {
				end = j
			}
		} else if i+1 < len(toks) && strings.Contains(text[toks[i].end:toks[i+1].start], "\n\n") {
			end = i + 1
		}
		if end > 0 {
			sents = append(sents, Span{Start: start, End: end})
			start = end
			i = end - 1
		}
	}
	if start < len(toks) {
		sents = append(sents, Span{Start: start, End: len(toks)})
	}
	return sents
}

func isTerminator(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '.' && r != '!' && r != '?' && r != '…' {
			return false
		}
	}
	return true
}

func startsLower(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLower(r)
}
