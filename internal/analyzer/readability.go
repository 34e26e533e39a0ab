package analyzer

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/nao1215/rookeen/internal/model"
	"github.com/nao1215/rookeen/internal/nlp"
)

const readabilityNote = "Readability metrics are calibrated for English; interpret non-English results with caution."

// Readability computes the classic readability formulas.
type Readability struct{}

// Name implements Analyzer.
func (Readability) Name() string { return string(model.AnalysisReadability) }

// textCounts are the surface counts the formulas need.
type textCounts struct {
	words      int
	sentences  int
	syllables  int
	letters    int
	polysyll   int // words with 3+ syllables
	difficult  int // distinct polysyllabic non-stop words
	linsearRaw float64
}

func countText(in *Input) textCounts {
	var c textCounts
	c.sentences = max(len(in.Doc.Sents), 1)

	english := in.Lang == "en"
	hard := make(map[string]struct{})
	linsearWords := 0
	linsearScore := 0

	for _, t := range in.Doc.Tokens {
		if t.IsPunct || t.UPOS == nlp.UPOSSpace || t.UPOS == nlp.UPOSSym {
			continue
		}
		c.words++
		syl := syllables(t.Text, english)
		c.syllables += syl
		for _, r := range t.Text {
			if unicode.IsLetter(r) {
				c.letters++
			}
		}
		if syl >= 3 {
			c.polysyll++
			if !t.IsStop && t.IsAlpha {
				hard[strings.ToLower(t.Text)] = struct{}{}
			}
		}
		if linsearWords < 100 {
			linsearWords++
			if syl >= 3 {
				linsearScore += 3
			} else {
				linsearScore++
			}
		}
	}
	c.difficult = len(hard)
	c.linsearRaw = float64(linsearScore) / float64(c.sentences)
	return c
}

// Analyze implements Analyzer.
func (Readability) Analyze(_ context.Context, in *Input) (Output, error) {
	c := countText(in)

	results := map[string]any{
		"supported":                    true,
		"note":                         readabilityNote,
		"flesch_reading_ease":          0.0,
		"flesch_kincaid_grade":         0.0,
		"smog_index":                   0.0,
		"automated_readability_index":  0.0,
		"coleman_liau_index":           0.0,
		"linsear_write_formula":        0.0,
		"dale_chall_readability_score": 0.0,
		"difficult_words":              0,
		"text_standard":                gradeRange(0),
	}
	if c.words == 0 {
		return Output{Results: results, Confidence: 1.0}, nil
	}

	w := float64(c.words)
	s := float64(c.sentences)
	wps := w / s
	spw := float64(c.syllables) / w

	fre := 206.835 - 1.015*wps - 84.6*spw
	fkgl := 0.39*wps + 11.8*spw - 15.59
	smog := 0.0
	if c.sentences >= 3 {
		smog = 1.043*math.Sqrt(float64(c.polysyll)*30/s) + 3.1291
	}
	ari := 4.71*(float64(c.letters)/w) + 0.5*wps - 21.43
	cli := 0.0588*(float64(c.letters)/w*100) - 0.296*(s/w*100) - 15.8

	linsear := c.linsearRaw
	if linsear > 20 {
		linsear /= 2
	} else {
		linsear = (linsear - 2) / 2
	}

	pctDifficult := float64(c.polysyll) / w * 100
	dale := 0.1579*pctDifficult + 0.0496*wps
	if pctDifficult > 5 {
		dale += 3.6365
	}

	results["flesch_reading_ease"] = round(fre, 2)
	results["flesch_kincaid_grade"] = round(fkgl, 2)
	results["smog_index"] = round(smog, 2)
	results["automated_readability_index"] = round(ari, 2)
	results["coleman_liau_index"] = round(cli, 2)
	results["linsear_write_formula"] = round(linsear, 2)
	results["dale_chall_readability_score"] = round(dale, 2)
	results["difficult_words"] = c.difficult

	grades := []float64{fkgl, cli, ari, linsear, daleGrade(dale)}
	if c.sentences >= 3 {
		grades = append(grades, smog)
	}
	results["text_standard"] = gradeRange(consensusGrade(grades))

	return Output{Results: results, Confidence: 1.0}, nil
}

// daleChallGrades maps Dale-Chall scores to school grades.
var daleChallGrades = []struct {
	below float64
	grade float64
}{
	{5, 4}, {6, 5}, {7, 7}, {8, 9}, {9, 11}, {10, 13},
}

func daleGrade(score float64) float64 {
	for _, g := range daleChallGrades {
		if score < g.below {
			return g.grade
		}
	}
	return 16
}

// consensusGrade returns the most common floor of the grades. Ties go
// to the lower grade.
func consensusGrade(grades []float64) int {
	votes := make(map[int]int)
	for _, g := range grades {
		lo := int(math.Floor(g))
		votes[lo]++
		votes[lo+1]++
	}
	best, bestVotes := 0, -1
	for g, n := range votes {
		if n > bestVotes || (n == bestVotes && g < best) {
			best, bestVotes = g, n
		}
	}
	return max(best, 0)
}

// gradeRange formats a grade as "9th and 10th grade".
func gradeRange(g int) string {
	return fmt.Sprintf("%s and %s grade", ordinal(g), ordinal(g+1))
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// syllables estimates syllables as vowel groups. In English a final
// silent "e" is dropped. Every word has at least one syllable.
func syllables(word string, english bool) int {
	w := strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, r := range w {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if english && count > 1 && strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") {
		count--
	}
	return max(count, 1)
}

func isVowel(r rune) bool {
	return strings.ContainsRune("aeiouyàáâäæèéêëìíîïòóôöœùúûüÿ", r)
}
