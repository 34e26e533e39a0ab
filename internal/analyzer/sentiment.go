package analyzer

import (
	"context"
	"math"
	"strings"
	"unicode"

	"github.com/nao1215/rookeen/internal/model"
	"github.com/nao1215/rookeen/internal/nlp"
)

// Sentiment scoring constants, after VADER.
const (
	// sentimentAlpha normalizes the valence sum into (-1, 1).
	sentimentAlpha = 15.0
	// negationScalar flips and dampens a negated valence.
	negationScalar = -0.74
	// capsBoost strengthens ALL-CAPS words in mixed-case text.
	capsBoost = 0.733
	// negationWindow is how many preceding words a negation reaches.
	negationWindow = 3
	// neutralBand separates neutral from polar compound scores.
	neutralBand = 0.05
)

// Sentiment computes lexicon-based polarity.
type Sentiment struct{}

// Name implements Analyzer.
func (Sentiment) Name() string { return string(model.AnalysisSentiment) }

// Analyze implements Analyzer.
func (Sentiment) Analyze(ctx context.Context, in *Input) (Output, error) {
	if in.Model == nil || !in.Model.Has(nlp.CapSentiment) {
		return Output{
			Results:    map[string]any{"supported": false, "note": "No sentiment lexicon available for language " + in.Lang},
			Confidence: 0,
		}, nil
	}

	words := in.Doc.Words()
	mixedCase := hasMixedCase(words)

	var sum, posSum, negSum float64
	neutral := 0
	for i, t := range words {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return Output{}, err
			}
		}
		lower := in.Model.Lower(t.Text)
		v, ok := in.Model.Valence(lower)
		if !ok || v == 0 {
			neutral++
			continue
		}
		if mixedCase && isShouting(t.Text) {
			if v > 0 {
				v += capsBoost
			} else {
				v -= capsBoost
			}
		}
		for j := max(0, i-negationWindow); j < i; j++ {
			if in.Model.IsNegation(in.Model.Lower(words[j].Text)) {
				v *= negationScalar
				break
			}
		}
		sum += v
		if v > 0 {
			posSum += v + 1
		} else {
			negSum += v - 1
		}
	}

	compound := 0.0
	if sum != 0 {
		compound = sum / math.Sqrt(sum*sum+sentimentAlpha)
		compound = math.Max(-1, math.Min(1, compound))
	}

	var pos, neg, neu float64
	if total := posSum + math.Abs(negSum) + float64(neutral); total > 0 {
		pos = math.Abs(posSum / total)
		neg = math.Abs(negSum / total)
		neu = float64(neutral) / total
	}

	label := "neutral"
	switch {
	case compound >= neutralBand:
		label = "positive"
	case compound <= -neutralBand:
		label = "negative"
	}
	score := round(math.Abs(compound), 4)

	return Output{
		Results: map[string]any{
			"supported": true,
			"label":     label,
			"score":     score,
			"method":    "lexicon",
			"scores": map[string]float64{
				"pos":      round(pos, 3),
				"neg":      round(neg, 3),
				"neu":      round(neu, 3),
				"compound": round(compound, 4),
			},
		},
		Confidence: score,
	}, nil
}

// hasMixedCase reports whether some but not all words are upper case.
func hasMixedCase(words []nlp.Token) bool {
	upper := 0
	alpha := 0
	for _, t := range words {
		if !t.IsAlpha {
			continue
		}
		alpha++
		if isShouting(t.Text) {
			upper++
		}
	}
	return upper > 0 && upper < alpha
}

func isShouting(s string) bool {
	letters := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters > 1 && strings.ToUpper(s) == s
}
