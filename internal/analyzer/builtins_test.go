package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/rookeen/internal/embedding"
	"github.com/nao1215/rookeen/internal/model"
	"github.com/nao1215/rookeen/internal/nlp"
)

func englishModel(t *testing.T, drop ...string) *nlp.Model {
	t.Helper()
	lex, ok := nlp.BundledLexicon("en")
	require.True(t, ok)
	if len(drop) > 0 {
		caps := lex.Capabilities[:0]
		for _, c := range lex.Capabilities {
			keep := true
			for _, d := range drop {
				if c == d {
					keep = false
				}
			}
			if keep {
				caps = append(caps, c)
			}
		}
		lex.Capabilities = caps
	}
	m, err := nlp.NewModel(lex)
	require.NoError(t, err)
	return m
}

func input(t *testing.T, m *nlp.Model, text string) *Input {
	t.Helper()
	return &Input{Doc: m.Parse(text), Model: m, Lang: m.Language()}
}

func TestLexicalStats(t *testing.T) {
	t.Parallel()

	in := input(t, englishModel(t), "The cat sat on the mat. The cat was happy.")
	out, err := LexicalStats{}.Analyze(context.Background(), in)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, out.Confidence, 1e-9)

	r := out.Results
	assert.Equal(t, 2, r["sentences"])
	total, ok := r["total_tokens"].(int)
	require.True(t, ok)
	assert.GreaterOrEqual(t, total, 4)

	top, ok := r["top_lemmas"].([]model.TermCount)
	require.True(t, ok)
	require.NotEmpty(t, top)
	assert.Equal(t, model.TermCount{Term: "cat", Count: 2}, top[0])

	unique, ok := r["unique_lemmas"].(int)
	require.True(t, ok)
	assert.InDelta(t, float64(unique)/float64(total), r["type_token_ratio"], 1e-9)
}

func TestLexicalStatsEmpty(t *testing.T) {
	t.Parallel()

	in := input(t, englishModel(t), "")
	out, err := LexicalStats{}.Analyze(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Results["total_tokens"])
	assert.InDelta(t, 0.0, out.Results["type_token_ratio"], 1e-9)
	assert.Empty(t, out.Results["top_lemmas"])
}

func TestKeywords(t *testing.T) {
	t.Parallel()

	in := input(t, englishModel(t), "The cat sat on the mat. The cat was happy.")
	out, err := Keywords{}.Analyze(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "frequency", out.Results["method"])

	kws, ok := out.Results["keywords"].([]model.TermScore)
	require.True(t, ok)
	require.NotEmpty(t, kws)
	assert.Equal(t, "cat", kws[0].Term)
	for i := 1; i < len(kws); i++ {
		assert.GreaterOrEqual(t, kws[i-1].Score, kws[i].Score)
	}
}

func TestPOS(t *testing.T) {
	t.Parallel()

	in := input(t, englishModel(t), "The cat sat on the mat. The cat was happy.")
	out, err := POS{}.Analyze(context.Background(), in)
	require.NoError(t, err)

	counts, ok := out.Results["upos_counts"].(map[string]int)
	require.True(t, ok)
	sum := 0
	for _, c := range counts {
		sum += c
	}
	assert.Equal(t, len(in.Doc.Tokens), sum)
	assert.Equal(t, 2, counts[nlp.UPOSPunct])

	ratios, ok := out.Results["upos_ratios"].(map[string]float64)
	require.True(t, ok)
	var total float64
	for _, r := range ratios {
		total += r
	}
	assert.InDelta(t, 1.0, total, 1e-9)

	byTag, ok := out.Results["top_lemmas_by_upos"].(map[string][]model.TermCount)
	require.True(t, ok)
	for _, lemmas := range byTag {
		assert.LessOrEqual(t, len(lemmas), topLemmasPerTag)
	}
}

func TestDependency(t *testing.T) {
	t.Parallel()

	in := input(t, englishModel(t), "The cat sat on the mat. The cat was happy.")
	out, err := Dependency{}.Analyze(context.Background(), in)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, out.Confidence, 1e-9)
	assert.Equal(t, true, out.Results["supported"])

	deps, ok := out.Results["dep_counts"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 2, deps[nlp.DepRoot])

	pairs, ok := out.Results["head_pos_dep"].(map[string]int)
	require.True(t, ok)
	assert.LessOrEqual(t, len(pairs), topHeadPairs)
}

func TestDependencyWithoutParser(t *testing.T) {
	t.Parallel()

	in := input(t, englishModel(t, nlp.CapParser), "The cat sat on the mat.")
	out, err := Dependency{}.Analyze(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, false, out.Results["supported"])
	assert.Equal(t, "Parser not available", out.Results["note"])
	assert.InDelta(t, 0.8, out.Confidence, 1e-9)
}

func TestNER(t *testing.T) {
	t.Parallel()

	in := input(t, englishModel(t), "Barack Obama visited the University of Chicago in 2009.")
	out, err := NER{}.Analyze(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, true, out.Results["supported"])
	assert.Equal(t, 3, out.Results["total_entities"])

	counts, ok := out.Results["counts_by_label"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, map[string]int{"PERSON": 1, "ORG": 1, "DATE": 1}, counts)

	examples, ok := out.Results["examples_by_label"].(map[string][]string)
	require.True(t, ok)
	assert.Equal(t, []string{"Barack Obama"}, examples["PERSON"])
}

func TestNERWithoutRecognizer(t *testing.T) {
	t.Parallel()

	in := input(t, englishModel(t, nlp.CapNER), "Barack Obama visited Chicago.")
	out, err := NER{}.Analyze(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, false, out.Results["supported"])
	assert.Equal(t, 0, out.Results["total_entities"])
}

func TestReadability(t *testing.T) {
	t.Parallel()

	text := "The cat sat on the mat. It was a sunny day. She was remarkably comfortable. The end."
	in := input(t, englishModel(t), text)
	out, err := Readability{}.Analyze(context.Background(), in)
	require.NoError(t, err)

	r := out.Results
	assert.Equal(t, true, r["supported"])
	assert.Equal(t, readabilityNote, r["note"])
	for _, key := range []string{
		"flesch_reading_ease", "flesch_kincaid_grade", "smog_index",
		"automated_readability_index", "coleman_liau_index",
		"linsear_write_formula", "dale_chall_readability_score",
	} {
		_, ok := r[key].(float64)
		assert.True(t, ok, key)
	}
	assert.Greater(t, r["flesch_reading_ease"], 50.0)
	assert.Greater(t, r["smog_index"], 0.0)
	assert.Equal(t, 2, r["difficult_words"])
	assert.Regexp(t, `^\d+(st|nd|rd|th) and \d+(st|nd|rd|th) grade$`, r["text_standard"])
}

func TestReadabilityEmpty(t *testing.T) {
	t.Parallel()

	out, err := Readability{}.Analyze(context.Background(), input(t, englishModel(t), "   "))
	require.NoError(t, err)
	assert.InDelta(t, 0.0, out.Results["flesch_reading_ease"], 1e-9)
	assert.Equal(t, 0, out.Results["difficult_words"])
}

func TestSyllables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"the", 1},
		{"make", 1},
		{"table", 2},
		{"beautiful", 3},
		{"comfortable", 4},
		{"rhythm", 1},
		{"x", 1},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, syllables(tt.word, true))
		})
	}
	assert.Equal(t, 2, syllables("Haus", false)+syllables("e", false))
}

func TestOrdinal(t *testing.T) {
	t.Parallel()

	for n, want := range map[int]string{0: "0th", 1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 13: "13th", 21: "21st", 22: "22nd"} {
		assert.Equal(t, want, ordinal(n))
	}
	assert.Equal(t, "9th and 10th grade", gradeRange(9))
	assert.Equal(t, 10, consensusGrade([]float64{9.2, 9.8, 10.5}))
	assert.Equal(t, 0, consensusGrade([]float64{-3.5}))
}

func TestSentiment(t *testing.T) {
	t.Parallel()

	m := englishModel(t)
	tests := []struct {
		text  string
		label string
	}{
		{"I love this wonderful movie.", "positive"},
		{"This movie is not good.", "negative"},
		{"The train leaves at noon.", "neutral"},
		{"This was a terrible and awful day.", "negative"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			out, err := Sentiment{}.Analyze(context.Background(), input(t, m, tt.text))
			require.NoError(t, err)
			r := out.Results
			assert.Equal(t, true, r["supported"])
			assert.Equal(t, "lexicon", r["method"])
			assert.Equal(t, tt.label, r["label"])

			scores, ok := r["scores"].(map[string]float64)
			require.True(t, ok)
			assert.InDelta(t, r["score"], abs(scores["compound"]), 1e-4)
			assert.InDelta(t, out.Confidence, r["score"], 1e-12)
			assert.InDelta(t, 1.0, scores["pos"]+scores["neg"]+scores["neu"], 0.01)
		})
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func TestSentimentCapsBoost(t *testing.T) {
	t.Parallel()

	m := englishModel(t)
	plain, err := Sentiment{}.Analyze(context.Background(), input(t, m, "The food was good here."))
	require.NoError(t, err)
	loud, err := Sentiment{}.Analyze(context.Background(), input(t, m, "The food was GOOD here."))
	require.NoError(t, err)
	assert.Greater(t, loud.Confidence, plain.Confidence)
}

func TestSentimentUnsupported(t *testing.T) {
	t.Parallel()

	in := input(t, englishModel(t, nlp.CapSentiment), "I love it.")
	out, err := Sentiment{}.Analyze(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, false, out.Results["supported"])
	assert.Zero(t, out.Confidence)
}

// fakeProvider returns a fixed backend or error.
type fakeProvider struct {
	backend embedding.Backend
	err     error
}

func (f fakeProvider) Get(context.Context, string, string) (embedding.Backend, error) {
	return f.backend, f.err
}

func TestEmbeddingsAnalyzer(t *testing.T) {
	t.Parallel()

	pool := embedding.NewPool(embedding.NewDefaultRegistry(), embedding.Options{})
	a := NewEmbeddings(pool, "miniLM", "")
	out, err := a.Analyze(context.Background(), input(t, englishModel(t), "Embeddings turn text into vectors."))
	require.NoError(t, err)

	r := out.Results
	assert.Equal(t, true, r["supported"])
	assert.Equal(t, embedding.SmallLocal, r["backend"])
	assert.Equal(t, embedding.SmallLocalModel, r["model"])
	assert.Equal(t, embedding.SmallLocalDim, r["dim"])
	assert.Equal(t, true, r["normalized"])
	vec, ok := r["vector"].([]float32)
	require.True(t, ok)
	assert.Len(t, vec, embedding.SmallLocalDim)
	assert.InDelta(t, 1.0, embedding.Norm(vec), 1e-5)
	assert.InDelta(t, 1.0, out.Confidence, 1e-9)
}

func TestEmbeddingsAnalyzerRedactsSecrets(t *testing.T) {
	t.Parallel()

	secret := "sk-live-1234567890abcdef"
	a := NewEmbeddings(fakeProvider{err: errors.New("request with key " + secret + " rejected")}, "remote-api", "", secret)
	out, err := a.Analyze(context.Background(), input(t, englishModel(t), "text"))
	require.NoError(t, err)

	note, ok := out.Results["note"].(string)
	require.True(t, ok)
	assert.Equal(t, false, out.Results["supported"])
	assert.NotContains(t, note, secret)
	assert.Contains(t, note, "embeddings backend unavailable")
	assert.Zero(t, out.Confidence)
}
