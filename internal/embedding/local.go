package embedding

import (
	"context"
	"encoding/binary"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/text/cases"
)

// Dimensions of the local backends.
const (
	SmallLocalDim = 384
	LargeLocalDim = 1024
)

// Default models of the local backends.
const (
	SmallLocalModel = "sentence-transformers/all-MiniLM-L6-v2"
	LargeLocalModel = "BAAI/bge-m3"
)

// featureFunc splits text into hashed features.
type featureFunc func(text string) []string

// hashedBackend embeds text by feature hashing: each feature adds ±1 to
// one dimension chosen by its hash. Equal texts give equal vectors.
type hashedBackend struct {
	name     string
	model    string
	dim      int
	features featureFunc

	once    sync.Once
	loadErr error
}

func smallLocalDescriptor() Descriptor {
	return Descriptor{
		Name:         SmallLocal,
		Aliases:      []string{"miniLM"},
		DefaultModel: SmallLocalModel,
		Dim:          func(string) int { return SmallLocalDim },
		Factory: func(opts Options) (Backend, error) {
			return newHashedBackend(SmallLocal, modelOr(opts.Model, SmallLocalModel), SmallLocalDim, wordFeatures), nil
		},
	}
}

func largeLocalDescriptor() Descriptor {
	return Descriptor{
		Name:         LargeLocal,
		Aliases:      []string{"bge-m3"},
		DefaultModel: LargeLocalModel,
		Dim:          func(string) int { return LargeLocalDim },
		Factory: func(opts Options) (Backend, error) {
			return newHashedBackend(LargeLocal, modelOr(opts.Model, LargeLocalModel), LargeLocalDim, charFeatures), nil
		},
	}
}

func newHashedBackend(name, model string, dim int, features featureFunc) *hashedBackend {
	return &hashedBackend{name: name, model: model, dim: dim, features: features}
}

func modelOr(model, fallback string) string {
	if strings.TrimSpace(model) == "" {
		return fallback
	}
	return model
}

// Load implements Backend.
func (b *hashedBackend) Load(ctx context.Context) error {
	b.once.Do(func() {
		if err := ctx.Err(); err != nil {
			b.loadErr = err
			return
		}
		if b.dim <= 0 {
			b.loadErr = fmt.Errorf("%s: invalid dimension %d", b.name, b.dim)
		}
	})
	return b.loadErr
}

// Embed implements Backend.
func (b *hashedBackend) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := b.Load(ctx); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	features := b.features(text)
	if len(features) == 0 {
		// Text without letters or digits still gets a unit vector, the
		// same one for every such input.
		features = []string{emptyFeature}
	}

	vec := make([]float32, b.dim)
	for _, f := range features {
		sum := blake2b.Sum256([]byte(b.model + "\x00" + f))
		h := binary.LittleEndian.Uint64(sum[:8])
		idx := int(h % uint64(b.dim)) //nolint:gosec // dim is positive
		if sum[8]&1 == 0 {
			vec[idx]++
		} else {
			vec[idx]--
		}
	}
	return Normalize(vec), nil
}

// emptyFeature stands in for text that yields no features.
const emptyFeature = "\x00empty"

// Provenance implements Backend.
func (b *hashedBackend) Provenance() Provenance {
	return Provenance{Backend: b.name, Model: b.model, Dim: b.dim, Normalized: true}
}

// words returns the case-folded words of text.
func words(text string) []string {
	folded := cases.Fold().String(text)
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// wordFeatures returns word unigrams and bigrams.
func wordFeatures(text string) []string {
	ws := words(text)
	out := make([]string, 0, 2*len(ws))
	for i, w := range ws {
		out = append(out, "w:"+w)
		if i > 0 {
			out = append(out, "b:"+ws[i-1]+" "+w)
		}
	}
	return out
}

// charFeatures returns character 3- to 5-grams of each word padded
// with boundary markers, so related word forms share features across
// languages.
func charFeatures(text string) []string {
	var out []string
	for _, w := range words(text) {
		runes := []rune("<" + w + ">")
		for n := 3; n <= 5; n++ {
			for i := 0; i+n <= len(runes); i++ {
				out = append(out, string(runes[i:i+n]))
			}
		}
	}
	return out
}
