package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var normalizeCases = []struct {
	name  string
	input string
	want  string
}{
	{"empty", "", ""},
	{"already normalized", "pikachu", "pikachu"},
	{"mixed case with punctuation", "Pikachu!", "pikachu"},
	{"digits and spaces", "Porygon 2", "porygon"},
	{"hyphen", "Porygon-Z", "porygonz"},
	{"only non-letters", "123 !?", ""},
	{"non-ASCII letters dropped", "Flabébé", "flabb"},
	{"gender symbol dropped", "Nidoran♀", "nidoran"},
	{"apostrophe and period", "Farfetch'd Mr. Mime", "farfetchdmrmime"},
	{"tabs and newlines", "A\tB\nC", "abc"},
}

func TestNormalizers(t *testing.T) {
	factory := NewNormalizerFactory()
	for _, typ := range []NormalizerType{DefaultNormalizerType, OptimizedNormalizerType} {
		n := factory.CreateNormalizer(typ)
		for _, tc := range normalizeCases {
			t.Run(typ.String()+"/"+tc.name, func(t *testing.T) {
				assert.Equal(t, tc.want, n.Normalize(tc.input))
			})
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	factory := NewNormalizerFactory()
	for _, typ := range []NormalizerType{DefaultNormalizerType, OptimizedNormalizerType, FoldingNormalizerType} {
		n := factory.CreateNormalizer(typ)
		for _, tc := range normalizeCases {
			once := n.Normalize(tc.input)
			assert.Equal(t, once, n.Normalize(once), "%s: %q", typ, tc.input)
		}
	}
}

func TestCaseAndFormatInsensitivity(t *testing.T) {
	n := NewDefaultNormalizer()
	assert.Equal(t, "pikachu", n.Normalize("Pikachu!"))
	assert.Equal(t, n.Normalize("pikachu"), n.Normalize("Pikachu!"))
}

func TestFoldingNormalizer(t *testing.T) {
	n := NewFoldingNormalizer(nil)

	assert.Equal(t, "flabebe", n.Normalize("Flabébé"))
	assert.Equal(t, "pokemon", n.Normalize("Pokémon"))
	assert.Equal(t, "nidoran", n.Normalize("Nidoran♂"))
	assert.Equal(t, "", n.Normalize(""))
}

func TestOptimizedNormalizerReusesBuffers(t *testing.T) {
	n := NewOptimizedNormalizer()

	first := n.Normalize("Mr. Mime")
	second := n.Normalize("Ho-Oh")

	// Results must not alias pooled memory.
	assert.Equal(t, "mrmime", first)
	assert.Equal(t, "hooh", second)
}

func TestParseNormalizerType(t *testing.T) {
	tests := map[string]NormalizerType{
		"":          DefaultNormalizerType,
		"default":   DefaultNormalizerType,
		"Optimized": OptimizedNormalizerType,
		" folding ": FoldingNormalizerType,
	}
	for in, want := range tests {
		got, err := ParseNormalizerType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseNormalizerType("unicode")
	assert.Error(t, err)
}
