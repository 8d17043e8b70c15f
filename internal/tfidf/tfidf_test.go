package tfidf

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCorpus(t *testing.T) {
	reserved := func(tag string) bool { return tag == "night" }
	docs := [][]string{
		{"dog", "tree", "tree", "night"},
		{"dog", "car"},
		{"night"},
	}

	c := BuildCorpus(docs, reserved)
	assert.Equal(t, 3, c.Documents())
	assert.Equal(t, 3, c.Vocabulary())

	idf, ok := c.IDF("dog")
	require.True(t, ok)
	assert.InDelta(t, math.Log(3.0/2.0), idf, 1e-12)

	idf, ok = c.IDF("tree")
	require.True(t, ok)
	assert.InDelta(t, math.Log(3.0), idf, 1e-12, "duplicate tags count once per document")

	_, ok = c.IDF("night")
	assert.False(t, ok, "reserved tags are not features")
}

func TestVectorize(t *testing.T) {
	c := BuildCorpus([][]string{{"dog", "tree"}, {"car"}}, nil)

	vec := c.Vectorize([]string{"dog", "dog", "unknown", "night"})
	require.Len(t, vec, 1, "out-of-vocabulary tags are dropped")
	assert.InDelta(t, 2.0/4.0*math.Log(2), vec["dog"], 1e-12)

	assert.Empty(t, c.Vectorize(nil))
}

func TestCosine(t *testing.T) {
	a := Vector{"dog": 0.4, "tree": 0.2}
	b := Vector{"dog": 0.1, "car": 0.7}
	v := Vector{"x": 3, "y": 4}

	t.Run("symmetric", func(t *testing.T) {
		assert.Equal(t, Cosine(a, b), Cosine(b, a))
	})

	t.Run("self similarity is one", func(t *testing.T) {
		assert.Equal(t, 1.0, Cosine(v, v))
		assert.Equal(t, 1.0, Cosine(a, a))
	})

	t.Run("self similarity is exactly one for awkward weights", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 1000; i++ {
			vec := Vector{}
			for d := 0; d < 1+rng.Intn(8); d++ {
				vec[fmt.Sprintf("tag%d", d)] = rng.Float64() * 3
			}
			require.Equal(t, 1.0, Cosine(vec, vec), "vector %v", vec)
		}
	})

	t.Run("scaled copy points the same way", func(t *testing.T) {
		assert.Equal(t, 1.0, Cosine(a, Vector{"dog": 0.8, "tree": 0.4}))
	})

	t.Run("empty vector gives zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Cosine(v, Vector{}))
		assert.Equal(t, 0.0, Cosine(Vector{}, v))
		assert.Equal(t, 0.0, Cosine(nil, nil))
	})

	t.Run("zero norm gives zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Cosine(v, Vector{"x": 0}))
	})

	t.Run("disjoint vectors are orthogonal", func(t *testing.T) {
		assert.Equal(t, 0.0, Cosine(Vector{"x": 1}, Vector{"y": 1}))
	})

	t.Run("known value", func(t *testing.T) {
		// (0.4*0.1) / (sqrt(0.2) * sqrt(0.5))
		want := 0.04 / (math.Sqrt(0.2) * math.Sqrt(0.5))
		assert.InDelta(t, want, Cosine(a, b), 1e-12)
	})
}
