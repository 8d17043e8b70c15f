// Package tfidf weighs tag multisets against a corpus of action tags and
// compares the weighted vectors by cosine similarity.
package tfidf

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// unitTolerance is how close to 1 a similarity must be to count as identical direction.
const unitTolerance = 1e-12

// Vector is a sparse TF-IDF vector keyed by tag.
type Vector map[string]float64

// Corpus holds the inverse document frequency of every non-reserved tag of
// one set of documents. It is immutable after BuildCorpus.
type Corpus struct {
	idf       map[string]float64
	documents int
}

// BuildCorpus counts, for every distinct tag of every document, the number of
// documents containing it and sets idf(tag) = ln(documents / docFreq(tag)).
// Tags for which reserved returns true are not counted. A nil reserved
// excludes nothing.
func BuildCorpus(documents [][]string, reserved func(tag string) bool) *Corpus {
	docFreq := make(map[string]int)
	for _, doc := range documents {
		seen := make(map[string]struct{}, len(doc))
		for _, tag := range doc {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			if reserved != nil && reserved(tag) {
				continue
			}
			docFreq[tag]++
		}
	}

	total := float64(len(documents))
	idf := make(map[string]float64, len(docFreq))
	for tag, df := range docFreq {
		idf[tag] = math.Log(total / float64(df))
	}
	return &Corpus{idf: idf, documents: len(documents)}
}

// IDF returns the inverse document frequency of tag.
func (c *Corpus) IDF(tag string) (float64, bool) {
	v, ok := c.idf[tag]
	return v, ok
}

// Documents returns the number of documents the corpus was built from.
func (c *Corpus) Documents() int {
	return c.documents
}

// Vocabulary returns the number of tags with an idf entry.
func (c *Corpus) Vocabulary() int {
	return len(c.idf)
}

// Vectorize weighs a tag multiset: tf(tag) = count(tag) / len(tags) and the
// weight is tf * idf. Tags outside the corpus vocabulary are dropped.
func (c *Corpus) Vectorize(tags []string) Vector {
	if len(tags) == 0 {
		return Vector{}
	}

	counts := make(map[string]int, len(tags))
	for _, tag := range tags {
		counts[tag]++
	}

	total := float64(len(tags))
	vec := make(Vector, len(counts))
	for tag, n := range counts {
		idf, ok := c.idf[tag]
		if !ok {
			continue
		}
		vec[tag] = float64(n) / total * idf
	}
	return vec
}

// Cosine returns the cosine similarity of a and b over the union of their
// dimensions. It returns 0 when either vector has zero norm.
func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	x := make([]float64, len(keys))
	y := make([]float64, len(keys))
	for i, k := range keys {
		x[i] = a[k]
		y[i] = b[k]
	}

	nx, ny := floats.Norm(x, 2), floats.Norm(y, 2)
	if nx == 0 || ny == 0 {
		return 0
	}
	sim := floats.Dot(x, y) / (nx * ny)
	// Rounding can leave parallel vectors a few ulps short of 1.
	if sim > 1 || math.Abs(sim-1) < unitTolerance {
		return 1
	}
	return sim
}
