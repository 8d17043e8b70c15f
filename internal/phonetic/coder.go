// Package phonetic maps words to phonetic codes so that near-homophone
// transcription errors still compare equal.
//
// Cyrillic words use a Russian soundex table. Latin words use the primary
// Double Metaphone code. Anything else (numbers, symbols left after cleanup)
// is kept verbatim with a '#' prefix so it can never collide with a sound code.
//
// A Coder memoizes every word it has encoded. The encoding is a pure function
// of the lower-cased word, so the cache is never invalidated.
package phonetic

import (
	"strings"
	"sync"
	"unicode"

	"github.com/antzucaro/matchr"
)

// Encoder turns a word into its phonetic code.
type Encoder interface {
	Encode(word string) string
}

// Coder is a concurrency-safe memoizing Encoder. Construct one per process and
// share it by reference.
type Coder struct {
	mu    sync.RWMutex
	cache map[string]string
}

// NewCoder creates a coder with an empty cache.
func NewCoder() *Coder {
	return &Coder{cache: make(map[string]string)}
}

// Encode returns the phonetic code of word. The word is lower-cased first and
// the lowered form is the cache key.
func (c *Coder) Encode(word string) string {
	key := strings.ToLower(word)

	c.mu.RLock()
	code, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return code
	}

	code = encodeLowered(key)

	c.mu.Lock()
	c.cache[key] = code
	c.mu.Unlock()
	return code
}

// EncodeAll encodes every word in order.
func (c *Coder) EncodeAll(words []string) []string {
	codes := make([]string, len(words))
	for i, w := range words {
		codes[i] = c.Encode(w)
	}
	return codes
}

// Len returns the number of cached words.
func (c *Coder) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// encodeLowered is the uncached encoding path.
func encodeLowered(word string) string {
	switch dominantScript(word) {
	case scriptCyrillic:
		if code := russianSoundex(word); code != "" {
			return code
		}
	case scriptLatin:
		if primary, _ := matchr.DoubleMetaphone(word); primary != "" {
			return primary
		}
	}
	return "#" + word
}

type script int

const (
	scriptOther script = iota
	scriptCyrillic
	scriptLatin
)

// dominantScript picks the alphabet with the most letters in word; Cyrillic wins ties.
func dominantScript(word string) script {
	var cyr, lat int
	for _, r := range word {
		switch {
		case unicode.Is(unicode.Cyrillic, r):
			cyr++
		case unicode.Is(unicode.Latin, r):
			lat++
		}
	}
	switch {
	case cyr == 0 && lat == 0:
		return scriptOther
	case cyr >= lat:
		return scriptCyrillic
	default:
		return scriptLatin
	}
}
