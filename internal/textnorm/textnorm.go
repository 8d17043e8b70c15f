// Package textnorm cleans transcribed and scripted text before phonetic encoding.
//
// Annotation spans are non-speech stage directions delimited by brackets,
// parentheses, angle brackets or asterisks. Punctuation removal covers Unicode
// punctuation plus the ASCII symbol characters that transcription tools emit.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/AndrewOch/ClapperRoughCutBackend/config"
)

var annotationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\[.*?\]`),
	regexp.MustCompile(`\(.*?\)`),
	regexp.MustCompile(`<.*?>`),
	regexp.MustCompile(`\*.*?\*`),
}

const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var punctuationSet = runes.Predicate(func(r rune) bool {
	return unicode.IsPunct(r) || strings.ContainsRune(asciiPunctuation, r)
})

// StripAnnotations removes [..], (..), <..> and *..* spans and trims the result.
func StripAnnotations(text string) string {
	result := text
	for _, pattern := range annotationPatterns {
		result = pattern.ReplaceAllString(result, "")
	}
	return strings.TrimSpace(result)
}

// StripPunctuation removes every punctuation character. Text is composed to NFC
// first so combining marks stay attached to their letters.
func StripPunctuation(text string) string {
	t := transform.Chain(norm.NFC, runes.Remove(punctuationSet))
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}

// Words strips punctuation and splits the text on whitespace.
func Words(text string) []string {
	return strings.Fields(StripPunctuation(text))
}

// Normalizer filters dialogue by alphabet.
type Normalizer struct {
	script *unicode.RangeTable
}

// NewNormalizer returns a normalizer for the configured target script.
// Unknown names fall back to Cyrillic.
func NewNormalizer(targetScript string) *Normalizer {
	table := unicode.Cyrillic
	if targetScript == config.ScriptLatin {
		table = unicode.Latin
	}
	return &Normalizer{script: table}
}

// HasTargetScriptLetters reports whether text contains at least one letter of the target alphabet.
func (n *Normalizer) HasTargetScriptLetters(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) && unicode.Is(n.script, r) {
			return true
		}
	}
	return false
}

// DialogueWords returns the words of a subtitle line that should take part in
// phonetic alignment. Lines that are empty after cleanup, or that contain no
// letter of the target alphabet, yield nil.
func (n *Normalizer) DialogueWords(text string) []string {
	processed := StripPunctuation(StripAnnotations(text))
	if strings.TrimSpace(processed) == "" || !n.HasTargetScriptLetters(processed) {
		return nil
	}
	return strings.Fields(processed)
}
