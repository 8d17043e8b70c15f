package phrasematch

import (
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/phonetic"
	"github.com/AndrewOch/ClapperRoughCutBackend/internal/textnorm"
	"github.com/AndrewOch/ClapperRoughCutBackend/model"
)

// CompareTexts walks the phonetic codes of text against those of reference
// with the same forward-only cursor the combination matcher scores subtitles
// with. Punctuation is ignored; annotations are compared like any other words.
func CompareTexts(enc phonetic.Encoder, text, reference string) model.TextComparison {
	words := encodeWords(enc, text)
	ref := encodeWords(enc, reference)

	cmp := model.TextComparison{
		Words:          len(words),
		ReferenceWords: len(ref),
		RunLengths:     []int{},
	}
	walkRuns(words, ref, func(run int) {
		if run > cmp.LongestRun {
			cmp.LongestRun = run
		}
		if run > 1 {
			cmp.RunLengths = append(cmp.RunLengths, run)
		}
	})
	return cmp
}

func encodeWords(enc phonetic.Encoder, text string) []string {
	words := textnorm.Words(text)
	codes := make([]string, len(words))
	for i, w := range words {
		codes[i] = enc.Encode(w)
	}
	return codes
}
