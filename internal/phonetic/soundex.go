package phonetic

import (
	"strings"
)

// Consonant groups of the Russian soundex table. Sounds that are commonly
// confused by speech recognisers (voiced/voiceless pairs, sibilants) share a digit.
var russianCodes = map[rune]byte{
	'б': '1', 'п': '1',
	'в': '2', 'ф': '2',
	'г': '3', 'к': '3', 'х': '3',
	'д': '4', 'т': '4',
	'л': '5',
	'м': '6', 'н': '6',
	'р': '7',
	'ж': '8', 'ш': '8', 'щ': '8', 'ч': '8',
	'з': '9', 'с': '9', 'ц': '9',
}

const russianVowels = "аеёиоуыэюяй"

var russianReplacer = strings.NewReplacer(
	"тс", "ц",
	"дс", "ц",
	"ё", "е",
	"ь", "",
	"ъ", "",
)

// russianSoundex codes a lower-case Russian word. The first letter is coded
// like every other letter instead of being kept verbatim. Vowels code as '0',
// repeated codes collapse to one.
func russianSoundex(word string) string {
	reduced := russianReplacer.Replace(word)

	var b strings.Builder
	var last byte
	for _, r := range reduced {
		var code byte
		switch {
		case strings.ContainsRune(russianVowels, r):
			code = '0'
		default:
			c, ok := russianCodes[r]
			if !ok {
				continue
			}
			code = c
		}
		if code == last {
			continue
		}
		b.WriteByte(code)
		last = code
	}
	return b.String()
}
