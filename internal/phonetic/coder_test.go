package phonetic

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRussianSoundex(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"привет", "170204"},
		{"здорово", "9407020"},
		{"мама", "6060"},
		{"ёж", "08"},
		{"объект", "01034"}, // hard sign dropped
		{"детство", "409420"}, // тс reads as ц
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, russianSoundex(tt.word))
		})
	}
}

func TestRussianSoundexGroupsConfusableSounds(t *testing.T) {
	// Voiced/voiceless pairs share a code.
	assert.Equal(t, russianSoundex("код"), russianSoundex("кот"))
	assert.Equal(t, russianSoundex("был"), russianSoundex("пыл"))
	// Soft sign does not change the code.
	assert.Equal(t, russianSoundex("жил"), russianSoundex("жиль"))
	assert.NotEqual(t, russianSoundex("мир"), russianSoundex("мил"))
}

func TestEncodeIsCaseInsensitive(t *testing.T) {
	c := NewCoder()
	assert.Equal(t, c.Encode("Привет"), c.Encode("привет"))
	assert.Equal(t, c.Encode("HELLO"), c.Encode("hello"))
	assert.Equal(t, 2, c.Len(), "cache is keyed by the lowered word")
}

func TestEncodeDeterministicAndCacheMatchesColdPath(t *testing.T) {
	words := []string{"запись", "идёт", "Начали", "camp", "Science", "2024", "ok"}

	warm := NewCoder()
	for _, w := range words {
		first := warm.Encode(w)
		second := warm.Encode(w)
		assert.Equal(t, first, second, "encode(%q) must be deterministic", w)

		cold := NewCoder().Encode(w)
		assert.Equal(t, cold, second, "cache hit must equal a freshly computed code for %q", w)
	}
}

func TestEncodeScripts(t *testing.T) {
	c := NewCoder()

	assert.Equal(t, "170204", c.Encode("Привет"))

	latin := c.Encode("Smith")
	assert.NotEmpty(t, latin)
	assert.Equal(t, latin, c.Encode("Smyth"), "metaphone groups spelling variants")

	assert.Equal(t, "#2024", c.Encode("2024"))
	assert.NotEqual(t, c.Encode("170204"), c.Encode("привет"), "digit tokens never collide with sound codes")
}

func TestEncodeAll(t *testing.T) {
	c := NewCoder()
	codes := c.EncodeAll([]string{"мама", "мыла", "раму"})
	require.Len(t, codes, 3)
	assert.Equal(t, c.Encode("мама"), codes[0])
	assert.Equal(t, c.Encode("раму"), codes[2])
}

func TestCoderConcurrentUse(t *testing.T) {
	c := NewCoder()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				c.Encode(fmt.Sprintf("слово%d", i%50))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, c.Len())
}

func TestCoderSatisfiesEncoder(t *testing.T) {
	var _ Encoder = NewCoder()
}
