package phrasematch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AndrewOch/ClapperRoughCutBackend/internal/phonetic"
	"github.com/AndrewOch/ClapperRoughCutBackend/model"
)

const (
	forestLine  = "Мы пойдём завтра утром в лес за грибами и ягодами"
	weatherLine = "Смотри, какая погода сегодня хорошая"
)

// vocabulary has forty words with pairwise distinct phonetic codes.
var vocabulary = strings.Fields(`дом окно стол река гора небо ветер луна солнце поле
	город улица мост берег остров песок камень трава цветок птица
	рыба волк медведь лиса заяц белка олень корова лошадь свинья
	книга ручка бумага письмо слово голос ночь танец музыка театр`)

func words(n int) string {
	return strings.Join(vocabulary[:n], " ")
}

func phrase(t *testing.T, coder *phonetic.Coder, id, text string) *model.Phrase {
	t.Helper()
	p, err := model.NewPhrase(model.PhraseDefinition{PhraseID: id, FullText: "ГЕРОЙ: " + text, PhraseText: text}, coder)
	require.NoError(t, err)
	return p
}

func subtitles(texts ...string) []model.Subtitle {
	subs := make([]model.Subtitle, len(texts))
	for i, text := range texts {
		subs[i] = model.Subtitle{Text: text, StartTime: float64(i), EndTime: float64(i) + 0.9}
	}
	return subs
}
