package alignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// codes is a Sequence over a literal code list.
type codes []string

func (c codes) Codes() []string { return c }

func (c codes) FirstIndex(code string) (int, bool) {
	for i, x := range c {
		if x == code {
			return i, true
		}
	}
	return 0, false
}

func TestSegmentsGapBreaksContinuity(t *testing.T) {
	stream := []string{"S1", "S2", "S3", "S4", "S5"}
	phrase := codes{"S1", "S2", "S4", "S5"}

	segs := Segments(stream, phrase)
	require.Len(t, segs, 3)
	assert.Equal(t, Segment{Start: 0, End: 1, Length: 2, PhraseStart: 0, Matched: true}, segs[0])
	assert.Equal(t, Segment{Start: 2, End: 2}, segs[1])
	assert.Equal(t, Segment{Start: 3, End: 4, Length: 2, PhraseStart: 2, Matched: true}, segs[2])

	// |(2-1-1) - (3-1)| = 2 is not below the tolerance
	assert.Equal(t, 2, CrossLength(segs, 2))
}

func TestCrossLengthToleratesDroppedWord(t *testing.T) {
	stream := []string{"A", "B", "D", "E"}
	phrase := codes{"A", "B", "C", "D", "E"}

	a := Align(stream, phrase, 2)
	assert.Len(t, a.Matched(), 2)
	assert.Equal(t, 4, a.MaxCrossLength)
}

func TestCrossLengthToleratesInsertedFiller(t *testing.T) {
	stream := []string{"A", "B", "X", "C", "D"}
	phrase := codes{"A", "B", "C", "D"}

	// phrase gap 0, stream gap 3-1 = 2: outside tolerance 2, inside tolerance 3
	assert.Equal(t, 2, Align(stream, phrase, 2).MaxCrossLength)
	assert.Equal(t, 4, Align(stream, phrase, 3).MaxCrossLength)
}

func TestCrossLengthRequiresPhraseOrder(t *testing.T) {
	stream := []string{"C", "D", "A", "B"}
	phrase := codes{"A", "B", "C", "D"}

	a := Align(stream, phrase, 2)
	require.Len(t, a.Matched(), 2)
	assert.Equal(t, 2, a.MaxCrossLength, "a segment earlier in the phrase restarts the chain")
}

func TestSegmentsUsesFirstOccurrence(t *testing.T) {
	stream := []string{"B", "C"}
	phrase := codes{"A", "B", "X", "B", "C"}

	segs := Segments(stream, phrase)
	require.Len(t, segs, 2)
	assert.Equal(t, 1, segs[0].PhraseStart)
	assert.Equal(t, 1, segs[0].Length, "run is not re-anchored at a later occurrence")
	assert.Equal(t, 4, segs[1].PhraseStart)
}

func TestSegmentsRunBoundedByPhraseEnd(t *testing.T) {
	stream := []string{"A", "B", "A", "B"}
	phrase := codes{"A", "B"}

	segs := Segments(stream, phrase)
	require.Len(t, segs, 2)
	assert.Equal(t, 2, segs[0].Length)
	assert.Equal(t, 2, segs[1].Length)
	assert.Equal(t, 2, CrossLength(segs, 2))
}

func TestAlignNoMatch(t *testing.T) {
	a := Align([]string{"X", "Y", "Z"}, codes{"A"}, 2)
	require.Len(t, a.Segments, 1)
	assert.Equal(t, 3, a.Segments[0].Span())
	assert.False(t, a.HasMatch())
	assert.Equal(t, 0, a.MaxCrossLength)

	empty := Align(nil, codes{"A"}, 2)
	assert.Empty(t, empty.Segments)
	assert.False(t, empty.HasMatch())
}
