// Package alignment implements greedy longest-run alignment of a subtitle code
// stream against a phrase's code sequence.
//
// The stream is cut into alternating matched and unmatched segments. Matched
// segments are then chained by phrase order with a small gap tolerance to give
// the cross length of the phrase: the longest near-continuous stretch of the
// phrase heard in the stream.
package alignment

// Sequence is a phrase-side code sequence with first-occurrence lookup.
type Sequence interface {
	Codes() []string
	FirstIndex(code string) (int, bool)
}

// Segment is a run of stream codes. Start and End are inclusive stream
// indices. Matched segments also carry the phrase-side start of the run.
type Segment struct {
	Start       int
	End         int
	Length      int
	PhraseStart int
	Matched     bool
}

// Span returns the number of stream codes covered by the segment.
func (s Segment) Span() int {
	return s.End - s.Start + 1
}

// Alignment is the outcome of aligning one stream with one phrase.
type Alignment struct {
	Segments       []Segment
	MaxCrossLength int
}

// HasMatch reports whether at least one matched segment was found.
func (a Alignment) HasMatch() bool {
	for _, s := range a.Segments {
		if s.Matched {
			return true
		}
	}
	return false
}

// Matched returns the matched segments in stream order.
func (a Alignment) Matched() []Segment {
	var out []Segment
	for _, s := range a.Segments {
		if s.Matched {
			out = append(out, s)
		}
	}
	return out
}

// Align segments stream against phrase and computes the cross length using
// tolerance as the allowed gap difference.
func Align(stream []string, phrase Sequence, tolerance int) Alignment {
	segments := Segments(stream, phrase)
	return Alignment{
		Segments:       segments,
		MaxCrossLength: CrossLength(segments, tolerance),
	}
}

// Segments walks stream with a cursor. A code present in the phrase starts a
// matched run at the code's first phrase occurrence and extends while both
// sequences agree. A code absent from the phrase starts an unmatched run that
// extends while subsequent codes stay absent.
func Segments(stream []string, phrase Sequence) []Segment {
	codes := phrase.Codes()
	var segments []Segment

	for i := 0; i < len(stream); {
		if start, ok := phrase.FirstIndex(stream[i]); ok {
			length := 1
			for start+length < len(codes) && i+length < len(stream) && stream[i+length] == codes[start+length] {
				length++
			}
			segments = append(segments, Segment{
				Start:       i,
				End:         i + length - 1,
				Length:      length,
				PhraseStart: start,
				Matched:     true,
			})
			i += length
			continue
		}

		span := 1
		for i+span < len(stream) {
			if _, ok := phrase.FirstIndex(stream[i+span]); ok {
				break
			}
			span++
		}
		segments = append(segments, Segment{Start: i, End: i + span - 1})
		i += span
	}
	return segments
}

// CrossLength chains matched segments and returns the longest chain.
//
// A matched segment continues the chain when it starts after the phrase-side
// end of the previous matched segment and the phrase-side gap differs from the
// stream-side gap by less than tolerance. The stream-side gap is measured from
// the previous matched segment's end index to this segment's start index.
func CrossLength(segments []Segment, tolerance int) int {
	var (
		maxCross          int
		cross             int
		phraseEnd         = -1
		matchedSegmentEnd = -1
	)

	for _, s := range segments {
		if !s.Matched {
			continue
		}
		if continues(s, phraseEnd, matchedSegmentEnd, tolerance) {
			cross += s.Length
		} else {
			if cross > maxCross {
				maxCross = cross
			}
			cross = s.Length
		}
		phraseEnd = s.PhraseStart + s.Length - 1
		matchedSegmentEnd = s.End
	}

	if cross > maxCross {
		maxCross = cross
	}
	return maxCross
}

func continues(s Segment, phraseEnd, matchedSegmentEnd, tolerance int) bool {
	if s.PhraseStart <= phraseEnd {
		return false
	}
	if phraseEnd < 0 {
		return true
	}
	phraseGap := s.PhraseStart - phraseEnd - 1
	streamGap := s.Start - matchedSegmentEnd
	return abs(phraseGap-streamGap) < tolerance
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
