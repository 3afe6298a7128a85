package expando

import (
	"bufio"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
)

// replacementRune's width is the width widthOf reports for a
// non-printable code point; it always occupies a single screen column.
// The non-printable code point itself is passed through to the output
// unchanged; no code path substitutes replacementRune for it.
const replacementRune = '�'

// newGraphemeSegmenter returns a segmenter over s using the UAX #29
// grapheme-cluster-boundary rules, so advance() can walk s one cluster
// at a time without ever splitting one. Grounded on the firstFit/segment
// wiring in the npillmayer/cords styled formatter (uax/segment +
// uax/grapheme + uax/uax14), the closest pack analog for cluster-aware
// line/column budgeting.
func newGraphemeSegmenter(s string) *segment.Segmenter {
	seg := segment.NewSegmenter(grapheme.NewBreaker())
	seg.Init(bufio.NewReader(strings.NewReader(s)))
	return seg
}

// graphemeClusters splits s (which must not itself contain colour
// marker or tree-drawing bytes; callers route those through
// splitSegments first) into its extended grapheme clusters.
func graphemeClusters(s string) []string {
	if s == "" {
		return nil
	}
	seg := newGraphemeSegmenter(s)
	clusters := make([]string, 0, len(s))
	for seg.Next() {
		clusters = append(clusters, string(seg.Bytes()))
	}
	return clusters
}

// widthOf returns the screen-column width of a single extended grapheme
// cluster: 0 for a combining mark, 2 for wide East-Asian code points, 1
// for everything else printable, and 1 for a non-printable code point
// (counted as the width of the replacement character; the code point
// is not replaced in the output).
func widthOf(cluster string) int {
	if cluster == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	if r == utf8.RuneError {
		return 1
	}
	if !unicode.IsPrint(r) {
		return runewidth.RuneWidth(replacementRune)
	}
	return runewidth.RuneWidth(r)
}

// segmentPart is one contiguous run of either opaque bytes (a colour
// marker or tree-drawing glyph, see colour.go) or ordinary text.
type segmentPart struct {
	opaque bool
	data   []byte
}

// splitSegments partitions b into alternating opaque/plain runs so that
// grapheme segmentation (which knows nothing about this engine's
// private control bytes) is only ever run over pure text.
func splitSegments(b []byte) []segmentPart {
	var segs []segmentPart
	i := 0
	for i < len(b) {
		if n, ok := skipOpaqueBytes(b, i); ok {
			segs = append(segs, segmentPart{opaque: true, data: b[i:n]})
			i = n
			continue
		}
		start := i
		for i < len(b) {
			if _, ok := skipOpaqueBytes(b, i); ok {
				break
			}
			i++
		}
		segs = append(segs, segmentPart{opaque: false, data: b[start:i]})
	}
	return segs
}

// columnsOf returns the total on-screen column count of s, treating
// colour markers and tree-drawing bytes as zero-width.
func columnsOf(s string) int {
	total := 0
	for _, seg := range splitSegments([]byte(s)) {
		if seg.opaque {
			continue
		}
		for _, c := range graphemeClusters(string(seg.data)) {
			total += widthOf(c)
		}
	}
	return total
}

// advance returns the greedy longest prefix of s whose column total is
// <= budget, never splitting a grapheme cluster. Opaque colour/tree
// byte sequences are passed through at zero column cost. It returns the
// number of bytes and columns consumed.
func advance(s string, budget int) (bytesConsumed int, colsUsed int) {
	if budget <= 0 || s == "" {
		return 0, 0
	}

	bytePos := 0
	cols := 0
	for _, seg := range splitSegments([]byte(s)) {
		if seg.opaque {
			bytePos += len(seg.data)
			continue
		}
		for _, c := range graphemeClusters(string(seg.data)) {
			w := widthOf(c)
			if cols+w > budget {
				return bytePos, cols
			}
			cols += w
			bytePos += len(c)
		}
	}
	return bytePos, cols
}

// lowerSpecial lowercases ASCII letters in s, skipping colour marker
// sequences and tree-drawing bytes so embedded formatting survives a
// lowercase transform intact. Grounded on theme.go's convention that
// ANSI escape bytes are only ever wrapped around already-built text,
// never themselves passed through a string transform.
func lowerSpecial(s string) string {
	b := []byte(s)
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); {
		if n, ok := skipOpaqueBytes(b, i); ok {
			out = append(out, b[i:n]...)
			i = n
			continue
		}
		c := b[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out = append(out, c)
		i++
	}
	return string(out)
}
