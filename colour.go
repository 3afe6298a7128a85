package expando

// Colour markers are an in-band two-byte annotation telling the
// downstream terminal renderer (out of scope, see spec.md §1) to switch
// colour attributes. They mirror the shape of theme.go's ANSIMod in the
// teacher repo (a small integer enum wrapped in an opaque byte sequence),
// but narrowed to a fixed two-byte marker instead of a full ANSI SGR
// string: this engine never talks to a terminal directly, it only
// produces bytes a terminal layer will later expand.

// colourSentinel is a byte value below any printable/byte-meaningful
// code point, used to introduce a colour marker. A bare sentinel byte
// can never appear in ordinary rendered text.
const colourSentinel = 0x01

// ColourID names one of a small, fixed set of colour attributes a host
// terminal renderer understands. The engine itself assigns no meaning
// to these beyond "pass them through, skip them during width/case
// transforms."
type ColourID byte

const (
	ColourNone ColourID = iota
	ColourIndicator
	ColourTree
	ColourFlags
	ColourNew
	ColourOld
	ColourDeleted
	ColourTagged
	ColourSearch
)

// treeDrawingLo/Hi bound a private byte range reserved for thread-tree
// ASCII art glyphs (corners, tees, vertical/horizontal lines). Like
// colour markers, these bytes are zero-width and must survive
// case-folding untouched.
const (
	treeDrawingLo = 0x02
	treeDrawingHi = 0x0c
)

// Tree-drawing glyph identities, emitted as single bytes in the
// treeDrawingLo..treeDrawingHi range.
const (
	TreeLLCorner byte = treeDrawingLo + iota
	TreeULCorner
	TreeLTee
	TreeHLine
	TreeVLine
	TreeRTee
	TreeTTee
	TreeBTee
	TreeSpace
	TreeEquals
	TreeMissing
)

// appendColourMarker writes the two-byte in-band colour marker for id.
func appendColourMarker(buf *buffer, id ColourID) {
	buf.AppendByte(colourSentinel)
	buf.AppendByte(byte(id))
}

// isColourMarker reports whether b[i] begins a colour marker sequence.
func isColourMarker(b []byte, i int) bool {
	return b[i] == colourSentinel && i+1 < len(b)
}

// isTreeDrawing reports whether b[i] is a tree-drawing glyph byte.
func isTreeDrawing(b []byte, i int) bool {
	return b[i] >= treeDrawingLo && b[i] <= treeDrawingHi
}

// skipOpaqueBytes reports whether b[i] begins an opaque run (a colour
// marker pair or a single tree-drawing glyph) and, if so, returns the
// index just past it. Callers use this to route colour/tree bytes
// around grapheme segmentation and case-folding untouched.
func skipOpaqueBytes(b []byte, i int) (next int, ok bool) {
	if isColourMarker(b, i) {
		return i + 2, true
	}
	if isTreeDrawing(b, i) {
		return i + 1, true
	}
	return i, false
}

// withColour wraps the bytes written by f in a colour marker pair,
// matching the teacher's withColor in encoding.go: a sentinel/reset
// bracket around text produced by a nested closure. An id of
// ColourNone emits no markers at all.
func withColour(buf *buffer, id ColourID, f func()) {
	if id == ColourNone {
		f()
		return
	}
	appendColourMarker(buf, id)
	f()
	appendColourMarker(buf, ColourNone)
}
