package expando

import "testing"

func TestWidthOf(t *testing.T) {
	AssertEqual(t, 1, widthOf("a"))
	AssertEqual(t, 2, widthOf("日"))
	AssertEqual(t, 1, widthOf(" "))
}

func TestColumnsOf(t *testing.T) {
	AssertEqual(t, 5, columnsOf("hello"))
	AssertEqual(t, 6, columnsOf("日本語"))
}

func TestColumnsOf_SkipsColourMarkers(t *testing.T) {
	var buf buffer
	appendColourMarker(&buf, ColourIndicator)
	buf.AppendString("AB")
	appendColourMarker(&buf, ColourNone)
	AssertEqual(t, 2, columnsOf(buf.String()))
}

func TestAdvance_NeverSplitsCluster(t *testing.T) {
	// "é" as e + combining acute is a single extended grapheme cluster
	// of width 1; a budget of 0 must consume none of it, not half.
	s := "éx"
	consumed, cols := advance(s, 0)
	AssertEqual(t, 0, consumed)
	AssertEqual(t, 0, cols)

	consumed, cols = advance(s, 1)
	AssertEqual(t, len("é"), consumed)
	AssertEqual(t, 1, cols)
}

func TestAdvance_StopsMidWideRune(t *testing.T) {
	consumed, cols := advance("日本語", 3)
	// budget 3 can only fit one double-width cluster (cols=2); the
	// second would overflow to 4.
	AssertEqual(t, len("日"), consumed)
	AssertEqual(t, 2, cols)
}

func TestLowerSpecial_SkipsOpaqueBytes(t *testing.T) {
	var buf buffer
	appendColourMarker(&buf, ColourIndicator)
	buf.AppendString("AB")
	appendColourMarker(&buf, ColourNone)

	lowered := lowerSpecial(buf.String())
	AssertEqual(t, columnsOf(buf.String()), columnsOf(lowered))

	gotBytes := []byte(lowered)
	if !isColourMarker(gotBytes, 0) {
		t.Fatal("expected leading colour marker to survive lowering")
	}
	if gotBytes[2] != 'a' || gotBytes[3] != 'b' {
		t.Fatalf("expected lowercased text, got %q", gotBytes[2:4])
	}
}

func TestSplitSegments_DoesNotSplitMarkerAcrossClusters(t *testing.T) {
	var buf buffer
	buf.AppendString("x")
	appendColourMarker(&buf, ColourTree)
	buf.AppendString("y")

	segs := splitSegments([]byte(buf.String()))
	AssertEqual(t, 3, len(segs))
	AssertEqual(t, false, segs[0].opaque)
	AssertEqual(t, true, segs[1].opaque)
	AssertEqual(t, 2, len(segs[1].data))
	AssertEqual(t, false, segs[2].opaque)
}
