package expando

import (
	"os"
	"testing"
)

func renderFormat(t *testing.T, format string, budget int, data *RenderData) (string, int) {
	t.Helper()
	tree, err := Parse(format, testDefinitions())
	AssertNoError(t, err)
	var out buffer
	cols := Render(tree, data, budget, &out)
	return out.String(), cols
}

// Scenario 1: plain text + width.
func TestScenario_PlainText(t *testing.T) {
	got, cols := renderFormat(t, "hello", 10, nil)
	AssertEqual(t, "hello", got)
	AssertEqual(t, 5, cols)
}

// Scenario 2: left-justify, min width, pad.
func TestScenario_LeftJustifyPad(t *testing.T) {
	data := testRenderData(map[int]string{testUIDN: "ab"}, nil)
	got, cols := renderFormat(t, "%-8n", 20, data)
	AssertEqual(t, "ab      ", got)
	AssertEqual(t, 8, cols)
}

// Scenario 3: precision truncates in columns, not bytes.
func TestScenario_PrecisionTruncatesColumns(t *testing.T) {
	data := testRenderData(map[int]string{testUIDS: "日本語テスト"}, nil)
	got, cols := renderFormat(t, "%.4s", 20, data)
	AssertEqual(t, "日本", got)
	AssertEqual(t, 4, cols)
}

// Scenario 4: old-style conditional, true branch.
func TestScenario_OldConditionalTrue(t *testing.T) {
	data := testRenderData(nil, map[int]int64{testUIDX: 1})
	got, cols := renderFormat(t, "%?x?YES&NO?", 10, data)
	AssertEqual(t, "YES", got)
	AssertEqual(t, 3, cols)
}

// Scenario 5: hard padding.
func TestScenario_HardPadding(t *testing.T) {
	got, cols := renderFormat(t, "L%>-R", 10, nil)
	AssertEqual(t, "L--------R", got)
	AssertEqual(t, 10, cols)
}

// Soft padding: under budget pressure the right side renders in full
// and the left side is truncated to whatever remains, the mirror image
// of hard padding's left-takes-precedence rule.
func TestScenario_SoftPadding(t *testing.T) {
	got, cols := renderFormat(t, "LLLLL%*-RRRRR", 6, nil)
	AssertEqual(t, "LRRRRR", got)
	AssertEqual(t, 6, cols)
}

// Scenario 6: nested new-style conditional with fill-to-eol.
func TestScenario_NestedConditionalFillToEol(t *testing.T) {
	data := testRenderData(nil, map[int]int64{testUIDA: 1, testUIDB: 0})
	got, cols := renderFormat(t, "%<a?[%<b?bb&cc>]&dd>%|.", 8, data)
	AssertEqual(t, "[cc]....", got)
	AssertEqual(t, 8, cols)
}

// Scenario 7: lowercase flag ignores colour markers.
func TestScenario_LowercaseIgnoresColourMarkers(t *testing.T) {
	data := testRenderData(map[int]string{testUIDS: ""}, nil)
	getters := data.Entries[0].Table.Getters
	getters[testUIDS] = Getter{String: func(n *Node, obj any, flags int, out *buffer) {
		withColour(out, ColourIndicator, func() {
			out.AppendString("AB")
		})
	}}

	got, cols := renderFormat(t, "%_s", 20, data)
	AssertEqual(t, 2, cols)

	b := []byte(got)
	if !isColourMarker(b, 0) {
		t.Fatalf("expected leading colour marker, got %q", got)
	}
	if b[2] != 'a' || b[3] != 'b' {
		t.Fatalf("expected lowercased visible text, got %q", got)
	}
}

// Scenario 8: pipe post-filter.
func TestScenario_PipeFilter(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh available")
	}

	tree, err := Parse("echo HI|", testDefinitions())
	AssertNoError(t, err)

	var out buffer
	RenderFiltered(nil, tree, nil, 80, &out)
	AssertEqual(t, "HI", out.String())
}

// RenderFiltered must fall back to a plain render for a format that
// merely ends in a padding operator's raw '|' byte, not a real filter
// pipe (see TestDetectTrailingFilter_PaddingOperatorIsNotATrigger).
func TestScenario_PipeFilter_PaddingOperatorRendersNormally(t *testing.T) {
	tree, err := Parse("ab%|.", testDefinitions())
	AssertNoError(t, err)

	var out buffer
	RenderFiltered(nil, tree, nil, 5, &out)
	AssertEqual(t, "ab...", out.String())
}

func TestRenderCondition_FalseBranch(t *testing.T) {
	data := testRenderData(nil, map[int]int64{testUIDX: 0})
	got, _ := renderFormat(t, "%?x?YES&NO?", 10, data)
	AssertEqual(t, "NO", got)
}

func TestRenderCondition_MissingFalseBranchRendersEmpty(t *testing.T) {
	data := testRenderData(nil, map[int]int64{testUIDX: 0})
	got, cols := renderFormat(t, "%?x?YES?", 10, data)
	AssertEqual(t, "", got)
	AssertEqual(t, 0, cols)
}

func TestRender_NeverExceedsBudget(t *testing.T) {
	data := testRenderData(map[int]string{testUIDN: "a very long value indeed"}, nil)
	_, cols := renderFormat(t, "%n", 5, data)
	if cols > 5 {
		t.Fatalf("render exceeded budget: %d > 5", cols)
	}
}
