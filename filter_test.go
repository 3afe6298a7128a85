package expando

import (
	"os"
	"testing"
)

func skipIfNoShell(t *testing.T) {
	t.Helper()
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh available")
	}
}

func parseForFilter(t *testing.T, format string) *Node {
	t.Helper()
	tree, err := Parse(format, testDefinitions())
	AssertNoError(t, err)
	return tree
}

func TestDetectTrailingFilter_PlainTrailingPipeTriggers(t *testing.T) {
	_, isFilter := detectTrailingFilter(parseForFilter(t, "echo hi|"))
	AssertEqual(t, true, isFilter)
}

func TestDetectTrailingFilter_NoTrailingPipeDoesNotTrigger(t *testing.T) {
	_, isFilter := detectTrailingFilter(parseForFilter(t, "echo hi"))
	AssertEqual(t, false, isFilter)
}

func TestDetectTrailingFilter_EscapedPipeIsNotATrigger(t *testing.T) {
	_, isFilter := detectTrailingFilter(parseForFilter(t, `echo hi\|`))
	AssertEqual(t, false, isFilter)
}

func TestDetectTrailingFilter_DoubleEscapeIsATrigger(t *testing.T) {
	// Two backslashes is one escaped backslash followed by a live pipe.
	_, isFilter := detectTrailingFilter(parseForFilter(t, `echo hi\\|`))
	AssertEqual(t, true, isFilter)
}

func TestDetectTrailingFilter_StripsTrailingPipeFromText(t *testing.T) {
	stripped, isFilter := detectTrailingFilter(parseForFilter(t, "echo hi|"))
	AssertEqual(t, true, isFilter)
	AssertEqual(t, KindText, stripped.Kind)
	AssertEqual(t, "echo hi", stripped.Text)
}

// A pad-to-end-of-line operator with its fill grapheme omitted (a common
// neomutt idiom, e.g. "%-30.30s%|") ends in a raw '|' byte too, but that
// byte is consumed by the padding operator at parse time and never
// becomes a trailing Text node -- the tree's root here is the Padding
// node itself, not Text, so detection must not misfire.
func TestDetectTrailingFilter_PaddingOperatorIsNotATrigger(t *testing.T) {
	tree := parseForFilter(t, "%-5.5n%|")
	AssertEqual(t, KindPadding, tree.Kind)
	_, isFilter := detectTrailingFilter(tree)
	AssertEqual(t, false, isFilter)
}

func TestRunFilter_CapturesFirstLineOnly(t *testing.T) {
	skipIfNoShell(t)
	got, ok := runFilter(nil, nil, "printf 'first\\nsecond\\n'")
	if !ok {
		t.Fatal("expected filter to succeed")
	}
	AssertEqual(t, "first", got)
}

func TestRunFilter_FailureIsReportedNotPanicked(t *testing.T) {
	skipIfNoShell(t)
	_, ok := runFilter(nil, nil, "exit 1")
	AssertEqual(t, false, ok)
}
