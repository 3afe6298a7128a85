package expando

import "testing"

func TestParse_UnknownSymbolIsError(t *testing.T) {
	_, err := Parse("%q", testDefinitions())
	AssertError(t, err)
	var pe *ParseError
	if perr, ok := err.(*ParseError); ok {
		pe = perr
	} else {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Position < 0 || pe.Position > 2 {
		t.Fatalf("expected error position within the input, got %d", pe.Position)
	}
	if pe.Message == "" {
		t.Fatal("expected a non-empty error message")
	}
}

func TestParse_DanglingEscapeIsError(t *testing.T) {
	_, err := Parse(`abc\`, testDefinitions())
	AssertError(t, err)
}

func TestParse_PaddingWithDescriptorIsError(t *testing.T) {
	_, err := Parse("%-5|", testDefinitions())
	AssertError(t, err)
}

func TestParse_LeaderZeroRequiresRightJustify(t *testing.T) {
	_, err := Parse("%-05n", testDefinitions())
	AssertError(t, err)
}

func TestParse_MinExceedsMaxIsError(t *testing.T) {
	_, err := Parse("%5.2n", testDefinitions())
	AssertError(t, err)
}

func TestParse_EscapedPercentIsLiteral(t *testing.T) {
	tree, err := Parse("100%%", testDefinitions())
	AssertNoError(t, err)
	AssertEqual(t, "<SEQ:<TEXT:100>,<TEXT:%>>", Serialize(tree))
}

func TestParse_NewConditionalNestingIsAllowed(t *testing.T) {
	_, err := Parse("%<a?%<b?x&y>&z>", testDefinitions())
	AssertNoError(t, err)
}

func TestParse_OldConditionalNestingIsError(t *testing.T) {
	_, err := Parse("%?x?%?b?x?&z?", testDefinitions())
	AssertError(t, err)
}

func TestParse_TwoParsesYieldEqualSerialisation(t *testing.T) {
	const format = `%-4.8n %>- %[%Y-%m-%d] %?x?yes&no?`
	t1, err := Parse(format, testDefinitions())
	AssertNoError(t, err)
	t2, err := Parse(format, testDefinitions())
	AssertNoError(t, err)
	AssertEqual(t, Serialize(t1), Serialize(t2))
}

func TestParse_EnclosedExpandoCapturesVerbatim(t *testing.T) {
	tree, err := Parse(`%[%Y-%m-%d]`, testDefinitions())
	AssertNoError(t, err)
	if tree.Kind != KindExpando {
		t.Fatalf("expected a single Expando node, got %v", tree.Kind)
	}
	AssertEqual(t, "%Y-%m-%d", tree.Text)
}

func TestParse_PaddingDefaultsToSpaceFill(t *testing.T) {
	tree, err := Parse("a%|", testDefinitions())
	AssertNoError(t, err)
	if tree.Kind != KindPadding {
		t.Fatalf("expected Padding at top level, got %v", tree.Kind)
	}
	AssertEqual(t, " ", tree.Fill)
}

func TestParse_MissingConditionalTerminatorIsError(t *testing.T) {
	_, err := Parse("%<a?yes", testDefinitions())
	AssertError(t, err)
}
