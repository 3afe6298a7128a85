package expando

import "testing"

func TestCollapseContainers_EmptyBecomesEmpty(t *testing.T) {
	n := collapseContainers(newContainer(nil))
	AssertEqual(t, KindEmpty, n.Kind)
}

func TestCollapseContainers_SingleChildReplacesContainer(t *testing.T) {
	text := newText("hi")
	n := collapseContainers(newContainer(nil, text))
	AssertEqual(t, KindText, n.Kind)
	AssertEqual(t, "hi", n.Text)
}

func TestCollapseContainers_FoldsDescriptorOntoBareChild(t *testing.T) {
	desc := &Descriptor{MinCols: 5, MaxCols: Unbounded}
	exp := newExpando(1, 2, nil, "")
	n := collapseContainers(newContainer(desc, exp))
	AssertEqual(t, KindExpando, n.Kind)
	if n.Descriptor == nil || n.Descriptor.MinCols != 5 {
		t.Fatalf("expected descriptor folded onto surviving child, got %+v", n.Descriptor)
	}
}

func TestCollapseContainers_Idempotent(t *testing.T) {
	tree := newContainer(nil, newText("a"), newContainer(nil, newText("b")))
	once := collapseContainers(tree)
	twice := collapseContainers(once)
	AssertEqual(t, Serialize(once), Serialize(twice))
}

func TestRepadChildren_SplitsAroundPadding(t *testing.T) {
	left := newText("L")
	right := newText("R")
	pad := newPadding(PadFillToEol, "-", nil, nil)
	container := newContainer(nil, left, pad, right)

	repadded := repadChildren(container)
	AssertEqual(t, KindPadding, repadded.Kind)

	leftSide := collapseContainers(repadded.Left)
	rightSide := collapseContainers(repadded.Right)
	AssertEqual(t, KindText, leftSide.Kind)
	AssertEqual(t, "L", leftSide.Text)
	AssertEqual(t, KindText, rightSide.Kind)
	AssertEqual(t, "R", rightSide.Text)
}

func TestRepadChildren_Idempotent(t *testing.T) {
	pad := newPadding(PadHard, "-", nil, nil)
	container := newContainer(nil, newText("L"), pad, newText("R"))

	once := repadChildren(container)
	twice := repadChildren(once)
	AssertEqual(t, Serialize(once), Serialize(twice))
}

func TestDescriptor_BoundsOK(t *testing.T) {
	d := &Descriptor{MinCols: 3, MaxCols: 2}
	if d.boundsOK() {
		t.Fatal("expected boundsOK to reject min_cols > max_cols")
	}
	d.MaxCols = Unbounded
	if !d.boundsOK() {
		t.Fatal("expected boundsOK to accept unbounded max_cols")
	}
}
