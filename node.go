package expando

import "fmt"

// Kind tags the variant a Node holds. The renderer dispatches on Kind
// with a switch rather than per-node function pointers (see DESIGN.md
// node.go entry): the teacher dispatches
// per log field via a Go type switch over []any (handler.go's Handle),
// and a sum-type match is the natural generalisation once nodes own
// children instead of sitting in a flat slice.
type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindExpando
	KindPadding
	KindCondition
	KindCondBool
	KindCondDate
	KindContainer
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindText:
		return "Text"
	case KindExpando:
		return "Expando"
	case KindPadding:
		return "Padding"
	case KindCondition:
		return "Condition"
	case KindCondBool:
		return "CondBool"
	case KindCondDate:
		return "CondDate"
	case KindContainer:
		return "Container"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Justify controls which side of a rendered value absorbs padding.
type Justify int

const (
	JustifyRight Justify = iota
	JustifyLeft
	JustifyCenter
)

func (j Justify) String() string {
	switch j {
	case JustifyLeft:
		return "Left"
	case JustifyCenter:
		return "Center"
	default:
		return "Right"
	}
}

// Unbounded is the max_cols sentinel meaning "no truncation."
const Unbounded = -1

// Descriptor is the format descriptor attached to Expando, Condition,
// and Container nodes (spec.md §3). A nil *Descriptor means "defaults":
// MinCols 0, MaxCols Unbounded, no padding/truncation/lowering.
type Descriptor struct {
	MinCols int
	MaxCols int
	Justify Justify
	// HasJustify distinguishes "justify unspecified" (renderer picks a
	// default per §4.E) from an explicit justify: JustifyRight is the
	// zero Justify value, so HasJustify records whether the parser
	// actually saw a justify modifier at all.
	HasJustify bool
	Leader     byte // ' ' or '0'
	Lower      bool
}

func (d *Descriptor) boundsOK() bool {
	if d == nil {
		return true
	}
	if d.MaxCols == Unbounded {
		return true
	}
	return d.MinCols <= d.MaxCols
}

// PaddingKind distinguishes the three padding disciplines (spec.md §3,
// §4.E).
type PaddingKind int

const (
	PadFillToEol PaddingKind = iota
	PadHard
	PadSoft
)

func (k PaddingKind) String() string {
	switch k {
	case PadHard:
		return "HardFill"
	case PadSoft:
		return "SoftFill"
	default:
		return "FillToEol"
	}
}

// PayloadKind marks the kind of private payload an Expando node carries
// (spec.md §3: "may carry ... a private payload (colour id, has-tree
// flag)").
type PayloadKind int

const (
	PayloadNone PayloadKind = iota
	PayloadColour
	PayloadHasTree
)

// Node is a tagged variant with one of the eight kinds in spec.md §3.
// Every non-leaf child slot is either a child Node or an explicit
// Empty node -- never a dangling pointer (invariant 6 of §3).
type Node struct {
	Kind Kind

	// Text payload (KindText: literal de-escaped text; KindExpando:
	// verbatim enclosed-expando text, e.g. a date sub-format).
	Text string

	// Escaped marks a KindText node produced from a single `\X` escape
	// (parser.go), as opposed to an ordinary run of literal bytes. A
	// trailing `|` that arrived via `\|` must never trigger filter mode
	// (filter.go), so this bit has to survive past the parser into the
	// tree -- the byte content alone can't tell the two cases apart.
	Escaped bool

	// Symbol reference (KindExpando, KindCondBool, KindCondDate).
	Domain int
	UID    int

	// Format descriptor (KindExpando, KindCondition, KindContainer).
	// nil means "defaults."
	Descriptor *Descriptor

	// KindExpando private payload.
	Payload   PayloadKind
	ColourID  ColourID
	HasTree   bool

	// KindPadding.
	PadKind PaddingKind
	Fill    string // exactly one extended grapheme cluster
	Left    *Node
	Right   *Node

	// KindCondition.
	Predicate *Node
	True      *Node
	False     *Node
	// HasFalse records whether the source format actually supplied a
	// "&false" branch, as opposed to False being the implicit Empty
	// node substituted by newCondition. See internal/flags's
	// OldConditionalMissingFalseEchoesPredicate.
	HasFalse bool

	// KindCondBool, KindCondDate. PredicateName is the matched symbol
	// name, kept only so a false old-style conditional with no false
	// branch can optionally echo it (internal/flags).
	PredicateName string

	// KindCondDate.
	Count  int
	Period byte // one of 'y','m','w','d','H','M'

	// KindContainer.
	Children []*Node
}

func newEmpty() *Node {
	return &Node{Kind: KindEmpty}
}

func newText(s string) *Node {
	if s == "" {
		return newEmpty()
	}
	return &Node{Kind: KindText, Text: s}
}

func newExpando(domain, uid int, desc *Descriptor, enclosedText string) *Node {
	return &Node{Kind: KindExpando, Domain: domain, UID: uid, Descriptor: desc, Text: enclosedText}
}

func newPadding(kind PaddingKind, fill string, left, right *Node) *Node {
	if fill == "" {
		fill = " "
	}
	if left == nil {
		left = newEmpty()
	}
	if right == nil {
		right = newEmpty()
	}
	return &Node{Kind: KindPadding, PadKind: kind, Fill: fill, Left: left, Right: right}
}

func newCondition(desc *Descriptor, predicate, trueBranch, falseBranch *Node) *Node {
	hasFalse := falseBranch != nil
	if trueBranch == nil {
		trueBranch = newEmpty()
	}
	if falseBranch == nil {
		falseBranch = newEmpty()
	}
	return &Node{Kind: KindCondition, Descriptor: desc, Predicate: predicate, True: trueBranch, False: falseBranch, HasFalse: hasFalse}
}

func newCondBool(domain, uid int, name string) *Node {
	return &Node{Kind: KindCondBool, Domain: domain, UID: uid, PredicateName: name}
}

func newCondDate(domain, uid, count int, period byte, name string) *Node {
	return &Node{Kind: KindCondDate, Domain: domain, UID: uid, Count: count, Period: period, PredicateName: name}
}

func newContainer(desc *Descriptor, children ...*Node) *Node {
	return &Node{Kind: KindContainer, Descriptor: desc, Children: children}
}

func (n *Node) appendChild(child *Node) {
	n.Children = append(n.Children, child)
}

// optimise runs the two post-parse rewrites from spec.md §4.B: padding
// repad, then container collapse, bottom-up.
func optimise(n *Node) *Node {
	if n == nil {
		return newEmpty()
	}
	n = repadChildren(n)
	n = collapseContainers(n)
	return n
}

// repadChildren implements "padding repad": for each parent holding a
// Padding child at index k, children [0..k) move under the padding's
// left slot and children (k..] move under its right slot. Only the
// first Padding in each parent's child list is repadded; a second
// Padding now living inside the new left/right subtree is repadded on
// the recursive descent into that subtree.
func repadChildren(n *Node) *Node {
	if n == nil {
		return newEmpty()
	}

	switch n.Kind {
	case KindContainer:
		for i, child := range n.Children {
			n.Children[i] = repadChildren(child)
		}
		for k, child := range n.Children {
			if child.Kind != KindPadding {
				continue
			}
			left := append([]*Node{}, n.Children[:k]...)
			right := append([]*Node{}, n.Children[k+1:]...)
			child.Left = repadChildren(wrapContainer(left))
			child.Right = repadChildren(wrapContainer(right))
			return child
		}
		return n
	case KindCondition:
		n.Predicate = repadChildren(n.Predicate)
		n.True = repadChildren(n.True)
		n.False = repadChildren(n.False)
		return n
	case KindPadding:
		n.Left = repadChildren(n.Left)
		n.Right = repadChildren(n.Right)
		return n
	default:
		return n
	}
}

func wrapContainer(children []*Node) *Node {
	return newContainer(nil, children...)
}

// collapseContainers implements "container collapse": a Container with
// 0 children is freed (becomes Empty); a Container with exactly 1 child
// is replaced in place by that child. Applied bottom-up.
func collapseContainers(n *Node) *Node {
	if n == nil {
		return newEmpty()
	}

	switch n.Kind {
	case KindContainer:
		for i, child := range n.Children {
			n.Children[i] = collapseContainers(child)
		}
		switch len(n.Children) {
		case 0:
			return newEmpty()
		case 1:
			single := n.Children[0]
			// A bare child replaces the container, but a descriptor on
			// the container must still apply; since a Container's own
			// descriptor only has meaning when it wraps >= 1 children
			// as a group, and collapsing to a single child with no
			// descriptor of its own is semantically "the same node,"
			// fold the container's descriptor onto the child when the
			// child doesn't already carry one.
			if n.Descriptor != nil && single.Descriptor == nil && canCarryDescriptor(single.Kind) {
				single.Descriptor = n.Descriptor
			}
			return single
		default:
			return n
		}
	case KindCondition:
		n.Predicate = collapseContainers(n.Predicate)
		n.True = collapseContainers(n.True)
		n.False = collapseContainers(n.False)
		return n
	case KindPadding:
		n.Left = collapseContainers(n.Left)
		n.Right = collapseContainers(n.Right)
		return n
	default:
		return n
	}
}

func canCarryDescriptor(k Kind) bool {
	return k == KindExpando || k == KindCondition || k == KindContainer
}
