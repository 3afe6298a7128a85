package expando

import (
	"fmt"
	"strings"
	"time"

	"github.com/neomutt/goexpando/internal/flags"
)

// Render walks tree post-order, resolving Expando/CondBool/CondDate
// nodes against data, and writes at most maxCols screen columns of
// output to out. It returns the number of columns written.
//
// Grounded on Handle in the teacher's handler.go: a single pass over an
// ordered node/field list threading a running state (there: pending
// space, anchored, group start; here: a columns-remaining budget)
// through each step, because render never fails (spec.md §7) the way
// Handle can return an I/O error -- the only failure mode left in this
// engine is the unrecoverable assertion panic for a host bug (spec.md
// §7.4).
func Render(tree *Node, data *RenderData, maxCols int, out *buffer) int {
	if maxCols < 0 {
		maxCols = 0
	}
	return renderNode(tree, data, maxCols, out)
}

func renderNode(n *Node, data *RenderData, budget int, out *buffer) int {
	if budget < 0 {
		budget = 0
	}
	if n == nil {
		return 0
	}

	switch n.Kind {
	case KindEmpty:
		return 0
	case KindText:
		return renderRaw(n.Text, nil, false, budget, out)
	case KindExpando:
		return renderExpando(n, data, budget, out)
	case KindContainer:
		return renderContainer(n, data, budget, out)
	case KindCondition:
		return renderCondition(n, data, budget, out)
	case KindPadding:
		return renderPadding(n, data, budget, out)
	case KindCondBool, KindCondDate:
		// These only have meaning as a Condition's predicate; rendered
		// directly (never produced by the parser in that position)
		// they contribute nothing.
		return 0
	default:
		panic(assertionFailure("invalid node kind %v", n.Kind))
	}
}

// renderRaw applies desc (if any) to raw, then truncates the result to
// budget columns and appends it to out.
func renderRaw(raw string, desc *Descriptor, numericSource bool, budget int, out *buffer) int {
	formatted := applyDescriptor(raw, desc, numericSource)
	consumed, cols := advance(formatted, budget)
	out.AppendString(formatted[:consumed])
	return cols
}

// applyDescriptor truncates raw to desc.MaxCols, then pads it to
// desc.MinCols on the justified side with desc.Leader, then lowercases
// it if desc.Lower is set. A nil desc is a no-op (spec.md §4.E: "no
// format descriptor ... raw fit").
func applyDescriptor(raw string, desc *Descriptor, numericSource bool) string {
	if desc == nil {
		return raw
	}

	s := raw
	if desc.MaxCols != Unbounded {
		consumed, _ := advance(s, desc.MaxCols)
		s = s[:consumed]
	}

	cols := columnsOf(s)
	if pad := desc.MinCols - cols; pad > 0 {
		justify := desc.Justify
		if !desc.HasJustify {
			justify = defaultJustify(desc, numericSource)
		}
		leader := desc.Leader
		if leader == 0 {
			leader = ' '
		}
		switch justify {
		case JustifyLeft:
			s = s + strings.Repeat(string(leader), pad)
		case JustifyCenter:
			left := pad / 2
			right := pad - left
			s = strings.Repeat(string(leader), left) + s + strings.Repeat(string(leader), right)
		default:
			s = strings.Repeat(string(leader), pad) + s
		}
	}

	if desc.Lower {
		s = lowerSpecial(s)
	}
	return s
}

// defaultJustify implements spec.md §4.E's justification-default rule:
// right for numeric-source output and leader-zero cases, left
// otherwise.
func defaultJustify(desc *Descriptor, numericSource bool) Justify {
	if desc.Leader == '0' || numericSource {
		return JustifyRight
	}
	return JustifyLeft
}

func renderExpando(n *Node, data *RenderData, budget int, out *buffer) int {
	raw, numericSource := expandoPayload(n, data)

	if n.Payload == PayloadColour {
		formatted := applyDescriptor(raw, n.Descriptor, numericSource)
		s := getScratch()
		defer putScratch(s)
		withColour(&s.out, n.ColourID, func() {
			s.out.AppendString(formatted)
		})
		consumed, cols := advance(s.out.String(), budget)
		out.AppendString(s.out.String()[:consumed])
		return cols
	}

	return renderRaw(raw, n.Descriptor, numericSource, budget, out)
}

// expandoPayload resolves n's symbol and produces its raw (unformatted)
// string payload, per spec.md §4.C: a string getter's bytes are used
// directly; otherwise a number getter's value is formatted as a signed
// decimal, zero-padded to the descriptor's min_cols when leader='0'
// (spec.md §4.E: "minimum digit count equal to the leader-zero-padded
// width").
func expandoPayload(n *Node, data *RenderData) (raw string, numericSource bool) {
	getter, entry := resolve(data, n.Domain, n.UID)

	if getter.String != nil {
		var sb buffer
		getter.String(n, entry.Object, entry.Flags, &sb)
		return sb.String(), false
	}

	val := getter.Number(n, entry.Object, entry.Flags)
	width := 0
	if n.Descriptor != nil && n.Descriptor.Leader == '0' {
		width = n.Descriptor.MinCols
	}
	return fmt.Sprintf("%0*d", width, val), true
}

// renderContainer renders each child sequentially, each receiving
// budget - used_so_far (with budget capped at the container's own
// max_cols, if set), then applies the container's own format
// descriptor (if any) to the concatenation, per spec.md §4.E.
func renderContainer(n *Node, data *RenderData, budget int, out *buffer) int {
	if n.Descriptor == nil {
		used := 0
		for _, child := range n.Children {
			used += renderNode(child, data, budget-used, out)
		}
		return used
	}

	innerBudget := budget
	if n.Descriptor.MaxCols != Unbounded && n.Descriptor.MaxCols < innerBudget {
		innerBudget = n.Descriptor.MaxCols
	}

	s := getScratch()
	defer putScratch(s)
	used := 0
	for _, child := range n.Children {
		used += renderNode(child, data, innerBudget-used, &s.out)
	}

	return renderRaw(s.out.String(), n.Descriptor, false, budget, out)
}

// renderCondition evaluates the predicate exactly once (its rendered
// text, if any, is discarded -- only its boolean return matters), then
// renders exactly one of the two branches, framed by the node's format
// descriptor.
func renderCondition(n *Node, data *RenderData, budget int, out *buffer) int {
	truth := evalPredicate(n.Predicate, data)

	if !truth && !n.HasFalse && flags.OldConditionalMissingFalseEchoesPredicate {
		return renderRaw(n.Predicate.PredicateName, nil, false, budget, out)
	}

	branch := n.False
	if truth {
		branch = n.True
	}

	if n.Descriptor == nil {
		return renderNode(branch, data, budget, out)
	}

	innerBudget := budget
	if n.Descriptor.MaxCols != Unbounded && n.Descriptor.MaxCols > innerBudget {
		innerBudget = n.Descriptor.MaxCols
	}

	s := getScratch()
	defer putScratch(s)
	renderNode(branch, data, innerBudget, &s.out)

	return renderRaw(s.out.String(), n.Descriptor, false, budget, out)
}

// evalPredicate implements CondBool/CondDate truth per spec.md §4.E.
func evalPredicate(pred *Node, data *RenderData) bool {
	switch pred.Kind {
	case KindCondBool:
		getter, entry := resolve(data, pred.Domain, pred.UID)
		if getter.Number != nil {
			return getter.Number(pred, entry.Object, entry.Flags) != 0
		}
		s := getScratch()
		defer putScratch(s)
		getter.String(pred, entry.Object, entry.Flags, &s.predi)
		return s.predi.Len() > 0
	case KindCondDate:
		getter, entry := resolve(data, pred.Domain, pred.UID)
		ts := getter.Number(pred, entry.Object, entry.Flags)
		return ts > cutoff(time.Now(), pred.Count, pred.Period).Unix()
	default:
		panic(assertionFailure("invalid predicate kind %v", pred.Kind))
	}
}

// renderPadding implements the three padding disciplines from spec.md
// §4.E and §8: FillToEol (left only, filled to the exact budget), Hard
// (left takes precedence, right gets what's left), Soft (right takes
// precedence, left gets what's left).
func renderPadding(n *Node, data *RenderData, budget int, out *buffer) int {
	switch n.PadKind {
	case PadFillToEol:
		used := renderNode(n.Left, data, budget, out)
		return fillRemaining(out, n.Fill, budget, used)
	case PadHard:
		s := getScratch()
		defer putScratch(s)
		leftCols := renderNode(n.Left, data, budget, &s.left)
		rightCols := renderNode(n.Right, data, budget-leftCols, &s.right)
		fillCols := budget - leftCols - rightCols
		out.Append(s.left)
		filled := 0
		if fillCols > 0 {
			filled = fillRemaining(out, n.Fill, fillCols, 0)
		}
		out.Append(s.right)
		return leftCols + filled + rightCols
	default: // PadSoft
		s := getScratch()
		defer putScratch(s)
		rightCols := renderNode(n.Right, data, budget, &s.right)
		leftCols := renderNode(n.Left, data, budget-rightCols, &s.left)
		fillCols := budget - leftCols - rightCols
		out.Append(s.left)
		filled := 0
		if fillCols > 0 {
			filled = fillRemaining(out, n.Fill, fillCols, 0)
		}
		out.Append(s.right)
		return leftCols + filled + rightCols
	}
}

// fillRemaining appends copies of fill until budget-used columns are
// consumed, per the FillToEol width invariant in spec.md §8: exactly
// budget columns when the fill grapheme has width 1; otherwise the
// widest whole-fill-repetition count that still fits.
func fillRemaining(out *buffer, fill string, budget, used int) int {
	remaining := budget - used
	if remaining <= 0 {
		return used
	}
	w := widthOf(fill)
	if w <= 0 {
		return used
	}
	n := remaining / w
	for i := 0; i < n; i++ {
		out.AppendString(fill)
	}
	return used + n*w
}
