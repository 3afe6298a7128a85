package expando

import (
	"strconv"
	"strings"
)

// Serialize produces the stable textual dump of tree described in
// spec.md §4.H, used by the test suite and cmd/expandofmt parse. The
// grammar is a direct textual mirror of the node model (node.go): one
// bracketed tag per kind, children recursively serialised inside it.
// No teacher analog exists for this (console-slog has no debug-dump
// feature); the grammar is built straight from §4.H's description.
func Serialize(n *Node) string {
	var sb strings.Builder
	serializeInto(&sb, n)
	return sb.String()
}

func serializeInto(sb *strings.Builder, n *Node) {
	if n == nil {
		sb.WriteString("<EMPTY>")
		return
	}

	switch n.Kind {
	case KindEmpty:
		sb.WriteString("<EMPTY>")
	case KindText:
		sb.WriteString("<TEXT:")
		sb.WriteString(escapeSerialized(n.Text))
		sb.WriteByte('>')
	case KindExpando:
		sb.WriteString("<EXP:(")
		sb.WriteString(strconv.Itoa(n.Domain))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(n.UID))
		sb.WriteString("):{")
		serializeDescriptor(sb, n.Descriptor)
		sb.WriteByte('}')
		if n.Text != "" {
			sb.WriteString(":enc=")
			sb.WriteString(escapeSerialized(n.Text))
		}
		switch n.Payload {
		case PayloadColour:
			sb.WriteString(":colour=")
			sb.WriteString(strconv.Itoa(int(n.ColourID)))
		case PayloadHasTree:
			sb.WriteString(":hastree")
		}
		sb.WriteByte('>')
	case KindPadding:
		sb.WriteString("<PAD:")
		sb.WriteString(n.PadKind.String())
		sb.WriteString(":'")
		sb.WriteString(escapeSerialized(n.Fill))
		sb.WriteString("':")
		serializeInto(sb, n.Left)
		sb.WriteByte('|')
		serializeInto(sb, n.Right)
		sb.WriteByte('>')
	case KindCondition:
		sb.WriteString("<COND:")
		serializeInto(sb, n.Predicate)
		sb.WriteByte('|')
		serializeInto(sb, n.True)
		sb.WriteByte('|')
		serializeInto(sb, n.False)
		if n.Descriptor != nil {
			sb.WriteString(":{")
			serializeDescriptor(sb, n.Descriptor)
			sb.WriteByte('}')
		}
		sb.WriteByte('>')
	case KindCondBool:
		sb.WriteString("<CONDBOOL:(")
		sb.WriteString(strconv.Itoa(n.Domain))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(n.UID))
		sb.WriteString(")>")
	case KindCondDate:
		sb.WriteString("<CONDDATE:(")
		sb.WriteString(strconv.Itoa(n.Domain))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(n.UID))
		sb.WriteString("):")
		sb.WriteString(strconv.Itoa(n.Count))
		sb.WriteByte(n.Period)
		sb.WriteByte('>')
	case KindContainer:
		sb.WriteString("<SEQ:")
		for i, child := range n.Children {
			if i > 0 {
				sb.WriteByte(',')
			}
			serializeInto(sb, child)
		}
		if n.Descriptor != nil {
			sb.WriteString(":{")
			serializeDescriptor(sb, n.Descriptor)
			sb.WriteByte('}')
		}
		sb.WriteByte('>')
	default:
		panic(assertionFailure("invalid node kind %v", n.Kind))
	}
}

func serializeDescriptor(sb *strings.Builder, d *Descriptor) {
	if d == nil {
		sb.WriteString("default")
		return
	}
	sb.WriteString("min=")
	sb.WriteString(strconv.Itoa(d.MinCols))
	sb.WriteString(",max=")
	if d.MaxCols == Unbounded {
		sb.WriteString("-")
	} else {
		sb.WriteString(strconv.Itoa(d.MaxCols))
	}
	if d.HasJustify {
		sb.WriteString(",justify=")
		sb.WriteString(d.Justify.String())
	}
	if d.Leader == '0' {
		sb.WriteString(",leader=0")
	}
	if d.Lower {
		sb.WriteString(",lower")
	}
}

func escapeSerialized(s string) string {
	r := strings.NewReplacer("\\", "\\\\", ">", "\\>", "|", "\\|", ":", "\\:")
	return r.Replace(s)
}
