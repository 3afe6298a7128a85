package expando

import "strconv"

// maxFormatNumber bounds width/precision/date-shorthand-count literals.
// SPEC_FULL.md §13(2): an ordinary bounded int with an explicit overflow
// check, rather than the legacy unsigned-short/USHRT_MAX sentinel.
const maxFormatNumber = 1 << 20

// parser walks a format string left to right, producing a Node tree or
// a *ParseError. Grounded on parseFormat in the teacher's handler.go: a
// single-pass scan that looks for bracketed/parenthesized modifiers
// before a verb character, validates the combination seen, and either
// emits a field or a structured error -- generalized here to build an
// owned tree (so conditionals and padding can nest) instead of a flat
// []any, and to abort entirely on error (spec.md invariant 6) instead of
// emitting an inline placeholder.
type parser struct {
	s      string
	pos    int
	tables []*DefinitionTable
}

// Parse parses format against the given definition tables, producing a
// root Node or a *ParseError. tables partition symbol names by domain,
// per the design note in spec.md §9: "preserve the partitioning so that
// each host subsystem's table stays self-contained."
func Parse(format string, tables ...*DefinitionTable) (*Node, error) {
	p := &parser{s: format, tables: tables}
	root, err := p.parseSequence("", false)
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.s) {
		return nil, newParseError(p.pos, "unexpected character %q", p.s[p.pos])
	}
	return optimise(root), nil
}

// parseSequence parses literal text and specifiers until end of input or
// an unescaped byte in stop is reached (stop is not consumed). When
// noNestedCond is true (old-style conditional branches), encountering a
// nested %? or %< is a parse error.
func (p *parser) parseSequence(stop string, noNestedCond bool) (*Node, error) {
	var children []*Node

	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if indexByte(stop, c) {
			break
		}

		switch c {
		case '\\':
			if p.pos+1 >= len(p.s) {
				return nil, newParseError(p.pos, "dangling escape at end of format string")
			}
			esc := newText(string(p.s[p.pos+1]))
			esc.Escaped = true
			children = append(children, esc)
			p.pos += 2
			continue
		case '%':
			if noNestedCond && p.pos+1 < len(p.s) && (p.s[p.pos+1] == '?' || p.s[p.pos+1] == '<') {
				return nil, newParseError(p.pos, "nested conditional not allowed inside an old-style conditional branch")
			}
			node, err := p.parseSpecifier(false)
			if err != nil {
				return nil, err
			}
			children = append(children, node)
			continue
		}

		start := p.pos
		for p.pos < len(p.s) {
			c2 := p.s[p.pos]
			if c2 == '%' || c2 == '\\' || indexByte(stop, c2) {
				break
			}
			p.pos++
		}
		children = append(children, newText(p.s[start:p.pos]))
	}

	return newContainer(nil, children...), nil
}

func indexByte(set string, c byte) bool {
	for i := 0; i < len(set); i++ {
		if set[i] == c {
			return true
		}
	}
	return false
}

// parseSpecifier parses one %-introduced item. p.pos must point at the
// '%'. asPredicate is unused here (predicates are parsed by
// parsePredicate in parser_conddate.go, which never calls into this
// method) and kept only so call sites read unambiguously.
func (p *parser) parseSpecifier(_ bool) (*Node, error) {
	start := p.pos
	p.pos++ // consume '%'
	if p.pos >= len(p.s) {
		return nil, newParseError(start, "dangling %% at end of format string")
	}

	switch p.s[p.pos] {
	case '%':
		p.pos++
		return newText("%"), nil
	case '?':
		p.pos++
		return p.parseOldConditional(start)
	case '<':
		p.pos++
		return p.parseNewConditional(start)
	}

	var desc Descriptor
	var sawAnyModifier bool

	if p.s[p.pos] == '-' {
		desc.Justify = JustifyLeft
		desc.HasJustify = true
		sawAnyModifier = true
		p.pos++
	} else if p.s[p.pos] == '=' {
		desc.Justify = JustifyCenter
		desc.HasJustify = true
		sawAnyModifier = true
		p.pos++
	}

	if p.pos < len(p.s) && p.s[p.pos] == '0' {
		desc.Leader = '0'
		sawAnyModifier = true
		p.pos++
	} else {
		desc.Leader = ' '
	}

	if n, saw, err := p.parseDigits(); err != nil {
		return nil, err
	} else if saw {
		desc.MinCols = n
		sawAnyModifier = true
	}

	desc.MaxCols = Unbounded
	if p.pos < len(p.s) && p.s[p.pos] == '.' {
		p.pos++
		n, saw, err := p.parseDigits()
		if err != nil {
			return nil, err
		}
		if !saw {
			return nil, newParseError(p.pos, "expected digits after '.' precision marker")
		}
		desc.MaxCols = n
		sawAnyModifier = true
	}

	if p.pos < len(p.s) && p.s[p.pos] == '_' {
		desc.Lower = true
		sawAnyModifier = true
		p.pos++
	}

	if !desc.boundsOK() {
		return nil, newParseError(start, "min_cols %d exceeds max_cols %d", desc.MinCols, desc.MaxCols)
	}
	if desc.Leader == '0' && desc.HasJustify && desc.Justify != JustifyRight {
		return nil, newParseError(start, "leader '0' is only legal with right-justified fields")
	}

	if p.pos >= len(p.s) {
		return nil, newParseError(start, "missing verb name after format modifiers")
	}

	switch p.s[p.pos] {
	case '|':
		return p.parsePadding(start, PadFillToEol, sawAnyModifier)
	case '>':
		return p.parsePadding(start, PadHard, sawAnyModifier)
	case '*':
		return p.parsePadding(start, PadSoft, sawAnyModifier)
	case '[':
		return p.parseEnclosedExpando(start, &desc)
	}

	name, entry, ok := p.matchSymbolName()
	if !ok {
		return nil, newParseError(start, "unknown symbol %q", name)
	}

	var descPtr *Descriptor
	if sawAnyModifier {
		d := desc
		descPtr = &d
	}

	text, err := p.applyCustomParse(entry)
	if err != nil {
		return nil, err
	}

	return newExpando(entry.Domain, entry.UID, descPtr, text), nil
}

// parsePadding parses a %|X / %>X / %*X padding operator. kind has
// already been selected by the caller based on the verb byte, which
// parsePadding consumes. The fill grapheme X is whatever comes next
// (defaulting to a single space if the format string ends there); the
// padding's left/right children are filled in later by the padding
// repad rewrite (node.go).
func (p *parser) parsePadding(start int, kind PaddingKind, sawModifier bool) (*Node, error) {
	if sawModifier {
		return nil, newParseError(start, "padding specifier must not carry a format descriptor")
	}
	p.pos++ // consume the verb byte

	fill := " "
	if p.pos < len(p.s) {
		if p.s[p.pos] == '\\' && p.pos+1 < len(p.s) {
			fill = string(p.s[p.pos+1])
			p.pos += 2
		} else {
			clusters := graphemeClusters(p.s[p.pos:])
			if len(clusters) > 0 {
				fill = clusters[0]
				p.pos += len(fill)
			}
		}
	}

	return newPadding(kind, fill, nil, nil), nil
}

// parseEnclosedExpando parses %[FORMAT], capturing FORMAT verbatim
// (respecting backslash escapes) up to the matching ']'.
func (p *parser) parseEnclosedExpando(start int, desc *Descriptor) (*Node, error) {
	entry, ok := p.lookupName("[")
	if !ok {
		return nil, newParseError(start, "no enclosed-expando symbol registered for '['")
	}

	if entry.CustomParse != nil {
		text, consumed, err := entry.CustomParse(p.s, p.pos)
		if err != nil {
			return nil, wrapParseError(p.pos, err, "custom parser for enclosed expando failed")
		}
		p.pos += consumed
		var descPtr *Descriptor
		if desc != nil && (desc.MinCols != 0 || desc.MaxCols != Unbounded || desc.HasJustify || desc.Lower || desc.Leader == '0') {
			descPtr = desc
		}
		return newExpando(entry.Domain, entry.UID, descPtr, text), nil
	}

	p.pos++ // consume '['
	bodyStart := p.pos
	var buf []byte
	for {
		if p.pos >= len(p.s) {
			return nil, newParseError(start, "missing ']' terminator for enclosed expando")
		}
		c := p.s[p.pos]
		if c == ']' {
			break
		}
		if c == '\\' && p.pos+1 < len(p.s) {
			buf = append(buf, p.s[p.pos+1])
			p.pos += 2
			continue
		}
		buf = append(buf, c)
		p.pos++
	}
	_ = bodyStart
	p.pos++ // consume ']'

	var descPtr *Descriptor
	if desc != nil && (desc.MinCols != 0 || desc.MaxCols != Unbounded || desc.HasJustify || desc.Lower || desc.Leader == '0') {
		descPtr = desc
	}
	return newExpando(entry.Domain, entry.UID, descPtr, string(buf)), nil
}

func (p *parser) applyCustomParse(entry DefinitionEntry) (string, error) {
	if entry.CustomParse == nil {
		return "", nil
	}
	text, consumed, err := entry.CustomParse(p.s, p.pos)
	if err != nil {
		return "", wrapParseError(p.pos, err, "custom parser for %q failed", entry.ShortName)
	}
	p.pos += consumed
	return text, nil
}

// matchSymbolName greedily matches a two-char then one-char short name
// against all registered definition tables at p.pos, advancing p.pos
// past the matched name on success.
func (p *parser) matchSymbolName() (string, DefinitionEntry, bool) {
	if p.pos >= len(p.s) {
		return "", DefinitionEntry{}, false
	}
	if p.pos+1 < len(p.s) {
		two := p.s[p.pos : p.pos+2]
		if entry, ok := p.lookupName(two); ok {
			p.pos += 2
			return two, entry, true
		}
	}
	one := p.s[p.pos : p.pos+1]
	if entry, ok := p.lookupName(one); ok {
		p.pos++
		return one, entry, true
	}
	return one, DefinitionEntry{}, false
}

func (p *parser) lookupName(name string) (DefinitionEntry, bool) {
	for _, t := range p.tables {
		if t == nil {
			continue
		}
		if e, ok := t.lookupName(name); ok {
			return e, true
		}
	}
	return DefinitionEntry{}, false
}

func (p *parser) parseDigits() (value int, saw bool, err error) {
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		saw = true
		p.pos++
	}
	if !saw {
		return 0, false, nil
	}
	n, convErr := strconv.Atoi(p.s[start:p.pos])
	if convErr != nil || n > maxFormatNumber {
		return 0, true, newParseError(start, "numeric value %q out of range", p.s[start:p.pos])
	}
	return n, true, nil
}
