package expando

// parseOldConditional parses the body after "%?" (old-style:
// "%?NAME?TRUE?" or "%?NAME?TRUE&FALSE?"). start is the position of the
// leading '%'. Branches may not contain nested conditionals.
func (p *parser) parseOldConditional(start int) (*Node, error) {
	predicate, err := p.parsePredicate(start)
	if err != nil {
		return nil, err
	}

	if p.pos >= len(p.s) || p.s[p.pos] != '?' {
		return nil, newParseError(p.pos, "expected '?' after conditional predicate")
	}
	p.pos++

	trueBranch, err := p.parseSequence("&?", true)
	if err != nil {
		return nil, err
	}

	var falseBranch *Node
	if p.pos < len(p.s) && p.s[p.pos] == '&' {
		p.pos++
		falseBranch, err = p.parseSequence("?", true)
		if err != nil {
			return nil, err
		}
	}

	if p.pos >= len(p.s) || p.s[p.pos] != '?' {
		return nil, newParseError(p.pos, "missing '?' terminator for conditional")
	}
	p.pos++

	return newCondition(nil, predicate, trueBranch, falseBranch), nil
}

// parseNewConditional parses the body after "%<" (new-style:
// "%<NAME?TRUE>" or "%<NAME?TRUE&FALSE>"). Unlike the old style, TRUE
// and FALSE may contain further "%<...>" conditionals; since each
// nested call consumes its own matching '>', the depth tracking
// described in spec.md §4.D falls out of ordinary recursion here rather
// than needing an explicit counter.
func (p *parser) parseNewConditional(start int) (*Node, error) {
	predicate, err := p.parsePredicate(start)
	if err != nil {
		return nil, err
	}

	if p.pos >= len(p.s) || p.s[p.pos] != '?' {
		return nil, newParseError(p.pos, "expected '?' after conditional predicate")
	}
	p.pos++

	trueBranch, err := p.parseSequence("&>", false)
	if err != nil {
		return nil, err
	}

	var falseBranch *Node
	if p.pos < len(p.s) && p.s[p.pos] == '&' {
		p.pos++
		falseBranch, err = p.parseSequence(">", false)
		if err != nil {
			return nil, err
		}
	}

	if p.pos >= len(p.s) || p.s[p.pos] != '>' {
		return nil, newParseError(p.pos, "missing '>' terminator for conditional")
	}
	p.pos++

	return newCondition(nil, predicate, trueBranch, falseBranch), nil
}

// condDatePeriods enumerates the legal period letters for a conditional
// date shorthand (spec.md §4.D, §4.I).
const condDatePeriods = "ymwdHM"

// parsePredicate parses a conditional's predicate: a symbol name with
// the leading '%' elided (spec.md §4.D), optionally followed by a
// [digits][period] date shorthand when the matched symbol's definition
// marks it as a date-shorthand symbol. Padding operators are not legal
// predicates.
func (p *parser) parsePredicate(condStart int) (*Node, error) {
	if p.pos >= len(p.s) {
		return nil, newParseError(condStart, "unexpected end of input in conditional predicate")
	}
	if c := p.s[p.pos]; c == '|' || c == '>' || c == '*' {
		return nil, newParseError(p.pos, "padding specifier must not appear as a conditional predicate")
	}

	predStart := p.pos
	name, entry, ok := p.matchSymbolName()
	if !ok {
		return nil, newParseError(predStart, "unknown symbol in conditional predicate")
	}

	if !entry.DateShorthand {
		return newCondBool(entry.Domain, entry.UID, name), nil
	}

	count := 0
	if n, saw, err := p.parseDigits(); err != nil {
		return nil, err
	} else if saw {
		count = n
	}

	if p.pos >= len(p.s) {
		return nil, newParseError(p.pos, "missing period letter in conditional date shorthand")
	}
	period := p.s[p.pos]
	if !indexByte(condDatePeriods, period) {
		return nil, newParseError(p.pos, "unknown period %q in conditional date shorthand", string(period))
	}
	p.pos++

	return newCondDate(entry.Domain, entry.UID, count, period, name), nil
}
