package constraint

import "strings"

// Parse converts a raw filter-expression string into a Constraint. The
// accepted grammar is the one this package renders: comparisons joined
// by && and ||, unary !, parenthesized groups, and the true/false
// literals. Failures are *ParseError values matching ErrExpressionParse.
//
// Parse(c.String()) always succeeds for constraints built from parsable
// values, but the result is not guaranteed to be tree-identical to c;
// it is canonically equal.
func Parse(input string) (Constraint, error) {
	p := &parser{input: input}
	c, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, p.errorf("trailing input")
	}
	return c, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) errorf(msg string) error {
	return &ParseError{Input: p.input, Pos: p.pos, Msg: msg}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

// lit consumes the exact token s if present.
func (p *parser) lit(s string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.input[p.pos:], s) {
		p.pos += len(s)
		return true
	}
	return false
}

func (p *parser) parseOr() (Constraint, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	terms := []Constraint{left}
	for p.lit("||") {
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		terms = append(terms, next)
	}
	if len(terms) == 1 {
		return left, nil
	}
	return NewOr(terms...), nil
}

func (p *parser) parseAnd() (Constraint, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	terms := []Constraint{left}
	for p.lit("&&") {
		next, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		terms = append(terms, next)
	}
	if len(terms) == 1 {
		return left, nil
	}
	return NewAnd(terms...), nil
}

func (p *parser) parseUnary() (Constraint, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return nil, p.errorf("unexpected end of expression")
	}
	switch p.input[p.pos] {
	case '!':
		p.pos++
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return NewNot(child), nil
	case '(':
		p.pos++
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !p.lit(")") {
			return nil, p.errorf("missing closing parenthesis")
		}
		return inner, nil
	}
	return p.parseAtom()
}

// parseAtom parses a boolean literal or a comparison.
func (p *parser) parseAtom() (Constraint, error) {
	attr := p.ident()
	if attr == "" {
		return nil, p.errorf("expected attribute name")
	}

	p.skipSpace()
	op, ok := p.operator()
	if !ok {
		// A bare identifier is only valid for the literals.
		switch attr {
		case "true":
			return True, nil
		case "false":
			return False, nil
		}
		return nil, p.errorf("expected comparison operator after " + attr)
	}

	value, err := p.value()
	if err != nil {
		return nil, err
	}
	return Comparison{Attr: attr, Op: op, Value: value}, nil
}

func (p *parser) ident() string {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == '_' || c == '.' ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
			(c >= '0' && c <= '9' && p.pos > start) {
			p.pos++
			continue
		}
		break
	}
	return p.input[start:p.pos]
}

func (p *parser) operator() (Operator, bool) {
	for _, op := range operators {
		if strings.HasPrefix(p.input[p.pos:], string(op)) {
			p.pos += len(op)
			return op, true
		}
	}
	return "", false
}

// value reads the right-hand side of a comparison: either a quoted
// string (kept verbatim, quotes included) or a bare token running to
// the next delimiter.
func (p *parser) value() (Value, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return Value{}, p.errorf("expected comparison value")
	}

	if p.input[p.pos] == '"' {
		start := p.pos
		p.pos++
		for p.pos < len(p.input) {
			if p.input[p.pos] == '\\' {
				p.pos += 2
				continue
			}
			if p.input[p.pos] == '"' {
				p.pos++
				return Expr(p.input[start:p.pos]), nil
			}
			p.pos++
		}
		return Value{}, p.errorf("unterminated string")
	}

	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == ' ' || c == '\t' || c == ')' || c == '&' || c == '|' {
			break
		}
		p.pos++
	}
	if p.pos == start {
		return Value{}, p.errorf("expected comparison value")
	}
	return Expr(p.input[start:p.pos]), nil
}
