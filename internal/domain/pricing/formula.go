package pricing

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// EvaluateFormula evaluates a restricted arithmetic expression over named
// variables. The grammar is deliberately tiny - numbers, identifiers, + - * /,
// unary minus and parentheses - so pricing formulas stay pure and cannot
// execute arbitrary code.
func EvaluateFormula(formula string, variables map[string]decimal.Decimal) (decimal.Decimal, error) {
	p := &formulaParser{input: formula, variables: variables}
	result, err := p.parseExpression()
	if err != nil {
		return decimal.Zero, err
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return decimal.Zero, fmt.Errorf("unexpected character %q at position %d", p.input[p.pos], p.pos)
	}
	return result, nil
}

type formulaParser struct {
	input     string
	pos       int
	variables map[string]decimal.Decimal
}

func (p *formulaParser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *formulaParser) peek() (byte, bool) {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

// expression = term (("+" | "-") term)*
func (p *formulaParser) parseExpression() (decimal.Decimal, error) {
	left, err := p.parseTerm()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		op, ok := p.peek()
		if !ok || (op != '+' && op != '-') {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return decimal.Zero, err
		}
		if op == '+' {
			left = left.Add(right)
		} else {
			left = left.Sub(right)
		}
	}
}

// term = factor (("*" | "/") factor)*
func (p *formulaParser) parseTerm() (decimal.Decimal, error) {
	left, err := p.parseFactor()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		op, ok := p.peek()
		if !ok || (op != '*' && op != '/') {
			return left, nil
		}
		p.pos++
		right, err := p.parseFactor()
		if err != nil {
			return decimal.Zero, err
		}
		if op == '*' {
			left = left.Mul(right)
		} else {
			if right.IsZero() {
				return decimal.Zero, fmt.Errorf("division by zero")
			}
			left = left.Div(right)
		}
	}
}

// factor = number | identifier | "-" factor | "(" expression ")"
func (p *formulaParser) parseFactor() (decimal.Decimal, error) {
	ch, ok := p.peek()
	if !ok {
		return decimal.Zero, fmt.Errorf("unexpected end of formula")
	}

	switch {
	case ch == '-':
		p.pos++
		value, err := p.parseFactor()
		if err != nil {
			return decimal.Zero, err
		}
		return value.Neg(), nil

	case ch == '(':
		p.pos++
		value, err := p.parseExpression()
		if err != nil {
			return decimal.Zero, err
		}
		next, ok := p.peek()
		if !ok || next != ')' {
			return decimal.Zero, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return value, nil

	case ch >= '0' && ch <= '9' || ch == '.':
		return p.parseNumber()

	case isIdentStart(rune(ch)):
		return p.parseVariable()
	}

	return decimal.Zero, fmt.Errorf("unexpected character %q at position %d", ch, p.pos)
}

func (p *formulaParser) parseNumber() (decimal.Decimal, error) {
	start := p.pos
	for p.pos < len(p.input) && (p.input[p.pos] >= '0' && p.input[p.pos] <= '9' || p.input[p.pos] == '.') {
		p.pos++
	}
	value, err := decimal.NewFromString(p.input[start:p.pos])
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q", p.input[start:p.pos])
	}
	return value, nil
}

func (p *formulaParser) parseVariable() (decimal.Decimal, error) {
	start := p.pos
	for p.pos < len(p.input) && isIdentPart(rune(p.input[p.pos])) {
		p.pos++
	}
	name := p.input[start:p.pos]
	value, ok := p.variables[name]
	if !ok {
		known := make([]string, 0, len(p.variables))
		for k := range p.variables {
			known = append(known, k)
		}
		return decimal.Zero, fmt.Errorf("unknown variable %q (known: %s)", name, strings.Join(known, ", "))
	}
	return value, nil
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
