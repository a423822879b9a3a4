package preprocess

import (
	"fmt"
	"strconv"
	"strings"
)

// EvalError is a failure raised while parsing or evaluating a condition.
type EvalError struct {
	// Name classifies the failure: "SyntaxError" or "ReferenceError".
	Name string
	// Message describes the failure.
	Message string
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	return e.Name + ": " + e.Message
}

func syntaxError(format string, args ...interface{}) *EvalError {
	return &EvalError{Name: "SyntaxError", Message: fmt.Sprintf(format, args...)}
}

// Evaluate evaluates a condition against defines and returns its value.
//
// The grammar is, from lowest to highest precedence:
//
//	a || b          first truthy operand, else the last
//	a && b          first falsy operand, else the last
//	a == b, a != b  strict equality (=== and !== are accepted as synonyms)
//	!a              negation
//	(a)             grouping
//
// Operands are identifiers from defines, 'single' or "double" quoted strings,
// numbers, true, false, null and undefined. An undefined identifier is a
// ReferenceError.
func Evaluate(code string, defines Defines) (any, error) {
	p := &exprParser{lex: exprLexer{src: code}}
	p.advance()
	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}
	if p.tok.kind != tokEOF {
		return nil, syntaxError("unexpected token %q", p.tok.text)
	}
	return node.eval(defines)
}

// Truthy reports whether v counts as true in a condition.
func Truthy(v any) bool {
	switch v := normalizeValue(v).(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0 && v == v
	default:
		return true
	}
}

// normalizeValue folds numeric defines into float64 so literals compare equal.
func normalizeValue(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}

// ---------------- lexer ----------------

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokNot
	tokAnd
	tokOr
	tokEq
	tokNeq
	tokLParen
	tokRParen
)

type exprToken struct {
	kind tokenKind
	text string
	pos  int
}

type exprLexer struct {
	src string
	pos int
}

func (l *exprLexer) next() (exprToken, error) {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
	start := l.pos
	if l.pos >= len(l.src) {
		return exprToken{kind: tokEOF, pos: start}, nil
	}

	rest := l.src[l.pos:]
	for _, op := range [...]struct {
		text string
		kind tokenKind
	}{
		{"===", tokEq}, {"!==", tokNeq},
		{"==", tokEq}, {"!=", tokNeq},
		{"&&", tokAnd}, {"||", tokOr},
		{"!", tokNot}, {"(", tokLParen}, {")", tokRParen},
	} {
		if strings.HasPrefix(rest, op.text) {
			l.pos += len(op.text)
			return exprToken{kind: op.kind, text: op.text, pos: start}, nil
		}
	}

	c := l.src[l.pos]
	switch {
	case c == '\'' || c == '"':
		return l.scanString(c)
	case isDigit(c):
		for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '.') {
			l.pos++
		}
		return exprToken{kind: tokNumber, text: l.src[start:l.pos], pos: start}, nil
	case isIdentStart(c):
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.pos++
		}
		return exprToken{kind: tokIdent, text: l.src[start:l.pos], pos: start}, nil
	}
	return exprToken{}, syntaxError("unexpected character %q at offset %d", c, start)
}

func (l *exprLexer) scanString(quote byte) (exprToken, error) {
	start := l.pos
	l.pos++
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == quote:
			l.pos++
			return exprToken{kind: tokString, text: b.String(), pos: start}, nil
		case c == '\\' && l.pos+1 < len(l.src):
			b.WriteByte(l.src[l.pos+1])
			l.pos += 2
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
	return exprToken{}, syntaxError("unterminated string starting at offset %d", start)
}

func isSpace(c byte) bool      { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }
func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool { return c == '_' || c == '$' || (c|0x20 >= 'a' && c|0x20 <= 'z') }
func isIdentPart(c byte) bool  { return isIdentStart(c) || isDigit(c) }

// ---------------- parser ----------------

type exprNode interface {
	eval(defines Defines) (any, error)
}

type literalNode struct{ value any }

type identNode struct{ name string }

type notNode struct{ operand exprNode }

type binaryNode struct {
	op          tokenKind
	left, right exprNode
}

type exprParser struct {
	lex exprLexer
	tok exprToken
	err error
}

func (p *exprParser) advance() {
	if p.err != nil {
		return
	}
	p.tok, p.err = p.lex.next()
}

func (p *exprParser) parseOr() (exprNode, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: tokOr, left: left, right: right}
	}
	return left, nil
}

func (p *exprParser) parseAnd() (exprNode, error) {
	left, err := p.parseCompare()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokAnd {
		p.advance()
		right, err := p.parseCompare()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: tokAnd, left: left, right: right}
	}
	return left, nil
}

func (p *exprParser) parseCompare() (exprNode, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.tok.kind == tokEq || p.tok.kind == tokNeq {
		op := p.tok.kind
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &binaryNode{op: op, left: left, right: right}, nil
	}
	return left, nil
}

// parseUnary binds ! tighter than comparison, so !A == B is (!A) == B.
func (p *exprParser) parseUnary() (exprNode, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.tok.kind == tokNot {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &notNode{operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (exprNode, error) {
	if p.err != nil {
		return nil, p.err
	}
	tok := p.tok
	switch tok.kind {
	case tokIdent:
		p.advance()
		switch tok.text {
		case "true":
			return &literalNode{value: true}, nil
		case "false":
			return &literalNode{value: false}, nil
		case "null", "undefined":
			return &literalNode{value: nil}, nil
		}
		return &identNode{name: tok.text}, nil
	case tokString:
		p.advance()
		return &literalNode{value: tok.text}, nil
	case tokNumber:
		p.advance()
		n, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, syntaxError("invalid number %q", tok.text)
		}
		return &literalNode{value: n}, nil
	case tokLParen:
		p.advance()
		node, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.err != nil {
			return nil, p.err
		}
		if p.tok.kind != tokRParen {
			return nil, syntaxError("missing ) at offset %d", p.tok.pos)
		}
		p.advance()
		return node, nil
	case tokEOF:
		return nil, syntaxError("unexpected end of input")
	}
	return nil, syntaxError("unexpected token %q", tok.text)
}

// ---------------- evaluation ----------------

func (n *literalNode) eval(Defines) (any, error) {
	return n.value, nil
}

func (n *identNode) eval(defines Defines) (any, error) {
	v, ok := defines.Lookup(n.name)
	if !ok {
		return nil, &EvalError{Name: "ReferenceError", Message: n.name + " is not defined"}
	}
	return normalizeValue(v), nil
}

func (n *notNode) eval(defines Defines) (any, error) {
	v, err := n.operand.eval(defines)
	if err != nil {
		return nil, err
	}
	return !Truthy(v), nil
}

func (n *binaryNode) eval(defines Defines) (any, error) {
	left, err := n.left.eval(defines)
	if err != nil {
		return nil, err
	}
	switch n.op {
	case tokOr:
		if Truthy(left) {
			return left, nil
		}
		return n.right.eval(defines)
	case tokAnd:
		if !Truthy(left) {
			return left, nil
		}
		return n.right.eval(defines)
	}

	right, err := n.right.eval(defines)
	if err != nil {
		return nil, err
	}
	equal := strictEqual(left, right)
	if n.op == tokNeq {
		return !equal, nil
	}
	return equal, nil
}

// strictEqual compares values of the same kind; values of different kinds are never equal.
func strictEqual(a, b any) bool {
	switch a := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && a == bv
	case string:
		bv, ok := b.(string)
		return ok && a == bv
	case float64:
		bv, ok := b.(float64)
		return ok && a == bv
	default:
		return fmt.Sprint(a) == fmt.Sprint(b)
	}
}
