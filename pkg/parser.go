package kaleido

import (
	"errors"
	"fmt"
	"strconv"
)

// precedenceTable ranks the binary operators; higher binds tighter. A token
// type absent from the table is not a binary operator.
var precedenceTable = map[TokenType]int{
	TokenLess:    10,
	TokenGreater: 10,
	TokenPlus:    20,
	TokenMinus:   20,
	TokenStar:    40,
	TokenSlash:   40,
}

func precedence(t Token) int {
	if pr, ok := precedenceTable[t.Typ]; ok {
		return pr
	}

	return -1
}

type Parser struct {
	filename  string
	tokenizer Tokenizer
	buf       *Token
	started   bool
}

func NewParser(tokenizer Tokenizer) *Parser {
	return &Parser{
		tokenizer: tokenizer,
		filename:  tokenizer.GetFilename(),
	}
}

// Next parses and returns the next top-level construct: a *FuncDecl for a
// definition or a bare expression, a *Prototype for an extern, or an *EOS
// once the input is exhausted. Stray semicolons between constructs are
// skipped. On failure the offending construct is abandoned, the cursor is
// advanced by one token, and the error is returned; the caller can simply
// report it and call Next again.
func (p *Parser) Next() (Node, error) {
	if !p.started {
		go p.tokenizer.Do()
		p.started = true
	}

	for p.check(TokenSemicolon) {
		p.next()
	}

	node, err := p.toplevel()
	if err != nil {
		p.next()
		return nil, err
	}

	return node, nil
}

// Run parses the whole input, collecting every top-level construct and every
// error along the way.
func (p *Parser) Run() *AST {
	ast := &AST{Filename: p.filename}

	for {
		node, err := p.Next()
		if err != nil {
			ast.Errors = append(ast.Errors, err)
			continue
		}

		if _, done := node.(*EOS); done {
			return ast
		}

		ast.Statements = append(ast.Statements, node)
	}
}

func (p *Parser) peek() Token {
	if p.buf == nil {
		tok := p.tokenizer.Get()
		p.buf = &tok
	}

	return *p.buf
}

func (p *Parser) next() Token {
	tok := p.peek()
	if tok.Typ == TokenEOF {
		// The stream is exhausted; stay put
		return tok
	}

	p.buf = nil
	return tok
}

func (p *Parser) check(typ TokenType) bool {
	return p.peek().Typ == typ
}

// expect consumes and returns the current token if it has the given type.
// On a mismatch nothing is consumed, so a failed parse leaves the offending
// token for the resynchronisation step.
func (p *Parser) expect(typ TokenType) *Token {
	if !p.check(typ) {
		return nil
	}

	tok := p.next()
	return &tok
}

func (p *Parser) consume(typ TokenType) bool {
	return p.expect(typ) != nil
}

func (p *Parser) toplevel() (Node, error) {
	switch p.peek().Typ {
	case TokenEOF:
		return &EOS{}, nil
	case TokenDef:
		return p.definition()
	case TokenExtern:
		return p.external()
	default:
		return p.topLevelExpr()
	}
}

func (p *Parser) definition() (*FuncDecl, error) {
	p.next() // def keyword

	proto, err := p.prototype()
	if err != nil {
		return nil, err
	}

	body, err := p.expr()
	if err != nil {
		return nil, err
	}

	return &FuncDecl{
		Proto: proto,
		Body:  body,
	}, nil
}

func (p *Parser) external() (*Prototype, error) {
	p.next() // extern keyword

	return p.prototype()
}

func (p *Parser) topLevelExpr() (*FuncDecl, error) {
	body, err := p.expr()
	if err != nil {
		return nil, err
	}

	return &FuncDecl{
		Proto: &Prototype{Name: AnonExprName},
		Body:  body,
	}, nil
}

func (p *Parser) prototype() (*Prototype, error) {
	name := p.expect(TokenIdentifier)
	if name == nil {
		return nil, errors.New("expected function name in prototype")
	}

	if !p.consume(TokenOpenParentheses) {
		return nil, errors.New("expected '(' in prototype")
	}

	// Parameter names are bare identifiers with no separator between them
	var params []string
	for p.check(TokenIdentifier) {
		params = append(params, p.next().Value)
	}

	if !p.consume(TokenCloseParentheses) {
		return nil, errors.New("expected ')' in prototype")
	}

	return &Prototype{
		Name:   name.Value,
		Params: params,
	}, nil
}

func (p *Parser) expr() (Expr, error) {
	left, err := p.primary()
	if err != nil {
		return nil, err
	}

	return p.binaryRHS(0, left)
}

// binaryRHS climbs the chain of binary operators to the right of left,
// combining as long as the current operator binds at least as tight as
// minPrec. Equal-precedence operators combine left-associatively; a tighter
// operator after the right operand is absorbed into it first.
func (p *Parser) binaryRHS(minPrec int, left Expr) (Expr, error) {
	for {
		tokPrec := precedence(p.peek())
		if tokPrec < minPrec {
			return left, nil
		}

		op := p.next()

		right, err := p.primary()
		if err != nil {
			return nil, err
		}

		if tokPrec < precedence(p.peek()) {
			if right, err = p.binaryRHS(tokPrec+1, right); err != nil {
				return nil, err
			}
		}

		left = &BinaryExpr{
			Operation: BinaryOp(op.Value),
			Op1:       left,
			Op2:       right,
		}
	}
}

func (p *Parser) primary() (Expr, error) {
	switch tok := p.peek(); tok.Typ {
	case TokenIdentifier:
		return p.identifierExpr()
	case TokenNumber:
		return p.numberExpr()
	case TokenOpenParentheses:
		return p.parenExpr()
	case TokenError:
		return nil, errors.New(tok.Value)
	default:
		return nil, errors.New("unknown token when parsing an expression")
	}
}

func (p *Parser) identifierExpr() (Expr, error) {
	name := p.next()

	if !p.check(TokenOpenParentheses) {
		return &Identifier{Name: name.Value}, nil
	}

	p.next() // Skip the opening parenthesis

	var args []Expr
	for !p.check(TokenCloseParentheses) {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		if p.check(TokenCloseParentheses) {
			break
		}

		if !p.consume(TokenComma) {
			return nil, errors.New("expected ')' or ',' in argument list")
		}
	}

	p.next() // Skip the closing parenthesis

	return &FuncCall{
		Name: name.Value,
		Args: args,
	}, nil
}

func (p *Parser) numberExpr() (Expr, error) {
	tok := p.next()

	val, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number '%s'", tok.Value)
	}

	return &NumberExpr{Value: val}, nil
}

func (p *Parser) parenExpr() (Expr, error) {
	p.next() // Skip the opening parenthesis

	expr, err := p.expr()
	if err != nil {
		return nil, err
	}

	if !p.consume(TokenCloseParentheses) {
		return nil, errors.New("expected ')' in expression")
	}

	return expr, nil
}
