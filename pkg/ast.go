package kaleido

// AnonExprName is the prototype name given to a bare top-level expression,
// which the parser wraps in a synthetic zero-parameter function.
const AnonExprName = "__anon_expr"

type AST struct {
	Filename   string
	Statements []Node
	Errors     []error
}

// Node is implemented by every syntax tree node.
type Node interface {
	node()
}

// Expr is the subset of nodes that are expressions.
type Expr interface {
	Node
	exprNode()
}

type NumberExpr struct {
	Value float64
}

type Identifier struct {
	Name string
}

type BinaryOp string

const (
	BinaryAddition       BinaryOp = "+"
	BinarySubtraction    BinaryOp = "-"
	BinaryMultiplication BinaryOp = "*"
	BinaryDivision       BinaryOp = "/"
	BinaryLessThan       BinaryOp = "<"
	BinaryGreaterThan    BinaryOp = ">"
)

type BinaryExpr struct {
	Operation BinaryOp
	Op1       Expr
	Op2       Expr
}

type FuncCall struct {
	Name string
	Args []Expr
}

// Prototype is a function's name and parameter names, without a body. It is
// the whole of an extern declaration.
type Prototype struct {
	Name   string
	Params []string
}

type FuncDecl struct {
	Proto *Prototype
	Body  Expr
}

// IsAnon reports whether the declaration wraps a bare top-level expression.
func (f *FuncDecl) IsAnon() bool {
	return f.Proto.Name == AnonExprName
}

// EOS marks the end of the statement stream.
type EOS struct{}

func (*NumberExpr) node() {}
func (*Identifier) node() {}
func (*BinaryExpr) node() {}
func (*FuncCall) node()   {}
func (*Prototype) node()  {}
func (*FuncDecl) node()   {}
func (*EOS) node()        {}

func (*NumberExpr) exprNode() {}
func (*Identifier) exprNode() {}
func (*BinaryExpr) exprNode() {}
func (*FuncCall) exprNode()   {}
