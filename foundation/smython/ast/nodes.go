// File: nodes.go
// Title: Smython AST Node Definitions
// Description: Defines the closed catalogue of statement and expression
//              nodes, the Suite and ExprList containers and the shared
//              parameter, argument and comprehension entities.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-15
// Modified: 2025-03-21
//
// Change History:
// - 2025-03-15 v0.1.0: Initial node catalogue
// - 2025-03-21 v0.1.0: Tuple and generator displays, keyword-only parameters

package ast

import (
	"math/big"

	"github.com/msto63/smython/foundation/smython/token"
)

// Node is implemented by every element of the tree
type Node interface {
	// Position returns the source position where the node starts
	Position() token.Position
}

// Expr is implemented by all expression nodes
type Expr interface {
	Node
	exprNode() // marker method
}

// Stmt is implemented by all statement nodes
type Stmt interface {
	Node
	stmtNode() // marker method
}

// CompClause is a for or if clause of a comprehension
type CompClause interface {
	Node
	compClause() // marker method
}

// ===============================
// Containers
// ===============================

// Suite is an ordered block of statements. The module body and every
// compound statement body is a Suite.
type Suite struct {
	Stmts []Stmt
	Pos   token.Position
}

// ExprList is a comma-separated expression sequence written without
// enclosing brackets. Single is set when exactly one element was written
// without a trailing comma, which distinguishes `1` from the tuple `1,`.
type ExprList struct {
	Exprs  []Expr
	Single bool
	Pos    token.Position
}

// ===============================
// Expressions
// ===============================

// LitKind selects the value carried by a Lit
type LitKind int

const (
	NoneLit LitKind = iota
	TrueLit
	FalseLit
	EllipsisLit
	IntLit
	FloatLit
	StrLit
)

// Lit is a literal constant. The constants None, True, False and Ellipsis
// are distinguished by Kind only.
type Lit struct {
	Kind  LitKind
	Int   *big.Int // IntLit
	Float float64  // FloatLit
	Str   string   // StrLit
	Pos   token.Position
}

// Var is a reference to a name
type Var struct {
	Name string
	Pos  token.Position
}

// Attribute is X.Name
type Attribute struct {
	X    Expr
	Name string
	Pos  token.Position
}

// Call is Func(Args)
type Call struct {
	Func Expr
	Args *Arglist
	Pos  token.Position
}

// GetItem is X[Index]. Index elements may be Slice nodes.
type GetItem struct {
	X     Expr
	Index *ExprList
	Pos   token.Position
}

// Slice is start:stop:step inside a subscript; every part is optional
type Slice struct {
	Start Expr
	Stop  Expr
	Step  Expr
	Pos   token.Position
}

// UnaryOp is a prefix operator
type UnaryOp int

const (
	Neg UnaryOp = iota
	UPos
	Invert
	Not
)

var unaryNames = [...]string{Neg: "Neg", UPos: "Pos", Invert: "Invert", Not: "Not"}

func (op UnaryOp) String() string { return unaryNames[op] }

// Unary is a prefix operation
type Unary struct {
	Op  UnaryOp
	X   Expr
	Pos token.Position
}

// BinaryOp is an arithmetic or bitwise infix operator
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	IntDiv
	Mod
	Power
	BitOr
	BitXor
	BitAnd
	LShift
	RShift
)

var binaryNames = [...]string{
	Add: "Add", Sub: "Sub", Mul: "Mul", Div: "Div", IntDiv: "IntDiv", Mod: "Mod",
	Power: "Power", BitOr: "BitOr", BitXor: "BitXor", BitAnd: "BitAnd",
	LShift: "LShift", RShift: "RShift",
}

var augNames = [...]string{
	Add: "AddAssign", Sub: "SubAssign", Mul: "MulAssign", Div: "DivAssign",
	IntDiv: "IntDivAssign", Mod: "ModAssign", Power: "PowerAssign",
	BitOr: "OrAssign", BitXor: "XorAssign", BitAnd: "AndAssign",
	LShift: "LshiftAssign", RShift: "RshiftAssign",
}

var binarySymbols = [...]string{
	Add: "+", Sub: "-", Mul: "*", Div: "/", IntDiv: "//", Mod: "%", Power: "**",
	BitOr: "|", BitXor: "^", BitAnd: "&", LShift: "<<", RShift: ">>",
}

func (op BinaryOp) String() string { return binaryNames[op] }

// Symbol returns the operator as written in source
func (op BinaryOp) Symbol() string { return binarySymbols[op] }

// Binary is X Op Y
type Binary struct {
	Op  BinaryOp
	X   Expr
	Y   Expr
	Pos token.Position
}

// BoolOperator is `and` or `or`
type BoolOperator int

const (
	And BoolOperator = iota
	Or
)

func (op BoolOperator) String() string {
	if op == And {
		return "And"
	}
	return "Or"
}

// BoolOp is X and Y, X or Y
type BoolOp struct {
	Op  BoolOperator
	X   Expr
	Y   Expr
	Pos token.Position
}

// CmpOp is a comparison operator
type CmpOp int

const (
	Lt CmpOp = iota
	Gt
	Le
	Ge
	Eq
	Ne
	In
	NotIn
	Is
	IsNot
)

var cmpSymbols = [...]string{
	Lt: "<", Gt: ">", Le: "<=", Ge: ">=", Eq: "==", Ne: "!=",
	In: "in", NotIn: "not in", Is: "is", IsNot: "is not",
}

func (op CmpOp) String() string { return cmpSymbols[op] }

// Comparison is a chain Operands[0] Ops[0] Operands[1] Ops[1] ...;
// len(Operands) == len(Ops)+1
type Comparison struct {
	Operands []Expr
	Ops      []CmpOp
	Pos      token.Position
}

// Lambda is an anonymous function
type Lambda struct {
	Params *Params
	Body   Expr
	Pos    token.Position
}

// IfElse is Then if Cond else Else
type IfElse struct {
	Cond Expr
	Then Expr
	Else Expr
	Pos  token.Position
}

// ListConstr is [a, b]
type ListConstr struct {
	Elts []Expr
	Pos  token.Position
}

// TupleConstr is a parenthesized tuple display such as () or (a, b)
type TupleConstr struct {
	Elts []Expr
	Pos  token.Position
}

// SetConstr is {a, b}
type SetConstr struct {
	Elts []Expr
	Pos  token.Position
}

// KeyValue is one key: value entry of a dict display
type KeyValue struct {
	Key   Expr
	Value Expr
	Pos   token.Position
}

// DictConstr is {k: v, ...}
type DictConstr struct {
	Entries []*KeyValue
	Pos     token.Position
}

// CompFor is `for Targets in Source`
type CompFor struct {
	Targets *ExprList
	Source  Expr
	Pos     token.Position
}

// CompIf is `if Cond`
type CompIf struct {
	Cond Expr
	Pos  token.Position
}

// ListCompr is [Elt for ...]
type ListCompr struct {
	Elt     Expr
	Clauses []CompClause
	Pos     token.Position
}

// SetCompr is {Elt for ...}
type SetCompr struct {
	Elt     Expr
	Clauses []CompClause
	Pos     token.Position
}

// GeneratorCompr is (Elt for ...)
type GeneratorCompr struct {
	Elt     Expr
	Clauses []CompClause
	Pos     token.Position
}

// DictCompr is {Key: Value for ...}
type DictCompr struct {
	Key     Expr
	Value   Expr
	Clauses []CompClause
	Pos     token.Position
}

// YieldExpr is `yield values`; a bare yield carries a single None
type YieldExpr struct {
	Value *ExprList
	Pos   token.Position
}

// Star is *X in an unpacking target or display
type Star struct {
	X   Expr
	Pos token.Position
}

// ===============================
// Parameters and arguments
// ===============================

// ParamKind distinguishes plain parameters from collecting markers
type ParamKind int

const (
	Plain ParamKind = iota
	VarArgs
	KwArgs
)

// Param is one entry of a parameter list
type Param struct {
	Name       string
	Kind       ParamKind
	Default    Expr // nil when absent; always nil for VarArgs and KwArgs
	Annotation Expr // nil when absent; only def parameters carry one
	Pos        token.Position
}

// Params is a def or lambda parameter list in source order
type Params struct {
	List    []*Param
	Returns Expr // -> annotation, def only
	Pos     token.Position
}

// Keyword is a name=value call argument
type Keyword struct {
	Name  string
	Value Expr
	Pos   token.Position
}

// Arglist holds the arguments of a call, a class header or a decorator
type Arglist struct {
	Positional []Expr
	Keywords   []*Keyword
	VarArgs    Expr // *expr
	KwArgs     Expr // **expr
	Pos        token.Position
}

// Len returns the number of arguments
func (a *Arglist) Len() int {
	n := len(a.Positional) + len(a.Keywords)
	if a.VarArgs != nil {
		n++
	}
	if a.KwArgs != nil {
		n++
	}
	return n
}

// ===============================
// Statements
// ===============================

type (
	// Pass is `pass`
	Pass struct{ Pos token.Position }

	// Break is `break`
	Break struct{ Pos token.Position }

	// Continue is `continue`
	Continue struct{ Pos token.Position }

	// Del is `del targets`
	Del struct {
		Targets *ExprList
		Pos     token.Position
	}

	// Return is `return values`; a bare return carries a single None
	Return struct {
		Value *ExprList
		Pos   token.Position
	}

	// Raise is `raise [Exc [from Cause]]`
	Raise struct {
		Exc   Expr
		Cause Expr
		Pos   token.Position
	}

	// YieldStmt is a yield expression used as a statement
	YieldStmt struct {
		Value *ExprList
		Pos   token.Position
	}

	// Import is `import a.b as c, d`
	Import struct {
		Names []DottedAlias
		Pos   token.Position
	}

	// From is `from a.b import c as d`; empty Names means `import *`
	From struct {
		Module []string
		Names  []NameAlias
		Pos    token.Position
	}

	// Global is `global a, b`
	Global struct {
		Names []string
		Pos   token.Position
	}

	// Nonlocal is `nonlocal a, b`
	Nonlocal struct {
		Names []string
		Pos   token.Position
	}

	// Assert is `assert Test[, Msg]`
	Assert struct {
		Test Expr
		Msg  Expr
		Pos  token.Position
	}

	// Assign is `t1 = t2 = ... = value`
	Assign struct {
		Targets []*ExprList
		Value   *ExprList
		Pos     token.Position
	}

	// AugAssign is `target op= value`
	AugAssign struct {
		Op     BinaryOp
		Target Expr
		Value  *ExprList
		Pos    token.Position
	}

	// ExprStmt is an expression evaluated for its effect
	ExprStmt struct {
		Value *ExprList
		Pos   token.Position
	}

	// If is `if Cond: Body else: Else`. elif chains nest in Else and a
	// missing else is a suite holding a single Pass.
	If struct {
		Cond Expr
		Body *Suite
		Else *Suite
		Pos  token.Position
	}

	// While is `while Cond: Body else: Else`; Else is empty when absent
	While struct {
		Cond Expr
		Body *Suite
		Else *Suite
		Pos  token.Position
	}

	// For is `for Targets in Iter: Body else: Else`; Else is empty when absent
	For struct {
		Targets *ExprList
		Iter    *ExprList
		Body    *Suite
		Else    *Suite
		Pos     token.Position
	}

	// Try is try/except/else/finally; Else and Finally are empty when absent
	Try struct {
		Body     *Suite
		Handlers []*Except
		Else     *Suite
		Finally  *Suite
		Pos      token.Position
	}

	// With is `with Context as Target: Body`
	With struct {
		Context Expr
		Target  Expr // nil without `as`
		Body    *Suite
		Pos     token.Position
	}

	// Def is a function definition
	Def struct {
		Name       string
		Params     *Params
		Body       *Suite
		Decorators []*Decorator
		Pos        token.Position
	}

	// Class is a class definition; Bases is nil without parentheses
	Class struct {
		Name       string
		Bases      *Arglist
		Body       *Suite
		Decorators []*Decorator
		Pos        token.Position
	}
)

// Except is one except clause. Name is only set together with Type.
type Except struct {
	Type Expr
	Name string
	Body *Suite
	Pos  token.Position
}

// Decorator is @dotted.name or @dotted.name(args). Args is nil for the
// plain form.
type Decorator struct {
	Name []string
	Args *Arglist
	Pos  token.Position
}

// DottedAlias is `a.b.c as name` in an import statement
type DottedAlias struct {
	Path []string
	As   string
}

// NameAlias is `name as alias` in a from statement
type NameAlias struct {
	Name string
	As   string
}

// ===============================
// Node interface implementations
// ===============================

func (n *Suite) Position() token.Position          { return n.Pos }
func (n *ExprList) Position() token.Position       { return n.Pos }
func (n *Lit) Position() token.Position            { return n.Pos }
func (n *Var) Position() token.Position            { return n.Pos }
func (n *Attribute) Position() token.Position      { return n.Pos }
func (n *Call) Position() token.Position           { return n.Pos }
func (n *GetItem) Position() token.Position        { return n.Pos }
func (n *Slice) Position() token.Position          { return n.Pos }
func (n *Unary) Position() token.Position          { return n.Pos }
func (n *Binary) Position() token.Position         { return n.Pos }
func (n *BoolOp) Position() token.Position         { return n.Pos }
func (n *Comparison) Position() token.Position     { return n.Pos }
func (n *Lambda) Position() token.Position         { return n.Pos }
func (n *IfElse) Position() token.Position         { return n.Pos }
func (n *ListConstr) Position() token.Position     { return n.Pos }
func (n *TupleConstr) Position() token.Position    { return n.Pos }
func (n *SetConstr) Position() token.Position      { return n.Pos }
func (n *KeyValue) Position() token.Position       { return n.Pos }
func (n *DictConstr) Position() token.Position     { return n.Pos }
func (n *CompFor) Position() token.Position        { return n.Pos }
func (n *CompIf) Position() token.Position         { return n.Pos }
func (n *ListCompr) Position() token.Position      { return n.Pos }
func (n *SetCompr) Position() token.Position       { return n.Pos }
func (n *GeneratorCompr) Position() token.Position { return n.Pos }
func (n *DictCompr) Position() token.Position      { return n.Pos }
func (n *YieldExpr) Position() token.Position      { return n.Pos }
func (n *Star) Position() token.Position           { return n.Pos }
func (n *Param) Position() token.Position          { return n.Pos }
func (n *Params) Position() token.Position         { return n.Pos }
func (n *Keyword) Position() token.Position        { return n.Pos }
func (n *Arglist) Position() token.Position        { return n.Pos }
func (n *Pass) Position() token.Position           { return n.Pos }
func (n *Break) Position() token.Position          { return n.Pos }
func (n *Continue) Position() token.Position       { return n.Pos }
func (n *Del) Position() token.Position            { return n.Pos }
func (n *Return) Position() token.Position         { return n.Pos }
func (n *Raise) Position() token.Position          { return n.Pos }
func (n *YieldStmt) Position() token.Position      { return n.Pos }
func (n *Import) Position() token.Position         { return n.Pos }
func (n *From) Position() token.Position           { return n.Pos }
func (n *Global) Position() token.Position         { return n.Pos }
func (n *Nonlocal) Position() token.Position       { return n.Pos }
func (n *Assert) Position() token.Position         { return n.Pos }
func (n *Assign) Position() token.Position         { return n.Pos }
func (n *AugAssign) Position() token.Position      { return n.Pos }
func (n *ExprStmt) Position() token.Position       { return n.Pos }
func (n *If) Position() token.Position             { return n.Pos }
func (n *While) Position() token.Position          { return n.Pos }
func (n *For) Position() token.Position            { return n.Pos }
func (n *Try) Position() token.Position            { return n.Pos }
func (n *With) Position() token.Position           { return n.Pos }
func (n *Def) Position() token.Position            { return n.Pos }
func (n *Class) Position() token.Position          { return n.Pos }
func (n *Except) Position() token.Position         { return n.Pos }
func (n *Decorator) Position() token.Position      { return n.Pos }

func (*Lit) exprNode()            {}
func (*Var) exprNode()            {}
func (*Attribute) exprNode()      {}
func (*Call) exprNode()           {}
func (*GetItem) exprNode()        {}
func (*Slice) exprNode()          {}
func (*Unary) exprNode()          {}
func (*Binary) exprNode()         {}
func (*BoolOp) exprNode()         {}
func (*Comparison) exprNode()     {}
func (*Lambda) exprNode()         {}
func (*IfElse) exprNode()         {}
func (*ListConstr) exprNode()     {}
func (*TupleConstr) exprNode()    {}
func (*SetConstr) exprNode()      {}
func (*DictConstr) exprNode()     {}
func (*ListCompr) exprNode()      {}
func (*SetCompr) exprNode()       {}
func (*GeneratorCompr) exprNode() {}
func (*DictCompr) exprNode()      {}
func (*YieldExpr) exprNode()      {}
func (*Star) exprNode()           {}

func (*Pass) stmtNode()      {}
func (*Break) stmtNode()     {}
func (*Continue) stmtNode()  {}
func (*Del) stmtNode()       {}
func (*Return) stmtNode()    {}
func (*Raise) stmtNode()     {}
func (*YieldStmt) stmtNode() {}
func (*Import) stmtNode()    {}
func (*From) stmtNode()      {}
func (*Global) stmtNode()    {}
func (*Nonlocal) stmtNode()  {}
func (*Assert) stmtNode()    {}
func (*Assign) stmtNode()    {}
func (*AugAssign) stmtNode() {}
func (*ExprStmt) stmtNode()  {}
func (*If) stmtNode()        {}
func (*While) stmtNode()     {}
func (*For) stmtNode()       {}
func (*Try) stmtNode()       {}
func (*With) stmtNode()      {}
func (*Def) stmtNode()       {}
func (*Class) stmtNode()     {}

func (*CompFor) compClause() {}
func (*CompIf) compClause()  {}

// String renders the suite in canonical dump form
func (n *Suite) String() string { return Dump(n) }

// IsEmpty reports whether the suite holds no statements. Only absent else
// and finally clauses are empty.
func (n *Suite) IsEmpty() bool { return n == nil || len(n.Stmts) == 0 }

// NewNone returns the None literal at pos
func NewNone(pos token.Position) *Lit { return &Lit{Kind: NoneLit, Pos: pos} }

// NewInt returns an integer literal
func NewInt(v *big.Int, pos token.Position) *Lit { return &Lit{Kind: IntLit, Int: v, Pos: pos} }

// NewStr returns a string literal
func NewStr(s string, pos token.Position) *Lit { return &Lit{Kind: StrLit, Str: s, Pos: pos} }

// PassSuite returns a suite holding a single Pass, the implicit else of If
func PassSuite(pos token.Position) *Suite {
	return &Suite{Stmts: []Stmt{&Pass{Pos: pos}}, Pos: pos}
}
