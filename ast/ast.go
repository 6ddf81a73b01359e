package ast

// Node is the interface all AST nodes implement. Type returns the ESTree
// type tag.
type Node interface {
	Type() string
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of every AST.
type Program struct {
	Body []Statement
}

// ---------- Statements ----------

type VariableDeclaration struct {
	Declarations []*VariableDeclarator
	Kind         string // always "var"
}

type VariableDeclarator struct {
	ID   *Identifier
	Init Expression // may be nil
}

type ExpressionStatement struct {
	Expression Expression
}

type BlockStatement struct {
	Body []Statement
}

type EmptyStatement struct{}

type ReturnStatement struct {
	Expression Expression // may be nil
}

type IfStatement struct {
	Test       Expression
	Consequent Statement
	Alternate  Statement // may be nil
}

type WhileStatement struct {
	Test Expression
	Body Statement
}

type ForStatement struct {
	Init   Node       // *VariableDeclaration or Expression, may be nil
	Test   Expression // may be nil
	Update Expression // may be nil
	Body   Statement
}

type ForInStatement struct {
	Left  Node // *VariableDeclaration or Expression
	Right Expression
	Body  Statement
}

type WithStatement struct {
	Test Expression
	Body Statement
}

type BreakStatement struct{}

type ContinueStatement struct{}

type FunctionDeclaration struct {
	ID     *Identifier
	Params []*Identifier
	Body   *BlockStatement
}

// ---------- Expressions ----------

type Identifier struct {
	Value string
}

// Literal holds the raw token text of a string, numeric, boolean or null
// literal. The text is never interpreted.
type Literal struct {
	Value string
}

type ThisExpression struct{}

type UnaryExpression struct {
	Operator string
	Argument Expression
	Prefix   bool
}

type UpdateExpression struct {
	Operator string // "++" or "--"
	Argument Expression
	Prefix   bool
}

type BinaryExpression struct {
	Operator string
	Left     Expression
	Right    Expression
}

// LogicalExpression is a BinaryExpression whose operator is "&&" or "||".
type LogicalExpression struct {
	Operator string
	Left     Expression
	Right    Expression
}

type AssignmentExpression struct {
	Operator string
	Left     Expression
	Right    Expression
}

type ConditionalExpression struct {
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

type MemberExpression struct {
	Object   Expression
	Property Expression
	Computed bool // obj[prop] vs obj.prop
}

type CallExpression struct {
	Callee    Expression
	Arguments []Expression
}

type NewExpression struct {
	Callee    Expression
	Arguments []Expression
}

// SequenceExpression always holds at least two expressions.
type SequenceExpression struct {
	Expressions []Expression
}

// --- Node interface implementations ---
// Statement markers
func (s *VariableDeclaration) statementNode() {}
func (s *ExpressionStatement) statementNode() {}
func (s *BlockStatement) statementNode()      {}
func (s *EmptyStatement) statementNode()      {}
func (s *ReturnStatement) statementNode()     {}
func (s *IfStatement) statementNode()         {}
func (s *WhileStatement) statementNode()      {}
func (s *ForStatement) statementNode()        {}
func (s *ForInStatement) statementNode()      {}
func (s *WithStatement) statementNode()       {}
func (s *BreakStatement) statementNode()      {}
func (s *ContinueStatement) statementNode()   {}
func (s *FunctionDeclaration) statementNode() {}

// Expression markers
func (e *Identifier) expressionNode()            {}
func (e *Literal) expressionNode()               {}
func (e *ThisExpression) expressionNode()        {}
func (e *UnaryExpression) expressionNode()       {}
func (e *UpdateExpression) expressionNode()      {}
func (e *BinaryExpression) expressionNode()      {}
func (e *LogicalExpression) expressionNode()     {}
func (e *AssignmentExpression) expressionNode()  {}
func (e *ConditionalExpression) expressionNode() {}
func (e *MemberExpression) expressionNode()      {}
func (e *CallExpression) expressionNode()        {}
func (e *NewExpression) expressionNode()         {}
func (e *SequenceExpression) expressionNode()    {}

// Type implementations
func (p *Program) Type() string { return "Program" }

func (s *VariableDeclaration) Type() string { return "VariableDeclaration" }
func (s *VariableDeclarator) Type() string  { return "VariableDeclarator" }
func (s *ExpressionStatement) Type() string { return "ExpressionStatement" }
func (s *BlockStatement) Type() string      { return "BlockStatement" }
func (s *EmptyStatement) Type() string      { return "EmptyStatement" }
func (s *ReturnStatement) Type() string     { return "ReturnStatement" }
func (s *IfStatement) Type() string         { return "IfStatement" }
func (s *WhileStatement) Type() string      { return "WhileStatement" }
func (s *ForStatement) Type() string        { return "ForStatement" }
func (s *ForInStatement) Type() string      { return "ForInStatement" }
func (s *WithStatement) Type() string       { return "WithStatement" }
func (s *BreakStatement) Type() string      { return "BreakStatement" }
func (s *ContinueStatement) Type() string   { return "ContinueStatement" }
func (s *FunctionDeclaration) Type() string { return "FunctionDeclaration" }

func (e *Identifier) Type() string            { return "Identifier" }
func (e *Literal) Type() string               { return "Literal" }
func (e *ThisExpression) Type() string        { return "ThisExpression" }
func (e *UnaryExpression) Type() string       { return "UnaryExpression" }
func (e *UpdateExpression) Type() string      { return "UpdateExpression" }
func (e *BinaryExpression) Type() string      { return "BinaryExpression" }
func (e *LogicalExpression) Type() string     { return "LogicalExpression" }
func (e *AssignmentExpression) Type() string  { return "AssignmentExpression" }
func (e *ConditionalExpression) Type() string { return "ConditionalExpression" }
func (e *MemberExpression) Type() string      { return "MemberExpression" }
func (e *CallExpression) Type() string        { return "CallExpression" }
func (e *NewExpression) Type() string         { return "NewExpression" }
func (e *SequenceExpression) Type() string    { return "SequenceExpression" }
