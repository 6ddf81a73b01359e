package ast

// Children returns the non-nil children of node in source order.
func Children(node Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, n := range nodes {
			if n != nil {
				out = append(out, n)
			}
		}
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Body {
			add(s)
		}
	case *VariableDeclaration:
		for _, d := range n.Declarations {
			if d != nil {
				add(d)
			}
		}
	case *VariableDeclarator:
		if n.ID != nil {
			add(n.ID)
		}
		add(n.Init)
	case *ExpressionStatement:
		add(n.Expression)
	case *BlockStatement:
		for _, s := range n.Body {
			add(s)
		}
	case *ReturnStatement:
		add(n.Expression)
	case *IfStatement:
		add(n.Test, n.Consequent, n.Alternate)
	case *WhileStatement:
		add(n.Test, n.Body)
	case *ForStatement:
		add(n.Init, n.Test, n.Update, n.Body)
	case *ForInStatement:
		add(n.Left, n.Right, n.Body)
	case *WithStatement:
		add(n.Test, n.Body)
	case *FunctionDeclaration:
		if n.ID != nil {
			add(n.ID)
		}
		for _, p := range n.Params {
			if p != nil {
				add(p)
			}
		}
		if n.Body != nil {
			add(n.Body)
		}
	case *UnaryExpression:
		add(n.Argument)
	case *UpdateExpression:
		add(n.Argument)
	case *BinaryExpression:
		add(n.Left, n.Right)
	case *LogicalExpression:
		add(n.Left, n.Right)
	case *AssignmentExpression:
		add(n.Left, n.Right)
	case *ConditionalExpression:
		add(n.Test, n.Consequent, n.Alternate)
	case *MemberExpression:
		add(n.Object, n.Property)
	case *CallExpression:
		add(n.Callee)
		for _, a := range n.Arguments {
			add(a)
		}
	case *NewExpression:
		add(n.Callee)
		for _, a := range n.Arguments {
			add(a)
		}
	case *SequenceExpression:
		for _, e := range n.Expressions {
			add(e)
		}
	}
	return out
}

// Inspect traverses an AST in depth-first order: It starts by calling
// f(node); node must not be nil. If f returns true, Inspect invokes f
// recursively for each of the non-nil children of node, followed by a
// call of f(nil).
func Inspect(node Node, f func(Node) bool) {
	if f(node) {
		for _, child := range Children(node) {
			Inspect(child, f)
		}
		f(nil)
	}
}
