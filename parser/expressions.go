package parser

import (
	"github.com/example/jsparse/ast"
	"github.com/example/jsparse/token"
)

// exprResult is a parsed expression plus whether it may still be the
// target of an assignment, which holds only while no operator has been
// applied to a LeftHandSideExpression. A nil node means nothing matched.
type exprResult struct {
	node       ast.Expression
	assignable bool
}

// Expression := AssignmentExpression ( , AssignmentExpression )*
//
// With optional set an absent expression yields a nil node instead of an
// error.
func (p *Parser) parseExpression(optional bool) exprResult {
	defer un(trace(p, "Expression"))

	first := p.parseAssignmentExpression()
	if first.node == nil {
		if !optional {
			p.errorExpected("expression")
		}
		return first
	}
	if !p.matchPunctuator(",") {
		return first
	}

	seq := &ast.SequenceExpression{Expressions: []ast.Expression{first.node}}
	for p.matchPunctuator(",") {
		p.consume()
		seq.Expressions = append(seq.Expressions, p.requireAssignmentExpression())
	}
	return exprResult{node: seq}
}

// requireAssignmentExpression parses an AssignmentExpression that must be
// present.
func (p *Parser) requireAssignmentExpression() ast.Expression {
	res := p.parseAssignmentExpression()
	if res.node == nil {
		p.errorExpected("expression")
	}
	return res.node
}

func (p *Parser) matchAssignmentOperator() bool {
	tok := p.peek()
	return tok.Type == token.Punctuator && token.IsAssignmentOperator(tok.Value)
}

// parseAssignmentExpression parses
//
//	AssignmentExpression := ConditionalExpression
//	                      | LeftHandSideExpression AssignmentOperator AssignmentExpression
func (p *Parser) parseAssignmentExpression() exprResult {
	defer un(trace(p, "AssignmentExpression"))
	defer p.unnest(p.nest())

	left := p.parseConditionalExpression()
	if left.node == nil || !left.assignable || !p.matchAssignmentOperator() {
		return left
	}

	op := p.consume()
	right := p.requireAssignmentExpression()
	return exprResult{node: &ast.AssignmentExpression{
		Operator: op.Value,
		Left:     left.node,
		Right:    right,
	}}
}

// ConditionalExpression := BinaryExpression ( ? AssignmentExpression : AssignmentExpression )?
func (p *Parser) parseConditionalExpression() exprResult {
	defer un(trace(p, "ConditionalExpression"))

	test := p.parseBinaryExpression(0)
	if test.node == nil || !p.matchPunctuator("?") {
		return test
	}

	p.consume()
	consequent := p.requireAssignmentExpression()
	p.expectPunctuator(":")
	alternate := p.requireAssignmentExpression()
	return exprResult{node: &ast.ConditionalExpression{
		Test:       test.node,
		Consequent: consequent,
		Alternate:  alternate,
	}}
}

// parseBinaryExpression climbs the operator precedence table, taking only
// operators that bind at least as tightly as minPrecedence. Every operator
// is left-associative.
func (p *Parser) parseBinaryExpression(minPrecedence int) exprResult {
	defer un(trace(p, "BinaryExpression"))

	res := p.parseUnaryExpression()
	if res.node == nil {
		return res
	}

	for {
		tok := p.peek()
		if tok.Type != token.Punctuator {
			break
		}
		prec, ok := token.Precedence(tok.Value)
		if !ok || prec < minPrecedence {
			break
		}
		p.consume()

		right := p.parseBinaryExpression(prec + 1)
		if right.node == nil {
			p.errorExpected("expression")
		}

		if tok.Value == "||" || tok.Value == "&&" {
			res = exprResult{node: &ast.LogicalExpression{Operator: tok.Value, Left: res.node, Right: right.node}}
		} else {
			res = exprResult{node: &ast.BinaryExpression{Operator: tok.Value, Left: res.node, Right: right.node}}
		}
	}
	return res
}

// parseUnaryExpression parses
//
//	UnaryExpression := ( delete | void | typeof | ++ | -- | + | - | ~ | ! ) UnaryExpression
//	                 | PostfixExpression
func (p *Parser) parseUnaryExpression() exprResult {
	defer un(trace(p, "UnaryExpression"))
	defer p.unnest(p.nest())

	if !p.matchUnaryExpression() {
		return p.parsePostfixExpression()
	}

	op := p.consume()
	arg := p.parseUnaryExpression()
	if arg.node == nil {
		p.errorExpected("expression")
	}
	if op.Value == "++" || op.Value == "--" {
		return exprResult{node: &ast.UpdateExpression{Operator: op.Value, Argument: arg.node, Prefix: true}}
	}
	return exprResult{node: &ast.UnaryExpression{Operator: op.Value, Argument: arg.node, Prefix: true}}
}

// PostfixExpression := LeftHandSideExpression [no LineTerminator here] ( ++ | -- )?
func (p *Parser) parsePostfixExpression() exprResult {
	defer un(trace(p, "PostfixExpression"))

	expr := p.parseLeftHandSideExpression()
	if expr == nil {
		return exprResult{}
	}

	if p.matchPunctuator("++", "--") && !p.lineTerminatorBefore(p.peek()) {
		op := p.consume()
		return exprResult{node: &ast.UpdateExpression{Operator: op.Value, Argument: expr, Prefix: false}}
	}
	return exprResult{node: expr, assignable: true}
}

func (p *Parser) parseLeftHandSideExpression() ast.Expression {
	expr, _ := p.parseNewOrCallOrMemberExpression(true, true)
	return expr
}

// parseNewOrCallOrMemberExpression parses NewExpression, CallExpression and
// MemberExpression, whose grammars overlap. couldBeNew allows a "new"
// without Arguments; couldBeCall allows trailing Arguments to form a call.
// The returned flag is false once Arguments were taken at this level.
//
// In "new 1().a()" the inner new takes the first "()" as its own
// Arguments, leaving ".a()" as a member access and call on the result.
func (p *Parser) parseNewOrCallOrMemberExpression(couldBeNew, couldBeCall bool) (ast.Expression, bool) {
	defer un(trace(p, "NewOrCallOrMemberExpression"))
	defer p.unnest(p.nest())

	var object ast.Expression
	if p.matchKeyword("new") {
		p.consume()
		callee, _ := p.parseNewOrCallOrMemberExpression(couldBeNew, false)
		if callee == nil {
			p.errorExpected("expression")
		}

		n := &ast.NewExpression{Callee: callee}
		if !couldBeNew || p.matchPunctuator("(") {
			n.Arguments = p.parseArguments()
			couldBeNew = false
		}
		object = n
	} else {
		object = p.parsePrimaryExpression()
		if object == nil {
			return nil, couldBeNew
		}
	}

	object = p.parseRemainingMemberExpression(object)

	if couldBeCall && p.matchPunctuator("(") {
		couldBeNew = false
		object = p.parseRemainingCallExpression(object)
	}
	return object, couldBeNew
}

// parseRemainingMemberExpression absorbs trailing .Identifier and
// [Expression] accesses.
func (p *Parser) parseRemainingMemberExpression(object ast.Expression) ast.Expression {
	for p.matchPunctuator(".", "[") {
		object = p.parseMemberAccess(object)
	}
	return object
}

// parseRemainingCallExpression parses Arguments and any further member
// accesses and calls chained after them.
func (p *Parser) parseRemainingCallExpression(object ast.Expression) ast.Expression {
	object = &ast.CallExpression{Callee: object, Arguments: p.parseArguments()}
	for p.matchPunctuator(".", "[", "(") {
		if p.matchPunctuator("(") {
			object = &ast.CallExpression{Callee: object, Arguments: p.parseArguments()}
			continue
		}
		object = p.parseMemberAccess(object)
	}
	return object
}

func (p *Parser) parseMemberAccess(object ast.Expression) ast.Expression {
	if p.matchPunctuator(".") {
		p.consume()
		return &ast.MemberExpression{Object: object, Property: p.expectIdentifier()}
	}
	p.expectPunctuator("[")
	prop := p.parseExpression(false).node
	p.expectPunctuator("]")
	return &ast.MemberExpression{Object: object, Property: prop, Computed: true}
}

// Arguments := ( ( AssignmentExpression ( , AssignmentExpression )* )? )
func (p *Parser) parseArguments() []ast.Expression {
	defer un(trace(p, "Arguments"))

	p.expectPunctuator("(")
	var args []ast.Expression
	if p.matchAssignmentExpression() {
		args = append(args, p.requireAssignmentExpression())
		for p.matchPunctuator(",") {
			p.consume()
			args = append(args, p.requireAssignmentExpression())
		}
	}
	p.expectPunctuator(")")
	return args
}

// PrimaryExpression := this | Literal | Identifier | ( Expression )
//
// It returns nil when the next token cannot start one.
func (p *Parser) parsePrimaryExpression() ast.Expression {
	defer un(trace(p, "PrimaryExpression"))

	switch {
	case p.matchKeyword("this"):
		p.consume()
		return &ast.ThisExpression{}
	case p.matchLiteral():
		return p.expectLiteral()
	case p.matchIdentifier():
		return p.expectIdentifier()
	case p.matchPunctuator("("):
		return p.parseParenExpression()
	}
	return nil
}
