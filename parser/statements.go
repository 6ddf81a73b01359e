package parser

import (
	"github.com/example/jsparse/ast"
	"github.com/example/jsparse/token"
)

// Program := SourceElement+ EOF
func (p *Parser) parseProgram() *ast.Program {
	defer un(trace(p, "Program"))

	prog := &ast.Program{}
	prog.Body = append(prog.Body, p.parseSourceElement())
	for p.matchStatement() || p.matchKeyword("function") {
		prog.Body = append(prog.Body, p.parseSourceElement())
	}

	if p.peek().Type != token.EOF {
		p.errorExpected("end of input")
	}
	return prog
}

// SourceElement := FunctionDeclaration | Statement
func (p *Parser) parseSourceElement() ast.Statement {
	if p.matchKeyword("function") {
		return p.parseFunctionDeclaration()
	}
	return p.parseStatement(false, false)
}

// parseStatement parses one statement. insideIteration permits continue
// and break; insideFunction permits return.
func (p *Parser) parseStatement(insideIteration, insideFunction bool) ast.Statement {
	defer un(trace(p, "Statement"))
	defer p.unnest(p.nest())

	switch {
	case p.matchPunctuator("{"):
		return p.parseBlock(insideIteration, insideFunction)
	case p.matchKeyword("var"):
		return p.parseVariableStatement()
	case p.matchPunctuator(";"):
		p.consume()
		return &ast.EmptyStatement{}
	case p.matchAssignmentExpression():
		return p.parseExpressionStatement()
	case p.matchKeyword("if"):
		return p.parseIfStatement(insideIteration, insideFunction)
	case p.matchKeyword("while"):
		return p.parseWhileStatement(insideFunction)
	case p.matchKeyword("for"):
		return p.parseForStatement(insideFunction)
	case p.matchKeyword("with"):
		return p.parseWithStatement(insideIteration, insideFunction)
	case p.matchKeyword("continue"):
		if !insideIteration {
			p.fail(p.peek(), "", "continue statement can only be inside an iteration")
		}
		return p.parseContinueStatement()
	case p.matchKeyword("break"):
		if !insideIteration {
			p.fail(p.peek(), "", "break statement can only be inside an iteration")
		}
		return p.parseBreakStatement()
	case p.matchKeyword("return"):
		if !insideFunction {
			p.fail(p.peek(), "", "return statement can only be inside a function")
		}
		return p.parseReturnStatement()
	}

	p.errorExpected("statement")
	return nil
}

// Block := { Statement* }
func (p *Parser) parseBlock(insideIteration, insideFunction bool) *ast.BlockStatement {
	defer un(trace(p, "Block"))

	p.expectPunctuator("{")
	block := &ast.BlockStatement{}
	for p.matchStatement() {
		block.Body = append(block.Body, p.parseStatement(insideIteration, insideFunction))
	}
	p.expectPunctuator("}")
	return block
}

// VariableStatement := var VariableDeclarationList ;
func (p *Parser) parseVariableStatement() *ast.VariableDeclaration {
	defer un(trace(p, "VariableStatement"))

	p.expectKeyword("var")
	decl := p.parseVariableDeclarationList()
	p.expectPunctuator(";")
	return decl
}

// VariableDeclarationList := VariableDeclaration ( , VariableDeclaration )*
func (p *Parser) parseVariableDeclarationList() *ast.VariableDeclaration {
	decl := &ast.VariableDeclaration{Kind: "var"}
	decl.Declarations = append(decl.Declarations, p.parseVariableDeclaration())
	for p.matchPunctuator(",") {
		p.consume()
		decl.Declarations = append(decl.Declarations, p.parseVariableDeclaration())
	}
	return decl
}

// VariableDeclaration := Identifier ( = AssignmentExpression )?
func (p *Parser) parseVariableDeclaration() *ast.VariableDeclarator {
	defer un(trace(p, "VariableDeclaration"))

	d := &ast.VariableDeclarator{ID: p.expectIdentifier()}
	if p.matchPunctuator("=") {
		p.consume()
		d.Init = p.requireAssignmentExpression()
	}
	return d
}

// ExpressionStatement := Expression ;
func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	defer un(trace(p, "ExpressionStatement"))

	expr := p.parseExpression(false).node
	p.expectPunctuator(";")
	return &ast.ExpressionStatement{Expression: expr}
}

// parseParenExpression parses ( Expression ).
func (p *Parser) parseParenExpression() ast.Expression {
	p.expectPunctuator("(")
	expr := p.parseExpression(false).node
	p.expectPunctuator(")")
	return expr
}

// IfStatement := if ( Expression ) Statement ( else Statement )?
func (p *Parser) parseIfStatement(insideIteration, insideFunction bool) *ast.IfStatement {
	defer un(trace(p, "IfStatement"))

	p.expectKeyword("if")
	s := &ast.IfStatement{Test: p.parseParenExpression()}
	s.Consequent = p.parseStatement(insideIteration, insideFunction)
	if p.matchKeyword("else") {
		p.consume()
		s.Alternate = p.parseStatement(insideIteration, insideFunction)
	}
	return s
}

// WhileStatement := while ( Expression ) Statement
func (p *Parser) parseWhileStatement(insideFunction bool) *ast.WhileStatement {
	defer un(trace(p, "WhileStatement"))

	p.expectKeyword("while")
	test := p.parseParenExpression()
	body := p.parseStatement(true, insideFunction)
	return &ast.WhileStatement{Test: test, Body: body}
}

// parseForStatement handles the four for-loop shapes:
//
//	for ( var VariableDeclarationList ; Expression? ; Expression? ) Statement
//	for ( var Identifier Initializer? in Expression ) Statement
//	for ( Expression? ; Expression? ; Expression? ) Statement
//	for ( LeftHandSideExpression in Expression ) Statement
func (p *Parser) parseForStatement(insideFunction bool) ast.Statement {
	defer un(trace(p, "ForStatement"))

	p.expectKeyword("for")
	p.expectPunctuator("(")

	var init ast.Node
	if p.matchKeyword("var") {
		p.consume()
		decl := p.parseVariableDeclarationList()
		if p.matchKeyword("in") {
			if len(decl.Declarations) != 1 {
				p.fail(p.peek(), "", "for-in statement can only declare one variable")
			}
			return p.parseForInRest(decl, insideFunction)
		}
		init = decl
	} else {
		start := p.peek()
		left := p.parseExpression(true)
		if !p.matchPunctuator(";") {
			if !p.matchKeyword("in") {
				p.errorExpected(`";" or "in"`)
			}
			if left.node == nil || !left.assignable {
				p.fail(start, "left-hand side expression", "invalid left-hand side in for-in statement")
			}
			return p.parseForInRest(left.node, insideFunction)
		}
		if left.node != nil {
			init = left.node
		}
	}

	s := &ast.ForStatement{Init: init}
	p.expectPunctuator(";")
	s.Test = p.parseExpression(true).node
	p.expectPunctuator(";")
	s.Update = p.parseExpression(true).node
	p.expectPunctuator(")")
	s.Body = p.parseStatement(true, insideFunction)
	return s
}

// parseForInRest parses "in Expression ) Statement".
func (p *Parser) parseForInRest(left ast.Node, insideFunction bool) *ast.ForInStatement {
	p.expectKeyword("in")
	s := &ast.ForInStatement{Left: left}
	s.Right = p.parseExpression(false).node
	p.expectPunctuator(")")
	s.Body = p.parseStatement(true, insideFunction)
	return s
}

// WithStatement := with ( Expression ) Statement
func (p *Parser) parseWithStatement(insideIteration, insideFunction bool) *ast.WithStatement {
	defer un(trace(p, "WithStatement"))

	p.expectKeyword("with")
	test := p.parseParenExpression()
	body := p.parseStatement(insideIteration, insideFunction)
	return &ast.WithStatement{Test: test, Body: body}
}

func (p *Parser) parseContinueStatement() *ast.ContinueStatement {
	p.expectKeyword("continue")
	p.expectPunctuator(";")
	return &ast.ContinueStatement{}
}

func (p *Parser) parseBreakStatement() *ast.BreakStatement {
	p.expectKeyword("break")
	p.expectPunctuator(";")
	return &ast.BreakStatement{}
}

// ReturnStatement := return AssignmentExpression? ;
func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	defer un(trace(p, "ReturnStatement"))

	p.expectKeyword("return")
	s := &ast.ReturnStatement{}
	if p.matchAssignmentExpression() {
		s.Expression = p.requireAssignmentExpression()
	}
	p.expectPunctuator(";")
	return s
}

// FunctionDeclaration := function Identifier ( FormalParameterList? ) Block
func (p *Parser) parseFunctionDeclaration() *ast.FunctionDeclaration {
	defer un(trace(p, "FunctionDeclaration"))

	p.expectKeyword("function")
	fn := &ast.FunctionDeclaration{ID: p.expectIdentifier()}

	p.expectPunctuator("(")
	if p.matchIdentifier() {
		fn.Params = append(fn.Params, p.expectIdentifier())
		for p.matchPunctuator(",") {
			p.consume()
			fn.Params = append(fn.Params, p.expectIdentifier())
		}
	}
	p.expectPunctuator(")")

	fn.Body = p.parseBlock(false, true)
	return fn
}
