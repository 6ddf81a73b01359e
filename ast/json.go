package ast

import (
	"bytes"
	"encoding/json"
)

// Every node encodes as an ESTree object: "type" first, then the node's
// fields, then "loc", which is always null.

type field struct {
	key   string
	value interface{}
}

func object(typ string, fields ...field) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	b, err := json.Marshal(typ)
	if err != nil {
		return nil, err
	}
	buf.Write(b)
	for _, f := range fields {
		buf.WriteString(`,"`)
		buf.WriteString(f.key)
		buf.WriteString(`":`)
		b, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteString(`,"loc":null}`)
	return buf.Bytes(), nil
}

// empty slices encode as [] rather than null

func statements(xs []Statement) []Statement {
	if xs == nil {
		return []Statement{}
	}
	return xs
}

func expressions(xs []Expression) []Expression {
	if xs == nil {
		return []Expression{}
	}
	return xs
}

func (p *Program) MarshalJSON() ([]byte, error) {
	return object(p.Type(), field{"body", statements(p.Body)})
}

func (s *VariableDeclaration) MarshalJSON() ([]byte, error) {
	decls := s.Declarations
	if decls == nil {
		decls = []*VariableDeclarator{}
	}
	return object(s.Type(), field{"declarations", decls}, field{"kind", s.Kind})
}

func (s *VariableDeclarator) MarshalJSON() ([]byte, error) {
	return object(s.Type(), field{"id", s.ID}, field{"init", s.Init})
}

func (s *ExpressionStatement) MarshalJSON() ([]byte, error) {
	return object(s.Type(), field{"expression", s.Expression})
}

func (s *BlockStatement) MarshalJSON() ([]byte, error) {
	return object(s.Type(), field{"body", statements(s.Body)})
}

func (s *EmptyStatement) MarshalJSON() ([]byte, error) {
	return object(s.Type())
}

func (s *ReturnStatement) MarshalJSON() ([]byte, error) {
	return object(s.Type(), field{"expression", s.Expression})
}

func (s *IfStatement) MarshalJSON() ([]byte, error) {
	return object(s.Type(),
		field{"test", s.Test},
		field{"consequent", s.Consequent},
		field{"alternate", s.Alternate})
}

func (s *WhileStatement) MarshalJSON() ([]byte, error) {
	return object(s.Type(), field{"test", s.Test}, field{"body", s.Body})
}

func (s *ForStatement) MarshalJSON() ([]byte, error) {
	return object(s.Type(),
		field{"init", s.Init},
		field{"test", s.Test},
		field{"update", s.Update},
		field{"body", s.Body})
}

func (s *ForInStatement) MarshalJSON() ([]byte, error) {
	return object(s.Type(),
		field{"left", s.Left},
		field{"right", s.Right},
		field{"body", s.Body})
}

func (s *WithStatement) MarshalJSON() ([]byte, error) {
	return object(s.Type(), field{"test", s.Test}, field{"body", s.Body})
}

func (s *BreakStatement) MarshalJSON() ([]byte, error) {
	return object(s.Type())
}

func (s *ContinueStatement) MarshalJSON() ([]byte, error) {
	return object(s.Type())
}

func (s *FunctionDeclaration) MarshalJSON() ([]byte, error) {
	params := s.Params
	if params == nil {
		params = []*Identifier{}
	}
	return object(s.Type(),
		field{"id", s.ID},
		field{"params", params},
		field{"body", s.Body})
}

func (e *Identifier) MarshalJSON() ([]byte, error) {
	return object(e.Type(), field{"value", e.Value})
}

func (e *Literal) MarshalJSON() ([]byte, error) {
	return object(e.Type(), field{"value", e.Value})
}

func (e *ThisExpression) MarshalJSON() ([]byte, error) {
	return object(e.Type())
}

func (e *UnaryExpression) MarshalJSON() ([]byte, error) {
	return object(e.Type(),
		field{"operator", e.Operator},
		field{"argument", e.Argument},
		field{"prefix", e.Prefix})
}

func (e *UpdateExpression) MarshalJSON() ([]byte, error) {
	return object(e.Type(),
		field{"operator", e.Operator},
		field{"argument", e.Argument},
		field{"prefix", e.Prefix})
}

func (e *BinaryExpression) MarshalJSON() ([]byte, error) {
	return object(e.Type(),
		field{"operator", e.Operator},
		field{"left", e.Left},
		field{"right", e.Right})
}

func (e *LogicalExpression) MarshalJSON() ([]byte, error) {
	return object(e.Type(),
		field{"operator", e.Operator},
		field{"left", e.Left},
		field{"right", e.Right})
}

func (e *AssignmentExpression) MarshalJSON() ([]byte, error) {
	return object(e.Type(),
		field{"operator", e.Operator},
		field{"left", e.Left},
		field{"right", e.Right})
}

func (e *ConditionalExpression) MarshalJSON() ([]byte, error) {
	return object(e.Type(),
		field{"test", e.Test},
		field{"consequent", e.Consequent},
		field{"alternate", e.Alternate})
}

func (e *MemberExpression) MarshalJSON() ([]byte, error) {
	return object(e.Type(),
		field{"object", e.Object},
		field{"property", e.Property},
		field{"computed", e.Computed})
}

func (e *CallExpression) MarshalJSON() ([]byte, error) {
	return object(e.Type(),
		field{"callee", e.Callee},
		field{"arguments", expressions(e.Arguments)})
}

func (e *NewExpression) MarshalJSON() ([]byte, error) {
	return object(e.Type(),
		field{"callee", e.Callee},
		field{"arguments", expressions(e.Arguments)})
}

func (e *SequenceExpression) MarshalJSON() ([]byte, error) {
	return object(e.Type(), field{"expressions", expressions(e.Expressions)})
}
