package ast

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// for (var i = 0; i < n; i++) { f(i, "x"); }
func sampleProgram() *Program {
	return &Program{Body: []Statement{
		&ForStatement{
			Init: &VariableDeclaration{
				Kind: "var",
				Declarations: []*VariableDeclarator{
					{ID: &Identifier{Value: "i"}, Init: &Literal{Value: "0"}},
				},
			},
			Test: &BinaryExpression{
				Operator: "<",
				Left:     &Identifier{Value: "i"},
				Right:    &Identifier{Value: "n"},
			},
			Update: &UpdateExpression{Operator: "++", Argument: &Identifier{Value: "i"}},
			Body: &BlockStatement{Body: []Statement{
				&ExpressionStatement{Expression: &CallExpression{
					Callee:    &Identifier{Value: "f"},
					Arguments: []Expression{&Identifier{Value: "i"}, &Literal{Value: `"x"`}},
				}},
			}},
		},
	}}
}

func TestNodeTypes(t *testing.T) {
	cases := map[string]Node{
		"Program":               &Program{},
		"VariableDeclaration":   &VariableDeclaration{},
		"VariableDeclarator":    &VariableDeclarator{},
		"EmptyStatement":        &EmptyStatement{},
		"ForInStatement":        &ForInStatement{},
		"WithStatement":         &WithStatement{},
		"FunctionDeclaration":   &FunctionDeclaration{},
		"Literal":               &Literal{},
		"ThisExpression":        &ThisExpression{},
		"LogicalExpression":     &LogicalExpression{},
		"ConditionalExpression": &ConditionalExpression{},
		"SequenceExpression":    &SequenceExpression{},
	}
	for typ, n := range cases {
		assert.Equal(t, typ, n.Type())
	}
}

func TestJSON(t *testing.T) {
	buf, err := json.Marshal(&ExpressionStatement{Expression: &MemberExpression{
		Object:   &ThisExpression{},
		Property: &Literal{Value: "1"},
		Computed: true,
	}})
	require.NoError(t, err)

	expected := `{
		"type": "ExpressionStatement",
		"expression": {
			"type": "MemberExpression",
			"object": {"type": "ThisExpression", "loc": null},
			"property": {"type": "Literal", "value": "1", "loc": null},
			"computed": true,
			"loc": null
		},
		"loc": null
	}`
	assert.JSONEq(t, expected, string(buf))
}

func TestJSONNullsAndEmptyLists(t *testing.T) {
	buf, err := json.Marshal(&Program{Body: []Statement{
		&ForStatement{Body: &EmptyStatement{}},
		&ReturnStatement{},
		&ExpressionStatement{Expression: &NewExpression{Callee: &Identifier{Value: "A"}}},
	}})
	require.NoError(t, err)

	expected := `{
		"type": "Program",
		"body": [
			{"type": "ForStatement", "init": null, "test": null, "update": null,
			 "body": {"type": "EmptyStatement", "loc": null}, "loc": null},
			{"type": "ReturnStatement", "expression": null, "loc": null},
			{"type": "ExpressionStatement", "expression":
				{"type": "NewExpression", "callee": {"type": "Identifier", "value": "A", "loc": null},
				 "arguments": [], "loc": null},
			 "loc": null}
		],
		"loc": null
	}`
	assert.JSONEq(t, expected, string(buf))

	buf, err = json.Marshal(&Program{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Program","body":[],"loc":null}`, string(buf))
}

func TestJSONKeyOrder(t *testing.T) {
	buf, err := json.Marshal(&IfStatement{
		Test:       &Identifier{Value: "a"},
		Consequent: &BreakStatement{},
	})
	require.NoError(t, err)
	assert.Equal(t,
		`{"type":"IfStatement","test":{"type":"Identifier","value":"a","loc":null},`+
			`"consequent":{"type":"BreakStatement","loc":null},"alternate":null,"loc":null}`,
		string(buf))
}

func TestInspect(t *testing.T) {
	var types []string
	var nils int
	Inspect(sampleProgram(), func(n Node) bool {
		if n == nil {
			nils++
			return true
		}
		types = append(types, n.Type())
		return true
	})

	expected := []string{
		"Program",
		"ForStatement",
		"VariableDeclaration", "VariableDeclarator", "Identifier", "Literal",
		"BinaryExpression", "Identifier", "Identifier",
		"UpdateExpression", "Identifier",
		"BlockStatement", "ExpressionStatement", "CallExpression",
		"Identifier", "Identifier", "Literal",
	}
	assert.Equal(t, expected, types)
	assert.Equal(t, len(expected), nils)
}

func TestInspectPrune(t *testing.T) {
	var count int
	Inspect(sampleProgram(), func(n Node) bool {
		if n == nil {
			return true
		}
		count++
		_, isFor := n.(*ForStatement)
		return !isFor
	})
	assert.Equal(t, 2, count)
}

func TestChildrenSkipsNil(t *testing.T) {
	assert.Empty(t, Children(&ForStatement{}))
	assert.Empty(t, Children(&ReturnStatement{}))
	assert.Len(t, Children(&IfStatement{Test: &ThisExpression{}, Consequent: &EmptyStatement{}}), 2)
	assert.Len(t, Children(&FunctionDeclaration{
		ID:     &Identifier{Value: "f"},
		Params: []*Identifier{{Value: "a"}, {Value: "b"}},
		Body:   &BlockStatement{},
	}), 4)
}

func TestFprint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Fprint(&buf, sampleProgram(), "  "))

	expected := `Program
  ForStatement
    VariableDeclaration "var"
      VariableDeclarator
        Identifier "i"
        Literal "0"
    BinaryExpression "<"
      Identifier "i"
      Identifier "n"
    UpdateExpression "++" false
      Identifier "i"
    BlockStatement
      ExpressionStatement
        CallExpression
          Identifier "f"
          Identifier "i"
          Literal "\"x\""
`
	assert.Equal(t, expected, buf.String())
}

func TestFprintAttributes(t *testing.T) {
	member := &MemberExpression{
		Object:   &ThisExpression{},
		Property: &Literal{Value: "'k'"},
		Computed: true,
	}
	typeOf := &UnaryExpression{Operator: "typeof", Argument: &Literal{Value: "null"}, Prefix: true}

	var buf bytes.Buffer
	require.NoError(t, Fprint(&buf, &ExpressionStatement{Expression: &AssignmentExpression{
		Operator: "+=",
		Left:     member,
		Right:    typeOf,
	}}, "\t"))

	expected := "ExpressionStatement\n" +
		"\tAssignmentExpression \"+=\"\n" +
		"\t\tMemberExpression computed\n" +
		"\t\t\tThisExpression\n" +
		"\t\t\tLiteral \"'k'\"\n" +
		"\t\tUnaryExpression \"typeof\" true\n" +
		"\t\t\tLiteral \"null\"\n"
	assert.Equal(t, expected, buf.String())
}
