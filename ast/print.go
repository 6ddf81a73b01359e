package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fprint writes the tree rooted at node to w, one node per line, nesting
// children with the given indent.
func Fprint(w io.Writer, node Node, indent string) error {
	var depth int
	var err error
	Inspect(node, func(n Node) bool {
		if err != nil {
			return false
		}
		if n == nil {
			depth--
			return true
		}
		_, err = fmt.Fprintf(w, "%s%s\n", strings.Repeat(indent, depth), label(n))
		depth++
		return true
	})
	return err
}

// marker is an attribute printed as a bare word.
type marker string

// label is the node's type followed by its scalar attributes.
func label(n Node) string {
	var attrs []interface{}
	switch n := n.(type) {
	case *Identifier:
		attrs = append(attrs, n.Value)
	case *Literal:
		attrs = append(attrs, n.Value)
	case *VariableDeclaration:
		attrs = append(attrs, n.Kind)
	case *UnaryExpression:
		attrs = append(attrs, n.Operator, n.Prefix)
	case *UpdateExpression:
		attrs = append(attrs, n.Operator, n.Prefix)
	case *BinaryExpression:
		attrs = append(attrs, n.Operator)
	case *LogicalExpression:
		attrs = append(attrs, n.Operator)
	case *AssignmentExpression:
		attrs = append(attrs, n.Operator)
	case *MemberExpression:
		if n.Computed {
			attrs = append(attrs, marker("computed"))
		}
	}

	parts := []string{n.Type()}
	for _, a := range attrs {
		switch a := a.(type) {
		case string:
			parts = append(parts, strconv.Quote(a))
		default:
			parts = append(parts, fmt.Sprint(a))
		}
	}
	return strings.Join(parts, " ")
}
