package wire

import (
	"github.com/influxdata/flux/ast"
)

// checkRequired rejects a decoded file in which a node lacks a child the
// flux AST always carries. The AST decoder turns a bad expression into a nil
// child, so a tree that carries syntax errors may hold nil children anywhere
// and is accepted as is.
func checkRequired(f *ast.File) error {
	c := new(requiredChecker)
	ast.Walk(c, f)
	if c.broken || c.missing == "" {
		return nil
	}
	return schemaError(opDecodeFile, "%s is missing required field %q", c.node, c.missing)
}

type requiredChecker struct {
	// broken is set once any node carries a syntax error.
	broken bool

	// first node with a nil required child
	node    string
	missing string
}

func (c *requiredChecker) Visit(n ast.Node) ast.Visitor {
	if len(n.Errs()) > 0 {
		c.broken = true
	}
	if _, ok := n.(*ast.BadStatement); ok {
		c.broken = true
	}
	if c.missing == "" {
		if field := missingChild(n); field != "" {
			c.node, c.missing = n.Type(), field
		}
	}
	return c
}

func (c *requiredChecker) Done(ast.Node) {}

// missingChild returns the JSON name of the first required child of n that
// is nil, or "" when n is complete.
func missingChild(n ast.Node) string {
	switch n := n.(type) {
	case *ast.VariableAssignment:
		if n.ID == nil {
			return "id"
		}
		if n.Init == nil {
			return "init"
		}
	case *ast.MemberAssignment:
		if n.Member == nil {
			return "member"
		}
		if n.Init == nil {
			return "init"
		}
	case *ast.ExpressionStatement:
		if n.Expression == nil {
			return "expression"
		}
	case *ast.ReturnStatement:
		if n.Argument == nil {
			return "argument"
		}
	case *ast.OptionStatement:
		if n.Assignment == nil {
			return "assignment"
		}
	case *ast.ImportDeclaration:
		if n.Path == nil {
			return "path"
		}
	case *ast.CallExpression:
		if n.Callee == nil {
			return "callee"
		}
	case *ast.PipeExpression:
		if n.Argument == nil {
			return "argument"
		}
		if n.Call == nil {
			return "call"
		}
	case *ast.MemberExpression:
		if n.Object == nil {
			return "object"
		}
		if n.Property == nil {
			return "property"
		}
	case *ast.IndexExpression:
		if n.Array == nil {
			return "array"
		}
		if n.Index == nil {
			return "index"
		}
	case *ast.BinaryExpression:
		if n.Left == nil {
			return "left"
		}
		if n.Right == nil {
			return "right"
		}
	case *ast.LogicalExpression:
		if n.Left == nil {
			return "left"
		}
		if n.Right == nil {
			return "right"
		}
	case *ast.UnaryExpression:
		if n.Argument == nil {
			return "argument"
		}
	case *ast.ParenExpression:
		if n.Expression == nil {
			return "expression"
		}
	case *ast.ConditionalExpression:
		if n.Test == nil {
			return "test"
		}
		if n.Consequent == nil {
			return "consequent"
		}
		if n.Alternate == nil {
			return "alternate"
		}
	case *ast.FunctionExpression:
		if n.Body == nil {
			return "body"
		}
	}
	return ""
}
