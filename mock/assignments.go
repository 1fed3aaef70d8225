package mock

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/influxdata/flux/ast"
	"github.com/influxdata/fluxbridge"
)

var (
	assignment = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.*)$`)
	identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

func parseAssignments(unit fluxbridge.SourceUnit) *ast.File {
	f := &ast.File{Name: unit.FileName}
	for i, line := range strings.Split(unit.Source, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		loc := &ast.SourceLocation{
			File:   unit.FileName,
			Start:  ast.Position{Line: i + 1, Column: 1},
			End:    ast.Position{Line: i + 1, Column: len(line) + 1},
			Source: line,
		}

		m := assignment.FindStringSubmatch(line)
		if m == nil {
			f.Body = append(f.Body, &ast.BadStatement{
				BaseNode: ast.BaseNode{
					Loc:    loc,
					Errors: []ast.Error{{Msg: fmt.Sprintf("invalid statement @%d:1-%d:%d: %s", i+1, i+1, len(line)+1, line)}},
				},
				Text: line,
			})
			continue
		}
		a := &ast.VariableAssignment{
			BaseNode: ast.BaseNode{Loc: loc},
			ID:       &ast.Identifier{Name: m[1]},
			Init:     parseValue(m[2]),
		}
		if a.Init == nil {
			// A bad initializer decodes from flux AST JSON as a nil
			// expression, so its error rides on the assignment.
			a.Errors = []ast.Error{{Msg: fmt.Sprintf("invalid expression @%d: %q", i+1, m[2])}}
		}
		f.Body = append(f.Body, a)
	}
	return f
}

// parseValue returns nil when v is not a literal or an identifier.
func parseValue(v string) ast.Expression {
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return &ast.IntegerLiteral{Value: n}
	}
	if s, err := strconv.Unquote(v); err == nil && strings.HasPrefix(v, `"`) {
		return &ast.StringLiteral{Value: s}
	}
	if identifier.MatchString(v) {
		return &ast.Identifier{Name: v}
	}
	return nil
}

func printAssignments(f *ast.File) (string, error) {
	var b strings.Builder
	for _, stmt := range f.Body {
		a, ok := stmt.(*ast.VariableAssignment)
		if !ok {
			return "", fmt.Errorf("cannot print %s", stmt.Type())
		}
		if a.Init == nil {
			return "", fmt.Errorf("cannot print %s %q without an initializer", a.Type(), a.ID.Name)
		}
		var v string
		switch e := a.Init.(type) {
		case *ast.IntegerLiteral:
			v = strconv.FormatInt(e.Value, 10)
		case *ast.StringLiteral:
			v = strconv.Quote(e.Value)
		case *ast.Identifier:
			v = e.Name
		default:
			return "", fmt.Errorf("cannot print %s", a.Init.Type())
		}
		b.WriteString(a.ID.Name)
		b.WriteString(" = ")
		b.WriteString(v)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func assignmentType(pkg *ast.Package, name string) (fluxbridge.TypeValue, error) {
	seen := make(map[string]bool)
	for {
		if seen[name] {
			return fluxbridge.TypeValue{}, fmt.Errorf("cycle through %q", name)
		}
		seen[name] = true

		expr := lastAssignment(pkg, name)
		switch e := expr.(type) {
		case *ast.IntegerLiteral:
			return fluxbridge.BasicType("int"), nil
		case *ast.StringLiteral:
			return fluxbridge.BasicType("string"), nil
		case *ast.Identifier:
			name = e.Name
		case nil:
			return fluxbridge.TypeValue{}, fmt.Errorf("undefined identifier %q", name)
		default:
			return fluxbridge.TypeValue{}, fmt.Errorf("cannot infer type of %s", expr.Type())
		}
	}
}

func lastAssignment(pkg *ast.Package, name string) ast.Expression {
	var expr ast.Expression
	for _, f := range pkg.Files {
		for _, stmt := range f.Body {
			if a, ok := stmt.(*ast.VariableAssignment); ok && a.ID.Name == name {
				expr = a.Init
			}
		}
	}
	return expr
}
