package boundary

import "github.com/influxdata/flux/ast"

// Bound reports whether name is bound by a top-level statement of f: a
// variable assignment, an option assignment or a builtin declaration.
func Bound(f *ast.File, name string) bool {
	if f == nil || name == "" {
		return false
	}
	for _, stmt := range f.Body {
		switch s := stmt.(type) {
		case *ast.VariableAssignment:
			if s.ID != nil && s.ID.Name == name {
				return true
			}
		case *ast.OptionStatement:
			if a, ok := s.Assignment.(*ast.VariableAssignment); ok && a.ID != nil && a.ID.Name == name {
				return true
			}
		case *ast.BuiltinStatement:
			if s.ID != nil && s.ID.Name == name {
				return true
			}
		}
	}
	return false
}
