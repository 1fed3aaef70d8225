package fluxbridge

import "github.com/influxdata/flux/ast"

// Parser turns source text into a syntax tree.
//
// ParseFile must be total: syntax errors are reported as diagnostics inside
// the returned file, never as a failure of the call.
type Parser interface {
	ParseFile(unit SourceUnit) *ast.File
}

// Printer renders a syntax tree as canonical source text.
type Printer interface {
	PrintFile(f *ast.File) (string, error)
}

// TypeFinder infers the type of a variable bound in a package.
//
// An error means the type could not be determined; callers fall back to
// UnresolvedType.
type TypeFinder interface {
	FindVarType(pkg *ast.Package, name string) (TypeValue, error)
}

// Frontend is the complete collaborator a boundary service delegates to.
type Frontend interface {
	Parser
	Printer
	TypeFinder
}
