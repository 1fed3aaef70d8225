package mock

import (
	"github.com/influxdata/flux/ast"
	"github.com/influxdata/fluxbridge"
)

var _ fluxbridge.Frontend = (*Frontend)(nil)

// Frontend is a mock implementation of fluxbridge.Frontend.
type Frontend struct {
	ParseFileFn   func(unit fluxbridge.SourceUnit) *ast.File
	PrintFileFn   func(f *ast.File) (string, error)
	FindVarTypeFn func(pkg *ast.Package, name string) (fluxbridge.TypeValue, error)
}

// NewFrontend returns a Frontend that understands a tiny assignment-only
// subset of flux, one `name = value` statement per line, where value is an
// integer, a string or another name. A line that is not an assignment parses
// into a bad statement and any other value into an assignment without an
// initializer, each carrying a syntax error. Individual functions may be
// replaced by tests.
func NewFrontend() *Frontend {
	return &Frontend{
		ParseFileFn:   parseAssignments,
		PrintFileFn:   printAssignments,
		FindVarTypeFn: assignmentType,
	}
}

func (m *Frontend) ParseFile(unit fluxbridge.SourceUnit) *ast.File {
	return m.ParseFileFn(unit)
}

func (m *Frontend) PrintFile(f *ast.File) (string, error) {
	return m.PrintFileFn(f)
}

func (m *Frontend) FindVarType(pkg *ast.Package, name string) (fluxbridge.TypeValue, error) {
	return m.FindVarTypeFn(pkg, name)
}
