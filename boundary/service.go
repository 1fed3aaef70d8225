// Package boundary implements the fluxbridge boundary operations on top of a
// compiler frontend.
package boundary

import (
	"fmt"

	"github.com/influxdata/flux/ast"
	"github.com/influxdata/fluxbridge"
	"github.com/influxdata/fluxbridge/kit/platform/errors"
	"github.com/influxdata/fluxbridge/wire"
)

var _ fluxbridge.BoundaryService = (*Service)(nil)

// Service implements fluxbridge.BoundaryService. It keeps no state besides
// its collaborators and is safe for concurrent use when they are.
type Service struct {
	parser  fluxbridge.Parser
	printer fluxbridge.Printer
	types   fluxbridge.TypeFinder
}

// NewService returns a boundary service delegating to fe.
func NewService(fe fluxbridge.Frontend) *Service {
	return &Service{
		parser:  fe,
		printer: fe,
		types:   fe,
	}
}

// Parse implements fluxbridge.BoundaryService.
func (s *Service) Parse(unit fluxbridge.SourceUnit) ([]byte, error) {
	f, err := s.parseFile(unit, fluxbridge.OpParse)
	if err != nil {
		return nil, err
	}

	var encoded []byte
	if err := contain(func() (err error) {
		encoded, err = wire.EncodeFile(f)
		return err
	}); err != nil {
		return nil, &errors.Error{
			Code: errors.EEncode,
			Op:   fluxbridge.OpParse,
			Err:  err,
		}
	}
	return encoded, nil
}

// Format implements fluxbridge.BoundaryService.
func (s *Service) Format(encoded []byte) (string, error) {
	var f *ast.File
	if err := contain(func() (err error) {
		f, err = wire.DecodeFile(encoded)
		return err
	}); err != nil {
		return "", &errors.Error{
			Code: errors.EDecode,
			Op:   fluxbridge.OpFormat,
			Err:  err,
		}
	}

	var out string
	if err := contain(func() (err error) {
		out, err = s.printer.PrintFile(f)
		return err
	}); err != nil {
		return "", &errors.Error{
			Code: errors.EPrint,
			Op:   fluxbridge.OpFormat,
			Msg:  "unable to print syntax tree",
			Err:  err,
		}
	}
	return out, nil
}

// ResolveVariableType implements fluxbridge.BoundaryService.
func (s *Service) ResolveVariableType(unit fluxbridge.SourceUnit, varName string) ([]byte, error) {
	f, err := s.parseFile(unit, fluxbridge.OpResolveVariableType)
	if err != nil {
		return nil, err
	}

	tv := s.lookup(f, varName)
	encoded, err := wire.EncodeType(tv)
	if err != nil {
		return nil, &errors.Error{
			Code: errors.EEncode,
			Op:   fluxbridge.OpResolveVariableType,
			Err:  err,
		}
	}
	return encoded, nil
}

// lookup returns the inferred type of name, or the unresolved sentinel when
// name is not bound in f or the frontend cannot infer its type.
func (s *Service) lookup(f *ast.File, name string) fluxbridge.TypeValue {
	if !Bound(f, name) {
		return fluxbridge.UnresolvedType()
	}

	pkg := &ast.Package{
		Package: "main",
		Files:   []*ast.File{f},
	}
	var tv fluxbridge.TypeValue
	if err := contain(func() (err error) {
		tv, err = s.types.FindVarType(pkg, name)
		return err
	}); err != nil {
		return fluxbridge.UnresolvedType()
	}
	if tv.IsUnresolved() || !tv.Kind.Valid() {
		return fluxbridge.UnresolvedType()
	}
	return tv
}

func (s *Service) parseFile(unit fluxbridge.SourceUnit, op string) (*ast.File, error) {
	var f *ast.File
	if err := contain(func() error {
		f = s.parser.ParseFile(unit)
		return nil
	}); err != nil {
		return nil, &errors.Error{
			Code: errors.EInternal,
			Op:   op,
			Msg:  "internal error in flux frontend; unable to parse",
			Err:  err,
		}
	}
	if f == nil {
		return nil, &errors.Error{
			Code: errors.EInternal,
			Op:   op,
			Msg:  "flux frontend returned no syntax tree",
		}
	}
	return f, nil
}

// contain runs fn and turns a panic raised inside it into an error, so a
// fault in the frontend never unwinds across the boundary.
func contain(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
