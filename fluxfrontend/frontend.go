// Package fluxfrontend adapts the Flux compiler frontend to the interfaces
// declared by fluxbridge.
package fluxfrontend

import (
	"encoding/json"
	"fmt"

	"github.com/influxdata/flux/ast"
	"github.com/influxdata/flux/ast/astutil"
	"github.com/influxdata/flux/libflux/go/libflux"
	"github.com/influxdata/flux/parser"
	"github.com/influxdata/flux/semantic"
	"github.com/influxdata/fluxbridge"
)

// Frontend is the default fluxbridge.Frontend backed by libflux.
type Frontend struct{}

var _ fluxbridge.Frontend = Frontend{}

// New returns the libflux backed frontend.
func New() Frontend {
	return Frontend{}
}

// ParseFile parses unit.Source as a single file named unit.FileName. Every
// source location in the tree carries the file name.
func (Frontend) ParseFile(unit fluxbridge.SourceUnit) *ast.File {
	pkg := parser.ParseSourceWithFileName(unit.Source, unit.FileName)

	var f *ast.File
	if pkg != nil && len(pkg.Files) > 0 {
		f = pkg.Files[0]
	} else {
		f = &ast.File{}
	}
	f.Name = unit.FileName
	if f.Loc != nil {
		f.Loc.File = unit.FileName
	}
	return f
}

// PrintFile formats f with the canonical flux formatter.
func (Frontend) PrintFile(f *ast.File) (string, error) {
	return astutil.Format(f)
}

// FindVarType runs semantic analysis over pkg and returns the monotype
// inferred for name.
func (Frontend) FindVarType(pkg *ast.Package, name string) (fluxbridge.TypeValue, error) {
	data, err := json.Marshal(pkg)
	if err != nil {
		return fluxbridge.TypeValue{}, err
	}
	astPkg, err := libflux.ParseJSON(data)
	if err != nil {
		return fluxbridge.TypeValue{}, err
	}
	defer astPkg.Free()

	mt, err := libflux.FindVarType(astPkg, name)
	if err != nil {
		return fluxbridge.TypeValue{}, err
	}
	return FromMonoType(mt)
}

// FromMonoType converts a semantic monotype into its boundary representation.
func FromMonoType(mt semantic.MonoType) (fluxbridge.TypeValue, error) {
	tv := fluxbridge.TypeValue{Text: mt.String()}
	switch mt.Kind() {
	case semantic.Basic:
		tv.Kind = fluxbridge.KindBasic
		tv.Name = tv.Text
	case semantic.Var:
		n, err := mt.VarNum()
		if err != nil {
			return fluxbridge.TypeValue{}, fmt.Errorf("type variable: %w", err)
		}
		tv.Kind = fluxbridge.KindVar
		tv.Var = &n
	case semantic.Collection:
		k, err := collectionKind(mt)
		if err != nil {
			return fluxbridge.TypeValue{}, err
		}
		tv.Kind = k
	case semantic.Dict:
		tv.Kind = fluxbridge.KindDictionary
	case semantic.Record:
		tv.Kind = fluxbridge.KindRecord
	case semantic.Fun:
		tv.Kind = fluxbridge.KindFunction
	case semantic.Dyn:
		tv.Kind = fluxbridge.KindDynamic
	default:
		tv.Kind = fluxbridge.KindUnknown
	}
	return tv, nil
}

// collectionKind maps the collection variant of mt. The variant enum lives
// in an internal flux package, so it is matched on its name.
func collectionKind(mt semantic.MonoType) (fluxbridge.TypeKind, error) {
	ct, err := mt.CollectionType()
	if err != nil {
		return "", fmt.Errorf("collection type: %w", err)
	}
	switch ct.String() {
	case "Array":
		return fluxbridge.KindArray, nil
	case "Vector":
		return fluxbridge.KindVector, nil
	case "Stream":
		return fluxbridge.KindStream, nil
	}
	return fluxbridge.KindUnknown, nil
}
