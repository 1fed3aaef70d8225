// Package wire defines the serialized form of values crossing the boundary.
//
// Trees and types travel inside a small versioned envelope so the frontend's
// internal representation can evolve without breaking hosts:
//
//	{"schema": "flux.ast/v1", "kind": "File", "tree": {...}}
//	{"schema": "flux.type/v1", "kind": "Type", "type": {...}}
//
// The tree payload is the Flux AST JSON of an *ast.File, including its
// source locations and embedded syntax errors.
package wire

import (
	"encoding/json"
	"fmt"

	"github.com/buger/jsonparser"
	"github.com/influxdata/flux/ast"
	"github.com/influxdata/fluxbridge"
	"github.com/influxdata/fluxbridge/kit/platform/errors"
)

const (
	FileSchema = "flux.ast/v1"
	TypeSchema = "flux.type/v1"

	FileKind = "File"
	TypeKind = "Type"
)

const (
	opEncodeFile = "wire/EncodeFile"
	opDecodeFile = "wire/DecodeFile"
	opEncodeType = "wire/EncodeType"
	opDecodeType = "wire/DecodeType"
)

type fileEnvelope struct {
	Schema string          `json:"schema"`
	Kind   string          `json:"kind"`
	Tree   json.RawMessage `json:"tree"`
}

type typeEnvelope struct {
	Schema string               `json:"schema"`
	Kind   string               `json:"kind"`
	Type   fluxbridge.TypeValue `json:"type"`
}

// EncodeFile serializes f inside a tree envelope. Any value the encoding
// cannot represent is reported as an encode error.
func EncodeFile(f *ast.File) ([]byte, error) {
	if f == nil {
		return nil, errors.Errorf(errors.EEncode, opEncodeFile, "cannot encode a nil syntax tree")
	}
	tree, err := json.Marshal(f)
	if err != nil {
		return nil, &errors.Error{
			Code: errors.EEncode,
			Op:   opEncodeFile,
			Msg:  "unable to encode syntax tree",
			Err:  err,
		}
	}
	// body is required by the schema even when the file has no statements
	if _, dt, _, _ := jsonparser.Get(tree, "body"); dt != jsonparser.Array {
		if tree, err = jsonparser.Set(tree, []byte("[]"), "body"); err != nil {
			return nil, errors.Wrap(err, errors.EEncode, opEncodeFile)
		}
	}
	b, err := json.Marshal(fileEnvelope{
		Schema: FileSchema,
		Kind:   FileKind,
		Tree:   tree,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.EEncode, opEncodeFile)
	}
	return b, nil
}

// DecodeFile validates data against the tree schema and decodes the file it
// carries. Every violation is a decode error, including a node missing a
// required child in a tree free of syntax errors. DecodeFile never
// substitutes a default tree.
func DecodeFile(data []byte) (*ast.File, error) {
	tree, err := validateFileEnvelope(data)
	if err != nil {
		return nil, err
	}

	f := new(ast.File)
	if err := json.Unmarshal(tree, f); err != nil {
		return nil, &errors.Error{
			Code: errors.EDecode,
			Op:   opDecodeFile,
			Msg:  "tree does not match the flux AST schema",
			Err:  err,
		}
	}
	if err := checkRequired(f); err != nil {
		return nil, err
	}
	return f, nil
}

// EncodeType serializes t inside a type envelope.
func EncodeType(t fluxbridge.TypeValue) ([]byte, error) {
	if !t.Kind.Valid() {
		return nil, errors.Errorf(errors.EEncode, opEncodeType, "unknown type kind %q", t.Kind)
	}
	b, err := json.Marshal(typeEnvelope{
		Schema: TypeSchema,
		Kind:   TypeKind,
		Type:   t,
	})
	if err != nil {
		return nil, &errors.Error{
			Code: errors.EEncode,
			Op:   opEncodeType,
			Msg:  "unable to encode type value",
			Err:  err,
		}
	}
	return b, nil
}

// DecodeType validates data against the type schema and returns the value.
func DecodeType(data []byte) (fluxbridge.TypeValue, error) {
	if err := validateTypeEnvelope(data); err != nil {
		return fluxbridge.TypeValue{}, err
	}

	var env typeEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fluxbridge.TypeValue{}, &errors.Error{
			Code: errors.EDecode,
			Op:   opDecodeType,
			Msg:  "type envelope does not match the schema",
			Err:  err,
		}
	}
	if !env.Type.Kind.Valid() {
		return fluxbridge.TypeValue{}, errors.Errorf(errors.EDecode, opDecodeType, "unknown type kind %q", env.Type.Kind)
	}
	return env.Type, nil
}

func schemaError(op, format string, args ...interface{}) error {
	return &errors.Error{
		Code: errors.EDecode,
		Op:   op,
		Msg:  fmt.Sprintf(format, args...),
	}
}
