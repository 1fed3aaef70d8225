package wire

import (
	"encoding/json"

	"github.com/buger/jsonparser"
)

// requireType looks up keys in data and checks the JSON type found there.
// Missing keys and type mismatches are decode errors naming the field.
func requireType(op string, data []byte, field string, want ...jsonparser.ValueType) ([]byte, jsonparser.ValueType, error) {
	v, dt, _, err := jsonparser.Get(data, field)
	if err == jsonparser.KeyPathNotFoundError || dt == jsonparser.NotExist {
		return nil, dt, schemaError(op, "missing required field %q", field)
	} else if err != nil {
		return nil, dt, schemaError(op, "field %q: %v", field, err)
	}
	for _, w := range want {
		if dt == w {
			return v, dt, nil
		}
	}
	return nil, dt, schemaError(op, "field %q has type %s, want %s", field, dt, want[0])
}

func requireString(op string, data []byte, field, want string) error {
	v, _, err := requireType(op, data, field, jsonparser.String)
	if err != nil {
		return err
	}
	s, err := jsonparser.ParseString(v)
	if err != nil {
		return schemaError(op, "field %q: %v", field, err)
	}
	if want != "" && s != want {
		return schemaError(op, "field %q is %q, want %q", field, s, want)
	}
	return nil
}

func requireObject(op string, data []byte) error {
	if !json.Valid(data) {
		return schemaError(op, "input is not valid JSON")
	}
	_, dt, _, err := jsonparser.Get(data)
	if err != nil {
		return schemaError(op, "%v", err)
	}
	if dt != jsonparser.Object {
		return schemaError(op, "envelope must be an object, got %s", dt)
	}
	return nil
}

// validateFileEnvelope checks the envelope and the top level of the tree it
// carries and returns the raw tree. Deeper structure is checked by the AST
// decoder and checkRequired.
func validateFileEnvelope(data []byte) ([]byte, error) {
	if err := requireObject(opDecodeFile, data); err != nil {
		return nil, err
	}
	if err := requireString(opDecodeFile, data, "schema", FileSchema); err != nil {
		return nil, err
	}
	if err := requireString(opDecodeFile, data, "kind", FileKind); err != nil {
		return nil, err
	}
	tree, _, err := requireType(opDecodeFile, data, "tree", jsonparser.Object)
	if err != nil {
		return nil, err
	}
	if err := requireString(opDecodeFile, tree, "type", "File"); err != nil {
		return nil, err
	}
	body, dt, err := requireType(opDecodeFile, tree, "body", jsonparser.Array, jsonparser.Null)
	if err != nil {
		return nil, err
	}
	if dt == jsonparser.Null {
		return tree, nil
	}

	var stmtErr error
	i := 0
	if _, err := jsonparser.ArrayEach(body, func(v []byte, dt jsonparser.ValueType, _ int, _ error) {
		defer func() { i++ }()
		if stmtErr != nil {
			return
		}
		if dt != jsonparser.Object {
			stmtErr = schemaError(opDecodeFile, "body[%d] has type %s, want object", i, dt)
			return
		}
		if _, dt, _, err := jsonparser.Get(v, "type"); err != nil || dt != jsonparser.String {
			stmtErr = schemaError(opDecodeFile, "body[%d] is missing required field \"type\"", i)
		}
	}); err != nil {
		return nil, schemaError(opDecodeFile, "field \"body\": %v", err)
	}
	if stmtErr != nil {
		return nil, stmtErr
	}
	return tree, nil
}

func validateTypeEnvelope(data []byte) error {
	if err := requireObject(opDecodeType, data); err != nil {
		return err
	}
	if err := requireString(opDecodeType, data, "schema", TypeSchema); err != nil {
		return err
	}
	if err := requireString(opDecodeType, data, "kind", TypeKind); err != nil {
		return err
	}
	typ, _, err := requireType(opDecodeType, data, "type", jsonparser.Object)
	if err != nil {
		return err
	}
	if err := requireString(opDecodeType, typ, "kind", ""); err != nil {
		return err
	}
	_, _, err = requireType(opDecodeType, typ, "text", jsonparser.String)
	return err
}
