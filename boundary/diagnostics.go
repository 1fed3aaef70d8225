package boundary

import (
	"github.com/influxdata/flux/ast"
	"github.com/influxdata/fluxbridge/kit/platform/errors"
	"github.com/influxdata/fluxbridge/wire"
	"go.uber.org/multierr"
)

const opDiagnostics = "boundary/Diagnostics"

// SyntaxErrors decodes an encoded tree and combines the syntax errors
// embedded in it into a single error. It returns nil for a clean tree.
// A tree that cannot be decoded yields a decode error in the second result.
func SyntaxErrors(encoded []byte) (syntax error, err error) {
	f, err := wire.DecodeFile(encoded)
	if err != nil {
		return nil, &errors.Error{
			Code: errors.EDecode,
			Op:   opDiagnostics,
			Err:  err,
		}
	}
	return fileErrors(f), nil
}

// Diagnostics lists the messages of the syntax errors embedded in an encoded
// tree. The list is empty, not nil, for a clean tree.
func Diagnostics(encoded []byte) ([]string, error) {
	syntax, err := SyntaxErrors(encoded)
	if err != nil {
		return nil, err
	}
	errs := multierr.Errors(syntax)
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return msgs, nil
}

func fileErrors(f *ast.File) error {
	return multierr.Combine(ast.GetErrors(f)...)
}
