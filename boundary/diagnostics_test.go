package boundary_test

import (
	"testing"

	"github.com/influxdata/flux/ast"
	"github.com/influxdata/fluxbridge"
	"github.com/influxdata/fluxbridge/boundary"
	"github.com/influxdata/fluxbridge/kit/platform/errors"
	"github.com/influxdata/fluxbridge/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestDiagnostics(t *testing.T) {
	svc := newService(t)

	clean, err := svc.Parse(fluxbridge.NewSourceUnit("x = 1\ny = x"))
	require.NoError(t, err)
	diags, err := boundary.Diagnostics(clean)
	require.NoError(t, err)
	assert.NotNil(t, diags)
	assert.Empty(t, diags)

	syntax, err := boundary.SyntaxErrors(clean)
	require.NoError(t, err)
	assert.NoError(t, syntax)

	dirty, err := svc.Parse(fluxbridge.NewSourceUnit("x = (\n???\ny = 2"))
	require.NoError(t, err)
	diags, err = boundary.Diagnostics(dirty)
	require.NoError(t, err)
	require.Len(t, diags, 2)
	assert.Contains(t, diags[0], "invalid expression")
	assert.Contains(t, diags[1], "invalid statement")

	syntax, err = boundary.SyntaxErrors(dirty)
	require.NoError(t, err)
	assert.Len(t, multierr.Errors(syntax), 2)
}

func TestDiagnostics_DecodeError(t *testing.T) {
	_, err := boundary.Diagnostics([]byte(`{"schema":"nope"}`))
	require.Error(t, err)
	assert.Equal(t, errors.EDecode, errors.ErrorCode(err))
}

func TestBound(t *testing.T) {
	svc := newService(t)
	encoded, err := svc.Parse(fluxbridge.NewSourceUnit("a = 1\nb = a\n???"))
	require.NoError(t, err)

	f := mustDecode(t, encoded)
	assert.True(t, boundary.Bound(f, "a"))
	assert.True(t, boundary.Bound(f, "b"))
	assert.False(t, boundary.Bound(f, "c"))
	assert.False(t, boundary.Bound(f, ""))
	assert.False(t, boundary.Bound(nil, "a"))
}

func TestBound_StatementKinds(t *testing.T) {
	f := &ast.File{
		Body: []ast.Statement{
			&ast.OptionStatement{
				Assignment: &ast.VariableAssignment{
					ID:   &ast.Identifier{Name: "task"},
					Init: &ast.ObjectExpression{},
				},
			},
			&ast.OptionStatement{
				Assignment: &ast.MemberAssignment{
					Member: &ast.MemberExpression{
						Object:   &ast.Identifier{Name: "now"},
						Property: &ast.Identifier{Name: "x"},
					},
					Init: &ast.IntegerLiteral{Value: 1},
				},
			},
			&ast.BuiltinStatement{ID: &ast.Identifier{Name: "builtinFn"}},
			&ast.ExpressionStatement{Expression: &ast.Identifier{Name: "z"}},
		},
	}
	assert.True(t, boundary.Bound(f, "task"))
	assert.True(t, boundary.Bound(f, "builtinFn"))
	assert.False(t, boundary.Bound(f, "now"), "member options do not bind a variable")
	assert.False(t, boundary.Bound(f, "z"), "expressions do not bind")
}

func mustDecode(t *testing.T, encoded []byte) *ast.File {
	t.Helper()
	f, err := wire.DecodeFile(encoded)
	require.NoError(t, err)
	return f
}
