package fluxbridge

// Logical operation names used in error ops, logs and metrics.
const (
	OpParse               = "boundary/Parse"
	OpFormat              = "boundary/Format"
	OpResolveVariableType = "boundary/ResolveVariableType"
)

// BoundaryService is the request/response surface presented to a host.
//
// Every input and output is a boundary-encoded value. Failures are returned as
// *errors.Error values carrying one of the codes declared in
// kit/platform/errors; nothing panics across the boundary.
type BoundaryService interface {
	// Parse parses the unit and returns the encoded syntax tree. Syntax
	// errors are embedded in the tree, so Parse only fails when the tree
	// cannot be encoded.
	Parse(unit SourceUnit) ([]byte, error)

	// Format decodes an encoded syntax tree and returns its canonical source.
	// A schema violation yields a decode error and a rendering failure a
	// print error.
	Format(encoded []byte) (string, error)

	// ResolveVariableType returns the encoded type of the variable named
	// varName, or the encoded UnresolvedType when it cannot be determined.
	ResolveVariableType(unit SourceUnit, varName string) ([]byte, error)
}
