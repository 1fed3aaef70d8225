package fluxbridge

// SourceUnit is a piece of Flux source text together with the file name used
// to label its positions and diagnostics.
//
// The file name is never validated. The empty string is the default and is a
// legal name.
type SourceUnit struct {
	Source   string
	FileName string
}

// NewSourceUnit returns a unit with an empty file name.
func NewSourceUnit(source string) SourceUnit {
	return SourceUnit{Source: source}
}
