// Package fluxbridge exposes the Flux compiler frontend to hosts that can only
// exchange serialized values.
//
// Three stateless operations cross the boundary: parsing source into an
// encoded syntax tree, printing an encoded tree back to canonical source, and
// looking up the inferred type of a variable. The frontend itself is reached
// through the Parser, Printer and TypeFinder interfaces; this module holds no
// parsing, printing or inference logic of its own.
package fluxbridge
