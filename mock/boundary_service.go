package mock

import (
	"fmt"

	"github.com/influxdata/fluxbridge"
)

var _ fluxbridge.BoundaryService = (*BoundaryService)(nil)

// BoundaryService is a mock implementation of fluxbridge.BoundaryService.
type BoundaryService struct {
	ParseFn               func(unit fluxbridge.SourceUnit) ([]byte, error)
	FormatFn              func(encoded []byte) (string, error)
	ResolveVariableTypeFn func(unit fluxbridge.SourceUnit, varName string) ([]byte, error)
}

// NewBoundaryService returns a mock BoundaryService where its methods will
// return errors.
func NewBoundaryService() *BoundaryService {
	return &BoundaryService{
		ParseFn: func(fluxbridge.SourceUnit) ([]byte, error) {
			return nil, fmt.Errorf("not implemented")
		},
		FormatFn: func([]byte) (string, error) {
			return "", fmt.Errorf("not implemented")
		},
		ResolveVariableTypeFn: func(fluxbridge.SourceUnit, string) ([]byte, error) {
			return nil, fmt.Errorf("not implemented")
		},
	}
}

func (s *BoundaryService) Parse(unit fluxbridge.SourceUnit) ([]byte, error) {
	return s.ParseFn(unit)
}

func (s *BoundaryService) Format(encoded []byte) (string, error) {
	return s.FormatFn(encoded)
}

func (s *BoundaryService) ResolveVariableType(unit fluxbridge.SourceUnit, varName string) ([]byte, error) {
	return s.ResolveVariableTypeFn(unit, varName)
}
