package mesh

import "errors"

// Generation errors. Generators wrap one of these so callers can tell failures apart with errors.Is.
var (
	ErrInvalidGeometry  = errors.New("invalid geometry")
	ErrDegenerateSample = errors.New("degenerate sample")
	ErrInvalidParameter = errors.New("invalid parameter")
)
