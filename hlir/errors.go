package hlir

import "errors"

var (
	// ErrNaming covers duplicate definitions and unresolved references.
	ErrNaming = errors.New("naming error")
	// ErrUnsupported is returned for constructs lowering does not handle.
	ErrUnsupported = errors.New("not supported")
)
