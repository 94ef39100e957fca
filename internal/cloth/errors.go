package cloth

import "errors"

// Construction errors. The per-frame engine itself never fails.
var (
	// ErrInvalidGrid indicates a grid with fewer than one column or row.
	ErrInvalidGrid = errors.New("cloth: grid needs at least one column and one row")

	// ErrInvalidSpacing indicates a non-positive particle spacing.
	ErrInvalidSpacing = errors.New("cloth: spacing must be positive")
)
