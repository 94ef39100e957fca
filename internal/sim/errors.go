package sim

import "errors"

var (
	// ErrInvalidState indicates a particle position became NaN or Inf.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

	// ErrInvalidRun indicates a headless run with no frames or a bad timestep.
	ErrInvalidRun = errors.New("sim: invalid run configuration")
)
