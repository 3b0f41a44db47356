package models

import "errors"

// Engine error kinds. Upstream fetch failures are propagated from the
// provider client as-is and are not wrapped in either of these.
var (
	// ErrInsufficientData means the series is shorter than the minimum a
	// computation requires (e.g. fewer than 2*period points for decomposition).
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidParameter means an out-of-range argument such as a
	// non-positive horizon or a confidence level outside (0,1).
	ErrInvalidParameter = errors.New("invalid parameter")
)
