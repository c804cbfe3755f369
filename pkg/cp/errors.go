package cp

import "errors"

var (
	// ErrNonPositiveAmount is returned when an amount that must be strictly
	// positive is zero or negative.
	ErrNonPositiveAmount = errors.New("cp: amount must be positive")
	// ErrBisectionDidNotConverge is returned when exact-output bisection
	// exhausts its iteration budget without bracketing the target.
	ErrBisectionDidNotConverge = errors.New("cp: exact-output bisection did not converge")
)
