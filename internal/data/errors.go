package data

import "errors"

var (
	// ErrBadData marks an evaluated-data record the core refuses to carry:
	// non-monotone grids, mismatched array lengths, multi-region (NR > 1)
	// tabulated functions, discrete photon lines in continuous tables.
	ErrBadData = errors.New("bad evaluated data")

	// ErrUnsupportedLaw marks a secondary-energy law the sampler recognizes
	// but does not model (laws 5 and 67).
	ErrUnsupportedLaw = errors.New("unsupported energy distribution law")
)
