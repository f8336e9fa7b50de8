package almanac

import "errors"

// Parse errors.
var (
	ErrMissingSeeds    = errors.New("missing seeds line")
	ErrMalformedHeader = errors.New("malformed map header")
	ErrMalformedRange  = errors.New("malformed range")
	ErrNoStages        = errors.New("no maps")
	ErrBrokenChain     = errors.New("maps do not link")
)

// Domain errors.
var (
	ErrRangeOverflow      = errors.New("range exceeds the value domain")
	ErrOverlappingRanges  = errors.New("overlapping ranges")
	ErrDegenerateRange    = errors.New("zero length range")
	ErrRefinementDiverged = errors.New("refinement did not reach a fixpoint")
	ErrUnreachable        = errors.New("no reachable destination")
	ErrNoSeeds            = errors.New("no seeds")
	ErrOddSeedCount       = errors.New("seeds do not form start/length pairs")
)
