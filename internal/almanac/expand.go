package almanac

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Expand returns a copy of stage whose ranges tile [0, limit) exactly, sorted
// by source start. Gaps are filled with identity ranges and zero length
// ranges are dropped.
func Expand(stage Stage, limit uint64) (Stage, error) {
	sorted := slices.Clone(stage.Ranges)
	slices.SortStableFunc(sorted, compareBy(sourceSide))

	ranges := make([]Range, 0, 2*len(sorted)+1)
	var current uint64
	for _, r := range sorted {
		if r.Length == 0 {
			continue
		}
		if r.SourceStart < current {
			return Stage{}, fmt.Errorf("%s: %w: %v starts before %d", stage.Name, ErrOverlappingRanges, r, current)
		}
		if err := r.checkBounds(); err != nil {
			return Stage{}, fmt.Errorf("%s: %w", stage.Name, err)
		}
		if r.SourceEnd() > limit {
			return Stage{}, fmt.Errorf("%s: %w: %v past %d", stage.Name, ErrRangeOverflow, r, limit)
		}
		if r.SourceStart > current {
			ranges = append(ranges, Identity(current, r.SourceStart-current))
		}
		ranges = append(ranges, r)
		current = r.SourceEnd()
	}
	if current < limit {
		ranges = append(ranges, Identity(current, limit-current))
	}

	stage.Ranges = ranges
	return stage, nil
}

// ExpandAll expands every stage against the same limit.
func ExpandAll(stages []Stage, limit uint64) ([]Stage, error) {
	expanded := make([]Stage, len(stages))
	for i, s := range stages {
		e, err := Expand(s, limit)
		if err != nil {
			return nil, err
		}
		expanded[i] = e
	}
	return expanded, nil
}
