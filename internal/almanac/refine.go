package almanac

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// DefaultMaxRefinePasses bounds RefineChain when the caller passes no limit.
const DefaultMaxRefinePasses = 10000

// RefinePair splits the ranges of two adjacent stages so that every
// destination start of from is a source start of to and vice versa.
// from comes back sorted by destination start, to by source start.
// Both results describe the same functions as their inputs.
func RefinePair(from, to []Range) (newFrom, newTo []Range) {
	fromCuts := cuts(from, destinationSide)
	toCuts := cuts(to, sourceSide)
	return splitAll(from, toCuts, destinationSide), splitAll(to, fromCuts, sourceSide)
}

// cuts returns the sorted distinct start values of ranges on side s.
func cuts(ranges []Range, s side) []uint64 {
	points := make([]uint64, 0, len(ranges))
	for _, r := range ranges {
		points = append(points, r.start(s))
	}
	slices.Sort(points)
	return slices.Compact(points)
}

func splitAll(ranges []Range, points []uint64, s side) []Range {
	sorted := slices.Clone(ranges)
	slices.SortStableFunc(sorted, compareBy(s))

	out := make([]Range, 0, len(sorted))
	for _, r := range sorted {
		out = split(out, r, points, s)
	}
	return out
}

// split appends to dst the pieces of r cut at every point strictly inside
// r's span on side s. The source to destination offset is kept per piece.
func split(dst []Range, r Range, points []uint64, s side) []Range {
	if r.Length == 0 {
		return dst
	}
	start := r.start(s)
	end := start + r.Length

	i, found := slices.BinarySearch(points, start)
	if found {
		i++
	}
	prev := start
	for ; i < len(points) && points[i] < end; i++ {
		dst = append(dst, piece(r, prev-start, points[i]-prev))
		prev = points[i]
	}
	return append(dst, piece(r, prev-start, end-prev))
}

func piece(r Range, offset, length uint64) Range {
	return Range{
		DestinationStart: r.DestinationStart + offset,
		SourceStart:      r.SourceStart + offset,
		Length:           length,
	}
}

// RefineChain applies RefinePair to every adjacent pair of stages, left to
// right, until a full pass leaves every range count unchanged. It returns the
// refined stages and the number of passes run, including the final stable one.
// A maxPasses below one selects DefaultMaxRefinePasses.
func RefineChain(stages []Stage, maxPasses int) ([]Stage, int, error) {
	if maxPasses < 1 {
		maxPasses = DefaultMaxRefinePasses
	}
	refined := slices.Clone(stages)

	for pass := 1; pass <= maxPasses; pass++ {
		changed := false
		for i := 0; i+1 < len(refined); i++ {
			from, to := refined[i].Ranges, refined[i+1].Ranges
			newFrom, newTo := RefinePair(from, to)
			if len(newFrom) != len(from) {
				refined[i].Ranges = newFrom
				changed = true
			}
			if len(newTo) != len(to) {
				refined[i+1].Ranges = newTo
				changed = true
			}
		}
		if !changed {
			return refined, pass, nil
		}
	}
	return nil, maxPasses, fmt.Errorf("%w after %d passes", ErrRefinementDiverged, maxPasses)
}

// RangeCounts returns the number of ranges per stage.
func RangeCounts(stages []Stage) []int {
	counts := make([]int, len(stages))
	for i, s := range stages {
		counts[i] = len(s.Ranges)
	}
	return counts
}
