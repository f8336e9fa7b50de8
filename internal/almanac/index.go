package almanac

import (
	"fmt"

	"github.com/go-ricrob/almanac/internal/partmap"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

const numIndexPart = 64

type boundary struct {
	stage int
	value uint64
}

// Index maps, per stage, every range's destination start to its source
// start. Only boundary values are indexed, so lookups are exact only for
// chains refined with RefineChain.
type Index struct {
	numStage int
	table    *partmap.Map[boundary, uint64]
	finals   []uint64 // sorted distinct destination starts of the last stage
}

// BuildIndex indexes refined stages. Stages are indexed concurrently.
// A zero length range is rejected, it cannot come out of refinement.
func BuildIndex(stages []Stage) (*Index, error) {
	size := 0
	for _, s := range stages {
		size += len(s.Ranges)
	}
	ix := &Index{
		numStage: len(stages),
		table:    partmap.New[boundary, uint64](numIndexPart, size/numIndexPart+1),
	}

	var g errgroup.Group
	for i, s := range stages {
		g.Go(func() error {
			for _, r := range s.Ranges {
				if r.Length == 0 {
					return fmt.Errorf("stage %d (%s): %w at %d", i, s.Name, ErrDegenerateRange, r.SourceStart)
				}
				ix.table.Add(boundary{stage: i, value: r.DestinationStart}, r.SourceStart)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(stages) > 0 {
		ix.finals = cuts(stages[len(stages)-1].Ranges, destinationSide)
	}
	return ix, nil
}

// Trace walks value backwards from the last stage to the first through
// boundary correspondences and returns the first stage's source value.
// When several ranges of a stage share a destination start every
// candidate is followed.
func (ix *Index) Trace(value uint64) (uint64, bool) {
	return ix.trace(ix.numStage-1, value)
}

func (ix *Index) trace(stage int, value uint64) (uint64, bool) {
	if stage < 0 {
		return value, true
	}
	sources, ok := ix.table.Load(boundary{stage: stage, value: value})
	if !ok {
		return 0, false
	}
	for _, src := range sources {
		if seed, ok := ix.trace(stage-1, src); ok {
			return seed, true
		}
	}
	return 0, false
}

// IsReachable reports whether value, a destination of the last stage, traces
// back through every stage.
func (ix *Index) IsReachable(value uint64) bool {
	if ix.numStage == 0 {
		return false
	}
	_, ok := ix.Trace(value)
	return ok
}

// Boundaries returns the sorted destination starts of the last stage.
func (ix *Index) Boundaries() []uint64 { return slices.Clone(ix.finals) }

// FindMinimumReachable returns the lowest last-stage boundary that is reachable.
func (ix *Index) FindMinimumReachable() (uint64, error) {
	for _, v := range ix.finals {
		if ix.IsReachable(v) {
			return v, nil
		}
	}
	return 0, ErrUnreachable
}
