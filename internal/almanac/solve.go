package almanac

import (
	"context"
	"runtime"
	"sync"
)

const numCh = 1000

// DefaultWorkers is the worker count used by Part1 when none is given.
var DefaultWorkers = runtime.NumCPU()

// Part1 returns the lowest value any seed evaluates to. Seeds are evaluated
// on numWorker goroutines, each reducing its share to a local minimum.
func Part1(ctx context.Context, c *Chain, numWorker int) (uint64, error) {
	if len(c.Seeds) == 0 {
		return 0, ErrNoSeeds
	}
	if numWorker < 1 {
		numWorker = DefaultWorkers
	}
	numWorker = min(numWorker, len(c.Seeds))

	seedCh := make(chan uint64, min(numCh, len(c.Seeds)))
	resultCh := make(chan uint64, numWorker)

	wg := new(sync.WaitGroup)
	wg.Add(numWorker)
	for i := 0; i < numWorker; i++ {
		go func() {
			defer wg.Done()
			lowest, seen := uint64(0), false
			for seed := range seedCh {
				if v := c.Evaluate(seed); !seen || v < lowest {
					lowest, seen = v, true
				}
			}
			if seen {
				resultCh <- lowest
			}
		}()
	}

	var err error
feed:
	for _, seed := range c.Seeds {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case seedCh <- seed:
		}
	}
	close(seedCh)
	wg.Wait()
	close(resultCh)

	if err != nil {
		return 0, err
	}
	lowest, seen := uint64(0), false
	for v := range resultCh {
		if !seen || v < lowest {
			lowest, seen = v, true
		}
	}
	return lowest, nil
}

// Refinement describes a run of the part 2 pipeline.
type Refinement struct {
	Passes int
	Before []int // ranges per stage after expansion
	After  []int // ranges per stage after refinement
}

// Reachability builds the reachability index over the seed ranges followed by
// the expanded stages of c.
func (c *Chain) Reachability(maxPasses int) (*Index, Refinement, error) {
	var ref Refinement

	seeds, err := c.SeedStage()
	if err != nil {
		return nil, ref, err
	}
	expanded, err := ExpandAll(c.Stages, MaxDomain)
	if err != nil {
		return nil, ref, err
	}
	// the seed stage is not expanded
	stages := append([]Stage{seeds}, expanded...)
	ref.Before = RangeCounts(stages)

	refined, passes, err := RefineChain(stages, maxPasses)
	ref.Passes = passes
	if err != nil {
		return nil, ref, err
	}
	ref.After = RangeCounts(refined)

	ix, err := BuildIndex(refined)
	if err != nil {
		return nil, ref, err
	}
	return ix, ref, nil
}

// Part2 returns the lowest final value reachable from the seed ranges.
func Part2(c *Chain, maxPasses int) (uint64, error) {
	ix, _, err := c.Reachability(maxPasses)
	if err != nil {
		return 0, err
	}
	return ix.FindMinimumReachable()
}
