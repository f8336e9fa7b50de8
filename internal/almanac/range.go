// Package almanac implements chains of interval maps: forward evaluation of single
// values and, after boundary refinement, the lowest destination reachable from a set
// of seed ranges.
package almanac

import (
	"cmp"
	"fmt"
	"math"
	"math/bits"
)

// MaxDomain is the exclusive upper bound of the value domain used by Expand.
// A length of 2^64 is not representable, so the value math.MaxUint64 itself
// is never covered by an expanded stage.
const MaxDomain uint64 = math.MaxUint64

// Range maps [SourceStart, SourceStart+Length) onto
// [DestinationStart, DestinationStart+Length).
type Range struct {
	DestinationStart uint64
	SourceStart      uint64
	Length           uint64
}

// Identity returns a range mapping [start, start+length) onto itself.
func Identity(start, length uint64) Range {
	return Range{DestinationStart: start, SourceStart: start, Length: length}
}

// SourceEnd returns the exclusive end of the source span.
func (r Range) SourceEnd() uint64 { return r.SourceStart + r.Length }

// DestinationEnd returns the exclusive end of the destination span.
func (r Range) DestinationEnd() uint64 { return r.DestinationStart + r.Length }

// Contains reports whether v lies in the source span.
func (r Range) Contains(v uint64) bool {
	return v >= r.SourceStart && v-r.SourceStart < r.Length
}

// Map translates a source value of r to its destination value.
func (r Range) Map(v uint64) uint64 { return r.DestinationStart + (v - r.SourceStart) }

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)->[%d,%d)", r.SourceStart, r.SourceEnd(), r.DestinationStart, r.DestinationEnd())
}

// checkBounds returns ErrRangeOverflow if either span ends past the domain.
func (r Range) checkBounds() error {
	if _, carry := bits.Add64(r.SourceStart, r.Length, 0); carry != 0 {
		return fmt.Errorf("%w: source %d+%d", ErrRangeOverflow, r.SourceStart, r.Length)
	}
	if _, carry := bits.Add64(r.DestinationStart, r.Length, 0); carry != 0 {
		return fmt.Errorf("%w: destination %d+%d", ErrRangeOverflow, r.DestinationStart, r.Length)
	}
	return nil
}

// side selects which span of a range a refinement step looks at.
type side int

const (
	sourceSide side = iota
	destinationSide
)

func (r Range) start(s side) uint64 {
	if s == destinationSide {
		return r.DestinationStart
	}
	return r.SourceStart
}

func compareBy(s side) func(a, b Range) int {
	return func(a, b Range) int { return cmp.Compare(a.start(s), b.start(s)) }
}

// Stage is a partial function between two categories. Values outside every
// range map to themselves.
type Stage struct {
	Name   string // header label, e.g. "seed-to-soil"
	From   string // source category, empty if the label has no "-to-"
	To     string // destination category
	Ranges []Range
}

// Lookup maps v through the first range containing it.
func (s Stage) Lookup(v uint64) uint64 {
	for _, r := range s.Ranges {
		if r.Contains(v) {
			return r.Map(v)
		}
	}
	return v
}

// Chain is the parsed puzzle: seed numbers and the ordered stages.
type Chain struct {
	Seeds  []uint64
	Stages []Stage
}

// Evaluate maps v through every stage in order.
func (c *Chain) Evaluate(v uint64) uint64 {
	for _, s := range c.Stages {
		v = s.Lookup(v)
	}
	return v
}

// SeedStage interprets the seeds as start/length pairs and returns them as an
// identity stage over the seed ranges.
func (c *Chain) SeedStage() (Stage, error) {
	if len(c.Seeds) == 0 {
		return Stage{}, ErrNoSeeds
	}
	if len(c.Seeds)%2 != 0 {
		return Stage{}, fmt.Errorf("%w: %d numbers", ErrOddSeedCount, len(c.Seeds))
	}
	stage := Stage{Name: "seeds", To: "seed", Ranges: make([]Range, 0, len(c.Seeds)/2)}
	for i := 0; i < len(c.Seeds); i += 2 {
		r := Identity(c.Seeds[i], c.Seeds[i+1])
		if r.Length == 0 {
			continue
		}
		if err := r.checkBounds(); err != nil {
			return Stage{}, fmt.Errorf("seed range %d: %w", i/2, err)
		}
		stage.Ranges = append(stage.Ranges, r)
	}
	return stage, nil
}
