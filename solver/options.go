package solver

import (
	"github.com/go-ricrob/almanac/internal/almanac"
	"go.uber.org/zap"
)

// Options configures a Runner.
type Options struct {
	Parts           []Part      // parts to run, empty means all
	Workers         int         // goroutines evaluating part 1 seeds (0 = one per CPU)
	MaxRefinePasses int         // cap of the part 2 refinement loop
	Logger          *zap.Logger // nil disables logging
}

// DefaultOptions runs both parts with one worker per CPU.
func DefaultOptions() *Options {
	return &Options{
		Parts:           []Part{Part1, Part2},
		MaxRefinePasses: almanac.DefaultMaxRefinePasses,
	}
}

func (o *Options) has(p Part) bool {
	if len(o.Parts) == 0 {
		return true
	}
	for _, q := range o.Parts {
		if q == p {
			return true
		}
	}
	return false
}
