// Package solver runs the almanac puzzle parts for a parsed chain.
package solver

import (
	"context"
	"time"

	"github.com/go-ricrob/almanac/internal/almanac"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Part selects a puzzle part.
type Part int

// Parts.
const (
	Part1 Part = 1
	Part2 Part = 2
)

// Runner runs the selected parts.
type Runner interface {
	Run(ctx context.Context) (Resulter, error)
}

var _ Runner = (*solver)(nil)

type solver struct {
	chain *almanac.Chain
	opts  *Options
}

// New returns a runner for chain. A nil opts selects DefaultOptions.
func New(chain *almanac.Chain, opts *Options) Runner {
	if opts == nil {
		opts = DefaultOptions()
	}
	o := *opts
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return &solver{chain: chain, opts: &o}
}

// Run solves the selected parts concurrently. The first failing part cancels
// the other one.
func (s *solver) Run(ctx context.Context) (Resulter, error) {
	res := newResult()
	g, ctx := errgroup.WithContext(ctx)

	solve := func(p Part, run func() (uint64, error)) {
		if !s.opts.has(p) {
			return
		}
		g.Go(func() error {
			start := time.Now()
			v, err := run()
			if err != nil {
				return &PartError{Part: p, Err: err}
			}
			elapsed := time.Since(start)
			res.set(p, v, elapsed)
			s.opts.Logger.Info("part solved",
				zap.Int("part", int(p)),
				zap.Uint64("answer", v),
				zap.Duration("elapsed", elapsed))
			return nil
		})
	}

	solve(Part1, func() (uint64, error) { return almanac.Part1(ctx, s.chain, s.opts.Workers) })
	solve(Part2, s.part2)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *solver) part2() (uint64, error) {
	log := s.opts.Logger
	ix, ref, err := s.chain.Reachability(s.opts.MaxRefinePasses)
	if err != nil {
		log.Debug("refinement failed", zap.Int("passes", ref.Passes), zap.Error(err))
		return 0, err
	}
	log.Debug("chain refined",
		zap.Int("passes", ref.Passes),
		zap.Ints("before", ref.Before),
		zap.Ints("after", ref.After))

	v, err := ix.FindMinimumReachable()
	if err != nil {
		return 0, err
	}
	return v, nil
}
