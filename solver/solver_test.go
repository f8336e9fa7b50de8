package solver

import (
	"context"
	"errors"
	"testing"

	"github.com/go-ricrob/almanac/internal/almanac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const example = `seeds: 79 14 55 13

seed-to-soil map:
50 98 2
52 50 48

soil-to-fertilizer map:
0 15 37
37 52 2
39 0 15

fertilizer-to-water map:
49 53 8
0 11 42
42 0 7
57 7 4

water-to-light map:
88 18 7
18 25 70

light-to-temperature map:
45 77 23
81 45 19
68 64 13

temperature-to-humidity map:
0 69 1
1 0 69

humidity-to-location map:
60 56 37
56 93 4
`

func parseExample(t *testing.T) *almanac.Chain {
	t.Helper()
	c, err := almanac.ParseString(example)
	require.NoError(t, err)
	return c
}

func TestSolver(t *testing.T) {
	defer goleak.VerifyNone(t)

	core, logs := observer.New(zap.DebugLevel)
	opts := DefaultOptions()
	opts.Workers = 2
	opts.Logger = zap.New(core)

	res, err := New(parseExample(t), opts).Run(context.Background())
	require.NoError(t, err)

	v, ok := res.Answer(Part1)
	require.True(t, ok)
	assert.Equal(t, uint64(35), v)

	v, ok = res.Answer(Part2)
	require.True(t, ok)
	assert.Equal(t, uint64(46), v)

	assert.Equal(t, 1, logs.FilterMessage("chain refined").Len())

	solved := logs.FilterMessage("part solved").FilterLevelExact(zap.InfoLevel).All()
	require.Len(t, solved, 2)
	answers := map[int64]uint64{}
	for _, entry := range solved {
		fields := entry.ContextMap()
		answers[fields["part"].(int64)] = fields["answer"].(uint64)
	}
	assert.Equal(t, map[int64]uint64{1: 35, 2: 46}, answers)
}

func TestSolverSinglePart(t *testing.T) {
	opts := &Options{Parts: []Part{Part2}}

	res, err := New(parseExample(t), opts).Run(context.Background())
	require.NoError(t, err)

	_, ok := res.Answer(Part1)
	assert.False(t, ok)
	v, ok := res.Answer(Part2)
	require.True(t, ok)
	assert.Equal(t, uint64(46), v)
}

func TestSolverPartError(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := parseExample(t)
	c.Seeds = c.Seeds[:3]

	_, err := New(c, nil).Run(context.Background())
	require.Error(t, err)

	var pe *PartError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, Part2, pe.Part)
	assert.ErrorIs(t, err, almanac.ErrOddSeedCount)
}

func TestSolverPassLimit(t *testing.T) {
	opts := &Options{Parts: []Part{Part2}, MaxRefinePasses: 1}

	_, err := New(parseExample(t), opts).Run(context.Background())
	assert.ErrorIs(t, err, almanac.ErrRefinementDiverged)
}
