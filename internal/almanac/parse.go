package almanac

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	seedsPrefix  = "seeds:"
	headerSuffix = " map:"
	categorySep  = "-to-"
)

// ParseString parses an almanac held in a string.
func ParseString(s string) (*Chain, error) { return Parse(strings.NewReader(s)) }

// Parse reads a seeds line followed by "<label> map:" sections of
// "destination source length" lines separated by blank lines.
func Parse(r io.Reader) (*Chain, error) {
	scanner := bufio.NewScanner(r)
	c := new(Chain)

	lineNo := 0
	var stage *Stage
	seenSeeds := false

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			stage = nil

		case !seenSeeds:
			seeds, err := parseSeeds(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			c.Seeds = seeds
			seenSeeds = true

		case strings.HasSuffix(line, headerSuffix):
			label := strings.TrimSpace(strings.TrimSuffix(line, headerSuffix))
			if label == "" || strings.ContainsAny(label, " \t") {
				return nil, fmt.Errorf("line %d: %w: %q", lineNo, ErrMalformedHeader, line)
			}
			c.Stages = append(c.Stages, newStage(label))
			stage = &c.Stages[len(c.Stages)-1]

		case stage == nil:
			return nil, fmt.Errorf("line %d: %w: range outside a map: %q", lineNo, ErrMalformedHeader, line)

		default:
			r, err := parseRange(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			stage.Ranges = append(stage.Ranges, r)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if !seenSeeds {
		return nil, ErrMissingSeeds
	}
	if len(c.Stages) == 0 {
		return nil, ErrNoStages
	}
	if err := checkLinks(c.Stages); err != nil {
		return nil, err
	}
	return c, nil
}

func parseSeeds(line string) ([]uint64, error) {
	rest, ok := strings.CutPrefix(line, seedsPrefix)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingSeeds, line)
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no numbers", ErrMissingSeeds)
	}
	seeds := make([]uint64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: seed %q: %w", ErrMissingSeeds, f, err)
		}
		seeds[i] = v
	}
	return seeds, nil
}

func parseRange(line string) (Range, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Range{}, fmt.Errorf("%w: want 3 numbers, got %q", ErrMalformedRange, line)
	}
	var nums [3]uint64
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return Range{}, fmt.Errorf("%w: %q: %w", ErrMalformedRange, f, err)
		}
		nums[i] = v
	}
	r := Range{DestinationStart: nums[0], SourceStart: nums[1], Length: nums[2]}
	if err := r.checkBounds(); err != nil {
		return Range{}, err
	}
	return r, nil
}

func newStage(label string) Stage {
	s := Stage{Name: label}
	if from, to, ok := strings.Cut(label, categorySep); ok && from != "" && to != "" {
		s.From, s.To = from, to
	}
	return s
}

// checkLinks verifies that consecutive stages share a category, but only if
// every label names its categories.
func checkLinks(stages []Stage) error {
	for _, s := range stages {
		if s.From == "" {
			return nil
		}
	}
	for i := 1; i < len(stages); i++ {
		if stages[i-1].To != stages[i].From {
			return fmt.Errorf("%w: %s is followed by %s", ErrBrokenChain, stages[i-1].Name, stages[i].Name)
		}
	}
	return nil
}
