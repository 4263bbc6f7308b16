package formulex

import "strconv"

// DefaultMaxDepth bounds recursion in Parse and Format when no MaxDepth
// option is applied.
const DefaultMaxDepth = 256

// Option is an option for parsing and formatting.
type Option interface {
	option(config) config
}

// config holds general data for parsing and formatting.
type config struct {
	// maxDepth is the recursion bound. Zero means unbounded, which is only
	// available internally.
	maxDepth int
}

func defaultConfig() config {
	return config{maxDepth: DefaultMaxDepth}
}

type depthopt int

// MaxDepth sets the recursion bound for Parse and Format, guarding the call
// stack against deeply nested input. Reaching the bound produces a
// *NestingOverflowError. Panics if n is less than 1.
func MaxDepth(n int) Option {
	if n < 1 {
		panic("formulex: max depth must be at least 1, not " + strconv.Itoa(n))
	}
	return depthopt(n)
}

func (o depthopt) option(c config) config {
	c.maxDepth = int(o)
	return c
}
