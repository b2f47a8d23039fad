package config

import (
	"errors"
	"fmt"
)

// Table is a piecewise-constant function over a viewport dimension.
// Breakpoints are inclusive upper bounds in ascending order; Values has one
// more entry than Breakpoints, the last one covering everything above the
// final breakpoint.
type Table struct {
	Breakpoints []float64 `yaml:"breakpoints"`
	Values      []float64 `yaml:"values"`
}

// Lookup returns the value of the first bucket whose breakpoint is >= x.
// Anything at or below the first breakpoint, including zero and negative
// input, lands in the first bucket.
func (t Table) Lookup(x float64) float64 {
	for i, bp := range t.Breakpoints {
		if x <= bp {
			return t.Values[i]
		}
	}
	return t.Values[len(t.Values)-1]
}

// Validate reports a table whose shape Lookup cannot serve.
func (t Table) Validate() error {
	if len(t.Values) == 0 {
		return errors.New("no values")
	}
	if len(t.Values) != len(t.Breakpoints)+1 {
		return fmt.Errorf("want %d values for %d breakpoints, got %d",
			len(t.Breakpoints)+1, len(t.Breakpoints), len(t.Values))
	}
	for i := 1; i < len(t.Breakpoints); i++ {
		if t.Breakpoints[i] <= t.Breakpoints[i-1] {
			return fmt.Errorf("breakpoints not ascending at index %d", i)
		}
	}
	return nil
}
