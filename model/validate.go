package model

import (
	"fmt"
	"math"
)

// checker accumulates the first validation failure of one entity.
type checker struct {
	path string
	err  *fieldError
}

func (c *checker) fail(name, message string) {
	if c.err == nil {
		c.err = &fieldError{field: joinPath(c.path, name), message: message}
	}
}

func (c *checker) nested(err *fieldError) {
	if c.err == nil && err != nil {
		c.err = err
	}
}

func (c *checker) required(name, v string) {
	if v == "" {
		c.fail(name, "must not be empty")
	}
}

func (c *checker) positive(name string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		c.fail(name, "must be greater than 0")
	}
}

func (c *checker) positiveOpt(name string, v Opt[float64]) {
	if f, ok := v.Get(); ok {
		c.positive(name, f)
	}
}

func (c *checker) nonNegativeOpt(name string, v Opt[float64]) {
	if f, ok := v.Get(); ok && (math.IsNaN(f) || math.IsInf(f, 0) || f < 0) {
		c.fail(name, "must not be negative")
	}
}

func (c *checker) atLeastOne(name string, v int) {
	if v < 1 {
		c.fail(name, fmt.Sprintf("must be at least 1, got %d", v))
	}
}

func (c *checker) atLeastOneOpt(name string, v Opt[int]) {
	if n, ok := v.Get(); ok {
		c.atLeastOne(name, n)
	}
}

func (c *checker) oneOf(name, v string, allowed ...string) {
	for _, a := range allowed {
		if v == a {
			return
		}
	}
	c.fail(name, fmt.Sprintf("must be one of %v, got %q", allowed, v))
}
