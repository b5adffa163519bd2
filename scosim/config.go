package scosim

import "fmt"

// Config is an ordered vector of length d >= 1, indexing dimensions 1..d
// (stored 0-indexed; Get and Set take a 1-indexed dimension, ToSlice is
// 0-indexed). Ported from original_source's config.rs.
type Config[T Number] struct {
	vals []T
}

// NewConfig builds a Config from an explicit slice of values.
func NewConfig[T Number](vals []T) Config[T] {
	cp := make([]T, len(vals))
	copy(cp, vals)
	return Config[T]{vals: cp}
}

// EmptyConfig returns a zero-length configuration.
func EmptyConfig[T Number]() Config[T] {
	return Config[T]{vals: nil}
}

// SingleConfig returns a 1-dimensional configuration.
func SingleConfig[T Number](v T) Config[T] {
	return Config[T]{vals: []T{v}}
}

// RepeatConfig returns a d-dimensional configuration with every entry set to v.
func RepeatConfig[T Number](v T, d int) Config[T] {
	vals := make([]T, d)
	for i := range vals {
		vals[i] = v
	}
	return Config[T]{vals: vals}
}

// D returns the number of dimensions.
func (c Config[T]) D() int { return len(c.vals) }

// Get returns the value at 1-indexed dimension k.
func (c Config[T]) Get(k int) T { return c.vals[k-1] }

// Set mutates the value at 1-indexed dimension k.
func (c *Config[T]) Set(k int, v T) { c.vals[k-1] = v }

// ToSlice returns a defensive copy of the underlying values, 0-indexed.
func (c Config[T]) ToSlice() []T {
	cp := make([]T, len(c.vals))
	copy(cp, c.vals)
	return cp
}

// Push appends a new dimension.
func (c Config[T]) Push(v T) Config[T] {
	return Config[T]{vals: append(append([]T{}, c.vals...), v)}
}

// Total sums all dimensions.
func (c Config[T]) Total() T {
	var sum T
	for _, v := range c.vals {
		sum += v
	}
	return sum
}

// Add performs pointwise addition; panics on dimension mismatch.
func (c Config[T]) Add(o Config[T]) Config[T] {
	c.mustMatch(o)
	out := make([]T, len(c.vals))
	for i := range out {
		out[i] = c.vals[i] + o.vals[i]
	}
	return Config[T]{vals: out}
}

// Sub performs pointwise subtraction; panics on dimension mismatch.
func (c Config[T]) Sub(o Config[T]) Config[T] {
	c.mustMatch(o)
	out := make([]T, len(c.vals))
	for i := range out {
		out[i] = c.vals[i] - o.vals[i]
	}
	return Config[T]{vals: out}
}

// Dot computes the inner product (used by the Rust impl's Mul-as-dot-product).
func (c Config[T]) Dot(o Config[T]) T {
	c.mustMatch(o)
	var sum T
	for i := range c.vals {
		sum += c.vals[i] * o.vals[i]
	}
	return sum
}

// Scale multiplies every dimension by a scalar (applies to float configs;
// integral configs scale through FromFloat64/ToFloat64 at call sites).
func (c Config[T]) Scale(s float64) Config[T] {
	out := make([]T, len(c.vals))
	for i, v := range c.vals {
		out[i] = FromFloat64[T](ToFloat64(v) * s)
	}
	return Config[T]{vals: out}
}

func (c Config[T]) mustMatch(o Config[T]) {
	if len(c.vals) != len(o.vals) {
		panic(fmt.Sprintf("config dimension mismatch: %d vs %d", len(c.vals), len(o.vals)))
	}
}

// ToFloatConfig converts an integral configuration to a fractional one.
func ToFloatConfig[T Number](c Config[T]) Config[float64] {
	out := make([]float64, c.D())
	for i, v := range c.vals {
		out[i] = ToFloat64(v)
	}
	return NewConfig(out)
}
