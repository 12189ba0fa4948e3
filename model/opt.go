package model

// Opt holds an optional value and remembers whether it was set.
//
// The zero Opt is unset. An Opt set to the zero value of T (0, false, "")
// is still set and is serialized; an unset Opt is omitted from the payload.
type Opt[T any] struct {
	value T
	set   bool
}

// Some returns an Opt holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{value: v, set: true}
}

// None returns an unset Opt.
func None[T any]() Opt[T] {
	return Opt[T]{}
}

// IsSet reports whether a value was provided.
func (o Opt[T]) IsSet() bool { return o.set }

// Get returns the value and whether it was set.
func (o Opt[T]) Get() (T, bool) { return o.value, o.set }

// Value returns the value, or the zero value of T when unset.
func (o Opt[T]) Value() T { return o.value }

// OrElse returns the value, or fallback when unset.
func (o Opt[T]) OrElse(fallback T) T {
	if o.set {
		return o.value
	}
	return fallback
}
