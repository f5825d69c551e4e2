package options

import "go.yaml.in/yaml/v3"

// Optional marks a value that may or may not have been supplied.
// The zero value is absent.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether a value is present.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// OrElse returns the value if present, otherwise def.
func (o Optional[T]) OrElse(def T) T {
	if o.set {
		return o.value
	}
	return def
}

// UnmarshalYAML decodes a present value. yaml leaves explicit nulls and
// missing keys untouched, so both stay absent.
func (o *Optional[T]) UnmarshalYAML(n *yaml.Node) error {
	var v T
	if err := n.Decode(&v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// MarshalYAML emits the value, or null when absent.
func (o Optional[T]) MarshalYAML() (any, error) {
	if !o.set {
		return nil, nil
	}
	return o.value, nil
}
