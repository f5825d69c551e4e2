package connector

import (
	"iter"

	"github.com/rs/zerolog"
)

const redactedValue = "******"

// Property is a single key/value entry. Value is a string, int64 or bool.
type Property struct {
	Key   string
	Value any
}

// Properties is an insertion-ordered property set handed to a connection
// factory. It is built fresh per request and is not safe for concurrent
// mutation.
type Properties struct {
	entries []Property
	index   map[string]int
}

// NewProperties returns an empty property set.
func NewProperties() *Properties {
	return &Properties{index: make(map[string]int)}
}

// SetString sets key to a string value.
func (p *Properties) SetString(key, v string) { p.set(key, v) }

// SetInt64 sets key to an integer value.
func (p *Properties) SetInt64(key string, v int64) { p.set(key, v) }

// SetBool sets key to a boolean value.
func (p *Properties) SetBool(key string, v bool) { p.set(key, v) }

// set replaces an existing entry in place, keeping its position.
func (p *Properties) set(key string, v any) {
	if p.index == nil {
		p.index = make(map[string]int)
	}
	if i, ok := p.index[key]; ok {
		p.entries[i].Value = v
		return
	}
	p.index[key] = len(p.entries)
	p.entries = append(p.entries, Property{Key: key, Value: v})
}

// Get returns the raw value stored under key.
func (p *Properties) Get(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	i, ok := p.index[key]
	if !ok {
		return nil, false
	}
	return p.entries[i].Value, true
}

// String returns the value under key if it is a string.
func (p *Properties) String(key string) (string, bool) {
	v, ok := p.Get(key)
	s, isStr := v.(string)
	return s, ok && isStr
}

// Int64 returns the value under key if it is an int64.
func (p *Properties) Int64(key string) (int64, bool) {
	v, ok := p.Get(key)
	n, isInt := v.(int64)
	return n, ok && isInt
}

// Bool returns the value under key if it is a bool.
func (p *Properties) Bool(key string) (bool, bool) {
	v, ok := p.Get(key)
	b, isBool := v.(bool)
	return b, ok && isBool
}

// Has reports whether key is present.
func (p *Properties) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Len returns the number of entries.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}

// Keys returns the keys in insertion order.
func (p *Properties) Keys() []string {
	keys := make([]string, 0, p.Len())
	for k := range p.All() {
		keys = append(keys, k)
	}
	return keys
}

// All iterates over the entries in insertion order.
func (p *Properties) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if p == nil {
			return
		}
		for _, e := range p.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Merge copies every entry of other into p.
func (p *Properties) Merge(other *Properties) {
	for k, v := range other.All() {
		p.set(k, v)
	}
}

// Redacted returns a copy of the entries with passwords masked,
// suitable for display.
func (p *Properties) Redacted() []Property {
	out := make([]Property, 0, p.Len())
	for k, v := range p.All() {
		if secretKeys[k] {
			v = redactedValue
		}
		out = append(out, Property{Key: k, Value: v})
	}
	return out
}

// MarshalZerologObject lets drivers log a property set with passwords masked.
func (p *Properties) MarshalZerologObject(e *zerolog.Event) {
	for _, prop := range p.Redacted() {
		switch v := prop.Value.(type) {
		case string:
			e.Str(prop.Key, v)
		case int64:
			e.Int64(prop.Key, v)
		case bool:
			e.Bool(prop.Key, v)
		default:
			e.Interface(prop.Key, v)
		}
	}
}
