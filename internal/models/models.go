package models

import "encoding/json"

// Value is the closed set of dynamic value kinds that can appear in a
// document: null, boolean, number, string, list, or map. Exactly one
// concrete type implements each kind, so a type switch over Value is
// exhaustive.
type Value interface {
	isValue()
}

// Null represents a JSON null.
type Null struct{}

// Bool represents a boolean value.
type Bool bool

// Number represents a numeric value kept as its decimal text form, so
// integers and decimals round-trip without floating-point drift.
// json.Number values convert directly.
type Number string

// String represents a textual value.
type String string

// List represents an ordered sequence of values.
type List []Value

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Number) isValue() {}
func (String) isValue() {}
func (List) isValue()   {}
func (*Map) isValue()   {}

// Map is an insertion-ordered mapping from attribute name to Value.
// Go's built-in maps iterate in random order, so key order is carried
// explicitly in a pair slice.
type Map struct {
	pairs []Pair
	index map[string]int
}

// Pair is one key/value entry of a Map.
type Pair struct {
	Key   string
	Value Value
}

// NewMap creates an empty ordered map.
func NewMap() *Map {
	return &Map{index: make(map[string]int)}
}

// MapOf creates an ordered map from the given pairs, in order. A repeated
// key overwrites the earlier value but keeps the earlier position.
func MapOf(pairs ...Pair) *Map {
	m := NewMap()
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return m
}

// Set adds or replaces the value for key. A new key is appended after all
// existing keys; an existing key keeps its position.
func (m *Map) Set(key string, value Value) {
	if i, ok := m.index[key]; ok {
		m.pairs[i].Value = value
		return
	}
	m.index[key] = len(m.pairs)
	m.pairs = append(m.pairs, Pair{Key: key, Value: value})
}

// Get returns the value for key and whether it is present.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return nil, false
	}
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.pairs[i].Value, true
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.pairs)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.pairs))
	for i, p := range m.pairs {
		keys[i] = p.Key
	}
	return keys
}

// Pairs returns the entries in insertion order. The returned slice is
// shared with the map and must not be modified.
func (m *Map) Pairs() []Pair {
	if m == nil {
		return nil
	}
	return m.pairs
}

// Document is the root of a conversion: an ordered mapping from top-level
// attribute name to its dynamic value.
type Document = Map

// NumberFromJSON converts a json.Number (produced by a decoder with
// UseNumber enabled) into a Number, preserving its exact decimal text.
func NumberFromJSON(n json.Number) Number {
	return Number(n.String())
}

// Result holds the output of one marshalling run: the encoded item and
// the maximum container-nesting depth observed for each top-level
// attribute. Both are written once and never mutated afterwards.
type Result struct {
	Item            *Item
	AttributeLevels map[string]int
}
