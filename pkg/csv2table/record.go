package csv2table

import "strings"

// Record is one row of input data as an ordered name→value mapping.
// Key order is insertion order; lookups are O(1).
//
// The zero value is an empty record ready for use.
type Record struct {
	keys    []string
	values  []string
	missing []bool
	index   map[string]int
}

// NewRecord builds a record from parallel key and value slices.
// Every key is kept. Keys without a value (a short row) hold no value, so
// Get reports them as missing and the loader binds NULL for them.
func NewRecord(keys, values []string) Record {
	r := Record{
		keys:    make([]string, 0, len(keys)),
		values:  make([]string, 0, len(keys)),
		missing: make([]bool, 0, len(keys)),
		index:   make(map[string]int, len(keys)),
	}
	for i, k := range keys {
		if i < len(values) {
			r.Set(k, values[i])
			continue
		}
		r.setMissing(k)
	}
	return r
}

// Set assigns value to key. A new key is appended; an existing key keeps its position.
func (r *Record) Set(key, value string) {
	i := r.slot(key)
	r.values[i] = value
	r.missing[i] = false
}

// setMissing adds key without a value. An existing key keeps its value.
func (r *Record) setMissing(key string) {
	if _, ok := r.index[key]; ok {
		return
	}
	r.missing[r.slot(key)] = true
}

func (r *Record) slot(key string) int {
	if i, ok := r.index[key]; ok {
		return i
	}
	if r.index == nil {
		r.index = make(map[string]int)
	}
	i := len(r.keys)
	r.index[key] = i
	r.keys = append(r.keys, key)
	r.values = append(r.values, "")
	r.missing = append(r.missing, false)
	return i
}

// Get returns the value stored under key and whether it is present.
func (r Record) Get(key string) (string, bool) {
	i, ok := r.index[key]
	if !ok || r.missing[i] {
		return "", false
	}
	return r.values[i], true
}

// Keys returns the record's keys in order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Values returns the record's values in key order. A key without a value
// reads as the empty string.
func (r Record) Values() []string {
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

// Len returns the number of keys.
func (r Record) Len() int {
	return len(r.keys)
}

// String renders the record as key=value pairs, for logs and error messages.
// A key without a value renders as key=NULL.
func (r Record) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteByte('=')
		if r.missing[i] {
			b.WriteString("NULL")
			continue
		}
		b.WriteString(r.values[i])
	}
	b.WriteByte('}')
	return b.String()
}
