package store

import "maps"

// Record is a set of typed values for one namespace. Integers cover counters,
// version codes and epoch-millisecond timestamps; booleans cover flags.
type Record struct {
	Ints  map[string]int64 `json:"ints,omitempty" yaml:"ints,omitempty"`
	Bools map[string]bool  `json:"bools,omitempty" yaml:"bools,omitempty"`
}

// NewRecord returns an empty record ready for writes.
func NewRecord() Record {
	return Record{
		Ints:  make(map[string]int64),
		Bools: make(map[string]bool),
	}
}

// Int returns the integer stored under key, or def when it is missing.
func (r Record) Int(key string, def int64) int64 {
	if v, ok := r.Ints[key]; ok {
		return v
	}
	return def
}

// Bool returns the flag stored under key, or def when it is missing.
func (r Record) Bool(key string, def bool) bool {
	if v, ok := r.Bools[key]; ok {
		return v
	}
	return def
}

// SetInt stores an integer value.
func (r *Record) SetInt(key string, v int64) {
	if r.Ints == nil {
		r.Ints = make(map[string]int64)
	}
	r.Ints[key] = v
}

// SetBool stores a flag.
func (r *Record) SetBool(key string, v bool) {
	if r.Bools == nil {
		r.Bools = make(map[string]bool)
	}
	r.Bools[key] = v
}

// Len reports the number of values in the record.
func (r Record) Len() int {
	return len(r.Ints) + len(r.Bools)
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := NewRecord()
	maps.Copy(out.Ints, r.Ints)
	maps.Copy(out.Bools, r.Bools)
	return out
}

// Merge overlays batch onto r.
func (r *Record) Merge(batch Record) {
	for k, v := range batch.Ints {
		r.SetInt(k, v)
	}
	for k, v := range batch.Bools {
		r.SetBool(k, v)
	}
}
