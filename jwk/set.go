package jwk

import (
	"context"
	"encoding/json"
)

// KeyFilter defines a predicate used to select keys from a Set.
type KeyFilter func(k Key) bool

// WithID returns a KeyFilter that matches keys by "kid".
func WithID(kid string) KeyFilter {
	return func(k Key) bool {
		return k.KeyID() == kid
	}
}

// Set implements a JWK Set ("keys" array) as defined in RFC 7517 section 5.
type Set []Key

// Has reports whether s contains at least one Key matching f.
func (s Set) Has(f KeyFilter) bool {
	for _, k := range s {
		if f(k) {
			return true
		}
	}
	return false
}

// First returns the first key in s matching f, or nil if none match.
func (s Set) First(f KeyFilter) Key {
	for _, k := range s {
		if f(k) {
			return k
		}
	}
	return nil
}

// Filter returns every key in s matching f, preserving order.
func (s Set) Filter(f KeyFilter) Set {
	var out Set
	for _, k := range s {
		if f(k) {
			out = append(out, k)
		}
	}
	return out
}

// Iterator returns a KeyIterator yielding every key in s, in order.
func (s Set) Iterator() KeyIterator {
	return StaticKeys(s...)
}

func (s Set) MarshalJSON() ([]byte, error) {
	type wrapper struct {
		Keys []Key `json:"keys"`
	}
	w := wrapper{Keys: s}
	if w.Keys == nil {
		w.Keys = []Key{}
	}
	return json.Marshal(w)
}

func (s *Set) UnmarshalJSON(data []byte) error {
	type setWrapper struct {
		Keys []json.RawMessage `json:"keys"`
	}

	var w setWrapper
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	out := make(Set, len(w.Keys))
	for i, rm := range w.Keys {
		k, err := UnmarshalKey(rm)
		if err != nil {
			return err
		}
		out[i] = k
	}
	*s = out

	return nil
}

// KeyIterator pulls candidate keys one at a time, modeling the "lazy,
// asynchronously iterable sequence of candidate keys" a verifier or
// decryptor consumes: the caller stops pulling as soon as one candidate
// succeeds, and ctx cancellation propagates into whatever produced the
// sequence (a JWK Set fetched over the network, a KMS lookup, and so on).
// Grounded on the pull style of database/sql.Rows and bufio.Scanner.
type KeyIterator interface {
	// Next advances to the next candidate. It returns ok=false with a nil
	// error once the sequence is exhausted, and a non-nil error if
	// producing the next candidate failed.
	Next(ctx context.Context) (key Key, ok bool, err error)
}

// staticKeyIterator adapts a fixed, already-resolved slice of keys to
// KeyIterator.
type staticKeyIterator struct {
	keys []Key
	pos  int
}

// StaticKeys returns a KeyIterator over a fixed, already-resolved set of
// keys. This is the common case: a caller holding a JWK Set or a single
// trusted key.
func StaticKeys(keys ...Key) KeyIterator {
	return &staticKeyIterator{keys: keys}
}

func (it *staticKeyIterator) Next(ctx context.Context) (Key, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if it.pos >= len(it.keys) {
		return nil, false, nil
	}
	k := it.keys[it.pos]
	it.pos++
	return k, true, nil
}
