// Package ordered implements a JSON object that preserves member insertion
// (and, after UnmarshalJSON, wire) order. It backs the JWS/JWE headers and
// the JWT claims container so that unrecognised members survive a
// decode/encode round-trip unchanged, as spec.md §3/§4.2 require.
package ordered

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Map is an ordered string->any JSON object.
type Map struct {
	keys   []string
	values map[string]any
}

// New returns an empty Map.
func New() *Map {
	return &Map{values: make(map[string]any)}
}

// Len returns the number of members.
func (m *Map) Len() int {
	return len(m.keys)
}

// Keys returns the member names in insertion/wire order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the value stored under key and whether it was present.
func (m *Map) Get(key string) (any, bool) {
	if m.values == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key, appending key to the order if new. Setting a
// nil value removes the member, matching spec.md §4.2's "writing a null
// value removes the member".
func (m *Map) Set(key string, value any) {
	if value == nil {
		m.Delete(key)
		return
	}
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes key, if present.
func (m *Map) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Clone returns a shallow copy of m.
func (m *Map) Clone() *Map {
	c := New()
	for _, k := range m.keys {
		c.Set(k, m.values[k])
	}
	return c
}

// MarshalJSON emits members in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON populates m from data, preserving the order members appear
// in the wire representation. Numbers decode as json.Number so that
// integral claims (exp, nbf, iat) can be read back as int64 without
// precision loss.
func (m *Map) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return fmt.Errorf("ordered: expected JSON object, got %v", tok)
	}

	*m = Map{values: make(map[string]any)}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("ordered: expected string key, got %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}

		val, err := decodeValue(raw)
		if err != nil {
			return err
		}

		m.Set(key, val)
	}

	return nil
}

// decodeValue decodes raw, recursing through nested objects as *Map and
// nested arrays element-wise, so member order survives at every depth.
func decodeValue(raw json.RawMessage) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("ordered: empty value")
	}

	switch trimmed[0] {
	case '{':
		nested := New()
		if err := nested.UnmarshalJSON(trimmed); err != nil {
			return nil, err
		}
		return nested, nil
	case '[':
		var rawElems []json.RawMessage
		if err := json.Unmarshal(trimmed, &rawElems); err != nil {
			return nil, err
		}
		elems := make([]any, len(rawElems))
		for i, re := range rawElems {
			v, err := decodeValue(re)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return elems, nil
	default:
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}
