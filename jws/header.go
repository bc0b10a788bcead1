package jws

import (
	"encoding/json"

	"github.com/halimath/josecore/internal/encoding"
	"github.com/halimath/josecore/internal/ordered"
	"github.com/halimath/josecore/joseerr"
)

// Header is a JWS JOSE header as defined in RFC 7515 section 4, backed by
// an ordered.Map so that members this package does not know about survive
// a decode/encode round-trip unchanged.
type Header struct {
	m *ordered.Map
}

// NewHeader returns an empty Header.
func NewHeader() *Header {
	return &Header{m: ordered.New()}
}

func (h *Header) ensure() *ordered.Map {
	if h.m == nil {
		h.m = ordered.New()
	}
	return h.m
}

// Algorithm returns the "alg" member, or "" if absent.
func (h *Header) Algorithm() string {
	v, _ := h.ensure().Get("alg")
	s, _ := v.(string)
	return s
}

// SetAlgorithm sets "alg".
func (h *Header) SetAlgorithm(alg string) {
	h.ensure().Set("alg", alg)
}

// Type returns the "typ" member, or "" if absent.
func (h *Header) Type() string {
	v, _ := h.ensure().Get("typ")
	s, _ := v.(string)
	return s
}

// SetType sets "typ". Passing "" removes the member.
func (h *Header) SetType(typ string) {
	if typ == "" {
		h.ensure().Delete("typ")
		return
	}
	h.ensure().Set("typ", typ)
}

// KeyID returns the "kid" member, or "" if absent.
func (h *Header) KeyID() string {
	v, _ := h.ensure().Get("kid")
	s, _ := v.(string)
	return s
}

// SetKeyID sets "kid". Passing "" removes the member.
func (h *Header) SetKeyID(kid string) {
	if kid == "" {
		h.ensure().Delete("kid")
		return
	}
	h.ensure().Set("kid", kid)
}

// Get returns an arbitrary header member.
func (h *Header) Get(key string) (any, bool) {
	return h.ensure().Get(key)
}

// Set stores an arbitrary header member.
func (h *Header) Set(key string, value any) {
	h.ensure().Set(key, value)
}

// Clone returns a deep-enough copy of h safe to mutate independently.
func (h *Header) Clone() *Header {
	return &Header{m: h.ensure().Clone()}
}

// Encode serializes h to its base64url JSON form.
func (h *Header) Encode() (string, error) {
	b, err := json.Marshal(h.ensure())
	if err != nil {
		return "", joseerr.Wrap(joseerr.InvalidToken, err, "failed to encode JWS header")
	}
	return encoding.Encode(b), nil
}

// DecodeHeader decodes a base64url-encoded JWS header.
func DecodeHeader(encoded string) (*Header, error) {
	b, err := encoding.Decode(encoded)
	if err != nil {
		return nil, joseerr.Wrap(joseerr.InvalidToken, err, "invalid header encoding")
	}

	m := ordered.New()
	if err := json.Unmarshal(b, m); err != nil {
		return nil, joseerr.Wrap(joseerr.InvalidToken, err, "invalid header JSON")
	}
	return &Header{m: m}, nil
}
