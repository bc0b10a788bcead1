// Package encoding defines functions to encode and decode binary data
// in base64url format with no padding as specified in RFC 7515 section 2
// (https://datatracker.ietf.org/doc/html/rfc7515#section-2), plus the
// compact-serialization segment splitting shared by JWS and JWE.
package encoding

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
)

var enc = base64.URLEncoding.WithPadding(base64.NoPadding)

// Encode encodes the given data using base64URL encoding with no padding.
func Encode(data []byte) string {
	return enc.EncodeToString(data)
}

// Decode decodes the given base64URL encoded string. It rejects padded
// input and any byte outside the base64url alphabet.
func Decode(data string) ([]byte, error) {
	return enc.DecodeString(data)
}

// SplitCompact splits s on "." and requires exactly n segments, as required
// for both JWS (n=3) and JWE (n=5) compact serialization.
func SplitCompact(s string, n int) ([]string, error) {
	parts := strings.Split(s, ".")
	if len(parts) != n {
		return nil, fmt.Errorf("malformed compact serialization: expected %d segments, got %d", n, len(parts))
	}
	return parts, nil
}

// ConstantTimeEqual reports whether a and b are equal using a constant-time
// comparison, safe to use on attacker-chosen byte slices (MAC tags,
// signatures, unwrapped key material).
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Zero overwrites b with zero bytes. Used to scrub CEKs from call-local
// buffers once they are no longer needed.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
