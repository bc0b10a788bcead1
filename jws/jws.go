// Package jws implements a JSON Web Signature datastructure. The fields
// of JWS represent the different components in multiple ways. Once
// created a JWS is immutable; it is only ever produced by Sign or
// ParseCompact, grounded on the teacher's halimath-jose/jws/jws.go JWS
// type of the same shape.
package jws

import (
	"github.com/halimath/josecore/internal/encoding"
	"github.com/halimath/josecore/joseerr"
)

// JWS is a parsed or freshly signed JSON Web Signature.
type JWS struct {
	header           *Header
	headerEncoded    string
	payload          []byte
	payloadEncoded   string
	signature        []byte
	signatureEncoded string
}

// Header returns j's header.
func (j *JWS) Header() *Header {
	return j.header
}

// Payload returns a copy of j's payload.
func (j *JWS) Payload() []byte {
	b := make([]byte, len(j.payload))
	copy(b, j.payload)
	return b
}

// Compact returns the JWS in compact serialization, RFC 7515 section 7.1.
func (j *JWS) Compact() string {
	return j.headerEncoded + "." + j.payloadEncoded + "." + j.signatureEncoded
}

// ParseCompact parses a three-segment compact JWS string. It performs only
// syntactic validation of the base64url segments and the header JSON; the
// signature is NOT verified. Use Verify for that.
func ParseCompact(compact string) (*JWS, error) {
	parts, err := encoding.SplitCompact(compact, 3)
	if err != nil {
		return nil, joseerr.Wrap(joseerr.InvalidToken, err, "malformed compact JWS")
	}

	header, err := DecodeHeader(parts[0])
	if err != nil {
		return nil, err
	}
	if header.Algorithm() == "" {
		return nil, joseerr.New(joseerr.InvalidToken, "missing alg")
	}

	payload, err := encoding.Decode(parts[1])
	if err != nil {
		return nil, joseerr.Wrap(joseerr.InvalidToken, err, "invalid payload encoding")
	}

	signature, err := encoding.Decode(parts[2])
	if err != nil {
		return nil, joseerr.Wrap(joseerr.InvalidToken, err, "invalid signature encoding")
	}

	return &JWS{
		header:           header,
		headerEncoded:    parts[0],
		payload:          payload,
		payloadEncoded:   parts[1],
		signature:        signature,
		signatureEncoded: parts[2],
	}, nil
}
