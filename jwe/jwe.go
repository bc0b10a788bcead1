// Package jwe implements a JSON Web Encryption datastructure, mirroring
// the shape of jws.JWS but with the two extra segments RFC 7516 adds
// (encrypted key and authentication tag).
package jwe

import (
	"github.com/halimath/josecore/internal/encoding"
	"github.com/halimath/josecore/joseerr"
)

// JWE is a parsed or freshly encrypted JSON Web Encryption message.
type JWE struct {
	header               *Header
	headerEncoded         string
	encryptedKey          []byte
	encryptedKeyEncoded   string
	iv                    []byte
	ivEncoded             string
	ciphertext            []byte
	ciphertextEncoded     string
	tag                   []byte
	tagEncoded            string
}

// Header returns j's header.
func (j *JWE) Header() *Header { return j.header }

// Compact returns the JWE in compact serialization, RFC 7516 section 7.1.
func (j *JWE) Compact() string {
	return j.headerEncoded + "." +
		j.encryptedKeyEncoded + "." +
		j.ivEncoded + "." +
		j.ciphertextEncoded + "." +
		j.tagEncoded
}

// ParseCompact parses a five-segment compact JWE string. It performs only
// syntactic validation; the content is NOT decrypted. Use Decrypt for that.
func ParseCompact(compact string) (*JWE, error) {
	parts, err := encoding.SplitCompact(compact, 5)
	if err != nil {
		return nil, joseerr.Wrap(joseerr.InvalidToken, err, "malformed compact JWE")
	}

	header, err := DecodeHeader(parts[0])
	if err != nil {
		return nil, err
	}
	if header.Algorithm() == "" || header.Encryption() == "" {
		return nil, joseerr.New(joseerr.InvalidToken, "missing alg or enc")
	}

	encryptedKey, err := encoding.Decode(parts[1])
	if err != nil {
		return nil, joseerr.Wrap(joseerr.InvalidToken, err, "invalid base64url in JWE")
	}
	iv, err := encoding.Decode(parts[2])
	if err != nil {
		return nil, joseerr.Wrap(joseerr.InvalidToken, err, "invalid base64url in JWE")
	}
	ciphertext, err := encoding.Decode(parts[3])
	if err != nil {
		return nil, joseerr.Wrap(joseerr.InvalidToken, err, "invalid base64url in JWE")
	}
	tag, err := encoding.Decode(parts[4])
	if err != nil {
		return nil, joseerr.Wrap(joseerr.InvalidToken, err, "invalid base64url in JWE")
	}

	return &JWE{
		header:              header,
		headerEncoded:       parts[0],
		encryptedKey:        encryptedKey,
		encryptedKeyEncoded: parts[1],
		iv:                  iv,
		ivEncoded:           parts[2],
		ciphertext:          ciphertext,
		ciphertextEncoded:   parts[3],
		tag:                 tag,
		tagEncoded:          parts[4],
	}, nil
}
