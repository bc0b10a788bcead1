// The unsecured "none" algorithm, RFC 7515 section 8.5 / RFC 7519
// section 6, grounded on the teacher's jws.None/noneSignatureMethod. The
// decision of whether "none" may ever be used is made by callers (jws.Sign
// requires an explicit nil key; validate.Parameters.RequireSignedTokens
// rejects it) — this signer only ever answers "does the given bytes match
// an empty signature", using a constant-time comparison since the
// signature bytes are attacker-controlled on the verify path.
package jwa

import (
	"github.com/halimath/josecore/internal/encoding"
	"github.com/halimath/josecore/joseerr"
	"github.com/halimath/josecore/jwk"
)

type noneSigner struct{}

func (noneSigner) Sign(key jwk.Key, data []byte) ([]byte, error) {
	return []byte{}, nil
}

func (noneSigner) Verify(key jwk.Key, data, signature []byte) error {
	if !encoding.ConstantTimeEqual([]byte{}, signature) {
		return joseerr.New(joseerr.InvalidToken, "invalid signature")
	}
	return nil
}

func noneSignerInstance() Signer { return noneSigner{} }
