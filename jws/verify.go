package jws

import (
	"context"

	"github.com/halimath/josecore/jwa"
	"github.com/halimath/josecore/jwk"
	"github.com/halimath/josecore/joseerr"
)

// Verify walks keys looking for one that validates j's signature under the
// registry-dispatched algorithm named in j's header, per spec.md §4.4. If
// the header carries a "kid", only keys with a matching kid (exact,
// case-sensitive) are attempted; the key's own alg hint is never used to
// filter. requireSigned rejects alg=none outright, matching
// validate.Parameters.RequireSignedTokens.
func Verify(ctx context.Context, registry *jwa.Registry, j *JWS, keys jwk.KeyIterator, requireSigned bool) error {
	alg := jwa.SignatureAlgorithm(j.header.Algorithm())
	if alg == "" {
		return joseerr.New(joseerr.InvalidToken, "missing alg")
	}
	if requireSigned && alg == jwa.None {
		return joseerr.New(joseerr.InvalidToken, "unsigned token rejected")
	}

	signer, err := registry.Signer(alg)
	if err != nil {
		return err
	}

	if alg == jwa.None {
		if err := signer.Verify(nil, []byte(j.headerEncoded+"."+j.payloadEncoded), j.signature); err != nil {
			return joseerr.New(joseerr.InvalidToken, "invalid signature")
		}
		return nil
	}

	kid := j.header.KeyID()
	signingInput := []byte(j.headerEncoded + "." + j.payloadEncoded)

	found := false
	for {
		key, ok, err := keys.Next(ctx)
		if err != nil {
			return joseerr.Wrap(joseerr.InvalidToken, err, "key resolution failed")
		}
		if !ok {
			break
		}
		if kid != "" && key.KeyID() != kid {
			continue
		}
		if !key.CanVerify() {
			continue
		}
		found = true

		if err := signer.Verify(key, signingInput, j.signature); err == nil {
			return nil
		}
	}

	if !found {
		return joseerr.New(joseerr.InvalidToken, "no signing keys found")
	}
	return joseerr.New(joseerr.InvalidToken, "invalid signature")
}
