package jws

import (
	"github.com/halimath/josecore/internal/encoding"
	"github.com/halimath/josecore/jwa"
	"github.com/halimath/josecore/jwk"
	"github.com/halimath/josecore/joseerr"
)

// resolveSigningAlgorithm implements the consistency check from spec.md
// §4.4: a nil key forces "none" (any explicit non-none header alg is
// overridden and kid is cleared); a present key's alg hint and the header's
// alg must agree when both are set; an explicit header alg=none combined
// with a non-nil key is a hard failure.
func resolveSigningAlgorithm(key jwk.Key, header *Header) (jwa.SignatureAlgorithm, error) {
	headerAlg := header.Algorithm()

	if key == nil {
		if headerAlg != "" && headerAlg != string(jwa.None) {
			header.SetKeyID("")
		}
		return jwa.None, nil
	}

	if headerAlg == string(jwa.None) {
		return "", joseerr.New(joseerr.AlgorithmMismatch, "header alg=none combined with a non-nil signing key")
	}

	keyAlg := key.Algorithm()
	switch {
	case keyAlg != "" && headerAlg != "" && keyAlg != headerAlg:
		return "", joseerr.Newf(joseerr.AlgorithmMismatch, "key alg %q disagrees with header alg %q", keyAlg, headerAlg)
	case keyAlg != "":
		return jwa.SignatureAlgorithm(keyAlg), nil
	case headerAlg != "":
		return jwa.SignatureAlgorithm(headerAlg), nil
	default:
		return jwa.None, nil
	}
}

// Sign produces a JWS over payload under header using key, dispatching the
// signature algorithm via registry. A nil key produces an unsecured
// (alg=none) JWS.
func Sign(registry *jwa.Registry, key jwk.Key, payload []byte, header *Header) (*JWS, error) {
	if header == nil {
		header = NewHeader()
	} else {
		header = header.Clone()
	}

	alg, err := resolveSigningAlgorithm(key, header)
	if err != nil {
		return nil, err
	}

	header.SetAlgorithm(string(alg))
	if key != nil && key.KeyID() != "" {
		header.SetKeyID(key.KeyID())
	}

	signer, err := registry.Signer(alg)
	if err != nil {
		return nil, err
	}

	headerEncoded, err := header.Encode()
	if err != nil {
		return nil, err
	}
	payloadEncoded := encoding.Encode(payload)

	signature, err := signer.Sign(key, []byte(headerEncoded+"."+payloadEncoded))
	if err != nil {
		return nil, joseerr.Wrap(joseerr.Cryptography, err, "signing failed")
	}

	return &JWS{
		header:           header,
		headerEncoded:    headerEncoded,
		payload:          payload,
		payloadEncoded:   payloadEncoded,
		signature:        signature,
		signatureEncoded: encoding.Encode(signature),
	}, nil
}
