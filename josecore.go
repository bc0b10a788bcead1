package josecore

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"

	"github.com/halimath/josecore/joseerr"
	"github.com/halimath/josecore/jwa"
	"github.com/halimath/josecore/jwk"
	"github.com/halimath/josecore/validate"
)

// Validate runs compact through the full validation pipeline (JWE
// unwrap if present, JWS verification, then the checks params enables).
// It is a direct re-export of validate.Validate for callers that only
// need the facade.
func Validate(ctx context.Context, compact string, params validate.Parameters) (*validate.DecodedToken, *joseerr.Error) {
	return validate.Validate(ctx, compact, params)
}

// Sanitize returns a copy of key safe to publish: with includePrivate
// false every private component of an RSA or EC key is stripped. An oct
// key has no public-only form, so Sanitize fails for it when
// includePrivate is false.
func Sanitize(key jwk.Key, includePrivate bool) (jwk.Key, error) {
	return key.Sanitize(includePrivate)
}

// CertToJWK converts cert's public key into a jwk.Key, attaching priv (an
// *rsa.PrivateKey or *ecdsa.PrivateKey matching cert's key type) when
// includePrivate is requested. priv may be nil when includePrivate is
// false.
func CertToJWK(cert *x509.Certificate, priv crypto.PrivateKey, includePrivate bool) (jwk.Key, error) {
	pubOnly, err := jwk.CertToJWK(cert)
	if err != nil {
		return nil, err
	}
	if !includePrivate {
		return pubOnly, nil
	}
	if priv == nil {
		return nil, joseerr.New(joseerr.InvalidToken, "cannot sanitize with private components: key has none")
	}

	metaOpts := []jwk.Option{
		jwk.WithKeyID(pubOnly.KeyID()),
		jwk.WithUse(pubOnly.Use()),
		jwk.WithCertificateChain(pubOnly.X5C()),
		jwk.WithCertificateThumbprint(pubOnly.X5T()),
	}

	switch pub := cert.PublicKey.(type) {
	case *rsa.PublicKey:
		rsaPriv, ok := priv.(*rsa.PrivateKey)
		if !ok {
			return nil, joseerr.Newf(joseerr.InvalidToken, "private key type %T does not match certificate's RSA public key", priv)
		}
		return jwk.NewRSAKey(pub, rsaPriv, metaOpts...)
	case *ecdsa.PublicKey:
		ecPriv, ok := priv.(*ecdsa.PrivateKey)
		if !ok {
			return nil, joseerr.Newf(joseerr.InvalidToken, "private key type %T does not match certificate's EC public key", priv)
		}
		return jwk.NewECKey(pub, ecPriv, metaOpts...)
	default:
		return nil, joseerr.Newf(joseerr.UnsupportedAlgorithm, "unsupported certificate public key type %T", cert.PublicKey)
	}
}

// SupportedSigningAlgorithms returns every JWS "alg" the default registry
// dispatches, including "none".
func SupportedSigningAlgorithms() []string {
	return jwa.DefaultRegistry().SupportedSigningAlgorithms()
}
