package josecore

import (
	"github.com/halimath/josecore/joseerr"
	"github.com/halimath/josecore/jwa"
	"github.com/halimath/josecore/jwe"
	"github.com/halimath/josecore/jwk"
	"github.com/halimath/josecore/jws"
	"github.com/halimath/josecore/jwt"
)

type issueOptions struct {
	keyAlg    jwa.KeyManagementAlgorithm
	encAlg    jwa.ContentEncryptionAlgorithm
	unsecured bool
	registry  *jwa.Registry
}

// IssueOption configures Issue. The zero value of Issue's defaults matches
// spec.md §6: key_alg "RSA-OAEP-256", enc_alg "A256CBC-HS512".
type IssueOption func(*issueOptions)

// WithKeyManagementAlgorithm overrides the JWE "alg" used when an
// encryption key is supplied. Ignored when Issue produces a plain JWS.
func WithKeyManagementAlgorithm(alg jwa.KeyManagementAlgorithm) IssueOption {
	return func(o *issueOptions) { o.keyAlg = alg }
}

// WithContentEncryptionAlgorithm overrides the JWE "enc" used when an
// encryption key is supplied.
func WithContentEncryptionAlgorithm(enc jwa.ContentEncryptionAlgorithm) IssueOption {
	return func(o *issueOptions) { o.encAlg = enc }
}

// WithUnsecured opts into alg=none when signingKey is nil. Issue fails
// without it: unsecured JWS is never implicit, per spec.md §1.
func WithUnsecured() IssueOption {
	return func(o *issueOptions) { o.unsecured = true }
}

// WithRegistry overrides the algorithm registry Issue dispatches through.
// Defaults to jwa.DefaultRegistry().
func WithRegistry(r *jwa.Registry) IssueOption {
	return func(o *issueOptions) { o.registry = r }
}

// Issue signs claims, producing a compact JWS, and, when encryptionKey is
// non-nil, wraps that JWS inside a compact JWE. signingKey may be nil to
// produce an unsecured (alg=none) token, but only when WithUnsecured is
// also given.
func Issue(claims *jwt.Claims, signingKey jwk.Key, encryptionKey jwk.Key, opts ...IssueOption) (string, error) {
	o := issueOptions{
		keyAlg: jwa.RSAOAEP256,
		encAlg: jwa.A256CBCHS512,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = jwa.DefaultRegistry()
	}

	if signingKey == nil && !o.unsecured {
		return "", joseerr.New(joseerr.AlgorithmMismatch, "issuing an unsecured token requires WithUnsecured")
	}

	payload, err := claims.MarshalJSON()
	if err != nil {
		return "", joseerr.Wrap(joseerr.InvalidToken, err, "failed to marshal claims")
	}

	signed, err := jws.Sign(o.registry, signingKey, payload, jws.NewHeader())
	if err != nil {
		return "", err
	}
	compact := signed.Compact()

	if encryptionKey == nil {
		return compact, nil
	}

	enveloped, err := jwe.Encrypt(o.registry, encryptionKey, []byte(compact), o.keyAlg, o.encAlg, jwe.NewHeader())
	if err != nil {
		return "", err
	}
	return enveloped.Compact(), nil
}
