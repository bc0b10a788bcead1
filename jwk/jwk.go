// Package jwk implements JSON Web Keys as specified in RFC 7517
// (https://datatracker.ietf.org/doc/html/rfc7517), extended with the
// capability predicates, sanitization and certificate conversion this
// module's validation pipeline depends on.
package jwk

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/halimath/josecore/joseerr"
)

// KeyType discriminates the three key variants this module understands, as
// defined in RFC 7518 section 6.1.
type KeyType string

const (
	KeyTypeRSA KeyType = "RSA"
	KeyTypeEC  KeyType = "EC"
	KeyTypeOct KeyType = "oct"
)

// Use names the "use" parameter from RFC 7517 section 4.2.
type Use string

const (
	UseSignature  Use = "sig"
	UseEncryption Use = "enc"
)

// Key is the tagged union every key variant implements. A Key is immutable
// once constructed; Sanitize returns a new value rather than mutating the
// receiver.
type Key interface {
	// Type returns the "kty" discriminator.
	Type() KeyType

	// KeyID returns the "kid" parameter, or "" if absent.
	KeyID() string

	// Use returns the "use" parameter, or "" if absent.
	Use() Use

	// Algorithm returns the "alg" hint, or "" if absent. Per spec.md §3
	// this MUST NOT be used to restrict verification unless a caller
	// explicitly opts in.
	Algorithm() string

	// X5C returns the decoded X.509 certificate chain, if any.
	X5C() [][]byte

	// X5T returns the decoded SHA-1 certificate thumbprint, if any.
	X5T() []byte

	// HasPublic reports whether the key carries public material.
	HasPublic() bool

	// HasPrivate reports whether the key carries private/secret material.
	HasPrivate() bool

	// CanSign reports whether the key can produce signatures/MACs.
	CanSign() bool

	// CanVerify reports whether the key can verify signatures/MACs.
	CanVerify() bool

	// CanEncrypt reports whether the key can encrypt/wrap.
	CanEncrypt() bool

	// CanDecrypt reports whether the key can decrypt/unwrap.
	CanDecrypt() bool

	// Sanitize returns a new Key safe to publish: with includePrivate
	// false every private component of an RSA or EC key is stripped; with
	// includePrivate true the private component must already exist or
	// Sanitize fails. An oct key has no public-only form: its Sanitize
	// fails when includePrivate is false.
	Sanitize(includePrivate bool) (Key, error)

	json.Marshaler
}

// common holds the RFC 7517 §4 metadata shared by every key variant.
type common struct {
	use   Use
	alg   string
	kid   string
	x5c   [][]byte
	x5t   []byte
}

func (c common) KeyID() string    { return c.kid }
func (c common) Use() Use         { return c.use }
func (c common) Algorithm() string { return c.alg }
func (c common) X5C() [][]byte    { return c.x5c }
func (c common) X5T() []byte      { return c.x5t }

// Option configures metadata shared across key constructors.
type Option func(*common)

// WithUse sets the "use" parameter.
func WithUse(use Use) Option {
	return func(c *common) { c.use = use }
}

// WithAlgorithmHint sets the optional "alg" hint.
func WithAlgorithmHint(alg string) Option {
	return func(c *common) { c.alg = alg }
}

// WithKeyID sets an explicit "kid". Without this option constructors
// generate a random UUIDv4 kid, grounded on the same approach
// dc4eu-vc/foundation use google/uuid for opaque identifier generation.
func WithKeyID(kid string) Option {
	return func(c *common) { c.kid = kid }
}

// WithCertificateChain sets "x5c" (decoded DER bytes, one per certificate).
func WithCertificateChain(chain [][]byte) Option {
	return func(c *common) { c.x5c = chain }
}

// WithCertificateThumbprint sets "x5t" (decoded SHA-1 digest bytes).
func WithCertificateThumbprint(thumbprint []byte) Option {
	return func(c *common) { c.x5t = thumbprint }
}

func newCommon(opts []Option) common {
	c := common{}
	for _, opt := range opts {
		opt(&c)
	}
	if c.kid == "" {
		c.kid = uuid.NewString()
	}
	return c
}

// UnmarshalKey unmarshals data as a JWK and returns the concrete variant
// indicated by "kty". An unrecognised or missing kty is a hard failure:
// spec.md §3 requires that no JWK of unknown kty ever reaches the signer or
// encryptor, so this is the single chokepoint that enforces it.
func UnmarshalKey(data []byte) (Key, error) {
	var probe struct {
		Type KeyType `json:"kty"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, joseerr.Wrap(joseerr.InvalidToken, err, "invalid JWK JSON")
	}

	switch probe.Type {
	case KeyTypeRSA:
		var k RSAKey
		if err := json.Unmarshal(data, &k); err != nil {
			return nil, joseerr.Wrap(joseerr.InvalidToken, err, "invalid RSA JWK")
		}
		return &k, nil
	case KeyTypeEC:
		var k ECKey
		if err := json.Unmarshal(data, &k); err != nil {
			return nil, joseerr.Wrap(joseerr.InvalidToken, err, "invalid EC JWK")
		}
		return &k, nil
	case KeyTypeOct:
		var k OctetKey
		if err := json.Unmarshal(data, &k); err != nil {
			return nil, joseerr.Wrap(joseerr.InvalidToken, err, "invalid oct JWK")
		}
		return &k, nil
	default:
		return nil, joseerr.Newf(joseerr.InvalidToken, "unsupported kty: %q", probe.Type)
	}
}

// Sanitize is the package-level entry point mirroring spec.md §6's
// `sanitize(key, include_private) -> JsonWebKey` operation.
func Sanitize(key Key, includePrivate bool) (Key, error) {
	return key.Sanitize(includePrivate)
}
