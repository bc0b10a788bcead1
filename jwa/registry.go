// Registry, grounded on spec.md §4.6's "immutable mapping populated once
// at construction" and on the dependency-injected-dispatch-table →
// explicit-registry redesign in spec.md §9: a plain immutable map built by
// a constructor, replacing any service-provider lookup with a direct
// parameter.
package jwa

import (
	"sort"
	"sync"

	"github.com/halimath/josecore/joseerr"
)

// Registry is an immutable, construction-time-populated set of signers,
// key encryptors and content encryptors, keyed by algorithm name. It is
// safe to share across goroutines without synchronization.
type Registry struct {
	signers           map[SignatureAlgorithm]Signer
	keyEncryptors     map[KeyManagementAlgorithm]KeyEncryptor
	contentEncryptors map[ContentEncryptionAlgorithm]ContentEncryptor
}

// NewRegistry builds a Registry populated with every algorithm this module
// implements. PBES2 identifiers are intentionally absent: see DESIGN.md.
func NewRegistry() *Registry {
	return &Registry{
		signers: map[SignatureAlgorithm]Signer{
			None:  noneSignerInstance(),
			HS256: hs256Signer(),
			HS384: hs384Signer(),
			HS512: hs512Signer(),
			RS256: rs256Signer(),
			RS384: rs384Signer(),
			RS512: rs512Signer(),
			PS256: ps256Signer(),
			PS384: ps384Signer(),
			PS512: ps512Signer(),
			ES256: es256Signer(),
			ES384: es384Signer(),
			ES512: es512Signer(),
		},
		keyEncryptors: map[KeyManagementAlgorithm]KeyEncryptor{
			Direct:     directKeyEncryptor{},
			RSAOAEP:    rsaOAEPSHA1KeyEncryptor{},
			RSAOAEP256: rsaOAEP256KeyEncryptor{},
			RSA1_5:     rsaPKCS1KeyEncryptor{},
			A128GCMKW:  aesGCMKWKeyEncryptor{keyBytes: 16},
			A192GCMKW:  aesGCMKWKeyEncryptor{keyBytes: 24},
			A256GCMKW:  aesGCMKWKeyEncryptor{keyBytes: 32},
		},
		contentEncryptors: map[ContentEncryptionAlgorithm]ContentEncryptor{
			A128CBCHS256: a128cbcHS256(),
			A192CBCHS384: a192cbcHS384(),
			A256CBCHS512: a256cbcHS512(),
			A128GCM:      a128gcmEncryptor(),
			A192GCM:      a192gcmEncryptor(),
			A256GCM:      a256gcmEncryptor(),
		},
	}
}

// Signer returns the Signer registered for alg, or UnsupportedAlgorithm.
func (r *Registry) Signer(alg SignatureAlgorithm) (Signer, error) {
	s, ok := r.signers[alg]
	if !ok {
		return nil, joseerr.Newf(joseerr.UnsupportedAlgorithm, "unsupported signature algorithm: %s", alg)
	}
	return s, nil
}

// KeyEncryptor returns the KeyEncryptor registered for alg, or
// UnsupportedAlgorithm.
func (r *Registry) KeyEncryptor(alg KeyManagementAlgorithm) (KeyEncryptor, error) {
	e, ok := r.keyEncryptors[alg]
	if !ok {
		return nil, joseerr.Newf(joseerr.UnsupportedAlgorithm, "unsupported key management algorithm: %s", alg)
	}
	return e, nil
}

// ContentEncryptor returns the ContentEncryptor registered for enc, or
// UnsupportedAlgorithm.
func (r *Registry) ContentEncryptor(enc ContentEncryptionAlgorithm) (ContentEncryptor, error) {
	c, ok := r.contentEncryptors[enc]
	if !ok {
		return nil, joseerr.Newf(joseerr.UnsupportedAlgorithm, "unsupported content encryption algorithm: %s", enc)
	}
	return c, nil
}

// SupportedSigningAlgorithms returns every registered JWS "alg", including
// "none" (it is registered by default; RequireSignedTokens is what keeps
// its use from being implicit, not registry membership).
func (r *Registry) SupportedSigningAlgorithms() []string {
	out := make([]string, 0, len(r.signers))
	for alg := range r.signers {
		out = append(out, string(alg))
	}
	sort.Strings(out)
	return out
}

// SupportedKeyManagementAlgorithms returns every registered JWE "alg".
func (r *Registry) SupportedKeyManagementAlgorithms() []string {
	out := make([]string, 0, len(r.keyEncryptors))
	for alg := range r.keyEncryptors {
		out = append(out, string(alg))
	}
	sort.Strings(out)
	return out
}

// SupportedContentEncryptionAlgorithms returns every registered JWE "enc".
func (r *Registry) SupportedContentEncryptionAlgorithms() []string {
	out := make([]string, 0, len(r.contentEncryptors))
	for enc := range r.contentEncryptors {
		out = append(out, string(enc))
	}
	sort.Strings(out)
	return out
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// DefaultRegistry returns the process-wide Registry instance used by jws,
// jwe and the root josecore package when no caller-supplied registry is
// given. It is built once and is safe for concurrent use.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}
