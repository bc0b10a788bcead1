package jwa

import (
	"github.com/halimath/josecore/internal/ordered"
	"github.com/halimath/josecore/jwk"
)

// Signer produces and verifies signatures/MACs for one SignatureAlgorithm,
// constrained to a matching jwk.Key variant.
type Signer interface {
	Sign(key jwk.Key, data []byte) ([]byte, error)
	Verify(key jwk.Key, data, signature []byte) error
}

// KeyEncryptor wraps and unwraps a Content Encryption Key for one
// KeyManagementAlgorithm. Wrap may mutate header (AES-GCM-KW writes "iv"
// and "tag"). TryUnwrap never returns an error for a failed unwrap — the
// caller must try the next candidate key silently, per spec.
type KeyEncryptor interface {
	Wrap(header *ordered.Map, key jwk.Key, cek []byte) (wrappedKey []byte, err error)
	TryUnwrap(header *ordered.Map, key jwk.Key, wrappedKey []byte) (cek []byte, ok bool)
}

// ContentEncryptor performs authenticated content encryption for one
// ContentEncryptionAlgorithm.
type ContentEncryptor interface {
	KeySize() int
	Encrypt(cek, plaintext, aad []byte) (iv, ciphertext, tag []byte, err error)
	TryDecrypt(cek, iv, ciphertext, tag, aad []byte) (plaintext []byte, ok bool)
}
