package jwe

import (
	"context"

	"github.com/halimath/josecore/internal/encoding"
	"github.com/halimath/josecore/jwa"
	"github.com/halimath/josecore/jwk"
	"github.com/halimath/josecore/joseerr"
)

// Decrypt walks keys attempting to unwrap j's content encryption key and
// decrypt its ciphertext, per spec.md §4.5's decryption contract. If the
// header carries a "kid", only keys with a matching kid are attempted. The
// AAD fed to the content encryptor is the original encoded header bytes
// exactly as they appear on the wire, never a re-serialization.
func Decrypt(ctx context.Context, registry *jwa.Registry, j *JWE, keys jwk.KeyIterator) ([]byte, error) {
	alg := jwa.KeyManagementAlgorithm(j.header.Algorithm())
	enc := jwa.ContentEncryptionAlgorithm(j.header.Encryption())

	keyEncryptor, err := registry.KeyEncryptor(alg)
	if err != nil {
		return nil, err
	}
	contentEncryptor, err := registry.ContentEncryptor(enc)
	if err != nil {
		return nil, err
	}

	kid := j.header.KeyID()
	aad := []byte(j.headerEncoded)

	for {
		key, ok, err := keys.Next(ctx)
		if err != nil {
			return nil, joseerr.Wrap(joseerr.InvalidToken, err, "key resolution failed")
		}
		if !ok {
			break
		}

		if kid != "" && key.KeyID() != kid {
			continue
		}
		if !key.CanDecrypt() {
			continue
		}

		cek, ok := keyEncryptor.TryUnwrap(j.header.Raw(), key, j.encryptedKey)
		if !ok {
			continue
		}

		plaintext, ok := contentEncryptor.TryDecrypt(cek, j.iv, j.ciphertext, j.tag, aad)
		encoding.Zero(cek)
		if ok {
			return plaintext, nil
		}
	}

	return nil, joseerr.New(joseerr.InvalidToken, "failed to decrypt with any available key")
}
