package jwe

import (
	"crypto/rand"
	"io"

	"github.com/halimath/josecore/internal/encoding"
	"github.com/halimath/josecore/jwa"
	"github.com/halimath/josecore/jwk"
	"github.com/halimath/josecore/joseerr"
)

// Encrypt produces a JWE over plaintext (the inner JWS compact string) under
// key using the given key-management algorithm alg and content-encryption
// algorithm enc, per spec.md §4.5.
func Encrypt(registry *jwa.Registry, key jwk.Key, plaintext []byte, alg jwa.KeyManagementAlgorithm, enc jwa.ContentEncryptionAlgorithm, header *Header) (*JWE, error) {
	if header == nil {
		header = NewHeader()
	} else {
		header = header.Clone()
	}

	contentEncryptor, err := registry.ContentEncryptor(enc)
	if err != nil {
		return nil, err
	}
	keyEncryptor, err := registry.KeyEncryptor(alg)
	if err != nil {
		return nil, err
	}

	cek, err := generateCEK(alg, key, contentEncryptor.KeySize())
	if err != nil {
		return nil, err
	}
	defer encoding.Zero(cek)

	header.SetAlgorithm(string(alg))
	header.SetEncryption(string(enc))
	if key != nil && key.KeyID() != "" {
		header.SetKeyID(key.KeyID())
	}

	encryptedKey, err := keyEncryptor.Wrap(header.Raw(), key, cek)
	if err != nil {
		return nil, joseerr.Wrap(joseerr.Cryptography, err, "key wrap failed")
	}

	headerEncoded, err := header.Encode()
	if err != nil {
		return nil, err
	}
	aad := []byte(headerEncoded)

	iv, ciphertext, tag, err := contentEncryptor.Encrypt(cek, plaintext, aad)
	if err != nil {
		return nil, joseerr.Wrap(joseerr.Cryptography, err, "content encryption failed")
	}

	return &JWE{
		header:              header,
		headerEncoded:       headerEncoded,
		encryptedKey:        encryptedKey,
		encryptedKeyEncoded: encoding.Encode(encryptedKey),
		iv:                  iv,
		ivEncoded:           encoding.Encode(iv),
		ciphertext:          ciphertext,
		ciphertextEncoded:   encoding.Encode(ciphertext),
		tag:                 tag,
		tagEncoded:          encoding.Encode(tag),
	}, nil
}

// generateCEK implements spec.md §4.5 step 2: "dir" reuses the oct key's
// secret bytes directly; every other alg samples fresh random bytes.
func generateCEK(alg jwa.KeyManagementAlgorithm, key jwk.Key, keySize int) ([]byte, error) {
	if alg == jwa.Direct {
		oct, ok := key.(*jwk.OctetKey)
		if !ok || !oct.HasPrivate() {
			return nil, joseerr.New(joseerr.InvalidToken, "dir key management requires an oct key with a secret")
		}
		if len(oct.Secret) != keySize {
			return nil, joseerr.Newf(joseerr.WeakKey, "dir key management requires a %d byte secret, got %d", keySize, len(oct.Secret))
		}
		cek := make([]byte, keySize)
		copy(cek, oct.Secret)
		return cek, nil
	}

	cek := make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, cek); err != nil {
		return nil, joseerr.Wrap(joseerr.Cryptography, err, "failed to generate content encryption key")
	}
	return cek, nil
}
