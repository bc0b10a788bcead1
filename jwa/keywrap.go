// Key management algorithms, RFC 7518 section 4, grounded on no single
// teacher file (halimath-jose predates JWE entirely) and built from the
// stdlib crypto primitives the teacher already depends on for jwk. The
// Bleichenbacher-safe RSA1_5 unwrap follows the design called out in
// SPEC_FULL.md §4: rsa.DecryptPKCS1v15SessionKey, not a hand-rolled
// constant-time padding check.
package jwa

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/sha256"
	"io"

	"github.com/halimath/josecore/internal/encoding"
	"github.com/halimath/josecore/internal/ordered"
	"github.com/halimath/josecore/joseerr"
	"github.com/halimath/josecore/jwk"
)

// directKeyEncryptor implements "dir": the CEK is the oct key's secret
// itself; there is nothing to wrap.
type directKeyEncryptor struct{}

func (directKeyEncryptor) Wrap(header *ordered.Map, key jwk.Key, cek []byte) ([]byte, error) {
	return []byte{}, nil
}

func (directKeyEncryptor) TryUnwrap(header *ordered.Map, key jwk.Key, wrappedKey []byte) ([]byte, bool) {
	oct, ok := key.(*jwk.OctetKey)
	if !ok || !oct.HasPrivate() {
		return nil, false
	}
	return append([]byte(nil), oct.Secret...), true
}

func rsaKeyFromEncryptionKey(key jwk.Key) (*jwk.RSAKey, error) {
	rk, ok := key.(*jwk.RSAKey)
	if !ok {
		return nil, joseerr.Newf(joseerr.InvalidToken, "RSA key management requires an RSA key, got %T", key)
	}
	return rk, nil
}

// The two OAEP variants below share structure but need distinct hash.Hash
// constructors, so they are written directly against crypto/sha1 and
// crypto/sha256 rather than a shared generic wrapper.

type rsaOAEPSHA1KeyEncryptor struct{}

func (rsaOAEPSHA1KeyEncryptor) Wrap(header *ordered.Map, key jwk.Key, cek []byte) ([]byte, error) {
	rk, err := rsaKeyFromEncryptionKey(key)
	if err != nil {
		return nil, err
	}
	pub, err := rk.PublicKey()
	if err != nil {
		return nil, joseerr.Wrap(joseerr.InvalidToken, err, "RSA-OAEP wrap requires a public key")
	}
	ct, err := rsa.EncryptOAEP(sha1.New(), rand.Reader, pub, cek, nil)
	if err != nil {
		return nil, joseerr.Wrap(joseerr.Cryptography, err, "RSA-OAEP wrap failed")
	}
	return ct, nil
}

func (rsaOAEPSHA1KeyEncryptor) TryUnwrap(header *ordered.Map, key jwk.Key, wrappedKey []byte) ([]byte, bool) {
	rk, err := rsaKeyFromEncryptionKey(key)
	if err != nil {
		return nil, false
	}
	priv, err := rk.PrivateKey()
	if err != nil {
		return nil, false
	}
	cek, err := rsa.DecryptOAEP(sha1.New(), rand.Reader, priv, wrappedKey, nil)
	if err != nil {
		return nil, false
	}
	return cek, true
}

type rsaOAEP256KeyEncryptor struct{}

func (rsaOAEP256KeyEncryptor) Wrap(header *ordered.Map, key jwk.Key, cek []byte) ([]byte, error) {
	rk, err := rsaKeyFromEncryptionKey(key)
	if err != nil {
		return nil, err
	}
	pub, err := rk.PublicKey()
	if err != nil {
		return nil, joseerr.Wrap(joseerr.InvalidToken, err, "RSA-OAEP-256 wrap requires a public key")
	}
	ct, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, cek, nil)
	if err != nil {
		return nil, joseerr.Wrap(joseerr.Cryptography, err, "RSA-OAEP-256 wrap failed")
	}
	return ct, nil
}

func (rsaOAEP256KeyEncryptor) TryUnwrap(header *ordered.Map, key jwk.Key, wrappedKey []byte) ([]byte, bool) {
	rk, err := rsaKeyFromEncryptionKey(key)
	if err != nil {
		return nil, false
	}
	priv, err := rk.PrivateKey()
	if err != nil {
		return nil, false
	}
	cek, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, wrappedKey, nil)
	if err != nil {
		return nil, false
	}
	return cek, true
}

// rsaPKCS1KeyEncryptor implements the legacy RSA1_5 wrap. Unwrap uses
// rsa.DecryptPKCS1v15SessionKey so that a padding failure is
// indistinguishable from cipher failure: the expected CEK length is read
// from the header's "enc" member, matching spec.md §4.5/§9.
type rsaPKCS1KeyEncryptor struct{}

func (rsaPKCS1KeyEncryptor) Wrap(header *ordered.Map, key jwk.Key, cek []byte) ([]byte, error) {
	rk, err := rsaKeyFromEncryptionKey(key)
	if err != nil {
		return nil, err
	}
	pub, err := rk.PublicKey()
	if err != nil {
		return nil, joseerr.Wrap(joseerr.InvalidToken, err, "RSA1_5 wrap requires a public key")
	}
	ct, err := rsa.EncryptPKCS1v15(rand.Reader, pub, cek)
	if err != nil {
		return nil, joseerr.Wrap(joseerr.Cryptography, err, "RSA1_5 wrap failed")
	}
	return ct, nil
}

func (rsaPKCS1KeyEncryptor) TryUnwrap(header *ordered.Map, key jwk.Key, wrappedKey []byte) ([]byte, bool) {
	rk, err := rsaKeyFromEncryptionKey(key)
	if err != nil {
		return nil, false
	}
	priv, err := rk.PrivateKey()
	if err != nil {
		return nil, false
	}

	encValue, _ := header.Get("enc")
	encName, _ := encValue.(string)
	size, ok := contentKeySize(ContentEncryptionAlgorithm(encName))
	if !ok {
		return nil, false
	}

	sessionKey := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, sessionKey); err != nil {
		return nil, false
	}
	if err := rsa.DecryptPKCS1v15SessionKey(rand.Reader, priv, wrappedKey, sessionKey); err != nil {
		return nil, false
	}
	return sessionKey, true
}

// aesGCMKWKeyEncryptor implements A128GCMKW/A192GCMKW/A256GCMKW: the CEK
// is wrapped under an oct key of the matching bit length using AES-GCM,
// with the generated IV and tag written into the header per RFC 7518
// section 4.7.
type aesGCMKWKeyEncryptor struct {
	keyBytes int
}

func (a aesGCMKWKeyEncryptor) wrapKey(key jwk.Key) ([]byte, error) {
	oct, ok := key.(*jwk.OctetKey)
	if !ok || !oct.HasPrivate() {
		return nil, joseerr.Newf(joseerr.InvalidToken, "AES-GCM key wrap requires an oct key, got %T", key)
	}
	if len(oct.Secret) != a.keyBytes {
		return nil, joseerr.Newf(joseerr.WeakKey, "AES-GCM key wrap requires a %d byte key, got %d", a.keyBytes, len(oct.Secret))
	}
	return oct.Secret, nil
}

func (a aesGCMKWKeyEncryptor) Wrap(header *ordered.Map, key jwk.Key, cek []byte) ([]byte, error) {
	wrapKey, err := a.wrapKey(key)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(wrapKey)
	if err != nil {
		return nil, joseerr.Wrap(joseerr.Cryptography, err, "AES-GCM key wrap failed")
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, joseerr.Wrap(joseerr.Cryptography, err, "AES-GCM key wrap failed")
	}

	iv := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, joseerr.Wrap(joseerr.Cryptography, err, "failed to generate IV")
	}

	sealed := gcm.Seal(nil, iv, cek, nil)
	tagSize := gcm.Overhead()
	ct := sealed[:len(sealed)-tagSize]
	tag := sealed[len(sealed)-tagSize:]

	header.Set("iv", encoding.Encode(iv))
	header.Set("tag", encoding.Encode(tag))

	return ct, nil
}

func (a aesGCMKWKeyEncryptor) TryUnwrap(header *ordered.Map, key jwk.Key, wrappedKey []byte) ([]byte, bool) {
	wrapKey, err := a.wrapKey(key)
	if err != nil {
		return nil, false
	}

	ivValue, _ := header.Get("iv")
	ivStr, _ := ivValue.(string)
	tagValue, _ := header.Get("tag")
	tagStr, _ := tagValue.(string)
	if ivStr == "" || tagStr == "" {
		return nil, false
	}

	iv, err := encoding.Decode(ivStr)
	if err != nil {
		return nil, false
	}
	tag, err := encoding.Decode(tagStr)
	if err != nil {
		return nil, false
	}

	block, err := aes.NewCipher(wrapKey)
	if err != nil {
		return nil, false
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, false
	}

	sealed := append(append([]byte{}, wrappedKey...), tag...)
	cek, err := gcm.Open(nil, iv, sealed, nil)
	if err != nil {
		return nil, false
	}
	return cek, true
}

func contentKeySize(enc ContentEncryptionAlgorithm) (int, bool) {
	switch enc {
	case A128CBCHS256:
		return 32, true
	case A192CBCHS384:
		return 48, true
	case A256CBCHS512:
		return 64, true
	case A128GCM:
		return 16, true
	case A192GCM:
		return 24, true
	case A256GCM:
		return 32, true
	default:
		return 0, false
	}
}
