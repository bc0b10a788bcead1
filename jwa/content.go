// Content encryption, RFC 7518 section 5, grounded on no single teacher
// file (halimath-jose predates JWE entirely); built directly from the
// RFC's AEAD-from-CBC-and-HMAC construction (section 5.2.2) and the
// stdlib's crypto/cipher AES-GCM support (section 5.3).
package jwa

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"hash"
	"io"

	"github.com/halimath/josecore/internal/encoding"
	"github.com/halimath/josecore/joseerr"
)

// cbcHMACContentEncryptor implements AxxxCBC-HSyyy per RFC 7518 section
// 5.2: the CEK splits into equal MAC_KEY || ENC_KEY halves, the
// authentication tag is the leftmost half of HMAC(MAC_KEY, AAD||IV||CT||AL).
type cbcHMACContentEncryptor struct {
	hf       func() hash.Hash
	halfSize int
}

func (c cbcHMACContentEncryptor) KeySize() int { return c.halfSize * 2 }

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+padLen)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(padLen)
	}
	return out
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, bool) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, false
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(data) {
		return nil, false
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, false
		}
	}
	return data[:len(data)-padLen], true
}

func (c cbcHMACContentEncryptor) mac(macKey, aad, iv, ciphertext []byte) []byte {
	al := make([]byte, 8)
	binary.BigEndian.PutUint64(al, uint64(len(aad))*8)

	h := hmac.New(c.hf, macKey)
	h.Write(aad)
	h.Write(iv)
	h.Write(ciphertext)
	h.Write(al)
	full := h.Sum(nil)
	return full[:c.halfSize]
}

func (c cbcHMACContentEncryptor) Encrypt(cek, plaintext, aad []byte) (iv, ciphertext, tag []byte, err error) {
	if len(cek) != c.KeySize() {
		return nil, nil, nil, joseerr.Newf(joseerr.WeakKey, "content encryption key must be %d bytes, got %d", c.KeySize(), len(cek))
	}
	macKey, encKey := cek[:c.halfSize], cek[c.halfSize:]

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return nil, nil, nil, joseerr.Wrap(joseerr.Cryptography, err, "AES-CBC encryption failed")
	}

	iv = make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, nil, nil, joseerr.Wrap(joseerr.Cryptography, err, "failed to generate IV")
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ciphertext = make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	tag = c.mac(macKey, aad, iv, ciphertext)
	return iv, ciphertext, tag, nil
}

func (c cbcHMACContentEncryptor) TryDecrypt(cek, iv, ciphertext, tag, aad []byte) ([]byte, bool) {
	if len(cek) != c.KeySize() || len(iv) != aes.BlockSize || len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, false
	}
	macKey, encKey := cek[:c.halfSize], cek[c.halfSize:]

	expectedTag := c.mac(macKey, aad, iv, ciphertext)
	if !encoding.ConstantTimeEqual(expectedTag, tag) {
		return nil, false
	}

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return nil, false
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	return pkcs7Unpad(padded, aes.BlockSize)
}

func a128cbcHS256() ContentEncryptor { return cbcHMACContentEncryptor{hf: sha256.New, halfSize: 16} }
func a192cbcHS384() ContentEncryptor { return cbcHMACContentEncryptor{hf: sha512.New384, halfSize: 24} }
func a256cbcHS512() ContentEncryptor { return cbcHMACContentEncryptor{hf: sha512.New, halfSize: 32} }

// gcmContentEncryptor implements AxxxGCM per RFC 7518 section 5.3.
type gcmContentEncryptor struct {
	keySize int
}

func (g gcmContentEncryptor) KeySize() int { return g.keySize }

func (g gcmContentEncryptor) Encrypt(cek, plaintext, aad []byte) (iv, ciphertext, tag []byte, err error) {
	if len(cek) != g.keySize {
		return nil, nil, nil, joseerr.Newf(joseerr.WeakKey, "content encryption key must be %d bytes, got %d", g.keySize, len(cek))
	}

	block, err := aes.NewCipher(cek)
	if err != nil {
		return nil, nil, nil, joseerr.Wrap(joseerr.Cryptography, err, "AES-GCM encryption failed")
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, nil, joseerr.Wrap(joseerr.Cryptography, err, "AES-GCM encryption failed")
	}

	iv = make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, nil, nil, joseerr.Wrap(joseerr.Cryptography, err, "failed to generate IV")
	}

	sealed := gcm.Seal(nil, iv, plaintext, aad)
	tagSize := gcm.Overhead()
	ciphertext = sealed[:len(sealed)-tagSize]
	tag = sealed[len(sealed)-tagSize:]
	return iv, ciphertext, tag, nil
}

func (g gcmContentEncryptor) TryDecrypt(cek, iv, ciphertext, tag, aad []byte) ([]byte, bool) {
	if len(cek) != g.keySize {
		return nil, false
	}

	block, err := aes.NewCipher(cek)
	if err != nil {
		return nil, false
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, false
	}

	sealed := append(append([]byte{}, ciphertext...), tag...)
	plaintext, err := gcm.Open(nil, iv, sealed, aad)
	if err != nil {
		return nil, false
	}
	return plaintext, true
}

func a128gcmEncryptor() ContentEncryptor { return gcmContentEncryptor{keySize: 16} }
func a192gcmEncryptor() ContentEncryptor { return gcmContentEncryptor{keySize: 24} }
func a256gcmEncryptor() ContentEncryptor { return gcmContentEncryptor{keySize: 32} }
