// ECDSA signing, RFC 7518 section 3.4, grounded on the teacher's
// jws/ecdsa.go ecdsaSigner/ecdsaVerifier (R‖S fixed-width encoding,
// per-curve hash selection), generalized to dispatch on jwk.Key.
package jwa

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"math/big"

	"github.com/halimath/josecore/joseerr"
	"github.com/halimath/josecore/jwk"
)

type ecdsaSignerVerifier struct {
	hf         func() hash.Hash
	curveBits  int
}

func (e *ecdsaSignerVerifier) ecKey(key jwk.Key) (*jwk.ECKey, error) {
	ek, ok := key.(*jwk.ECKey)
	if !ok {
		return nil, joseerr.Newf(joseerr.InvalidToken, "ECDSA requires an EC key, got %T", key)
	}
	if ek.Curve != nil && ek.Curve.Params().BitSize != e.curveBits {
		return nil, joseerr.Newf(joseerr.WeakKey, "EC key curve bit size %d does not match algorithm", ek.Curve.Params().BitSize)
	}
	return ek, nil
}

func (e *ecdsaSignerVerifier) Sign(key jwk.Key, data []byte) ([]byte, error) {
	ek, err := e.ecKey(key)
	if err != nil {
		return nil, err
	}
	priv, err := ek.PrivateKey()
	if err != nil {
		return nil, joseerr.Wrap(joseerr.InvalidToken, err, "ECDSA signing requires a private key")
	}

	h := e.hf()
	h.Write(data)

	r, s, err := ecdsa.Sign(rand.Reader, priv, h.Sum(nil))
	if err != nil {
		return nil, joseerr.Wrap(joseerr.Cryptography, err, "ECDSA signing failed")
	}

	keyBytes := (e.curveBits + 7) / 8
	out := make([]byte, 2*keyBytes)
	r.FillBytes(out[:keyBytes])
	s.FillBytes(out[keyBytes:])
	return out, nil
}

func (e *ecdsaSignerVerifier) Verify(key jwk.Key, data, signature []byte) error {
	ek, err := e.ecKey(key)
	if err != nil {
		return err
	}
	pub, err := ek.PublicKey()
	if err != nil {
		return joseerr.Wrap(joseerr.InvalidToken, err, "ECDSA verification requires a public key")
	}

	keyBytes := (e.curveBits + 7) / 8
	if len(signature) != 2*keyBytes {
		return joseerr.New(joseerr.InvalidToken, "invalid signature")
	}

	r := new(big.Int).SetBytes(signature[:keyBytes])
	s := new(big.Int).SetBytes(signature[keyBytes:])

	h := e.hf()
	h.Write(data)

	if !ecdsa.Verify(pub, h.Sum(nil), r, s) {
		return joseerr.New(joseerr.InvalidToken, "invalid signature")
	}
	return nil
}

func es256Signer() Signer { return &ecdsaSignerVerifier{hf: sha256.New, curveBits: 256} }
func es384Signer() Signer { return &ecdsaSignerVerifier{hf: sha512.New384, curveBits: 384} }
func es512Signer() Signer { return &ecdsaSignerVerifier{hf: sha512.New, curveBits: 521} }
