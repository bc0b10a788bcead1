// RSAKey implements the "kty": "RSA" variant defined in RFC 7518 section
// 6.3, grounded on the teacher's former rsaPublicKeyJSONWrapper pattern,
// extended with the private components the signing/decryption pipeline
// requires.
package jwk

import (
	"crypto/rsa"
	"encoding/json"
	"math/big"

	"github.com/halimath/josecore/internal/encoding"
	"github.com/halimath/josecore/joseerr"
)

// RSAKey is the "kty": "RSA" variant.
type RSAKey struct {
	common

	N *big.Int
	E *big.Int

	// Private components. All nil for a public-only key.
	D  *big.Int
	P  *big.Int
	Q  *big.Int
	DP *big.Int
	DQ *big.Int
	QI *big.Int
}

// NewRSAKey builds an RSAKey from stdlib key material. priv may be nil to
// build a public-only key.
func NewRSAKey(pub *rsa.PublicKey, priv *rsa.PrivateKey, opts ...Option) (*RSAKey, error) {
	if pub == nil {
		return nil, joseerr.New(joseerr.InvalidToken, "RSA public key is required")
	}

	k := &RSAKey{
		common: newCommon(opts),
		N:      pub.N,
		E:      big.NewInt(int64(pub.E)),
	}

	if priv != nil {
		if len(priv.Primes) < 2 {
			return nil, joseerr.New(joseerr.InvalidToken, "RSA private key must have at least two primes")
		}
		priv.Precompute()
		k.D = priv.D
		k.P = priv.Primes[0]
		k.Q = priv.Primes[1]
		k.DP = priv.Precomputed.Dp
		k.DQ = priv.Precomputed.Dq
		k.QI = priv.Precomputed.Qinv
	}

	return k, nil
}

func (k *RSAKey) Type() KeyType { return KeyTypeRSA }

func (k *RSAKey) HasPublic() bool  { return k.N != nil && k.E != nil }
func (k *RSAKey) HasPrivate() bool { return k.D != nil }
func (k *RSAKey) CanSign() bool    { return k.HasPrivate() }
func (k *RSAKey) CanVerify() bool  { return k.HasPublic() }
func (k *RSAKey) CanEncrypt() bool { return k.HasPublic() }
func (k *RSAKey) CanDecrypt() bool { return k.HasPrivate() }

// PublicKey returns the stdlib representation of the public component.
func (k *RSAKey) PublicKey() (*rsa.PublicKey, error) {
	if !k.HasPublic() {
		return nil, joseerr.New(joseerr.InvalidToken, "RSA key has no public component")
	}
	return &rsa.PublicKey{N: k.N, E: int(k.E.Int64())}, nil
}

// PrivateKey returns the stdlib representation of the private component.
func (k *RSAKey) PrivateKey() (*rsa.PrivateKey, error) {
	if !k.HasPrivate() {
		return nil, joseerr.New(joseerr.InvalidToken, "RSA key has no private component")
	}

	priv := &rsa.PrivateKey{
		PublicKey: rsa.PublicKey{N: k.N, E: int(k.E.Int64())},
		D:         k.D,
		Primes:    []*big.Int{k.P, k.Q},
	}
	priv.Precompute()
	return priv, nil
}

// Sanitize implements Key.
func (k *RSAKey) Sanitize(includePrivate bool) (Key, error) {
	if includePrivate && !k.HasPrivate() {
		return nil, joseerr.New(joseerr.InvalidToken, "cannot sanitize with private components: key has none")
	}

	out := &RSAKey{
		common: k.common,
		N:      k.N,
		E:      k.E,
	}
	if includePrivate {
		out.D, out.P, out.Q, out.DP, out.DQ, out.QI = k.D, k.P, k.Q, k.DP, k.DQ, k.QI
	}
	return out, nil
}

type rsaJSON struct {
	Type KeyType  `json:"kty"`
	Use  Use      `json:"use,omitempty"`
	Alg  string   `json:"alg,omitempty"`
	Kid  string   `json:"kid,omitempty"`
	X5C  []string `json:"x5c,omitempty"`
	X5T  string   `json:"x5t,omitempty"`

	N string `json:"n"`
	E string `json:"e"`

	D  string `json:"d,omitempty"`
	P  string `json:"p,omitempty"`
	Q  string `json:"q,omitempty"`
	DP string `json:"dp,omitempty"`
	DQ string `json:"dq,omitempty"`
	QI string `json:"qi,omitempty"`
}

func (k *RSAKey) MarshalJSON() ([]byte, error) {
	w := rsaJSON{
		Type: KeyTypeRSA,
		Use:  k.use,
		Alg:  k.alg,
		Kid:  k.kid,
		N:    encoding.Encode(k.N.Bytes()),
		E:    encoding.Encode(k.E.Bytes()),
	}
	for _, c := range k.x5c {
		w.X5C = append(w.X5C, encoding.Encode(c))
	}
	if k.x5t != nil {
		w.X5T = encoding.Encode(k.x5t)
	}
	if k.HasPrivate() {
		w.D = encoding.Encode(k.D.Bytes())
		w.P = encoding.Encode(k.P.Bytes())
		w.Q = encoding.Encode(k.Q.Bytes())
		w.DP = encoding.Encode(k.DP.Bytes())
		w.DQ = encoding.Encode(k.DQ.Bytes())
		w.QI = encoding.Encode(k.QI.Bytes())
	}
	return json.Marshal(w)
}

func (k *RSAKey) UnmarshalJSON(data []byte) error {
	var w rsaJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Type != KeyTypeRSA {
		return joseerr.Newf(joseerr.InvalidToken, "invalid key type for RSA JWK: %q", w.Type)
	}

	n, err := decodeBigInt(w.N)
	if err != nil {
		return joseerr.Wrap(joseerr.InvalidToken, err, "invalid n")
	}
	e, err := decodeBigInt(w.E)
	if err != nil {
		return joseerr.Wrap(joseerr.InvalidToken, err, "invalid e")
	}

	*k = RSAKey{
		common: common{use: w.Use, alg: w.Alg, kid: w.Kid},
		N:      n,
		E:      e,
	}

	for _, c := range w.X5C {
		b, err := encoding.Decode(c)
		if err != nil {
			return joseerr.Wrap(joseerr.InvalidToken, err, "invalid x5c entry")
		}
		k.x5c = append(k.x5c, b)
	}
	if w.X5T != "" {
		b, err := encoding.Decode(w.X5T)
		if err != nil {
			return joseerr.Wrap(joseerr.InvalidToken, err, "invalid x5t")
		}
		k.x5t = b
	}

	if w.D != "" {
		if k.D, err = decodeBigInt(w.D); err != nil {
			return joseerr.Wrap(joseerr.InvalidToken, err, "invalid d")
		}
		if k.P, err = decodeBigInt(w.P); err != nil {
			return joseerr.Wrap(joseerr.InvalidToken, err, "invalid p")
		}
		if k.Q, err = decodeBigInt(w.Q); err != nil {
			return joseerr.Wrap(joseerr.InvalidToken, err, "invalid q")
		}
		if k.DP, err = decodeBigInt(w.DP); err != nil {
			return joseerr.Wrap(joseerr.InvalidToken, err, "invalid dp")
		}
		if k.DQ, err = decodeBigInt(w.DQ); err != nil {
			return joseerr.Wrap(joseerr.InvalidToken, err, "invalid dq")
		}
		if k.QI, err = decodeBigInt(w.QI); err != nil {
			return joseerr.Wrap(joseerr.InvalidToken, err, "invalid qi")
		}
	}

	return nil
}

func decodeBigInt(s string) (*big.Int, error) {
	b, err := encoding.Decode(s)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}
