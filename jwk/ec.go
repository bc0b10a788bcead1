// ECKey implements the "kty": "EC" variant defined in RFC 7518 section 6.2,
// grounded on the teacher's former ecdsaPublicKeyJSONWrapper pattern,
// extended with the "d" private component.
package jwk

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/json"
	"math/big"

	"github.com/halimath/josecore/internal/encoding"
	"github.com/halimath/josecore/joseerr"
)

var supportedCurves = map[string]elliptic.Curve{
	"P-256": elliptic.P256(),
	"P-384": elliptic.P384(),
	"P-521": elliptic.P521(),
}

func curveName(c elliptic.Curve) (string, error) {
	for name, crv := range supportedCurves {
		if crv == c {
			return name, nil
		}
	}
	return "", joseerr.New(joseerr.UnsupportedAlgorithm, "unsupported EC curve")
}

// ECKey is the "kty": "EC" variant.
type ECKey struct {
	common

	Curve elliptic.Curve
	X     *big.Int
	Y     *big.Int

	// D is the private scalar. nil for a public-only key.
	D *big.Int
}

// NewECKey builds an ECKey from stdlib key material. priv may be nil to
// build a public-only key.
func NewECKey(pub *ecdsa.PublicKey, priv *ecdsa.PrivateKey, opts ...Option) (*ECKey, error) {
	if pub == nil {
		return nil, joseerr.New(joseerr.InvalidToken, "EC public key is required")
	}
	if _, err := curveName(pub.Curve); err != nil {
		return nil, err
	}

	k := &ECKey{
		common: newCommon(opts),
		Curve:  pub.Curve,
		X:      pub.X,
		Y:      pub.Y,
	}
	if priv != nil {
		k.D = priv.D
	}
	return k, nil
}

func (k *ECKey) Type() KeyType { return KeyTypeEC }

func (k *ECKey) HasPublic() bool  { return k.Curve != nil && k.X != nil && k.Y != nil }
func (k *ECKey) HasPrivate() bool { return k.D != nil }
func (k *ECKey) CanSign() bool    { return k.HasPrivate() }
func (k *ECKey) CanVerify() bool  { return k.HasPublic() }
func (k *ECKey) CanEncrypt() bool { return k.HasPublic() }
func (k *ECKey) CanDecrypt() bool { return k.HasPrivate() }

// PublicKey returns the stdlib representation of the public component.
func (k *ECKey) PublicKey() (*ecdsa.PublicKey, error) {
	if !k.HasPublic() {
		return nil, joseerr.New(joseerr.InvalidToken, "EC key has no public component")
	}
	return &ecdsa.PublicKey{Curve: k.Curve, X: k.X, Y: k.Y}, nil
}

// PrivateKey returns the stdlib representation of the private component.
func (k *ECKey) PrivateKey() (*ecdsa.PrivateKey, error) {
	if !k.HasPrivate() {
		return nil, joseerr.New(joseerr.InvalidToken, "EC key has no private component")
	}
	return &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{Curve: k.Curve, X: k.X, Y: k.Y},
		D:         k.D,
	}, nil
}

// Sanitize implements Key.
func (k *ECKey) Sanitize(includePrivate bool) (Key, error) {
	if includePrivate && !k.HasPrivate() {
		return nil, joseerr.New(joseerr.InvalidToken, "cannot sanitize with private components: key has none")
	}
	out := &ECKey{
		common: k.common,
		Curve:  k.Curve,
		X:      k.X,
		Y:      k.Y,
	}
	if includePrivate {
		out.D = k.D
	}
	return out, nil
}

type ecJSON struct {
	Type KeyType  `json:"kty"`
	Use  Use      `json:"use,omitempty"`
	Alg  string   `json:"alg,omitempty"`
	Kid  string   `json:"kid,omitempty"`
	X5C  []string `json:"x5c,omitempty"`
	X5T  string   `json:"x5t,omitempty"`

	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
	D   string `json:"d,omitempty"`
}

func (k *ECKey) MarshalJSON() ([]byte, error) {
	crv, err := curveName(k.Curve)
	if err != nil {
		return nil, err
	}

	w := ecJSON{
		Type: KeyTypeEC,
		Use:  k.use,
		Alg:  k.alg,
		Kid:  k.kid,
		Crv:  crv,
		X:    encoding.Encode(k.X.Bytes()),
		Y:    encoding.Encode(k.Y.Bytes()),
	}
	for _, c := range k.x5c {
		w.X5C = append(w.X5C, encoding.Encode(c))
	}
	if k.x5t != nil {
		w.X5T = encoding.Encode(k.x5t)
	}
	if k.HasPrivate() {
		w.D = encoding.Encode(k.D.Bytes())
	}
	return json.Marshal(w)
}

func (k *ECKey) UnmarshalJSON(data []byte) error {
	var w ecJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Type != KeyTypeEC {
		return joseerr.Newf(joseerr.InvalidToken, "invalid key type for EC JWK: %q", w.Type)
	}

	crv, ok := supportedCurves[w.Crv]
	if !ok {
		return joseerr.Newf(joseerr.UnsupportedAlgorithm, "unsupported EC curve: %q", w.Crv)
	}

	x, err := decodeBigInt(w.X)
	if err != nil {
		return joseerr.Wrap(joseerr.InvalidToken, err, "invalid x")
	}
	y, err := decodeBigInt(w.Y)
	if err != nil {
		return joseerr.Wrap(joseerr.InvalidToken, err, "invalid y")
	}

	*k = ECKey{
		common: common{use: w.Use, alg: w.Alg, kid: w.Kid},
		Curve:  crv,
		X:      x,
		Y:      y,
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
		d, err := decodeBigInt(w.D)
		if err != nil {
			return joseerr.Wrap(joseerr.InvalidToken, err, "invalid d")
		}
		k.D = d
	}

	return nil
}
