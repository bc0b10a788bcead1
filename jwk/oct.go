// OctetKey implements the symmetric "kty": "oct" variant defined in RFC
// 7518 section 6.4, grounded on the teacher's former
// symmetricKeyJSONWrapper pattern. An oct key's secret is both its
// public and private material: CanVerify/CanDecrypt mirror CanSign/
// CanEncrypt since there is no asymmetric split.
package jwk

import (
	"encoding/json"

	"github.com/halimath/josecore/internal/encoding"
	"github.com/halimath/josecore/joseerr"
)

// OctetKey is the "kty": "oct" variant.
type OctetKey struct {
	common

	Secret []byte
}

// NewOctetKey builds an OctetKey wrapping secret.
func NewOctetKey(secret []byte, opts ...Option) (*OctetKey, error) {
	if len(secret) == 0 {
		return nil, joseerr.New(joseerr.InvalidToken, "oct key secret must not be empty")
	}
	return &OctetKey{common: newCommon(opts), Secret: secret}, nil
}

func (k *OctetKey) Type() KeyType { return KeyTypeOct }

func (k *OctetKey) HasPublic() bool  { return len(k.Secret) > 0 }
func (k *OctetKey) HasPrivate() bool { return len(k.Secret) > 0 }
func (k *OctetKey) CanSign() bool    { return k.HasPrivate() }
func (k *OctetKey) CanVerify() bool  { return k.HasPrivate() }
func (k *OctetKey) CanEncrypt() bool { return k.HasPrivate() }
func (k *OctetKey) CanDecrypt() bool { return k.HasPrivate() }

// Sanitize implements Key. An oct key carries no separable public
// component, so requesting includePrivate=false on a populated key fails:
// spec.md §6 only asks sanitize to strip private material that has a
// public counterpart to fall back to.
func (k *OctetKey) Sanitize(includePrivate bool) (Key, error) {
	if !includePrivate {
		return nil, joseerr.New(joseerr.InvalidToken, "oct keys have no public-only representation")
	}
	out := &OctetKey{common: k.common, Secret: append([]byte(nil), k.Secret...)}
	return out, nil
}

type octJSON struct {
	Type KeyType  `json:"kty"`
	Use  Use      `json:"use,omitempty"`
	Alg  string   `json:"alg,omitempty"`
	Kid  string   `json:"kid,omitempty"`
	X5C  []string `json:"x5c,omitempty"`
	X5T  string   `json:"x5t,omitempty"`
	K    string   `json:"k"`
}

func (k *OctetKey) MarshalJSON() ([]byte, error) {
	w := octJSON{
		Type: KeyTypeOct,
		Use:  k.use,
		Alg:  k.alg,
		Kid:  k.kid,
		K:    encoding.Encode(k.Secret),
	}
	for _, c := range k.x5c {
		w.X5C = append(w.X5C, encoding.Encode(c))
	}
	if k.x5t != nil {
		w.X5T = encoding.Encode(k.x5t)
	}
	return json.Marshal(w)
}

func (k *OctetKey) UnmarshalJSON(data []byte) error {
	var w octJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Type != KeyTypeOct {
		return joseerr.Newf(joseerr.InvalidToken, "invalid key type for oct JWK: %q", w.Type)
	}

	secret, err := encoding.Decode(w.K)
	if err != nil {
		return joseerr.Wrap(joseerr.InvalidToken, err, "invalid k")
	}

	*k = OctetKey{
		common: common{use: w.Use, alg: w.Alg, kid: w.Kid},
		Secret: secret,
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

	return nil
}
