package jwk

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestECKey_JSONRoundTrip_PublicOnly(t *testing.T) {
	k := &ECKey{
		common: common{use: UseSignature, kid: "1"},
		Curve:  elliptic.P256(),
		X:      big.NewInt(1),
		Y:      big.NewInt(2),
	}

	const wantJSON = `{"kty":"EC","use":"sig","kid":"1","crv":"P-256","x":"AQ","y":"Ag"}`

	got, err := json.Marshal(k)
	require.NoError(t, err)
	assert.JSONEq(t, wantJSON, string(got))

	var decoded ECKey
	require.NoError(t, json.Unmarshal(got, &decoded))
	assert.Equal(t, k.Curve, decoded.Curve)
	assert.Equal(t, k.X, decoded.X)
	assert.Equal(t, k.Y, decoded.Y)
}

func TestECKey_JSONRoundTrip_WithPrivate(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	require.NoError(t, err)

	k, err := NewECKey(&priv.PublicKey, priv, WithKeyID("ec-1"))
	require.NoError(t, err)
	require.True(t, k.CanSign())

	data, err := json.Marshal(k)
	require.NoError(t, err)

	var decoded ECKey
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.True(t, decoded.HasPrivate())
	assert.Equal(t, priv.D, decoded.D)
}

func TestECKey_UnsupportedCurveRejected(t *testing.T) {
	const wire = `{"kty":"EC","crv":"P-224","x":"AQ","y":"Ag"}`
	var k ECKey
	err := json.Unmarshal([]byte(wire), &k)
	assert.Error(t, err)
}

func TestECKey_Sanitize(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	k, err := NewECKey(&priv.PublicKey, priv)
	require.NoError(t, err)

	pub, err := k.Sanitize(false)
	require.NoError(t, err)
	assert.False(t, pub.HasPrivate())
}
