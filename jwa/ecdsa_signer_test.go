package jwa

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/halimath/josecore/jwk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestECDSASigner_RoundTrip(t *testing.T) {
	p384, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	require.NoError(t, err)
	p521, err := ecdsa.GenerateKey(elliptic.P521(), rand.Reader)
	require.NoError(t, err)

	cases := []struct {
		signer Signer
		priv   *ecdsa.PrivateKey
	}{
		{es256Signer(), testECP256Priv},
		{es384Signer(), p384},
		{es512Signer(), p521},
	}

	for _, c := range cases {
		key, err := jwk.NewECKey(&c.priv.PublicKey, c.priv)
		require.NoError(t, err)

		data := []byte("signing input")
		sig, err := c.signer.Sign(key, data)
		require.NoError(t, err)
		assert.NoError(t, c.signer.Verify(key, data, sig))
		assert.Error(t, c.signer.Verify(key, []byte("other"), sig))
	}
}

func TestECDSASigner_RejectsCurveMismatch(t *testing.T) {
	key, err := jwk.NewECKey(&testECP256Priv.PublicKey, testECP256Priv)
	require.NoError(t, err)

	_, err = es384Signer().Sign(key, []byte("data"))
	assert.Error(t, err)
}

func TestECDSASigner_RejectsMalformedSignatureLength(t *testing.T) {
	key, err := jwk.NewECKey(&testECP256Priv.PublicKey, testECP256Priv)
	require.NoError(t, err)

	err = es256Signer().Verify(key, []byte("data"), []byte{1, 2, 3})
	assert.Error(t, err)
}
