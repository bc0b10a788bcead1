package jws

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/halimath/josecore/jwa"
	"github.com/halimath/josecore/jwk"
	"github.com/halimath/josecore/joseerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify_HMACRoundTrip(t *testing.T) {
	secret := make([]byte, 32)
	for i := range secret {
		secret[i] = byte(i)
	}
	key, err := jwk.NewOctetKey(secret, jwk.WithAlgorithmHint(string(jwa.HS256)))
	require.NoError(t, err)

	registry := jwa.NewRegistry()
	header := NewHeader()
	header.SetType("JWT")

	signed, err := Sign(registry, key, []byte(`{"sub":"alice"}`), header)
	require.NoError(t, err)
	assert.Equal(t, "HS256", signed.Header().Algorithm())

	parsed, err := ParseCompact(signed.Compact())
	require.NoError(t, err)

	err = Verify(context.Background(), registry, parsed, jwk.StaticKeys(key), true)
	assert.NoError(t, err)
}

func TestSignVerify_RSARoundTrip(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	key, err := jwk.NewRSAKey(&priv.PublicKey, priv, jwk.WithAlgorithmHint(string(jwa.RS256)))
	require.NoError(t, err)

	registry := jwa.NewRegistry()
	signed, err := Sign(registry, key, []byte(`{"sub":"bob"}`), NewHeader())
	require.NoError(t, err)

	parsed, err := ParseCompact(signed.Compact())
	require.NoError(t, err)

	pubOnly, err := key.Sanitize(false)
	require.NoError(t, err)

	err = Verify(context.Background(), registry, parsed, jwk.StaticKeys(pubOnly), true)
	assert.NoError(t, err)
}

func TestSignVerify_NoneRoundTrip(t *testing.T) {
	registry := jwa.NewRegistry()
	signed, err := Sign(registry, nil, []byte(`{"sub":"anon"}`), NewHeader())
	require.NoError(t, err)
	assert.Equal(t, "none", signed.Header().Algorithm())

	parsed, err := ParseCompact(signed.Compact())
	require.NoError(t, err)

	err = Verify(context.Background(), registry, parsed, jwk.StaticKeys(), false)
	assert.NoError(t, err)
}

func TestVerify_RequireSignedTokensRejectsNone(t *testing.T) {
	registry := jwa.NewRegistry()
	signed, err := Sign(registry, nil, []byte(`{}`), NewHeader())
	require.NoError(t, err)

	parsed, err := ParseCompact(signed.Compact())
	require.NoError(t, err)

	err = Verify(context.Background(), registry, parsed, jwk.StaticKeys(), true)
	require.Error(t, err)
	assert.True(t, joseerr.Is(err, joseerr.InvalidToken))
}

func TestVerify_TamperedPayloadFails(t *testing.T) {
	secret := make([]byte, 32)
	key, err := jwk.NewOctetKey(secret)
	require.NoError(t, err)

	registry := jwa.NewRegistry()
	header := NewHeader()
	header.SetAlgorithm(string(jwa.HS256))
	signed, err := Sign(registry, key, []byte(`{"sub":"alice"}`), header)
	require.NoError(t, err)

	tampered, err := Sign(registry, key, []byte(`{"sub":"mallory"}`), header)
	require.NoError(t, err)

	parsed, err := ParseCompact(signed.headerEncoded + "." + tampered.payloadEncoded + "." + signed.signatureEncoded)
	require.NoError(t, err)

	err = Verify(context.Background(), registry, parsed, jwk.StaticKeys(key), true)
	assert.Error(t, err)
}

func TestVerify_KidFiltersCandidates(t *testing.T) {
	secret1 := make([]byte, 32)
	secret2 := make([]byte, 32)
	for i := range secret2 {
		secret2[i] = byte(i + 1)
	}
	key1, err := jwk.NewOctetKey(secret1, jwk.WithKeyID("k1"))
	require.NoError(t, err)
	key2, err := jwk.NewOctetKey(secret2, jwk.WithKeyID("k2"))
	require.NoError(t, err)

	registry := jwa.NewRegistry()
	header := NewHeader()
	header.SetAlgorithm(string(jwa.HS256))
	signed, err := Sign(registry, key2, []byte(`{}`), header)
	require.NoError(t, err)

	parsed, err := ParseCompact(signed.Compact())
	require.NoError(t, err)
	assert.Equal(t, "k2", parsed.Header().KeyID())

	err = Verify(context.Background(), registry, parsed, jwk.StaticKeys(key1, key2), true)
	assert.NoError(t, err)
}

func TestVerify_KidMismatchAgainstNonEmptyKeySetFails(t *testing.T) {
	secret1 := make([]byte, 32)
	secret2 := make([]byte, 32)
	for i := range secret2 {
		secret2[i] = byte(i + 1)
	}
	key1, err := jwk.NewOctetKey(secret1, jwk.WithKeyID("k1"))
	require.NoError(t, err)
	key2, err := jwk.NewOctetKey(secret2, jwk.WithKeyID("k2"))
	require.NoError(t, err)

	registry := jwa.NewRegistry()
	header := NewHeader()
	header.SetAlgorithm(string(jwa.HS256))
	signed, err := Sign(registry, key2, []byte(`{}`), header)
	require.NoError(t, err)

	parsed, err := ParseCompact(signed.Compact())
	require.NoError(t, err)
	assert.Equal(t, "k2", parsed.Header().KeyID())

	// key1 is a non-empty, fully populated candidate set, but its only key's
	// kid ("k1") never matches the header's ("k2").
	err = Verify(context.Background(), registry, parsed, jwk.StaticKeys(key1), true)
	require.Error(t, err)
	assert.True(t, joseerr.Is(err, joseerr.InvalidToken))
	assert.Contains(t, err.Error(), "no signing keys found")
}

func TestVerify_NoKeysFound(t *testing.T) {
	key, err := jwk.NewOctetKey(make([]byte, 32))
	require.NoError(t, err)

	registry := jwa.NewRegistry()
	header := NewHeader()
	header.SetAlgorithm(string(jwa.HS256))
	signed, err := Sign(registry, key, []byte(`{}`), header)
	require.NoError(t, err)

	parsed, err := ParseCompact(signed.Compact())
	require.NoError(t, err)

	err = Verify(context.Background(), registry, parsed, jwk.StaticKeys(), true)
	require.Error(t, err)
	assert.True(t, joseerr.Is(err, joseerr.InvalidToken))
}

func TestSign_HeaderAlgNoneWithKeyFails(t *testing.T) {
	key, err := jwk.NewOctetKey(make([]byte, 32))
	require.NoError(t, err)

	registry := jwa.NewRegistry()
	header := NewHeader()
	header.SetAlgorithm("none")

	_, err = Sign(registry, key, []byte(`{}`), header)
	require.Error(t, err)
	assert.True(t, joseerr.Is(err, joseerr.AlgorithmMismatch))
}

func TestSign_KeyAlgHeaderAlgMismatchFails(t *testing.T) {
	key, err := jwk.NewOctetKey(make([]byte, 32), jwk.WithAlgorithmHint("HS256"))
	require.NoError(t, err)

	registry := jwa.NewRegistry()
	header := NewHeader()
	header.SetAlgorithm("HS384")

	_, err = Sign(registry, key, []byte(`{}`), header)
	require.Error(t, err)
	assert.True(t, joseerr.Is(err, joseerr.AlgorithmMismatch))
}

func TestParseCompact_RejectsWrongSegmentCount(t *testing.T) {
	_, err := ParseCompact("a.b")
	assert.Error(t, err)
}
