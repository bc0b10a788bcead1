package josecore_test

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/halimath/josecore"
	"github.com/halimath/josecore/jwa"
	"github.com/halimath/josecore/jwk"
	"github.com/halimath/josecore/jwt"
	"github.com/halimath/josecore/validate"
)

func acceptAny(key jwk.Key) validate.Parameters {
	return validate.Parameters{
		ResolveSigningKeys: func(ctx context.Context, iss string) jwk.KeyIterator {
			return jwk.StaticKeys(key)
		},
	}
}

// TestIssueValidate mirrors halimath-jose/acceptance_test.go's
// HMAC/RSA/ECDSA subtest structure, but drives it through Issue/Validate
// instead of hand-assembled jws.Sign/Verifier calls.
func TestIssueValidate(t *testing.T) {
	t.Run("HMAC", func(t *testing.T) {
		key, err := jwk.NewOctetKey([]byte("0123456789abcdef0123456789abcdef"), jwk.WithAlgorithmHint(string(jwa.HS256)))
		require.NoError(t, err)

		claims := jwt.New()
		claims.SetSubject("alice")

		compact, err := josecore.Issue(claims, key, nil)
		require.NoError(t, err)

		decoded, verr := josecore.Validate(context.Background(), compact, acceptAny(key))
		require.Nil(t, verr)
		sub, _ := decoded.Claims.Subject()
		require.Equal(t, "alice", sub)
	})

	t.Run("RSA", func(t *testing.T) {
		priv, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		key, err := jwk.NewRSAKey(&priv.PublicKey, priv, jwk.WithAlgorithmHint(string(jwa.RS256)))
		require.NoError(t, err)

		claims := jwt.New()
		claims.SetSubject("alice")

		compact, err := josecore.Issue(claims, key, nil)
		require.NoError(t, err)

		decoded, verr := josecore.Validate(context.Background(), compact, acceptAny(key))
		require.Nil(t, verr)
		sub, _ := decoded.Claims.Subject()
		require.Equal(t, "alice", sub)
	})

	t.Run("ECDSA", func(t *testing.T) {
		priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)
		key, err := jwk.NewECKey(&priv.PublicKey, priv, jwk.WithAlgorithmHint(string(jwa.ES256)))
		require.NoError(t, err)

		claims := jwt.New()
		claims.SetSubject("alice")

		compact, err := josecore.Issue(claims, key, nil)
		require.NoError(t, err)

		decoded, verr := josecore.Validate(context.Background(), compact, acceptAny(key))
		require.Nil(t, verr)
		sub, _ := decoded.Claims.Subject()
		require.Equal(t, "alice", sub)
	})
}

// TestScenario_S1_HS256RoundTrip exercises spec.md §8 scenario S1.
func TestScenario_S1_HS256RoundTrip(t *testing.T) {
	secret := make([]byte, 32)
	for i := range secret {
		secret[i] = byte(i)
	}
	key, err := jwk.NewOctetKey(secret, jwk.WithAlgorithmHint(string(jwa.HS256)))
	require.NoError(t, err)

	claims := jwt.New()
	claims.SetSubject("alice")
	claims.SetExpirationTime(time.Unix(2000000000, 0))

	compact, err := josecore.Issue(claims, key, nil)
	require.NoError(t, err)

	params := acceptAny(key)
	params.ValidateLifetime = true
	params.Now = func() time.Time { return time.Unix(1999999999, 0) }

	decoded, verr := josecore.Validate(context.Background(), compact, params)
	require.Nil(t, verr)
	sub, _ := decoded.Claims.Subject()
	require.Equal(t, "alice", sub)
}

// TestScenario_S2_HS256Expired exercises spec.md §8 scenario S2.
func TestScenario_S2_HS256Expired(t *testing.T) {
	secret := make([]byte, 32)
	for i := range secret {
		secret[i] = byte(i)
	}
	key, err := jwk.NewOctetKey(secret, jwk.WithAlgorithmHint(string(jwa.HS256)))
	require.NoError(t, err)

	claims := jwt.New()
	claims.SetExpirationTime(time.Unix(2000000000, 0))

	compact, err := josecore.Issue(claims, key, nil)
	require.NoError(t, err)

	params := acceptAny(key)
	params.ValidateLifetime = true
	params.Now = func() time.Time { return time.Unix(2000000001, 0) }

	_, verr := josecore.Validate(context.Background(), compact, params)
	require.NotNil(t, verr)
}

// TestScenario_S3_RS256WrongKey exercises spec.md §8 scenario S3.
func TestScenario_S3_RS256WrongKey(t *testing.T) {
	privA, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	keyA, err := jwk.NewRSAKey(&privA.PublicKey, privA, jwk.WithAlgorithmHint(string(jwa.RS256)))
	require.NoError(t, err)

	privB, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	keyB, err := jwk.NewRSAKey(&privB.PublicKey, nil)
	require.NoError(t, err)

	claims := jwt.New()
	claims.SetSubject("alice")

	compact, err := josecore.Issue(claims, keyA, nil)
	require.NoError(t, err)

	_, verr := josecore.Validate(context.Background(), compact, acceptAny(keyB))
	require.NotNil(t, verr)
}

// TestScenario_S4_JWERoundTrip exercises spec.md §8 scenario S4.
func TestScenario_S4_JWERoundTrip(t *testing.T) {
	signPriv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	signKey, err := jwk.NewRSAKey(&signPriv.PublicKey, signPriv, jwk.WithAlgorithmHint(string(jwa.RS256)))
	require.NoError(t, err)

	encPriv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	encKey, err := jwk.NewRSAKey(&encPriv.PublicKey, encPriv)
	require.NoError(t, err)

	claims := jwt.New()
	claims.Set("hello", "world")

	compact, err := josecore.Issue(claims, signKey, encKey)
	require.NoError(t, err)

	segments := 1
	for i := 0; i < len(compact); i++ {
		if compact[i] == '.' {
			segments++
		}
	}
	require.Equal(t, 5, segments)

	params := validate.Parameters{
		ResolveDecryptionKeys: func(ctx context.Context, iss string) jwk.KeyIterator {
			return jwk.StaticKeys(encKey)
		},
		ResolveSigningKeys: func(ctx context.Context, iss string) jwk.KeyIterator {
			return jwk.StaticKeys(signKey)
		},
	}

	decoded, verr := josecore.Validate(context.Background(), compact, params)
	require.Nil(t, verr)
	hello, _ := decoded.Claims.GetString("hello")
	require.Equal(t, "world", hello)
}

// TestScenario_S5_NoneRejected exercises spec.md §8 scenario S5.
func TestScenario_S5_NoneRejected(t *testing.T) {
	claims := jwt.New()
	claims.SetSubject("alice")

	compact, err := josecore.Issue(claims, nil, nil, josecore.WithUnsecured())
	require.NoError(t, err)

	params := validate.Parameters{
		RequireSignedTokens: true,
		ResolveSigningKeys: func(ctx context.Context, iss string) jwk.KeyIterator {
			return jwk.StaticKeys()
		},
	}

	_, verr := josecore.Validate(context.Background(), compact, params)
	require.NotNil(t, verr)
}

// TestScenario_S6_AudienceList exercises spec.md §8 scenario S6.
func TestScenario_S6_AudienceList(t *testing.T) {
	key, err := jwk.NewOctetKey([]byte("0123456789abcdef0123456789abcdef"), jwk.WithAlgorithmHint(string(jwa.HS256)))
	require.NoError(t, err)

	acceptsB := func(aud []string) bool {
		for _, a := range aud {
			if a == "b" {
				return true
			}
		}
		return false
	}

	claims := jwt.New()
	claims.SetAudience("a", "b")
	compact, err := josecore.Issue(claims, key, nil)
	require.NoError(t, err)

	params := acceptAny(key)
	params.ValidateAudience = true
	params.ValidateAudienceFunc = acceptsB

	_, verr := josecore.Validate(context.Background(), compact, params)
	require.Nil(t, verr)

	singleAud := jwt.New()
	singleAud.SetAudience("a")
	compact2, err := josecore.Issue(singleAud, key, nil)
	require.NoError(t, err)

	_, verr = josecore.Validate(context.Background(), compact2, params)
	require.NotNil(t, verr)
}

func TestIssue_UnsecuredRequiresOptIn(t *testing.T) {
	claims := jwt.New()
	_, err := josecore.Issue(claims, nil, nil)
	require.Error(t, err)
}

func TestSanitize_StripsPrivateMaterial(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	key, err := jwk.NewRSAKey(&priv.PublicKey, priv)
	require.NoError(t, err)

	pub, err := josecore.Sanitize(key, false)
	require.NoError(t, err)
	require.False(t, pub.HasPrivate())
}

func TestSupportedSigningAlgorithms_IncludesNone(t *testing.T) {
	algs := josecore.SupportedSigningAlgorithms()
	require.Contains(t, algs, "none")
	require.Contains(t, algs, "HS256")
	require.Contains(t, algs, "RS256")
	require.Contains(t, algs, "ES256")
}
