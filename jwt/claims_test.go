package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaims_StandardAccessorsRoundTrip(t *testing.T) {
	c := New()
	c.SetIssuer("test")
	c.SetSubject("john.doe")
	c.SetID("17")
	now := time.Now().Truncate(time.Second)
	c.SetExpirationTime(now.Add(time.Hour))
	c.SetNotBefore(now)
	c.SetIssuedAt(now)

	iss, err := c.Issuer()
	require.NoError(t, err)
	assert.Equal(t, "test", iss)

	sub, err := c.Subject()
	require.NoError(t, err)
	assert.Equal(t, "john.doe", sub)

	id, err := c.ID()
	require.NoError(t, err)
	assert.Equal(t, "17", id)

	exp, err := c.ExpirationTime()
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour).Unix(), exp.Unix())

	nbf, err := c.NotBefore()
	require.NoError(t, err)
	assert.Equal(t, now.Unix(), nbf.Unix())

	iat, err := c.IssuedAt()
	require.NoError(t, err)
	assert.Equal(t, now.Unix(), iat.Unix())
}

func TestClaims_AudienceNormalization(t *testing.T) {
	c := New()
	c.SetAudience("single")
	v, ok := c.Get(ClaimAudience)
	require.True(t, ok)
	assert.Equal(t, "single", v)

	aud, err := c.Audience()
	require.NoError(t, err)
	assert.Equal(t, []string{"single"}, aud)

	c.SetAudience("a", "b")
	v, ok = c.Get(ClaimAudience)
	require.True(t, ok)
	assert.IsType(t, []any{}, v)

	aud, err = c.Audience()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, aud)
}

func TestClaims_ScopeSpaceJoined(t *testing.T) {
	c := New()
	c.SetScope("read", "write", "admin")

	raw, err := c.GetString(ClaimScope)
	require.NoError(t, err)
	assert.Equal(t, "read write admin", raw)

	scopes, err := c.Scope()
	require.NoError(t, err)
	assert.Equal(t, []string{"read", "write", "admin"}, scopes)
}

func TestClaims_MarshalUnmarshalRoundTrip(t *testing.T) {
	c := New()
	c.SetIssuer("test")
	c.SetAudience("a", "b")
	c.Set("custom_claim", "custom_value")

	data, err := c.MarshalJSON()
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)

	iss, err := parsed.Issuer()
	require.NoError(t, err)
	assert.Equal(t, "test", iss)

	aud, err := parsed.Audience()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, aud)

	v, ok := parsed.Get("custom_claim")
	require.True(t, ok)
	assert.Equal(t, "custom_value", v)
}

func TestClaims_SetNilRemovesMember(t *testing.T) {
	c := New()
	c.SetSubject("john.doe")
	assert.True(t, c.Has(ClaimSubject))

	c.Set(ClaimSubject, nil)
	assert.False(t, c.Has(ClaimSubject))
}

func TestClaims_NewWithIDGeneratesUUID(t *testing.T) {
	c := NewWithID()
	id, err := c.ID()
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestClaims_GetStringFailsOnWrongType(t *testing.T) {
	c := New()
	c.Set(ClaimExpirationTime, int64(123))

	_, err := c.GetString(ClaimExpirationTime)
	assert.Error(t, err)
}
