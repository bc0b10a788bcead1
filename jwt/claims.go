package jwt

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/halimath/josecore/internal/ordered"
	"github.com/halimath/josecore/joseerr"
)

// Standard claim names, RFC 7519 section 4.1.
const (
	ClaimIssuer         = "iss"
	ClaimSubject        = "sub"
	ClaimAudience       = "aud"
	ClaimExpirationTime = "exp"
	ClaimNotBefore      = "nbf"
	ClaimIssuedAt       = "iat"
	ClaimID             = "jti"

	// ClaimScope is not part of RFC 7519 but is ubiquitous enough across
	// OAuth2/OIDC deployments that spec.md §3 calls it out by name
	// alongside the registered claims.
	ClaimScope = "scope"
)

// Claims is an ordered.Map-backed JWT claim set. Reads tolerate both the
// string and array-of-string shapes RFC 7519 allows for "aud"; writes
// normalize to the canonical shape (a single string when there is exactly
// one audience). "scope" follows the same space-joined-string convention
// OAuth2 deployments use. Writing a nil value removes the member.
type Claims struct {
	m *ordered.Map
}

// New returns an empty Claims set.
func New() *Claims {
	return &Claims{m: ordered.New()}
}

// NewWithID returns an empty Claims set with a freshly generated "jti".
func NewWithID() *Claims {
	c := New()
	c.SetID(uuid.NewString())
	return c
}

func (c *Claims) ensure() *ordered.Map {
	if c.m == nil {
		c.m = ordered.New()
	}
	return c.m
}

// Raw exposes the backing ordered.Map. jws.Sign takes the payload as bytes,
// so callers serialize the claims with MarshalJSON before signing.
func (c *Claims) Raw() *ordered.Map { return c.ensure() }

// MarshalJSON serializes c preserving member order.
func (c *Claims) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ensure())
}

// UnmarshalJSON populates c from data.
func (c *Claims) UnmarshalJSON(data []byte) error {
	m := ordered.New()
	if err := json.Unmarshal(data, m); err != nil {
		return err
	}
	c.m = m
	return nil
}

// Parse decodes data (a JSON claims object) into a new Claims value.
func Parse(data []byte) (*Claims, error) {
	c := New()
	if err := c.UnmarshalJSON(data); err != nil {
		return nil, joseerr.Wrap(joseerr.InvalidToken, err, "invalid claims JSON")
	}
	return c, nil
}

// Has reports whether claim is present.
func (c *Claims) Has(claim string) bool {
	_, ok := c.ensure().Get(claim)
	return ok
}

// Get returns the raw value stored for claim.
func (c *Claims) Get(claim string) (any, bool) {
	return c.ensure().Get(claim)
}

// Set stores an arbitrary application claim. Passing a nil value removes
// the member.
func (c *Claims) Set(claim string, value any) {
	c.ensure().Set(claim, value)
}

// GetString returns claim's value as a string, or "" if absent. It fails if
// the claim is present but not a string.
func (c *Claims) GetString(claim string) (string, error) {
	v, ok := c.ensure().Get(claim)
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", joseerr.Newf(joseerr.InvalidToken, "claim %q is not a string", claim)
	}
	return s, nil
}

// GetInt returns claim's value as an int64, or 0 if absent. It fails if the
// claim is present but not numeric.
func (c *Claims) GetInt(claim string) (int64, error) {
	v, ok := c.ensure().Get(claim)
	if !ok {
		return 0, nil
	}
	switch val := v.(type) {
	case int64:
		return val, nil
	case float64:
		return int64(val), nil
	case json.Number:
		i, err := val.Int64()
		if err != nil {
			return 0, joseerr.Wrap(joseerr.InvalidToken, err, "claim is not an integer")
		}
		return i, nil
	default:
		return 0, joseerr.Newf(joseerr.InvalidToken, "claim %q is not numeric", claim)
	}
}

// GetTime returns claim's value interpreted as Unix seconds, or the zero
// time if absent.
func (c *Claims) GetTime(claim string) (time.Time, error) {
	v, err := c.GetInt(claim)
	if err != nil {
		return time.Time{}, err
	}
	if v == 0 {
		return time.Time{}, nil
	}
	return time.Unix(v, 0), nil
}

// GetStringSlice returns claim's value normalized to a slice of strings: a
// single string becomes a one-element slice, an array is returned
// element-wise, absence returns nil.
func (c *Claims) GetStringSlice(claim string) ([]string, error) {
	v, ok := c.ensure().Get(claim)
	if !ok {
		return nil, nil
	}
	switch val := v.(type) {
	case string:
		return []string{val}, nil
	case []any:
		out := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, joseerr.Newf(joseerr.InvalidToken, "claim %q contains a non-string element", claim)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, joseerr.Newf(joseerr.InvalidToken, "claim %q is not a string or array of strings", claim)
	}
}

// Issuer returns the "iss" claim.
func (c *Claims) Issuer() (string, error) { return c.GetString(ClaimIssuer) }

// SetIssuer sets "iss".
func (c *Claims) SetIssuer(iss string) { c.Set(ClaimIssuer, iss) }

// Subject returns the "sub" claim.
func (c *Claims) Subject() (string, error) { return c.GetString(ClaimSubject) }

// SetSubject sets "sub".
func (c *Claims) SetSubject(sub string) { c.Set(ClaimSubject, sub) }

// ID returns the "jti" claim.
func (c *Claims) ID() (string, error) { return c.GetString(ClaimID) }

// SetID sets "jti".
func (c *Claims) SetID(jti string) { c.Set(ClaimID, jti) }

// Audience returns the "aud" claim normalized to a slice of strings.
func (c *Claims) Audience() ([]string, error) { return c.GetStringSlice(ClaimAudience) }

// SetAudience writes "aud", normalizing to a single string when aud has
// exactly one element and to a JSON array otherwise, per spec.md §4.2.
func (c *Claims) SetAudience(aud ...string) {
	switch len(aud) {
	case 0:
		c.Set(ClaimAudience, nil)
	case 1:
		c.Set(ClaimAudience, aud[0])
	default:
		vals := make([]any, len(aud))
		for i, a := range aud {
			vals[i] = a
		}
		c.Set(ClaimAudience, vals)
	}
}

// Scope returns the "scope" claim split on whitespace.
func (c *Claims) Scope() ([]string, error) {
	s, err := c.GetString(ClaimScope)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	return strings.Fields(s), nil
}

// SetScope writes "scope" as a single space-joined string, the canonical
// OAuth2 shape.
func (c *Claims) SetScope(scopes ...string) {
	if len(scopes) == 0 {
		c.Set(ClaimScope, nil)
		return
	}
	c.Set(ClaimScope, strings.Join(scopes, " "))
}

// ExpirationTime returns the "exp" claim as a time.Time.
func (c *Claims) ExpirationTime() (time.Time, error) { return c.GetTime(ClaimExpirationTime) }

// SetExpirationTime sets "exp" from a time.Time, truncated to whole Unix
// seconds.
func (c *Claims) SetExpirationTime(t time.Time) { c.Set(ClaimExpirationTime, t.Unix()) }

// NotBefore returns the "nbf" claim as a time.Time.
func (c *Claims) NotBefore() (time.Time, error) { return c.GetTime(ClaimNotBefore) }

// SetNotBefore sets "nbf" from a time.Time.
func (c *Claims) SetNotBefore(t time.Time) { c.Set(ClaimNotBefore, t.Unix()) }

// IssuedAt returns the "iat" claim as a time.Time.
func (c *Claims) IssuedAt() (time.Time, error) { return c.GetTime(ClaimIssuedAt) }

// SetIssuedAt sets "iat" from a time.Time.
func (c *Claims) SetIssuedAt(t time.Time) { c.Set(ClaimIssuedAt, t.Unix()) }
