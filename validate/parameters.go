package validate

import (
	"context"
	"time"

	"github.com/halimath/josecore/jwa"
	"github.com/halimath/josecore/jwk"
)

// KeyResolver resolves candidate keys for an issuer, as a lazy,
// asynchronously iterable sequence (jwk.KeyIterator), per spec.md §5. For
// ResolveSigningKeys, iss is the unverified "iss" claim peeked from the token
// before cryptographic verification; ResolveDecryptionKeys is always called
// with iss "", since the claims are still encrypted at that point. A
// resolver that does not distinguish issuers may ignore it.
type KeyResolver func(ctx context.Context, iss string) jwk.KeyIterator

// IssuerValidator decides whether iss is acceptable.
type IssuerValidator func(iss string) bool

// AudienceValidator decides whether the token's audience list is acceptable.
type AudienceValidator func(aud []string) bool

// Parameters configures Validate, mirroring spec.md §4.7's
// ValidationParameters. Every tunable is an explicit field set by the
// caller; there is no environment or file-based configuration source.
type Parameters struct {
	// ValidateLifetime rejects a token when now < nbf-skew or now >= exp+skew.
	ValidateLifetime bool

	// ValidateIssuer calls ValidateIssuerFunc(iss).
	ValidateIssuer bool

	// ValidateAudience calls ValidateAudienceFunc(aud).
	ValidateAudience bool

	// ValidateIssuerSigningKey documents that ResolveSigningKeys is called
	// with the token's claimed (not yet verified) issuer; the resolver
	// itself is responsible for scoping candidate keys to that issuer.
	ValidateIssuerSigningKey bool

	// RequireSignedTokens rejects any JWS segment with alg=none outright.
	RequireSignedTokens bool

	ValidateIssuerFunc   IssuerValidator
	ValidateAudienceFunc AudienceValidator

	// ResolveSigningKeys is required; it supplies the candidate keys the
	// JWS verifier walks.
	ResolveSigningKeys KeyResolver

	// ResolveDecryptionKeys is required only when the compact string is a
	// five-segment JWE.
	ResolveDecryptionKeys KeyResolver

	// ClockSkew is the leeway applied to exp/nbf checks. Default 0.
	ClockSkew time.Duration

	// Now returns the current time used for temporal checks. Defaults to
	// time.Now when nil.
	Now func() time.Time

	// Registry supplies algorithm dispatch. Defaults to
	// jwa.DefaultRegistry() when nil.
	Registry *jwa.Registry
}

func (p Parameters) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p Parameters) registry() *jwa.Registry {
	if p.Registry != nil {
		return p.Registry
	}
	return jwa.DefaultRegistry()
}
