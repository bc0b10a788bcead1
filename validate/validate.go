package validate

import (
	"context"
	"strings"

	"github.com/halimath/josecore/joseerr"
	"github.com/halimath/josecore/jwe"
	"github.com/halimath/josecore/jws"
	"github.com/halimath/josecore/jwt"
)

// DecodedToken is the result of a successful Validate call: the verified
// JWS header and the parsed claim set it carried.
type DecodedToken struct {
	Header *jws.Header
	Claims *jwt.Claims
}

// Validate runs compact through the full pipeline described by spec.md
// §4.7: unwrap a JWE envelope if present, verify the inner JWS signature,
// then apply whichever temporal, issuer and audience checks params
// enables. It never returns a DecodedToken together with a non-nil error.
func Validate(ctx context.Context, compact string, params Parameters) (*DecodedToken, *joseerr.Error) {
	if params.ResolveSigningKeys == nil {
		return nil, joseerr.New(joseerr.InvalidToken, "ResolveSigningKeys is required")
	}

	registry := params.registry()

	segments := strings.Count(compact, ".") + 1

	var jwsToken string
	switch segments {
	case 5:
		if params.ResolveDecryptionKeys == nil {
			return nil, joseerr.New(joseerr.InvalidToken, "ResolveDecryptionKeys is required for encrypted tokens")
		}
		env, err := jwe.ParseCompact(compact)
		if err != nil {
			return nil, asJoseErr(err, "malformed JWE")
		}
		plaintext, err := jwe.Decrypt(ctx, registry, env, params.ResolveDecryptionKeys(ctx, ""))
		if err != nil {
			if ctx.Err() != nil {
				return nil, joseerr.Wrap(joseerr.InvalidToken, ctx.Err(), "validation cancelled")
			}
			return nil, asJoseErr(err, "decryption failed")
		}
		jwsToken = string(plaintext)
	case 3:
		jwsToken = compact
	default:
		return nil, joseerr.Newf(joseerr.InvalidToken, "unexpected number of segments: %d", segments)
	}

	if ctx.Err() != nil {
		return nil, joseerr.Wrap(joseerr.InvalidToken, ctx.Err(), "validation cancelled")
	}

	parsed, err := jws.ParseCompact(jwsToken)
	if err != nil {
		return nil, asJoseErr(err, "malformed JWS")
	}

	// Peek the claimed issuer before verification so a resolver that is
	// scoped by issuer (ValidateIssuerSigningKey) can narrow its candidate
	// set. This issuer is untrusted until the signature check below
	// succeeds.
	claimedIssuer := ""
	if peeked, perr := jwt.Parse(parsed.Payload()); perr == nil {
		claimedIssuer, _ = peeked.Issuer()
	}

	signingKeys := params.ResolveSigningKeys(ctx, claimedIssuer)
	if err := jws.Verify(ctx, registry, parsed, signingKeys, params.RequireSignedTokens); err != nil {
		if ctx.Err() != nil {
			return nil, joseerr.Wrap(joseerr.InvalidToken, ctx.Err(), "validation cancelled")
		}
		return nil, asJoseErr(err, "signature verification failed")
	}

	claims, perr := jwt.Parse(parsed.Payload())
	if perr != nil {
		return nil, asJoseErr(perr, "invalid claims")
	}

	now := params.now()

	if params.ValidateLifetime {
		if exp, err := claims.ExpirationTime(); err == nil && !exp.IsZero() {
			if !now.Before(exp.Add(params.ClockSkew)) {
				return nil, joseerr.New(joseerr.TokenExpired, "token has expired")
			}
		}
		if nbf, err := claims.NotBefore(); err == nil && !nbf.IsZero() {
			if now.Before(nbf.Add(-params.ClockSkew)) {
				return nil, joseerr.New(joseerr.TokenNotYetValid, "token is not yet valid")
			}
		}
	}

	if params.ValidateIssuer {
		iss, _ := claims.Issuer()
		if params.ValidateIssuerFunc == nil || !params.ValidateIssuerFunc(iss) {
			return nil, joseerr.Newf(joseerr.IssuerRejected, "issuer %q rejected", iss)
		}
	}

	if params.ValidateAudience {
		aud, _ := claims.Audience()
		if params.ValidateAudienceFunc == nil || !params.ValidateAudienceFunc(aud) {
			return nil, joseerr.New(joseerr.AudienceRejected, "audience rejected")
		}
	}

	if ctx.Err() != nil {
		return nil, joseerr.Wrap(joseerr.InvalidToken, ctx.Err(), "validation cancelled")
	}

	return &DecodedToken{
		Header: parsed.Header(),
		Claims: claims,
	}, nil
}

func asJoseErr(err error, detail string) *joseerr.Error {
	if e, ok := err.(*joseerr.Error); ok {
		return e
	}
	return joseerr.Wrap(joseerr.InvalidToken, err, detail)
}
