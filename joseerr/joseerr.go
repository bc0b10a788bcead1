// Package joseerr defines the flat, exception-free error taxonomy shared by
// every package in this module. A *Error is returned as a value, never
// raised; callers distinguish failure modes by comparing Kind.
package joseerr

import "fmt"

// Kind discriminates the terminal outcomes a caller needs to branch on.
type Kind int

const (
	// InvalidToken covers structural, base64, JSON or signature failures;
	// missing required headers; and an empty candidate key set.
	InvalidToken Kind = iota + 1

	// TokenExpired is returned when now >= exp + skew.
	TokenExpired

	// TokenNotYetValid is returned when now < nbf - skew.
	TokenNotYetValid

	// IssuerRejected is returned when a caller-supplied issuer validator
	// rejects the token.
	IssuerRejected

	// AudienceRejected is returned when a caller-supplied audience
	// validator rejects the token.
	AudienceRejected

	// UnsupportedAlgorithm is returned when an algorithm name has no
	// registered implementation.
	UnsupportedAlgorithm

	// AlgorithmMismatch is returned when a header alg and a key's alg hint
	// conflict at issue time.
	AlgorithmMismatch

	// WeakKey is returned when key material does not meet the algorithm's
	// minimum strength (short HMAC secret, small RSA modulus, disallowed
	// curve).
	WeakKey

	// Cryptography covers underlying primitive failures: RNG exhaustion,
	// cipher errors.
	Cryptography
)

func (k Kind) String() string {
	switch k {
	case InvalidToken:
		return "invalid_token"
	case TokenExpired:
		return "token_expired"
	case TokenNotYetValid:
		return "token_not_yet_valid"
	case IssuerRejected:
		return "issuer_rejected"
	case AudienceRejected:
		return "audience_rejected"
	case UnsupportedAlgorithm:
		return "unsupported_algorithm"
	case AlgorithmMismatch:
		return "algorithm_mismatch"
	case WeakKey:
		return "weak_key"
	case Cryptography:
		return "cryptography"
	default:
		return "unknown"
	}
}

// Error is the single error value type returned across the public API.
type Error struct {
	Kind   Kind
	Detail string

	// Wrapped holds the underlying cause, if any, and participates in
	// errors.Is/As via Unwrap.
	Wrapped error
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// New creates an *Error with a static detail message.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Newf creates an *Error with a formatted detail message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error of the given kind carrying cause as its wrapped
// error. If cause is already an *Error, its Kind and Detail are preserved.
func Wrap(kind Kind, cause error, detail string) *Error {
	if e, ok := cause.(*Error); ok {
		return e
	}
	return &Error{Kind: kind, Detail: detail, Wrapped: cause}
}

// Is reports whether err is a *Error with the given Kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
