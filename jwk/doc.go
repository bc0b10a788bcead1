// Package jwk provides types and functions implementing JSON Web Keys as
// specified in RFC 7517 (https://datatracker.ietf.org/doc/html/rfc7517).
package jwk
