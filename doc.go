// Package josecore implements RFC 7515-7518 JSON Object Signing and
// Encryption: JWS, JWE, JWK and the JWA algorithm registry. This package is
// the public facade; Issue builds a compact token and Validate checks one
// against caller-supplied policy. The lower-level jws, jwe, jwk, jwa, jwt
// and validate packages remain directly usable for callers that need more
// control than the facade offers.
package josecore
