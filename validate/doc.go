// Package validate implements the token validation pipeline: parse the
// compact string, decrypt if it is a JWE, verify the JWS signature, then
// check temporal, issuer and audience claims against caller-supplied
// policy, per spec.md §4.7.
package validate
