// Package jws implements JSON Web Signatures as defined in RFC 7515, with
// algorithm dispatch delegated to jwa.Registry instead of a single
// hand-picked signer.
package jws
