// Package jwt implements the JWT claim set container from RFC 7519 section
// 4. Signing, encryption and validation of the compact token built around a
// claim set live in jws, jwe and validate; this package only models the
// claims themselves.
package jwt
