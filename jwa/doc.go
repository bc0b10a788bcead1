// Package jwa implements the JSON Web Algorithms registry defined in RFC
// 7518 (https://datatracker.ietf.org/doc/html/rfc7518): per-algorithm
// signing/verification, key management (wrap/unwrap) and content
// encryption, dispatched through an immutable Registry built once at
// construction.
package jwa
