// Package jwe implements JSON Web Encryption as defined in RFC 7516, with
// key-management and content-encryption dispatch delegated to jwa.Registry.
package jwe
