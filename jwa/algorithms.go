package jwa

// SignatureAlgorithm names a JWS "alg" value, RFC 7518 section 3.1.
type SignatureAlgorithm string

const (
	None SignatureAlgorithm = "none"

	HS256 SignatureAlgorithm = "HS256"
	HS384 SignatureAlgorithm = "HS384"
	HS512 SignatureAlgorithm = "HS512"

	RS256 SignatureAlgorithm = "RS256"
	RS384 SignatureAlgorithm = "RS384"
	RS512 SignatureAlgorithm = "RS512"

	PS256 SignatureAlgorithm = "PS256"
	PS384 SignatureAlgorithm = "PS384"
	PS512 SignatureAlgorithm = "PS512"

	ES256 SignatureAlgorithm = "ES256"
	ES384 SignatureAlgorithm = "ES384"
	ES512 SignatureAlgorithm = "ES512"
)

// KeyManagementAlgorithm names a JWE "alg" value, RFC 7518 section 4.1.
type KeyManagementAlgorithm string

const (
	Direct       KeyManagementAlgorithm = "dir"
	RSAOAEP      KeyManagementAlgorithm = "RSA-OAEP"
	RSAOAEP256   KeyManagementAlgorithm = "RSA-OAEP-256"
	RSA1_5       KeyManagementAlgorithm = "RSA1_5"
	A128GCMKW    KeyManagementAlgorithm = "A128GCMKW"
	A192GCMKW    KeyManagementAlgorithm = "A192GCMKW"
	A256GCMKW    KeyManagementAlgorithm = "A256GCMKW"

	// Declared per RFC 7518 section 4.8 but never registered: this module
	// has no notion of a user passphrase anywhere in its scope, so no KDF
	// backs these identifiers. See DESIGN.md.
	PBES2HS256A128KW KeyManagementAlgorithm = "PBES2-HS256+A128KW"
	PBES2HS384A192KW KeyManagementAlgorithm = "PBES2-HS384+A192KW"
	PBES2HS512A256KW KeyManagementAlgorithm = "PBES2-HS512+A256KW"
)

// ContentEncryptionAlgorithm names a JWE "enc" value, RFC 7518 section 5.1.
type ContentEncryptionAlgorithm string

const (
	A128CBCHS256 ContentEncryptionAlgorithm = "A128CBC-HS256"
	A192CBCHS384 ContentEncryptionAlgorithm = "A192CBC-HS384"
	A256CBCHS512 ContentEncryptionAlgorithm = "A256CBC-HS512"

	A128GCM ContentEncryptionAlgorithm = "A128GCM"
	A192GCM ContentEncryptionAlgorithm = "A192GCM"
	A256GCM ContentEncryptionAlgorithm = "A256GCM"
)
