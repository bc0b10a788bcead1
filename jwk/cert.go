// Conversion from X.509 certificates to JWKs, grounded on the
// certificate/public-key handling pattern in Teleport's lib/jwt/jwk.go
// (fetched in other_examples/), adapted to this package's Key model and
// extended with "x5c"/"x5t" population per RFC 7517 section 4.7/4.8.
package jwk

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"

	"github.com/halimath/josecore/joseerr"
)

// CertToJWK converts an X.509 certificate's public key into a Key carrying
// the certificate's SHA-1 thumbprint as both "kid" and "x5t" and the raw
// DER certificate as a single-entry "x5c" chain. "use" is derived from the
// certificate's Key Usage extension per spec.md §4.3: digitalSignature
// maps to "sig", keyEncipherment/dataEncipherment map to "enc", a
// certificate asserting both yields "sig enc", and a certificate with no
// Key Usage extension at all defaults to "sig".
func CertToJWK(cert *x509.Certificate, opts ...Option) (Key, error) {
	if cert == nil {
		return nil, joseerr.New(joseerr.InvalidToken, "certificate must not be nil")
	}

	sum := sha1.Sum(cert.Raw)
	thumbprint := sum[:]

	allOpts := append([]Option{
		WithKeyID(hexThumbprint(thumbprint)),
		WithCertificateChain([][]byte{cert.Raw}),
		WithCertificateThumbprint(thumbprint),
		WithUse(certUse(cert)),
	}, opts...)

	switch pub := cert.PublicKey.(type) {
	case *rsa.PublicKey:
		return NewRSAKey(pub, nil, allOpts...)
	case *ecdsa.PublicKey:
		return NewECKey(pub, nil, allOpts...)
	default:
		return nil, joseerr.Newf(joseerr.UnsupportedAlgorithm, "unsupported certificate public key type %T", cert.PublicKey)
	}
}

func certUse(cert *x509.Certificate) Use {
	if cert.KeyUsage == 0 {
		return UseSignature
	}

	sig := cert.KeyUsage&x509.KeyUsageDigitalSignature != 0
	enc := cert.KeyUsage&(x509.KeyUsageKeyEncipherment|x509.KeyUsageDataEncipherment) != 0

	switch {
	case sig && enc:
		return Use("sig enc")
	case sig:
		return UseSignature
	case enc:
		return UseEncryption
	default:
		return ""
	}
}

const hexDigits = "0123456789abcdef"

func hexThumbprint(b []byte) string {
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexDigits[c>>4]
		out[i*2+1] = hexDigits[c&0x0f]
	}
	return string(out)
}
