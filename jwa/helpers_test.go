package jwa

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
)

var (
	testRSAPriv *rsa.PrivateKey
	testRSAPub  rsa.PublicKey

	testECP256Priv *ecdsa.PrivateKey
)

func init() {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic(err)
	}
	testRSAPriv = priv
	testRSAPub = priv.PublicKey

	ecPriv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		panic(err)
	}
	testECP256Priv = ecPriv
}
