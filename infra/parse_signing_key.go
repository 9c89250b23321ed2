package infra

import (
	"crypto/rsa"
	"log"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// MustParseVerificationKey parses the PEM encoded RSA public key used to verify caller tokens.
func MustParseVerificationKey(publicKeyString string) *rsa.PublicKey {
	// multi-line env variables passed through docker-compose have their newlines escaped
	publicKeyString = strings.ReplaceAll(publicKeyString, "\\n", "\n")
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyString))
	if err != nil {
		log.Fatalf("Can't load AUTHENTICATION_JWT_PUBLIC_KEY public key %s", err)
	}
	return publicKey
}
