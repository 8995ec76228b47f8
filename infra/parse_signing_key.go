package infra

import (
	"log"
	"slices"
	"strings"
)

var supportedSigningAlgorithms = []string{"HS256", "HS384", "HS512"}

type SigningSecret struct {
	Key       []byte
	Algorithm string
}

func MustParseSigningSecret(secret, algorithm string) SigningSecret {
	if strings.TrimSpace(secret) == "" {
		log.Fatalf("SECRET_KEY must not be empty")
	}
	algorithm = strings.ToUpper(strings.TrimSpace(algorithm))
	if algorithm == "" {
		algorithm = "HS256"
	}
	if !slices.Contains(supportedSigningAlgorithms, algorithm) {
		log.Fatalf("unsupported ALGORITHM %q, expected one of %v", algorithm, supportedSigningAlgorithms)
	}
	return SigningSecret{Key: []byte(secret), Algorithm: algorithm}
}
