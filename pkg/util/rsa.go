package util

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"strings"
)

// TestKeyBits is the modulus size of locally generated test keys.
const TestKeyBits = 2048

// GenerateRSAPrivateKey returns a fresh PKCS#1 private key in PEM form.
func GenerateRSAPrivateKey(bits int) (string, error) {
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return "", fmt.Errorf("generate rsa key: %w", err)
	}
	block := &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}
	return strings.TrimSuffix(string(pem.EncodeToMemory(block)), "\n"), nil
}
