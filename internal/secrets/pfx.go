package secrets

import (
	"crypto"
	"crypto/x509"
	"fmt"
	"os"

	"golang.org/x/crypto/pkcs12"
)

// LoadPFX reads a certificate and its private key from a PFX/PKCS#12
// file. This is the decryption path on hosts without a certificate store
// and for service accounts carrying their cert as a file.
func LoadPFX(path, password string) (*x509.Certificate, crypto.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read PFX file: %w", err)
	}

	key, cert, err := pkcs12.Decode(data, password)
	if err != nil {
		return nil, nil, fmt.Errorf("decode PFX %s: %w", path, err)
	}

	return cert, key, nil
}
