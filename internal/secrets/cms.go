// Package secrets handles certificate lookup and CMS message encryption.
//
// Secrets at rest (e.g. the LDAP bind password for profile-cleanup) are
// CMS (PKCS#7) enveloped to a certificate, the same format PowerShell's
// Protect-CmsMessage produces, so files are interchangeable with the
// existing operational tooling.
package secrets

import (
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/smallstep/pkcs7"
)

// pemType is the armor label Protect-CmsMessage uses.
const pemType = "CMS"

// Encrypt envelopes data to the certificate and returns a PEM-armored
// CMS message.
func Encrypt(data []byte, cert *x509.Certificate) ([]byte, error) {
	if cert == nil {
		return nil, fmt.Errorf("no recipient certificate")
	}

	// Protect-CmsMessage uses AES-256-CBC; stay compatible.
	pkcs7.ContentEncryptionAlgorithm = pkcs7.EncryptionAlgorithmAES256CBC

	der, err := pkcs7.Encrypt(data, []*x509.Certificate{cert})
	if err != nil {
		return nil, fmt.Errorf("CMS encrypt: %w", err)
	}

	return pem.EncodeToMemory(&pem.Block{Type: pemType, Bytes: der}), nil
}

// Decrypt opens a CMS message with the certificate and its private key.
// Accepts both PEM-armored and raw DER input.
func Decrypt(msg []byte, cert *x509.Certificate, key crypto.PrivateKey) ([]byte, error) {
	der := msg
	if block, _ := pem.Decode(msg); block != nil {
		der = block.Bytes
	}

	p7, err := pkcs7.Parse(der)
	if err != nil {
		return nil, fmt.Errorf("parse CMS message: %w", err)
	}

	data, err := p7.Decrypt(cert, key)
	if err != nil {
		return nil, fmt.Errorf("CMS decrypt: %w", err)
	}
	return data, nil
}
