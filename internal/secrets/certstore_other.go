//go:build !windows

package secrets

import (
	"crypto/x509"
	"fmt"
)

// FindCertificate needs the Windows certificate store; use LoadPFX on
// other platforms.
func FindCertificate(thumbprint string) (*x509.Certificate, error) {
	return nil, fmt.Errorf("certificate store lookup only supported on Windows")
}
