//go:build windows

package secrets

import (
	"crypto/sha1"
	"crypto/x509"
	"encoding/hex"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// CERT_STORE_READONLY_FLAG (not exported by x/sys/windows)
const certStoreReadonly = 0x00008000

// FindCertificate looks up a certificate by SHA-1 thumbprint in the
// current user's and then the machine's MY store. Thumbprints compare
// case-insensitively and may contain the spaces certutil prints.
func FindCertificate(thumbprint string) (*x509.Certificate, error) {
	want := normalizeThumbprint(thumbprint)
	if len(want) != sha1.Size*2 {
		return nil, fmt.Errorf("invalid thumbprint %q", thumbprint)
	}

	locations := []uint32{
		windows.CERT_SYSTEM_STORE_CURRENT_USER,
		windows.CERT_SYSTEM_STORE_LOCAL_MACHINE,
	}

	for _, loc := range locations {
		cert, err := findInStore(loc, want)
		if err != nil {
			continue
		}
		if cert != nil {
			return cert, nil
		}
	}

	return nil, fmt.Errorf("certificate with thumbprint %s not found", want)
}

func findInStore(location uint32, want string) (*x509.Certificate, error) {
	storeName, err := windows.UTF16PtrFromString("MY")
	if err != nil {
		return nil, err
	}

	store, err := windows.CertOpenStore(
		windows.CERT_STORE_PROV_SYSTEM,
		0,
		0,
		location|certStoreReadonly,
		uintptr(unsafe.Pointer(storeName)),
	)
	if err != nil {
		return nil, fmt.Errorf("open certificate store: %w", err)
	}
	defer windows.CertCloseStore(store, 0)

	var ctx *windows.CertContext
	for {
		ctx, err = windows.CertEnumCertificatesInStore(store, ctx)
		if err != nil || ctx == nil {
			return nil, nil
		}

		der := unsafe.Slice(ctx.EncodedCert, ctx.Length)
		sum := sha1.Sum(der)
		if hex.EncodeToString(sum[:]) != want {
			continue
		}

		// Copy out before the context is released by the next Enum call.
		own := make([]byte, len(der))
		copy(own, der)

		windows.CertFreeCertificateContext(ctx)

		cert, err := x509.ParseCertificate(own)
		if err != nil {
			return nil, fmt.Errorf("parse certificate: %w", err)
		}
		return cert, nil
	}
}
