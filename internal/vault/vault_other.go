//go:build !windows

package vault

// Store is unavailable off Windows.
func Store(cred Credential) error {
	return ErrUnsupported
}

// Retrieve is unavailable off Windows.
func Retrieve(target string) (Credential, error) {
	return Credential{}, ErrUnsupported
}

// Delete is unavailable off Windows.
func Delete(target string) error {
	return ErrUnsupported
}
