//go:build windows

package vault

import (
	"fmt"

	"github.com/danieljoos/wincred"
)

// Store writes or overwrites the entry for cred.Target.
func Store(cred Credential) error {
	if cred.Target == "" {
		return fmt.Errorf("vault target is required")
	}

	entry := wincred.NewGenericCredential(cred.Target)
	entry.UserName = cred.Username
	entry.CredentialBlob = cred.Secret
	entry.Persist = wincred.PersistLocalMachine

	if err := entry.Write(); err != nil {
		return fmt.Errorf("write vault entry %s: %w", cred.Target, err)
	}
	return nil
}

// Retrieve loads the entry for a target. Lookup failures map to
// ErrNotFound; the underlying API does not distinguish missing from
// unreadable for generic credentials.
func Retrieve(target string) (Credential, error) {
	entry, err := wincred.GetGenericCredential(target)
	if err != nil {
		return Credential{}, ErrNotFound
	}

	return Credential{
		Target:   target,
		Username: entry.UserName,
		Secret:   entry.CredentialBlob,
	}, nil
}

// Delete removes the entry for a target.
func Delete(target string) error {
	entry, err := wincred.GetGenericCredential(target)
	if err != nil {
		return ErrNotFound
	}
	if err := entry.Delete(); err != nil {
		return fmt.Errorf("delete vault entry %s: %w", target, err)
	}
	return nil
}
