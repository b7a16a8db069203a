//go:build !windows

package prompt

import "github.com/osiriscare/winadmin/internal/netuse"

// newGUI returns nil on non-Windows; New falls back to the console.
func newGUI(opts Options) netuse.CredentialSource {
	return nil
}
