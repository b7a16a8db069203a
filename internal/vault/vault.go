// Package vault stores credentials in the Windows Credential Manager.
//
// Entries are generic credentials keyed by a target name such as
// "winadmin/ldap". On non-Windows platforms every call errors; callers
// fall through to their next credential source.
package vault

import "errors"

// Credential is one vault entry.
type Credential struct {
	Target   string
	Username string
	Secret   []byte
}

// ErrNotFound is returned when no entry exists for a target.
var ErrNotFound = errors.New("credential not found in vault")

// ErrUnsupported is returned on platforms without a credential vault.
var ErrUnsupported = errors.New("credential vault only supported on Windows")
