// Package netuse maps network drives with verified credentials.
//
// The flow has three parts: a credential source (console or GUI prompt),
// a Binder that talks to the Windows WNet API, and a Controller/Registrar
// pair that drives the retry loop and the batch mapping. The Binder is an
// interface so the loop logic is testable without a domain controller.
package netuse

import "errors"

// Credential is an operator-supplied username/secret pair. It lives for
// one tool run and is never written to disk.
type Credential struct {
	Username string
	Secret   string
}

// MappingTarget associates a drive letter with a UNC path. Targets are
// static, loaded from configuration at startup.
type MappingTarget struct {
	Drive      string `yaml:"drive"`
	RemotePath string `yaml:"path"`
}

// LocalName returns the drive in the "X:" form the WNet API expects.
func (t MappingTarget) LocalName() string {
	return t.Drive + ":"
}

// AttemptResult is the outcome of a single verify, bind or unbind call.
type AttemptResult struct {
	Drive   string
	Success bool
	Code    uint32
	Message string
}

// CredentialSource collects a credential from the operator.
// Implementations must return ErrCancelled when the operator backs out,
// which is distinct from submitting empty input.
type CredentialSource interface {
	Collect() (Credential, error)
}

// Binder establishes and removes connections to remote shares.
type Binder interface {
	// Verify probes the target with a connect-then-disconnect cycle.
	// It validates the credential without leaving a binding behind.
	Verify(target MappingTarget, cred Credential) AttemptResult

	// Bind maps the target's drive letter to its remote path. An existing
	// binding on the same letter is removed first, so Bind never fails
	// with an already-assigned error.
	Bind(target MappingTarget, cred Credential, persistent bool) AttemptResult

	// Unbind removes a connection by local name ("X:") or remote path.
	// Removing a connection that does not exist is not an error.
	Unbind(name string, force bool) AttemptResult
}

// ErrCancelled is returned when the operator aborts credential entry.
// It is terminal and deliberately not treated as a failure.
var ErrCancelled = errors.New("cancelled by operator")

// ErrRetriesExhausted is returned when the configured number of
// authentication attempts has been used up.
var ErrRetriesExhausted = errors.New("authentication retries exhausted")

// Windows error codes surfaced by the WNet API that operators see most.
const (
	CodeAccessDenied       = 5
	CodeBadNetPath         = 53
	CodeInvalidPassword    = 86
	CodeAlreadyAssigned    = 85
	CodeCredentialConflict = 1219
	CodeLogonFailure       = 1326
	CodeNotConnected       = 2250
)
