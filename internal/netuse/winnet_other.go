//go:build !windows

package netuse

// NewBinder returns a Binder that rejects every call on non-Windows
// platforms. Drive mapping needs the WNet API.
func NewBinder() Binder {
	return unsupportedBinder{}
}

type unsupportedBinder struct{}

func (unsupportedBinder) Verify(target MappingTarget, _ Credential) AttemptResult {
	return unsupported(target.Drive)
}

func (unsupportedBinder) Bind(target MappingTarget, _ Credential, _ bool) AttemptResult {
	return unsupported(target.Drive)
}

func (unsupportedBinder) Unbind(name string, _ bool) AttemptResult {
	return unsupported(name)
}

func unsupported(drive string) AttemptResult {
	return AttemptResult{
		Drive:   drive,
		Code:    CodeBadNetPath,
		Message: "drive mapping only supported on Windows",
	}
}

// RefreshNamespace is a no-op on non-Windows.
func RefreshNamespace() {}
