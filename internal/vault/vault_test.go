package vault

import (
	"errors"
	"runtime"
	"testing"
)

func TestVaultOnNonWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping non-Windows test on Windows")
	}

	if err := Store(Credential{Target: "winadmin/test"}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported from Store, got %v", err)
	}
	if _, err := Retrieve("winadmin/test"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported from Retrieve, got %v", err)
	}
	if err := Delete("winadmin/test"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported from Delete, got %v", err)
	}
}
