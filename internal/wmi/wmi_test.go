package wmi

import (
	"context"
	"runtime"
	"testing"
)

func TestQueryResultPropertyHelpers(t *testing.T) {
	result := QueryResult{
		"Name":         "T:",
		"ProviderName": `\\srv01\transfer`,
		"Compressed":   true,
		"DriveType":    uint32(4),
		"Size":         int64(100),
	}

	if val, ok := GetPropertyString(result, "ProviderName"); !ok || val != `\\srv01\transfer` {
		t.Errorf("expected provider name, got '%s', ok=%v", val, ok)
	}

	if _, ok := GetPropertyString(result, "Missing"); ok {
		t.Error("expected ok=false for missing property")
	}

	if val, ok := GetPropertyBool(result, "Compressed"); !ok || !val {
		t.Errorf("expected true, got %v, ok=%v", val, ok)
	}

	if val, ok := GetPropertyInt(result, "DriveType"); !ok || val != 4 {
		t.Errorf("expected 4, got %d, ok=%v", val, ok)
	}

	if val, ok := GetPropertyInt(result, "Size"); !ok || val != 100 {
		t.Errorf("expected 100, got %d, ok=%v", val, ok)
	}

	if _, ok := GetPropertyInt(result, "Name"); ok {
		t.Error("expected ok=false for wrong type")
	}
}

func TestQueryOnNonWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping non-Windows test on Windows")
	}

	ctx := context.Background()

	_, err := Query(ctx, "root\\CIMV2", "SELECT * FROM Win32_MappedLogicalDisk")
	if err == nil {
		t.Error("expected error on non-Windows platform")
	}

	_, err = QuerySingle(ctx, "root\\CIMV2", "SELECT * FROM Win32_MappedLogicalDisk")
	if err == nil {
		t.Error("expected error on non-Windows platform")
	}
}
