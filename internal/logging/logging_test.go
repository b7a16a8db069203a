package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSessionWritesToFile(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, "testtool")
	if err != nil {
		t.Fatalf("failed to open session: %v", err)
	}

	s.Printf("unit", "hello %d", 42)

	if err := s.Close(); err != nil {
		t.Fatalf("failed to close session: %v", err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	content := string(data)
	if !strings.Contains(content, "[unit] hello 42") {
		t.Errorf("expected log line in file, got:\n%s", content)
	}
	if !strings.Contains(content, "Session started") {
		t.Error("expected session header in file")
	}
	if !strings.Contains(content, "Session finished") {
		t.Error("expected session footer in file")
	}
}

func TestSessionFileNaming(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, "drive-mapper")
	if err != nil {
		t.Fatalf("failed to open session: %v", err)
	}
	defer s.Close()

	base := filepath.Base(s.Path())
	if !strings.HasPrefix(base, "drive-mapper-") {
		t.Errorf("expected file name with tool prefix, got %s", base)
	}
	if !strings.HasSuffix(base, ".log") {
		t.Errorf("expected .log suffix, got %s", base)
	}
}

func TestDiscardSession(t *testing.T) {
	s := Discard()
	s.Printf("unit", "goes nowhere")

	if s.Path() != "" {
		t.Errorf("expected empty path for discard session, got %s", s.Path())
	}
	if err := s.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
}

func TestLaunchViewerRequiresPath(t *testing.T) {
	if err := LaunchViewer("less", ""); err == nil {
		t.Error("expected error for empty log path")
	}
}
