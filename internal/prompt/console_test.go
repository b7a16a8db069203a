package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/osiriscare/winadmin/internal/netuse"
)

func scriptedConsole(input string, opts Options) (*Console, *bytes.Buffer) {
	var out bytes.Buffer
	return &Console{
		In:      strings.NewReader(input),
		Out:     &out,
		Opts:    opts,
		stdinFd: -1, // piped input path
	}, &out
}

func TestConsoleCollect(t *testing.T) {
	c, _ := scriptedConsole("CORP\\jdoe\nhunter2\n", Options{})

	cred, err := c.Collect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cred.Username != "CORP\\jdoe" {
		t.Errorf("expected username CORP\\jdoe, got %q", cred.Username)
	}
	if cred.Secret != "hunter2" {
		t.Errorf("expected secret hunter2, got %q", cred.Secret)
	}
}

func TestConsoleDefaultUser(t *testing.T) {
	c, out := scriptedConsole("\nhunter2\n", Options{DefaultUser: "CORP\\jdoe"})

	cred, err := c.Collect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cred.Username != "CORP\\jdoe" {
		t.Errorf("expected default username, got %q", cred.Username)
	}
	if !strings.Contains(out.String(), "[CORP\\jdoe]") {
		t.Errorf("expected default shown in label, got %q", out.String())
	}
}

func TestConsoleEOFCancels(t *testing.T) {
	c, _ := scriptedConsole("", Options{})

	_, err := c.Collect()
	if !errors.Is(err, netuse.ErrCancelled) {
		t.Fatalf("expected ErrCancelled on EOF, got %v", err)
	}
}

func TestConsoleEmptyInputIsNotCancel(t *testing.T) {
	// Empty username with no default plus empty password: a credential
	// pair is still returned; cancellation needs EOF.
	c, _ := scriptedConsole("\n\n", Options{})

	cred, err := c.Collect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cred.Username != "" || cred.Secret != "" {
		t.Errorf("expected empty credential, got %+v", cred)
	}
}

func TestConsoleCRLFTrimmed(t *testing.T) {
	c, _ := scriptedConsole("jdoe\r\nsecret\r\n", Options{})

	cred, err := c.Collect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cred.Username != "jdoe" {
		t.Errorf("expected CRLF trimmed, got %q", cred.Username)
	}
	if cred.Secret != "secret" {
		t.Errorf("expected CRLF trimmed, got %q", cred.Secret)
	}
}

func TestConsoleMessageBanner(t *testing.T) {
	c, out := scriptedConsole("jdoe\nsecret\n", Options{Message: "Sign in to map network drives"})

	if _, err := c.Collect(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Sign in to map network drives") {
		t.Error("expected banner message in output")
	}
}
