package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/osiriscare/winadmin/internal/netuse"
)

// Console prompts for username and password on the terminal. The password
// is read without echo when stdin is a real terminal. EOF (Ctrl+Z on
// Windows, Ctrl+D elsewhere) cancels, which is distinct from entering an
// empty value.
type Console struct {
	In   io.Reader
	Out  io.Writer
	Opts Options

	// stdinFd is used for no-echo password entry; -1 disables it.
	stdinFd int

	reader *bufio.Reader
}

// NewConsole returns a console prompt bound to stdin/stdout.
func NewConsole(opts Options) *Console {
	return &Console{
		In:      os.Stdin,
		Out:     os.Stdout,
		Opts:    opts,
		stdinFd: int(os.Stdin.Fd()),
	}
}

// Collect implements netuse.CredentialSource.
func (c *Console) Collect() (netuse.Credential, error) {
	if c.reader == nil {
		c.reader = bufio.NewReader(c.In)
	}

	if c.Opts.Message != "" {
		fmt.Fprintln(c.Out, c.Opts.Message)
	}

	username, err := c.readLine(usernameLabel(c.Opts.DefaultUser))
	if err != nil {
		return netuse.Credential{}, err
	}
	if username == "" {
		username = c.Opts.DefaultUser
	}

	secret, err := c.readSecret("Password: ")
	if err != nil {
		return netuse.Credential{}, err
	}

	return netuse.Credential{Username: username, Secret: secret}, nil
}

// Secret reads a single secret without echo, skipping the username
// question. Used when only a password or passphrase is needed.
func (c *Console) Secret(label string) (string, error) {
	if c.reader == nil {
		c.reader = bufio.NewReader(c.In)
	}
	return c.readSecret(label)
}

func usernameLabel(defaultUser string) string {
	if defaultUser != "" {
		return fmt.Sprintf("Username [%s]: ", defaultUser)
	}
	return "Username: "
}

func (c *Console) readLine(label string) (string, error) {
	fmt.Fprint(c.Out, label)
	line, err := c.reader.ReadString('\n')
	if err == io.EOF && line == "" {
		fmt.Fprintln(c.Out)
		return "", netuse.ErrCancelled
	}
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) readSecret(label string) (string, error) {
	if c.stdinFd >= 0 && term.IsTerminal(c.stdinFd) {
		fmt.Fprint(c.Out, label)
		raw, err := term.ReadPassword(c.stdinFd)
		fmt.Fprintln(c.Out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}
	// Piped input (tests, scripts): fall back to a plain line read.
	return c.readLine(label)
}
