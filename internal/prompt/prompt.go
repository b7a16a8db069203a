// Package prompt collects operator credentials for the admin tools.
//
// Two front ends satisfy netuse.CredentialSource: a console prompt and,
// on Windows, the native credential dialog (credui). Both distinguish
// cancellation from empty input.
package prompt

import "github.com/osiriscare/winadmin/internal/netuse"

// Options configures a prompt front end.
type Options struct {
	// Caption and Message are shown in the GUI dialog title/body and as
	// the console banner line.
	Caption string
	Message string

	// DefaultUser pre-fills the username field.
	DefaultUser string
}

// New returns the best prompt for the platform: the credential dialog on
// Windows when gui is set, the console otherwise.
func New(gui bool, opts Options) netuse.CredentialSource {
	if gui {
		if p := newGUI(opts); p != nil {
			return p
		}
	}
	return NewConsole(opts)
}
