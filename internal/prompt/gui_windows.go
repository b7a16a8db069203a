//go:build windows

package prompt

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/osiriscare/winadmin/internal/netuse"
)

// Windows credential UI
var (
	credui                           = windows.NewLazySystemDLL("credui.dll")
	procCredUIPromptForCredentialsW  = credui.NewProc("CredUIPromptForCredentialsW")
)

const (
	creduiMaxUsernameLength = 513
	creduiMaxPasswordLength = 256

	creduiFlagsGenericCredentials = 0x00040000
	creduiFlagsAlwaysShowUI       = 0x00000080
	creduiFlagsDoNotPersist       = 0x00000002

	errorCancelled = 1223
)

// creduiInfo mirrors the CREDUI_INFOW structure.
type creduiInfo struct {
	Size        uint32
	Parent      windows.Handle
	MessageText *uint16
	CaptionText *uint16
	Banner      windows.Handle
}

// guiPrompt shows the native Windows credential dialog.
type guiPrompt struct {
	opts Options
}

func newGUI(opts Options) netuse.CredentialSource {
	return &guiPrompt{opts: opts}
}

// Collect implements netuse.CredentialSource. Pressing Cancel in the
// dialog returns netuse.ErrCancelled.
func (g *guiPrompt) Collect() (netuse.Credential, error) {
	caption := g.opts.Caption
	if caption == "" {
		caption = "Network Sign-in"
	}

	captionPtr, err := windows.UTF16PtrFromString(caption)
	if err != nil {
		return netuse.Credential{}, fmt.Errorf("encode caption: %w", err)
	}
	messagePtr, err := windows.UTF16PtrFromString(g.opts.Message)
	if err != nil {
		return netuse.Credential{}, fmt.Errorf("encode message: %w", err)
	}
	targetPtr, err := windows.UTF16PtrFromString(caption)
	if err != nil {
		return netuse.Credential{}, fmt.Errorf("encode target: %w", err)
	}

	info := creduiInfo{
		MessageText: messagePtr,
		CaptionText: captionPtr,
	}
	info.Size = uint32(unsafe.Sizeof(info))

	userBuf := make([]uint16, creduiMaxUsernameLength)
	passBuf := make([]uint16, creduiMaxPasswordLength)
	if g.opts.DefaultUser != "" {
		pre, err := windows.UTF16FromString(g.opts.DefaultUser)
		if err == nil && len(pre) <= len(userBuf) {
			copy(userBuf, pre)
		}
	}

	var save int32
	flags := uint32(creduiFlagsGenericCredentials | creduiFlagsAlwaysShowUI | creduiFlagsDoNotPersist)

	ret, _, _ := procCredUIPromptForCredentialsW.Call(
		uintptr(unsafe.Pointer(&info)),
		uintptr(unsafe.Pointer(targetPtr)),
		0, // reserved
		0, // no prior auth error
		uintptr(unsafe.Pointer(&userBuf[0])),
		uintptr(len(userBuf)),
		uintptr(unsafe.Pointer(&passBuf[0])),
		uintptr(len(passBuf)),
		uintptr(unsafe.Pointer(&save)),
		uintptr(flags),
	)

	switch ret {
	case 0:
		cred := netuse.Credential{
			Username: windows.UTF16ToString(userBuf),
			Secret:   windows.UTF16ToString(passBuf),
		}
		// Wipe the password buffer once copied out.
		for i := range passBuf {
			passBuf[i] = 0
		}
		return cred, nil
	case errorCancelled:
		return netuse.Credential{}, netuse.ErrCancelled
	default:
		return netuse.Credential{}, fmt.Errorf("credential dialog failed: error %d", ret)
	}
}
