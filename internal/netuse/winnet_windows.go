//go:build windows

package netuse

import (
	"strings"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Windows Networking (WNet) API
var (
	mpr                       = windows.NewLazySystemDLL("mpr.dll")
	procWNetAddConnection2W   = mpr.NewProc("WNetAddConnection2W")
	procWNetCancelConnection2 = mpr.NewProc("WNetCancelConnection2W")

	shell32              = windows.NewLazySystemDLL("shell32.dll")
	procSHChangeNotify   = shell32.NewProc("SHChangeNotify")
)

const (
	resourceTypeDisk     = 1
	connectUpdateProfile = 0x00000001 // persist mapping in the user profile

	shcneAssocChanged = 0x08000000
	shcnfIDList       = 0x0000
)

// netResource mirrors the NETRESOURCEW structure used by WNetAddConnection2W.
type netResource struct {
	Scope       uint32
	Type        uint32
	DisplayType uint32
	Usage       uint32
	LocalName   *uint16
	RemoteName  *uint16
	Comment     *uint16
	Provider    *uint16
}

// winBinder is the production Binder backed by mpr.dll.
type winBinder struct{}

// NewBinder returns the WNet-backed Binder.
func NewBinder() Binder {
	return &winBinder{}
}

// Verify connects to the target without a drive letter and disconnects
// immediately. A zero return code means the credential is good.
func (b *winBinder) Verify(target MappingTarget, cred Credential) AttemptResult {
	code := addConnection("", target.RemotePath, cred, false)
	if code != 0 {
		return result(target.Drive, code)
	}
	// Drop the probe connection; a failure here is harmless but reported.
	code = cancelConnection(target.RemotePath, true)
	if code != 0 && code != CodeNotConnected {
		return result(target.Drive, code)
	}
	return AttemptResult{Drive: target.Drive, Success: true}
}

// Bind maps the drive letter, removing any existing binding on it first.
func (b *winBinder) Bind(target MappingTarget, cred Credential, persistent bool) AttemptResult {
	local := target.LocalName()
	if code := cancelConnection(local, true); code != 0 && code != CodeNotConnected {
		return result(target.Drive, code)
	}
	code := addConnection(local, target.RemotePath, cred, persistent)
	return result(target.Drive, code)
}

// Unbind removes a connection by local name or remote path. Not-connected
// is reported as success so pre-clean calls are idempotent.
func (b *winBinder) Unbind(name string, force bool) AttemptResult {
	drive := strings.TrimSuffix(name, ":")
	code := cancelConnection(name, force)
	if code == CodeNotConnected {
		code = 0
	}
	return result(drive, code)
}

func addConnection(localName, remotePath string, cred Credential, persistent bool) uint32 {
	remote, err := windows.UTF16PtrFromString(remotePath)
	if err != nil {
		return uint32(windows.ERROR_INVALID_PARAMETER)
	}

	nr := netResource{
		Type:       resourceTypeDisk,
		RemoteName: remote,
	}
	if localName != "" {
		local, err := windows.UTF16PtrFromString(localName)
		if err != nil {
			return uint32(windows.ERROR_INVALID_PARAMETER)
		}
		nr.LocalName = local
	}

	var user, secret *uint16
	if cred.Username != "" {
		user, _ = windows.UTF16PtrFromString(cred.Username)
		secret, _ = windows.UTF16PtrFromString(cred.Secret)
	}

	var flags uint32
	if persistent {
		flags |= connectUpdateProfile
	}

	ret, _, _ := procWNetAddConnection2W.Call(
		uintptr(unsafe.Pointer(&nr)),
		uintptr(unsafe.Pointer(secret)),
		uintptr(unsafe.Pointer(user)),
		uintptr(flags),
	)
	return uint32(ret)
}

func cancelConnection(name string, force bool) uint32 {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return uint32(windows.ERROR_INVALID_PARAMETER)
	}

	var forceVal uintptr
	if force {
		forceVal = 1
	}

	ret, _, _ := procWNetCancelConnection2.Call(
		uintptr(unsafe.Pointer(namePtr)),
		uintptr(connectUpdateProfile), // also forget a persisted mapping
		forceVal,
	)
	return uint32(ret)
}

func result(drive string, code uint32) AttemptResult {
	if code == 0 {
		return AttemptResult{Drive: drive, Success: true}
	}
	return AttemptResult{
		Drive:   drive,
		Code:    code,
		Message: syscall.Errno(code).Error(),
	}
}

// RefreshNamespace asks the shell to re-enumerate, so new or removed
// drive letters show up in Explorer without restarting it.
func RefreshNamespace() {
	procSHChangeNotify.Call(shcneAssocChanged, shcnfIDList, 0, 0)
}
