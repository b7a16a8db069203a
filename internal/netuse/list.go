package netuse

// Mapping describes an existing drive mapping on this machine.
type Mapping struct {
	Drive      string
	RemotePath string
	Persistent bool
}
