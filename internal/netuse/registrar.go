package netuse

import "github.com/osiriscare/winadmin/internal/logging"

// Registrar maps the whole configured target list with one verified
// credential. Every target is attempted; a failure on one drive never
// prevents the remaining drives from being mapped.
type Registrar struct {
	Binder     Binder
	Persistent bool

	// RefreshFn is invoked once after all targets were attempted so the
	// shell re-enumerates drives. Defaults to RefreshNamespace.
	RefreshFn func()

	Log *logging.Session
}

// RegisterAll binds each target and returns one result per target, in
// input order.
func (r *Registrar) RegisterAll(targets []MappingTarget, cred Credential) []AttemptResult {
	results := make([]AttemptResult, 0, len(targets))

	for _, t := range targets {
		if r.Log != nil {
			r.Log.Printf("map", "Mapping %s to %s (persistent=%v)", t.LocalName(), t.RemotePath, r.Persistent)
		}

		res := r.Binder.Bind(t, cred, r.Persistent)
		results = append(results, res)

		if r.Log != nil {
			if res.Success {
				r.Log.Printf("map", "Mapped %s", t.LocalName())
			} else {
				r.Log.Printf("map", "Failed to map %s (code %d): %s", t.LocalName(), res.Code, res.Message)
			}
		}
	}

	refresh := r.RefreshFn
	if refresh == nil {
		refresh = RefreshNamespace
	}
	refresh()

	return results
}

// Failed counts unsuccessful results.
func Failed(results []AttemptResult) int {
	n := 0
	for _, r := range results {
		if !r.Success {
			n++
		}
	}
	return n
}
