package netuse

import (
	"fmt"

	"github.com/osiriscare/winadmin/internal/logging"
)

// Controller runs the prompt/verify loop until a credential is accepted
// by the remote side or the operator cancels.
//
// The credential returned by Authenticate has always passed Verify against
// the probe target in the same iteration; no credential from an earlier,
// failed attempt survives the loop.
type Controller struct {
	Source CredentialSource
	Binder Binder

	// MaxRetries bounds the number of authentication attempts.
	// 0 means unlimited, matching the legacy tool's behavior.
	MaxRetries int

	// Notify, when set, receives a user-facing message after each failed
	// attempt before the operator is re-prompted.
	Notify func(msg string)

	Log *logging.Session
}

// Authenticate collects credentials and verifies them against the first
// target. On success the verified credential is returned for use with
// Registrar.RegisterAll. Returns ErrCancelled if the operator backs out
// and ErrRetriesExhausted once MaxRetries failed attempts have been made.
func (c *Controller) Authenticate(targets []MappingTarget) (Credential, error) {
	if len(targets) == 0 {
		return Credential{}, fmt.Errorf("no mapping targets configured")
	}
	probe := targets[0]
	logf := c.logf()

	for attempt := 1; ; attempt++ {
		logf("auth", "Prompting for credentials (attempt %d)", attempt)

		cred, err := c.Source.Collect()
		if err != nil {
			if err == ErrCancelled {
				logf("auth", "Operator cancelled credential entry")
				return Credential{}, ErrCancelled
			}
			return Credential{}, fmt.Errorf("collect credentials: %w", err)
		}

		// A leftover connection to the probe share makes WNet report a
		// credential conflict (1219) even for a good credential, so tear
		// down both the drive letter and any deviceless connection first.
		c.Binder.Unbind(probe.LocalName(), true)
		c.Binder.Unbind(probe.RemotePath, true)

		logf("auth", "Verifying credentials for %s against %s", cred.Username, probe.RemotePath)
		res := c.Binder.Verify(probe, cred)
		if res.Success {
			logf("auth", "Credentials for %s verified", cred.Username)
			return cred, nil
		}

		logf("auth", "Verification failed (code %d): %s", res.Code, res.Message)
		if c.Notify != nil {
			c.Notify(fmt.Sprintf("Sign-in failed (error %d): %s", res.Code, res.Message))
		}

		if c.MaxRetries > 0 && attempt >= c.MaxRetries {
			logf("auth", "Giving up after %d attempts", attempt)
			return Credential{}, ErrRetriesExhausted
		}
	}
}

func (c *Controller) logf() func(component, format string, args ...interface{}) {
	if c.Log != nil {
		return c.Log.Printf
	}
	return func(string, string, ...interface{}) {}
}
