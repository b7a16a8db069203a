// OsirisCare secret-tool - credential vault and CMS secret helper
//
// Prepares the secrets the other tools consume: stores LDAP bind
// credentials in the Windows credential vault and encrypts passwords to
// a certificate as CMS files (Protect-CmsMessage compatible).
package main

import (
	"crypto/x509"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/osiriscare/winadmin/internal/netuse"
	"github.com/osiriscare/winadmin/internal/prompt"
	"github.com/osiriscare/winadmin/internal/secrets"
	"github.com/osiriscare/winadmin/internal/vault"
)

var (
	Version   = "1.2.0"
	BuildTime = "unknown"
)

var (
	flagEncrypt     = flag.Bool("encrypt", false, "Encrypt a secret to a certificate and write a CMS file")
	flagDecrypt     = flag.Bool("decrypt", false, "Decrypt a CMS file (requires -pfx)")
	flagStore       = flag.String("store", "", "Store a credential in the vault under this target name")
	flagShow        = flag.String("show", "", "Show the vault entry for this target name")
	flagDelete      = flag.String("delete", "", "Delete the vault entry for this target name")
	flagThumbprint  = flag.String("thumbprint", "", "Certificate thumbprint in the Windows store (encrypt only)")
	flagPFX         = flag.String("pfx", "", "PFX file with certificate and private key")
	flagPFXPassword = flag.String("pfx-password-env", "", "Env var holding the PFX password")
	flagIn          = flag.String("in", "", "Input file (decrypt)")
	flagOut         = flag.String("out", "", "Output file (encrypt), stdout when empty")
	flagUser        = flag.String("user", "", "Username to store with the vault entry")
	flagVersion     = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("secret-tool %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	os.Exit(run())
}

func run() int {
	switch {
	case *flagEncrypt:
		return encrypt()
	case *flagDecrypt:
		return decrypt()
	case *flagStore != "":
		return storeVault(*flagStore)
	case *flagShow != "":
		return showVault(*flagShow)
	case *flagDelete != "":
		return deleteVault(*flagDelete)
	default:
		flag.Usage()
		return 2
	}
}

func fail(format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, "secret-tool: "+format+"\n", args...)
	return 1
}

// readSecret prompts for the secret without echo, or reads one line
// from stdin when piped.
func readSecret() (string, error) {
	console := prompt.NewConsole(prompt.Options{})
	secret, err := console.Secret("Secret: ")
	if err == netuse.ErrCancelled {
		return "", fmt.Errorf("cancelled")
	}
	return secret, err
}

func encrypt() int {
	cert, err := recipientCert()
	if err != nil {
		return fail("%v", err)
	}

	secret, err := readSecret()
	if err != nil {
		return fail("%v", err)
	}

	msg, err := secrets.Encrypt([]byte(secret), cert)
	if err != nil {
		return fail("%v", err)
	}

	if *flagOut == "" {
		os.Stdout.Write(msg)
		return 0
	}
	if err := os.WriteFile(*flagOut, msg, 0600); err != nil {
		return fail("write %s: %v", *flagOut, err)
	}
	fmt.Printf("Wrote %s\n", *flagOut)
	return 0
}

// recipientCert resolves the encryption certificate from the Windows
// store (by thumbprint) or a PFX file.
func recipientCert() (*x509.Certificate, error) {
	switch {
	case *flagThumbprint != "":
		return secrets.FindCertificate(*flagThumbprint)
	case *flagPFX != "":
		cert, _, err := secrets.LoadPFX(*flagPFX, os.Getenv(*flagPFXPassword))
		return cert, err
	default:
		return nil, fmt.Errorf("-encrypt requires -thumbprint or -pfx")
	}
}

func decrypt() int {
	if *flagIn == "" {
		return fail("-decrypt requires -in")
	}
	if *flagPFX == "" {
		return fail("-decrypt requires -pfx (the store does not release private keys)")
	}

	msg, err := os.ReadFile(*flagIn)
	if err != nil {
		return fail("read %s: %v", *flagIn, err)
	}

	cert, key, err := secrets.LoadPFX(*flagPFX, os.Getenv(*flagPFXPassword))
	if err != nil {
		return fail("%v", err)
	}

	data, err := secrets.Decrypt(msg, cert, key)
	if err != nil {
		return fail("%v", err)
	}

	fmt.Println(strings.TrimSpace(string(data)))
	return 0
}

func storeVault(target string) int {
	secret, err := readSecret()
	if err != nil {
		return fail("%v", err)
	}

	err = vault.Store(vault.Credential{
		Target:   target,
		Username: *flagUser,
		Secret:   []byte(secret),
	})
	if err != nil {
		return fail("%v", err)
	}
	fmt.Printf("Stored vault entry %s\n", target)
	return 0
}

func showVault(target string) int {
	cred, err := vault.Retrieve(target)
	if err != nil {
		return fail("%v", err)
	}
	fmt.Printf("target:   %s\n", cred.Target)
	fmt.Printf("username: %s\n", cred.Username)
	fmt.Printf("secret:   %s\n", cred.Secret)
	return 0
}

func deleteVault(target string) int {
	if err := vault.Delete(target); err != nil {
		return fail("%v", err)
	}
	fmt.Printf("Deleted vault entry %s\n", target)
	return 0
}
