// OsirisCare profile-cleanup - archived user profile removal
//
// Queries Active Directory for accounts in the archive OU, scans the
// configured profile roots for folders belonging to them, and deletes
// those folders after interactive confirmation. Every deletion attempt
// is written to the audit journal.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/osiriscare/winadmin/internal/cleanup"
	"github.com/osiriscare/winadmin/internal/config"
	"github.com/osiriscare/winadmin/internal/directory"
	"github.com/osiriscare/winadmin/internal/discovery"
	"github.com/osiriscare/winadmin/internal/logging"
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
	flagConfig  = flag.String("config", "", "Config file path (default: "+config.DefaultPath()+")")
	flagDryRun  = flag.Bool("dry-run", false, "Scan and report, delete nothing")
	flagYes     = flag.Bool("yes", false, "Skip the confirmation prompt")
	flagShowLog = flag.Bool("show-log", false, "Open the log file in the viewer when done")
	flagVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("profile-cleanup %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "profile-cleanup: %v\n", err)
		return 2
	}
	if err := cfg.ValidateCleanup(); err != nil {
		fmt.Fprintf(os.Stderr, "profile-cleanup: %v\n", err)
		return 2
	}

	session, err := logging.Open(cfg.LogDir, "profile-cleanup")
	if err != nil {
		fmt.Fprintf(os.Stderr, "profile-cleanup: %v\n", err)
		return 2
	}
	defer session.Close()

	session.Printf("main", "profile-cleanup v%s starting (dry_run=%v)", Version, *flagDryRun)

	users, err := queryArchivedUsers(cfg, session)
	if err != nil {
		session.Printf("main", "AD query failed: %v", err)
		return 1
	}
	session.Printf("main", "%d archived accounts in %s", len(users), cfg.ArchiveOU)
	if len(users) == 0 {
		session.Printf("main", "Nothing to do")
		return 0
	}

	archived := directory.AccountSet(users)

	// Scan all roots first so the operator confirms the full batch.
	type rootScan struct {
		root       string
		candidates []cleanup.Candidate
	}
	var scans []rootScan
	total := 0
	var totalBytes int64

	for _, root := range cfg.ProfileRoots {
		session.Printf("scan", "Scanning %s", root)
		candidates, err := cleanup.Scan(root, archived)
		if err != nil {
			// An unreachable root is reported and skipped; the
			// remaining roots are still processed.
			session.Printf("scan", "Skipping %s: %v", root, err)
			continue
		}
		session.Printf("scan", "%s: %d candidate folders", root, len(candidates))
		scans = append(scans, rootScan{root: root, candidates: candidates})
		total += len(candidates)
		for _, c := range candidates {
			totalBytes += c.SizeBytes
		}
	}

	if total == 0 {
		session.Printf("main", "No profile folders to delete")
		return 0
	}

	for _, s := range scans {
		for _, c := range s.candidates {
			fmt.Printf("  %s (%s, %.1f MB)\n", c.Path, c.User, float64(c.SizeBytes)/(1024*1024))
		}
	}
	fmt.Printf("%d folders, %.1f MB total\n", total, float64(totalBytes)/(1024*1024))

	if !*flagDryRun && !*flagYes {
		if !confirm(fmt.Sprintf("Delete these %d folders?", total)) {
			session.Printf("main", "Cancelled by operator, nothing deleted")
			return 0
		}
	}

	var journal *cleanup.Journal
	if !*flagDryRun {
		journal, err = cleanup.OpenJournal(cfg.JournalPath)
		if err != nil {
			session.Printf("main", "Cannot open audit journal: %v", err)
			return 1
		}
		defer journal.Close()
	}

	runner := cleanup.Runner{
		Journal: journal,
		Log:     session,
		DryRun:  *flagDryRun,
	}

	failed := 0
	for _, s := range scans {
		rep := runner.Run(s.root, s.candidates)
		failed += rep.Failed
		session.Printf("main", "%s: %d deleted, %d failed, %.1f MB reclaimed",
			rep.Root, rep.Deleted, rep.Failed, float64(rep.BytesReclaimed)/(1024*1024))
	}

	if *flagShowLog {
		if err := session.View(cfg.LogViewer); err != nil {
			session.Printf("main", "Could not open log viewer: %v", err)
		}
	}

	if failed > 0 {
		return 1
	}
	return 0
}

// queryArchivedUsers resolves the DC and bind credential, then pulls the
// account list from the archive OU.
func queryArchivedUsers(cfg *config.Config, session *logging.Session) ([]directory.ArchivedUser, error) {
	server := cfg.LDAP.Server
	domain := cfg.Domain
	if domain == "" {
		domain = discovery.DiscoverDomain()
	}

	if server == "" {
		if domain == "" {
			return nil, fmt.Errorf("no LDAP server configured and no AD domain detected")
		}
		addr, err := discovery.DiscoverDCWithRetry(domain, discovery.MaxRetries)
		if err != nil {
			return nil, err
		}
		session.Printf("main", "Discovered domain controller %s", addr)
		server = addr
	}

	bindUser, bindPassword, err := bindCredential(cfg, session)
	if err != nil {
		return nil, err
	}

	client, err := directory.Connect(server, bindUser, bindPassword)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	return client.ArchivedUsers(cfg.ArchiveOU)
}

// bindCredential resolves the LDAP bind credential: the credential
// vault first, then a CMS-encrypted password file, then a console
// prompt.
func bindCredential(cfg *config.Config, session *logging.Session) (string, string, error) {
	l := cfg.LDAP

	if l.VaultTarget != "" {
		if cred, err := vault.Retrieve(l.VaultTarget); err == nil {
			session.Printf("auth", "Using vault credential %s", l.VaultTarget)
			user := l.BindUser
			if cred.Username != "" {
				user = cred.Username
			}
			return user, string(cred.Secret), nil
		}
	}

	if l.CMSPasswordFile != "" {
		secret, err := decryptPasswordFile(l)
		if err != nil {
			session.Printf("auth", "CMS password file unusable: %v", err)
		} else {
			session.Printf("auth", "Using CMS-encrypted credential %s", l.CMSPasswordFile)
			return l.BindUser, secret, nil
		}
	}

	session.Printf("auth", "Prompting for LDAP bind credential")
	console := prompt.NewConsole(prompt.Options{
		Message:     "Sign in to Active Directory",
		DefaultUser: l.BindUser,
	})
	cred, err := console.Collect()
	if err == netuse.ErrCancelled {
		return "", "", fmt.Errorf("bind credential entry cancelled")
	}
	if err != nil {
		return "", "", err
	}
	return cred.Username, cred.Secret, nil
}

func decryptPasswordFile(l config.LDAPConfig) (string, error) {
	msg, err := os.ReadFile(l.CMSPasswordFile)
	if err != nil {
		return "", fmt.Errorf("read CMS file: %w", err)
	}

	if l.PFXFile != "" {
		cert, key, err := secrets.LoadPFX(l.PFXFile, os.Getenv(l.PFXPasswordEnv))
		if err != nil {
			return "", err
		}
		data, err := secrets.Decrypt(msg, cert, key)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}

	if l.CertThumbprint != "" {
		// Store lookup yields the certificate only; the private key
		// stays in the store and is unusable from here, so a PFX is
		// required for decryption. Surface that clearly.
		if _, err := secrets.FindCertificate(l.CertThumbprint); err != nil {
			return "", err
		}
		return "", fmt.Errorf("certificate %s found, but CMS decryption needs pfx_file with the private key", l.CertThumbprint)
	}

	return "", fmt.Errorf("cms_password_file set but no pfx_file or cert_thumbprint configured")
}

func confirm(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("%s [y/N]: ", question)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		case "", "n", "no":
			return false
		}
	}
}
