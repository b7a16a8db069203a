// OsirisCare drive-mapper - GUI-prompted network drive mapping
//
// Authenticates the operator against the first configured share with a
// credential-retry loop, then maps every configured drive letter with the
// verified credential. Runs on Citrix session hosts and workstations.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/osiriscare/winadmin/internal/config"
	"github.com/osiriscare/winadmin/internal/logging"
	"github.com/osiriscare/winadmin/internal/netuse"
	"github.com/osiriscare/winadmin/internal/prompt"
)

var (
	Version   = "1.2.0"
	BuildTime = "unknown"
)

var (
	flagConfig  = flag.String("config", "", "Config file path (default: "+config.DefaultPath()+")")
	flagUser    = flag.String("user", "", "Pre-fill this username in the prompt")
	flagConsole = flag.Bool("console", false, "Prompt on the console instead of the credential dialog")
	flagList    = flag.Bool("list", false, "List current drive mappings and exit")
	flagShowLog = flag.Bool("show-log", false, "Open the log file in the viewer when done")
	flagVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("drive-mapper %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "drive-mapper: %v\n", err)
		return 2
	}

	if *flagList {
		return listMappings()
	}

	if err := cfg.ValidateMappings(); err != nil {
		fmt.Fprintf(os.Stderr, "drive-mapper: %v\n", err)
		return 2
	}

	session, err := logging.Open(cfg.LogDir, "drive-mapper")
	if err != nil {
		fmt.Fprintf(os.Stderr, "drive-mapper: %v\n", err)
		return 2
	}
	defer session.Close()

	session.Printf("main", "drive-mapper v%s starting, %d targets", Version, len(cfg.Mappings))

	defaultUser := cfg.DefaultUser
	if *flagUser != "" {
		defaultUser = *flagUser
	}

	source := prompt.New(!*flagConsole && runtime.GOOS == "windows", prompt.Options{
		Caption:     "Network Drives",
		Message:     "Sign in to map your network drives",
		DefaultUser: defaultUser,
	})

	binder := netuse.NewBinder()

	controller := netuse.Controller{
		Source:     source,
		Binder:     binder,
		MaxRetries: cfg.MaxAuthRetries,
		Notify: func(msg string) {
			fmt.Fprintln(os.Stderr, msg)
		},
		Log: session,
	}

	cred, err := controller.Authenticate(cfg.Mappings)
	if err == netuse.ErrCancelled {
		session.Printf("main", "Cancelled by operator, no drives mapped")
		return 0
	}
	if err != nil {
		session.Printf("main", "Authentication failed: %v", err)
		return 1
	}

	registrar := netuse.Registrar{
		Binder:     binder,
		Persistent: cfg.Persistent,
		Log:        session,
	}

	results := registrar.RegisterAll(cfg.Mappings, cred)

	for _, res := range results {
		if res.Success {
			fmt.Printf("  [OK]   %s:\n", res.Drive)
		} else {
			fmt.Printf("  [FAIL] %s: (error %d) %s\n", res.Drive, res.Code, res.Message)
		}
	}

	failed := netuse.Failed(results)
	session.Printf("main", "Mapping complete: %d ok, %d failed", len(results)-failed, failed)

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

func listMappings() int {
	mappings, err := netuse.ListMappings(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "drive-mapper: %v\n", err)
		return 1
	}

	if len(mappings) == 0 {
		fmt.Println("No mapped drives")
		return 0
	}

	for _, m := range mappings {
		persist := ""
		if m.Persistent {
			persist = " (persistent)"
		}
		fmt.Printf("  %s: -> %s%s\n", m.Drive, m.RemotePath, persist)
	}
	return 0
}
