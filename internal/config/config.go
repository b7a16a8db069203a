// Package config loads the shared toolkit configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/osiriscare/winadmin/internal/netuse"
)

// LDAPConfig describes how profile-cleanup reaches Active Directory.
type LDAPConfig struct {
	// Server is "host" or "host:port". Empty means discover a domain
	// controller via DNS SRV records.
	Server string `yaml:"server"`

	// BaseDN is derived from the AD domain when empty.
	BaseDN string `yaml:"base_dn"`

	BindUser string `yaml:"bind_user"`

	// Bind password sources, tried in order: the Windows credential
	// vault entry, then a CMS-encrypted password file, then a prompt.
	VaultTarget     string `yaml:"vault_target"`
	CMSPasswordFile string `yaml:"cms_password_file"`

	// Certificate for decrypting the CMS file: a thumbprint in the
	// Windows store, or a PFX file (password in the named env var).
	CertThumbprint string `yaml:"cert_thumbprint"`
	PFXFile        string `yaml:"pfx_file"`
	PFXPasswordEnv string `yaml:"pfx_password_env"`
}

// Config holds settings for all tools in this repository.
type Config struct {
	// Logging
	LogDir    string `yaml:"log_dir"`
	LogViewer string `yaml:"log_viewer"`

	// drive-mapper
	Mappings       []netuse.MappingTarget `yaml:"mappings"`
	Persistent     bool                   `yaml:"persistent"`
	MaxAuthRetries int                    `yaml:"max_auth_retries"` // 0 = unlimited
	DefaultUser    string                 `yaml:"default_user"`

	// AD
	Domain string     `yaml:"domain"`
	LDAP   LDAPConfig `yaml:"ldap"`

	// profile-cleanup
	ProfileRoots []string `yaml:"profile_roots"`
	ArchiveOU    string   `yaml:"archive_ou"`
	JournalPath  string   `yaml:"journal_path"`
}

// DataDir returns the toolkit's base directory under %PROGRAMDATA%.
func DataDir() string {
	base := os.Getenv("PROGRAMDATA")
	if base == "" {
		base = "C:\\ProgramData"
	}
	return filepath.Join(base, "OsirisCare", "WinAdmin")
}

// DefaultPath is where Load looks when no -config flag is given.
func DefaultPath() string {
	return filepath.Join(DataDir(), "config.yaml")
}

// DefaultConfig returns a config with sane defaults.
func DefaultConfig() Config {
	dataDir := DataDir()
	return Config{
		LogDir:         filepath.Join(dataDir, "logs"),
		Persistent:     true,
		MaxAuthRetries: 3,
		JournalPath:    filepath.Join(dataDir, "cleanup.db"),
	}
}

// Load reads the YAML config file, applies env overrides, and normalizes
// drive letters. A missing file at the default path is not an error; the
// defaults are returned so flags can fill in the rest.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	usingDefault := path == ""
	if usingDefault {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if usingDefault && os.IsNotExist(err) {
			applyEnv(&cfg)
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyEnv(&cfg)

	for i := range cfg.Mappings {
		cfg.Mappings[i].Drive = strings.ToUpper(cfg.Mappings[i].Drive)
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("WINADMIN_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("WINADMIN_DOMAIN"); v != "" {
		cfg.Domain = v
	}
	if v := os.Getenv("WINADMIN_MAX_AUTH_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxAuthRetries = n
		}
	}
}

// ValidateMappings checks the drive-mapper target list.
func (c *Config) ValidateMappings() error {
	if len(c.Mappings) == 0 {
		return fmt.Errorf("no mappings configured")
	}

	seen := make(map[string]bool)
	for _, m := range c.Mappings {
		if len(m.Drive) != 1 || m.Drive[0] < 'A' || m.Drive[0] > 'Z' {
			return fmt.Errorf("invalid drive letter %q", m.Drive)
		}
		if seen[m.Drive] {
			return fmt.Errorf("duplicate drive letter %q", m.Drive)
		}
		seen[m.Drive] = true
		if !strings.HasPrefix(m.RemotePath, `\\`) {
			return fmt.Errorf("remote path %q for drive %s is not a UNC path", m.RemotePath, m.Drive)
		}
	}
	return nil
}

// ValidateCleanup checks the profile-cleanup settings.
func (c *Config) ValidateCleanup() error {
	if len(c.ProfileRoots) == 0 {
		return fmt.Errorf("no profile_roots configured")
	}
	if c.ArchiveOU == "" {
		return fmt.Errorf("archive_ou is required")
	}
	return nil
}
