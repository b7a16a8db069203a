package directory

import (
	"testing"

	"github.com/go-ldap/ldap/v3"
)

type fakeConn struct {
	result  *ldap.SearchResult
	err     error
	lastReq *ldap.SearchRequest
	closed  bool
}

func (f *fakeConn) SearchWithPaging(req *ldap.SearchRequest, pagingSize uint32) (*ldap.SearchResult, error) {
	f.lastReq = req
	return f.result, f.err
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func entry(dn, sam, display string) *ldap.Entry {
	return ldap.NewEntry(dn, map[string][]string{
		"sAMAccountName": {sam},
		"displayName":    {display},
	})
}

func TestArchivedUsers(t *testing.T) {
	conn := &fakeConn{
		result: &ldap.SearchResult{
			Entries: []*ldap.Entry{
				entry("CN=John Doe,OU=Archiv,DC=corp,DC=example", "jdoe", "John Doe"),
				entry("CN=Jane Roe,OU=Archiv,DC=corp,DC=example", "jroe", "Jane Roe"),
				// Broken entry without an account name gets skipped.
				entry("CN=Ghost,OU=Archiv,DC=corp,DC=example", "", ""),
			},
		},
	}
	c := &Client{conn: conn}

	users, err := c.ArchivedUsers("OU=Archiv,DC=corp,DC=example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].SAMAccountName != "jdoe" || users[0].DisplayName != "John Doe" {
		t.Errorf("unexpected first user: %+v", users[0])
	}

	if conn.lastReq.BaseDN != "OU=Archiv,DC=corp,DC=example" {
		t.Errorf("unexpected search base %q", conn.lastReq.BaseDN)
	}
	if conn.lastReq.Filter != userFilter {
		t.Errorf("unexpected filter %q", conn.lastReq.Filter)
	}
	if conn.lastReq.Scope != ldap.ScopeWholeSubtree {
		t.Errorf("expected subtree scope, got %d", conn.lastReq.Scope)
	}
}

func TestClientClose(t *testing.T) {
	conn := &fakeConn{}
	c := &Client{conn: conn}
	if err := c.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !conn.closed {
		t.Error("expected underlying connection closed")
	}
}

func TestBaseDNFromDomain(t *testing.T) {
	tests := []struct {
		domain string
		want   string
	}{
		{"corp.example", "DC=corp,DC=example"},
		{"ad.corp.example.com", "DC=ad,DC=corp,DC=example,DC=com"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := BaseDNFromDomain(tt.domain); got != tt.want {
			t.Errorf("BaseDNFromDomain(%q) = %q, want %q", tt.domain, got, tt.want)
		}
	}
}

func TestAccountSet(t *testing.T) {
	set := AccountSet([]ArchivedUser{
		{SAMAccountName: "JDoe"},
		{SAMAccountName: "jroe"},
	})
	if !set["jdoe"] || !set["jroe"] {
		t.Errorf("expected lower-cased members, got %v", set)
	}
	if set["JDoe"] {
		t.Error("expected only lower-cased keys")
	}
}
