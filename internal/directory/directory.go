// Package directory queries Active Directory over LDAP for the cleanup
// tooling. Archived accounts live in a dedicated OU; their
// sAMAccountNames drive which profile folders may be deleted.
package directory

import (
	"fmt"
	"strings"

	"github.com/go-ldap/ldap/v3"
)

// ArchivedUser is an account found under the archive OU.
type ArchivedUser struct {
	SAMAccountName string
	DisplayName    string
	DN             string
}

// userFilter selects real user accounts, excluding computers and
// contact objects.
const userFilter = "(&(objectCategory=person)(objectClass=user))"

// pageSize for paged searches; archive OUs can hold thousands of entries.
const pageSize = 500

// Client is an authenticated LDAP connection to a domain controller.
type Client struct {
	conn ldapConn
}

// ldapConn is the slice of *ldap.Conn the client uses, split out so
// tests can fake the wire.
type ldapConn interface {
	SearchWithPaging(req *ldap.SearchRequest, pagingSize uint32) (*ldap.SearchResult, error)
	Close() error
}

// Connect dials the DC and binds with the given account. addr is
// "host" or "host:port"; port 389 is assumed when missing.
func Connect(addr, bindUser, bindPassword string) (*Client, error) {
	if !strings.Contains(addr, ":") {
		addr += ":389"
	}

	conn, err := ldap.DialURL("ldap://" + addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	if err := conn.Bind(bindUser, bindPassword); err != nil {
		conn.Close()
		return nil, fmt.Errorf("bind as %s: %w", bindUser, err)
	}

	return &Client{conn: conn}, nil
}

// ArchivedUsers returns every user account under the archive OU.
func (c *Client) ArchivedUsers(archiveOU string) ([]ArchivedUser, error) {
	req := ldap.NewSearchRequest(
		archiveOU,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, 0, false,
		userFilter,
		[]string{"sAMAccountName", "displayName"},
		nil,
	)

	res, err := c.conn.SearchWithPaging(req, pageSize)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", archiveOU, err)
	}

	return usersFromEntries(res.Entries), nil
}

// Close releases the LDAP connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func usersFromEntries(entries []*ldap.Entry) []ArchivedUser {
	users := make([]ArchivedUser, 0, len(entries))
	for _, e := range entries {
		sam := e.GetAttributeValue("sAMAccountName")
		if sam == "" {
			continue
		}
		users = append(users, ArchivedUser{
			SAMAccountName: sam,
			DisplayName:    e.GetAttributeValue("displayName"),
			DN:             e.DN,
		})
	}
	return users
}

// BaseDNFromDomain turns "corp.example" into "DC=corp,DC=example".
func BaseDNFromDomain(domain string) string {
	if domain == "" {
		return ""
	}
	parts := strings.Split(domain, ".")
	for i, p := range parts {
		parts[i] = "DC=" + p
	}
	return strings.Join(parts, ",")
}

// AccountSet builds a lookup set of lower-cased account names.
func AccountSet(users []ArchivedUser) map[string]bool {
	set := make(map[string]bool, len(users))
	for _, u := range users {
		set[strings.ToLower(u.SAMAccountName)] = true
	}
	return set
}
