// Package cleanup deletes archived users' profile folders from the
// configured UNC roots. Matching is by folder name against the archived
// sAMAccountNames; every candidate is attempted even when earlier ones
// fail, and every outcome lands in the audit journal.
package cleanup

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/osiriscare/winadmin/internal/logging"
)

// Candidate is a profile folder that belongs to an archived user.
type Candidate struct {
	Path      string
	Folder    string
	User      string // matched account name, lower-cased
	SizeBytes int64
}

// FolderResult records the outcome for one candidate.
type FolderResult struct {
	Candidate
	Deleted bool
	Message string
}

// Report summarizes one profile root.
type Report struct {
	Root           string
	Scanned        int
	Deleted        int
	Failed         int
	BytesReclaimed int64
	Results        []FolderResult
}

// versionSuffix matches Citrix/FSLogix profile version suffixes such as
// ".V2" through ".V6" at the end of a folder name.
var versionSuffix = regexp.MustCompile(`(?i)\.v\d+$`)

// ProfileOwner derives the candidate account names a profile folder
// could belong to. Roaming profiles come in "jdoe", "jdoe.CORP",
// "jdoe.V2" and "jdoe.CORP.V4" shapes; all variants are reported
// lower-cased with the full name first.
func ProfileOwner(folder string) []string {
	name := strings.ToLower(folder)
	for versionSuffix.MatchString(name) {
		name = versionSuffix.ReplaceAllString(name, "")
	}

	owners := []string{name}
	if i := strings.IndexByte(name, '.'); i > 0 {
		owners = append(owners, name[:i])
	}
	return owners
}

// Scan walks one profile root and returns candidates whose folder name
// resolves to an archived account. Size accounting happens here so the
// operator sees what a deletion would reclaim before confirming.
func Scan(root string, archived map[string]bool) ([]Candidate, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read profile root %s: %w", root, err)
	}

	var candidates []Candidate
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}

		matched := ""
		for _, owner := range ProfileOwner(e.Name()) {
			if archived[owner] {
				matched = owner
				break
			}
		}
		if matched == "" {
			continue
		}

		path := filepath.Join(root, e.Name())
		candidates = append(candidates, Candidate{
			Path:      path,
			Folder:    e.Name(),
			User:      matched,
			SizeBytes: DirSize(path),
		})
	}

	return candidates, nil
}

// DirSize sums the file sizes under path. Unreadable entries count as
// zero; cleanup still proceeds on partially readable profiles.
func DirSize(path string) int64 {
	var total int64
	filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += info.Size()
		}
		return nil
	})
	return total
}

// Runner deletes candidates and keeps the journal.
type Runner struct {
	Journal *Journal
	Log     *logging.Session
	DryRun  bool
}

// Run processes the candidates of one root and returns its report.
// A failed deletion is logged, journaled, and does not stop the batch.
func (r *Runner) Run(root string, candidates []Candidate) Report {
	rep := Report{Root: root, Scanned: len(candidates)}

	for _, c := range candidates {
		res := FolderResult{Candidate: c}

		if r.DryRun {
			res.Message = "dry run"
			if r.Log != nil {
				r.Log.Printf("cleanup", "Would delete %s (%s, %d bytes)", c.Path, c.User, c.SizeBytes)
			}
			rep.Results = append(rep.Results, res)
			continue
		}

		if r.Log != nil {
			r.Log.Printf("cleanup", "Deleting %s (%s, %d bytes)", c.Path, c.User, c.SizeBytes)
		}

		if err := os.RemoveAll(c.Path); err != nil {
			res.Message = err.Error()
			rep.Failed++
			if r.Log != nil {
				r.Log.Printf("cleanup", "Failed to delete %s: %v", c.Path, err)
			}
		} else {
			res.Deleted = true
			rep.Deleted++
			rep.BytesReclaimed += c.SizeBytes
		}

		if r.Journal != nil {
			if err := r.Journal.Record(root, res); err != nil && r.Log != nil {
				r.Log.Printf("cleanup", "Failed to journal %s: %v", c.Path, err)
			}
		}

		rep.Results = append(rep.Results, res)
	}

	return rep
}
