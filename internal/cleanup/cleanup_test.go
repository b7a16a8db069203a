package cleanup

import (
	"os"
	"path/filepath"
	"testing"
)

func makeProfile(t *testing.T, root, name string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create profile dir: %v", err)
	}
	for file, content := range files {
		if err := os.WriteFile(filepath.Join(dir, file), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}
	return dir
}

func TestProfileOwner(t *testing.T) {
	tests := []struct {
		folder string
		want   []string
	}{
		{"jdoe", []string{"jdoe"}},
		{"JDoe", []string{"jdoe"}},
		{"jdoe.V2", []string{"jdoe"}},
		{"jdoe.v6", []string{"jdoe"}},
		{"jdoe.CORP", []string{"jdoe.corp", "jdoe"}},
		{"jdoe.CORP.V4", []string{"jdoe.corp", "jdoe"}},
		{"jdoe.V2.V2", []string{"jdoe"}},
	}

	for _, tt := range tests {
		t.Run(tt.folder, func(t *testing.T) {
			got := ProfileOwner(tt.folder)
			if len(got) != len(tt.want) {
				t.Fatalf("ProfileOwner(%q) = %v, want %v", tt.folder, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ProfileOwner(%q)[%d] = %q, want %q", tt.folder, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestScanMatchesArchivedUsers(t *testing.T) {
	root := t.TempDir()
	makeProfile(t, root, "jdoe", map[string]string{"ntuser.dat": "0123456789"})
	makeProfile(t, root, "jroe.V2", map[string]string{"ntuser.dat": "01234"})
	makeProfile(t, root, "active1", map[string]string{"ntuser.dat": "x"})
	// Loose file in the root must be ignored.
	if err := os.WriteFile(filepath.Join(root, "readme.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	archived := map[string]bool{"jdoe": true, "jroe": true}

	candidates, err := Scan(root, archived)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(candidates), candidates)
	}

	byUser := map[string]Candidate{}
	for _, c := range candidates {
		byUser[c.User] = c
	}
	if byUser["jdoe"].SizeBytes != 10 {
		t.Errorf("expected 10 bytes for jdoe, got %d", byUser["jdoe"].SizeBytes)
	}
	if byUser["jroe"].Folder != "jroe.V2" {
		t.Errorf("expected versioned folder matched for jroe, got %q", byUser["jroe"].Folder)
	}
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "missing"), map[string]bool{"jdoe": true})
	if err == nil {
		t.Error("expected error for missing root")
	}
}

func TestRunDeletesCandidates(t *testing.T) {
	root := t.TempDir()
	dir := makeProfile(t, root, "jdoe", map[string]string{"ntuser.dat": "0123456789"})

	candidates, err := Scan(root, map[string]bool{"jdoe": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := Runner{}
	rep := r.Run(root, candidates)

	if rep.Deleted != 1 || rep.Failed != 0 {
		t.Errorf("expected 1 deleted, 0 failed, got %+v", rep)
	}
	if rep.BytesReclaimed != 10 {
		t.Errorf("expected 10 bytes reclaimed, got %d", rep.BytesReclaimed)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("expected profile folder removed")
	}
}

func TestRunDryRunKeepsFolders(t *testing.T) {
	root := t.TempDir()
	dir := makeProfile(t, root, "jdoe", map[string]string{"ntuser.dat": "x"})

	candidates, err := Scan(root, map[string]bool{"jdoe": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := Runner{DryRun: true}
	rep := r.Run(root, candidates)

	if rep.Deleted != 0 {
		t.Errorf("expected nothing deleted in dry run, got %d", rep.Deleted)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("expected profile folder kept: %v", err)
	}
	if len(rep.Results) != 1 || rep.Results[0].Message != "dry run" {
		t.Errorf("expected dry run result, got %+v", rep.Results)
	}
}

func TestRunContinuesAfterFailure(t *testing.T) {
	root := t.TempDir()
	makeProfile(t, root, "jroe", map[string]string{"ntuser.dat": "12345"})

	// First candidate points at a path that cannot be removed because it
	// never existed as a deletable tree on this platform.
	candidates := []Candidate{
		{Path: string([]byte{0}), Folder: "jdoe", User: "jdoe"},
		{Path: filepath.Join(root, "jroe"), Folder: "jroe", User: "jroe", SizeBytes: 5},
	}

	r := Runner{}
	rep := r.Run(root, candidates)

	if rep.Failed != 1 {
		t.Errorf("expected 1 failure, got %d", rep.Failed)
	}
	if rep.Deleted != 1 {
		t.Errorf("expected the second candidate deleted, got %d", rep.Deleted)
	}
	if len(rep.Results) != 2 {
		t.Fatalf("expected results for both candidates, got %d", len(rep.Results))
	}
	if rep.Results[0].Deleted {
		t.Error("expected first candidate to fail")
	}
	if rep.Results[0].Message == "" {
		t.Error("expected failure message for first candidate")
	}
	if !rep.Results[1].Deleted {
		t.Error("expected second candidate deleted despite earlier failure")
	}
}
