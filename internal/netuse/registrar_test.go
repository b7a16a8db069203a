package netuse

import "testing"

func TestRegisterAllNoEarlyAbort(t *testing.T) {
	good := Credential{Username: "CORP\\jdoe", Secret: "hunter2"}
	binder := newFakeBinder(good)
	binder.bindFail["T"] = true // first target fails

	refreshed := 0
	r := Registrar{
		Binder:    binder,
		RefreshFn: func() { refreshed++ },
	}

	results := r.RegisterAll(testTargets, good)

	if len(results) != 2 {
		t.Fatalf("expected results for both targets, got %d", len(results))
	}
	if results[0].Success {
		t.Error("expected T to fail")
	}
	if results[0].Code == 0 {
		t.Error("expected non-zero code for failed bind")
	}
	if !results[1].Success {
		t.Errorf("expected H to succeed despite T failing: %+v", results[1])
	}
	if binder.bound["H"] != `\\srv01\home` {
		t.Errorf("expected H bound to home share, got %q", binder.bound["H"])
	}
	if refreshed != 1 {
		t.Errorf("expected exactly 1 namespace refresh, got %d", refreshed)
	}
}

func TestRegisterAllResultOrder(t *testing.T) {
	good := Credential{Username: "CORP\\jdoe", Secret: "hunter2"}
	binder := newFakeBinder(good)

	r := Registrar{Binder: binder, RefreshFn: func() {}}
	results := r.RegisterAll(testTargets, good)

	for i, target := range testTargets {
		if results[i].Drive != target.Drive {
			t.Errorf("result %d: expected drive %s, got %s", i, target.Drive, results[i].Drive)
		}
	}
}

func TestRebindPointsToSecondTarget(t *testing.T) {
	good := Credential{Username: "CORP\\jdoe", Secret: "hunter2"}
	binder := newFakeBinder(good)

	r := Registrar{Binder: binder, RefreshFn: func() {}}

	first := []MappingTarget{{Drive: "T", RemotePath: `\\srv01\transfer`}}
	second := []MappingTarget{{Drive: "T", RemotePath: `\\srv02\archive`}}

	r.RegisterAll(first, good)
	results := r.RegisterAll(second, good)

	if !results[0].Success {
		t.Fatalf("expected rebind to succeed: %+v", results[0])
	}
	if binder.bound["T"] != `\\srv02\archive` {
		t.Errorf("expected T to point at the second target, got %q", binder.bound["T"])
	}
}

func TestFailedCount(t *testing.T) {
	results := []AttemptResult{
		{Drive: "T", Success: true},
		{Drive: "H", Code: CodeBadNetPath},
		{Drive: "S", Code: CodeAccessDenied},
	}
	if n := Failed(results); n != 2 {
		t.Errorf("expected 2 failures, got %d", n)
	}
}
