package reconcile

import (
	"context"
	"errors"
	"testing"

	"codeberg.org/velkan/lingoscope/internal/remote"
	"codeberg.org/velkan/lingoscope/internal/testutil"
	"codeberg.org/velkan/lingoscope/internal/vocab"
)

// memCache is an in-memory Cache for tests.
type memCache struct {
	analyses []vocab.SavedAnalysis
	folders  []vocab.AnalysisFolder
	saves    int
}

func (c *memCache) Load() ([]vocab.SavedAnalysis, []vocab.AnalysisFolder) {
	return append([]vocab.SavedAnalysis{}, c.analyses...),
		append([]vocab.AnalysisFolder{}, c.folders...)
}

func (c *memCache) Save(analyses []vocab.SavedAnalysis, folders []vocab.AnalysisFolder) error {
	c.analyses = analyses
	c.folders = folders
	c.saves++
	return nil
}

func TestMerge_UploadsLocalOnlyRecords(t *testing.T) {
	cache := &memCache{
		analyses: []vocab.SavedAnalysis{{ID: "local-1"}, {ID: "shared"}},
		folders:  []vocab.AnalysisFolder{{ID: "f-local"}},
	}
	store := testutil.NewMockStore()
	store.Analyses["u1"] = []vocab.SavedAnalysis{{ID: "shared"}, {ID: "remote-1"}}

	e := New(cache, store)
	analyses, folders := e.Merge(context.Background(), "u1")

	// Remote is the source of truth post-merge: local-1 uploaded, remote-1
	// retained, shared not duplicated.
	ids := make(map[string]int)
	for _, a := range analyses {
		ids[a.ID]++
	}
	for _, id := range []string{"local-1", "shared", "remote-1"} {
		if ids[id] != 1 {
			t.Errorf("Expected exactly one %s, got %d", id, ids[id])
		}
	}
	if len(analyses) != 3 {
		t.Errorf("Expected 3 analyses, got %d", len(analyses))
	}
	if len(folders) != 1 || folders[0].ID != "f-local" {
		t.Errorf("Expected uploaded folder in merged view, got %+v", folders)
	}

	// Local cache was overwritten with the merged view.
	if cache.saves != 1 {
		t.Errorf("Expected 1 cache save, got %d", cache.saves)
	}
	if len(cache.analyses) != 3 {
		t.Errorf("Expected merged view in cache, got %d analyses", len(cache.analyses))
	}
}

func TestMerge_Idempotent(t *testing.T) {
	cache := &memCache{analyses: []vocab.SavedAnalysis{{ID: "a1"}}}
	store := testutil.NewMockStore()

	e := New(cache, store)
	e.Merge(context.Background(), "u1")
	first := len(store.CallLog())

	// A redundant merge for the same login must not hit the network.
	analyses, _ := e.Merge(context.Background(), "u1")
	if len(store.CallLog()) != first {
		t.Errorf("Second merge touched the store: %v", store.CallLog()[first:])
	}
	if len(analyses) != 1 || analyses[0].ID != "a1" {
		t.Errorf("Second merge should return cached view, got %+v", analyses)
	}

	// No duplicates remotely even after repeated merge attempts.
	if len(store.Analyses["u1"]) != 1 {
		t.Errorf("Expected 1 remote analysis, got %d", len(store.Analyses["u1"]))
	}
}

func TestMerge_RearmAllowsNextLogin(t *testing.T) {
	cache := &memCache{}
	store := testutil.NewMockStore()

	e := New(cache, store)
	e.Merge(context.Background(), "u1")
	calls := len(store.CallLog())

	e.Rearm("u1")
	e.Merge(context.Background(), "u1")
	if len(store.CallLog()) == calls {
		t.Error("Expected merge to run again after Rearm")
	}
}

func TestMerge_NetworkFailureFallsBackToLocal(t *testing.T) {
	cache := &memCache{analyses: []vocab.SavedAnalysis{{ID: "a1"}, {ID: "a2"}}}
	store := testutil.NewMockStore()
	store.SetErr(errors.New("backend down"))

	e := New(cache, store)
	var logged int
	e.SetLogf(func(format string, args ...any) { logged++ })

	analyses, folders := e.Merge(context.Background(), "u1")
	if len(analyses) != 2 || len(folders) != 0 {
		t.Errorf("Expected pre-merge local view, got %d analyses", len(analyses))
	}
	if cache.saves != 0 {
		t.Error("Failed merge must not overwrite the local cache")
	}
	if logged == 0 {
		t.Error("Expected failure to be logged")
	}
}

func TestMerge_UnconfiguredStoreKeepsLocalView(t *testing.T) {
	cache := &memCache{analyses: []vocab.SavedAnalysis{{ID: "a1"}}}

	e := New(cache, remote.Unconfigured{})
	analyses, _ := e.Merge(context.Background(), "u1")

	if len(analyses) != 1 {
		t.Errorf("Expected local view untouched, got %d analyses", len(analyses))
	}
	if cache.saves != 0 {
		t.Error("Unconfigured merge must not rewrite the cache")
	}
}
