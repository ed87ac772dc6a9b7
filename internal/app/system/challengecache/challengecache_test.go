package challengecache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/forgefit/adminhub/internal/app/system/blobstore"
	"github.com/forgefit/adminhub/internal/app/system/challengecache"
	"github.com/forgefit/adminhub/internal/domain/models"
)

type fakeLister struct {
	items []models.ChallengeSummary
	err   error
	calls int
}

func (f *fakeLister) ListAll(ctx context.Context) ([]models.ChallengeSummary, error) {
	f.calls++
	return f.items, f.err
}

func catalog() []models.ChallengeSummary {
	return []models.ChallengeSummary{
		{ID: "ch-murph", Title: "Murph Memorial", Status: "active"},
		{ID: "ch-squat", Title: "30 Day Squat Challenge", Status: "active"},
		{ID: "ch-row", Title: "Row 100k", Status: "archived"},
	}
}

func newBlobs() *blobstore.Store {
	return blobstore.New(afero.NewMemMapFs(), "/cache")
}

func TestLoad_FetchesWhenNoSnapshot(t *testing.T) {
	source := &fakeLister{items: catalog()}
	blobs := newBlobs()
	cache := challengecache.New(source, blobs, zap.NewNop())

	if err := cache.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if source.calls != 1 {
		t.Errorf("source calls = %d, want 1", source.calls)
	}
	if got := cache.Search("murph"); len(got) != 1 || got[0].ID != "ch-murph" {
		t.Errorf("Search after load = %+v, want ch-murph", got)
	}
}

func TestLoad_PrefersSnapshot(t *testing.T) {
	blobs := newBlobs()
	if err := blobs.Save("challenges.json",
		[]byte(`[{"id":"ch-snap","title":"From Snapshot","status":"active"}]`)); err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}

	source := &fakeLister{items: catalog()}
	cache := challengecache.New(source, blobs, zap.NewNop())

	if err := cache.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if source.calls != 0 {
		t.Errorf("source calls = %d, want 0 when snapshot exists", source.calls)
	}
	if got := cache.Search("snapshot"); len(got) != 1 || got[0].ID != "ch-snap" {
		t.Errorf("Search = %+v, want snapshot contents", got)
	}
}

func TestLoad_CorruptSnapshotFallsBack(t *testing.T) {
	blobs := newBlobs()
	if err := blobs.Save("challenges.json", []byte("{not json")); err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}

	source := &fakeLister{items: catalog()}
	cache := challengecache.New(source, blobs, zap.NewNop())

	if err := cache.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if source.calls != 1 {
		t.Errorf("source calls = %d, want fallback fetch", source.calls)
	}
	if got := cache.Search("squat"); len(got) != 1 {
		t.Errorf("Search after fallback = %+v, want one result", got)
	}

	// The snapshot should have been rewritten with good data.
	data, err := blobs.Load("challenges.json")
	if err != nil {
		t.Fatalf("Load snapshot: %v", err)
	}
	if string(data) == "{not json" {
		t.Error("corrupt snapshot was not rewritten")
	}
}

func TestForceRefresh_ReplacesContents(t *testing.T) {
	source := &fakeLister{items: catalog()}
	cache := challengecache.New(source, newBlobs(), zap.NewNop())

	if err := cache.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	source.items = []models.ChallengeSummary{
		{ID: "ch-new", Title: "Fresh Challenge", Status: "active"},
	}
	if err := cache.ForceRefresh(context.Background()); err != nil {
		t.Fatalf("ForceRefresh: %v", err)
	}

	if got := cache.Search("murph"); len(got) != 0 {
		t.Errorf("Search for replaced item = %+v, want none", got)
	}
	if got := cache.Search("fresh"); len(got) != 1 {
		t.Errorf("Search for new item = %+v, want one result", got)
	}
}

func TestForceRefresh_FetchErrorKeepsCache(t *testing.T) {
	source := &fakeLister{items: catalog()}
	cache := challengecache.New(source, newBlobs(), zap.NewNop())

	if err := cache.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	source.err = errors.New("upstream down")
	if err := cache.ForceRefresh(context.Background()); err == nil {
		t.Fatal("ForceRefresh with failing source = nil, want error")
	}
	if got := cache.Search("murph"); len(got) != 1 {
		t.Errorf("Search after failed refresh = %+v, want prior contents", got)
	}
}

func TestSearch_BeforeLoad(t *testing.T) {
	cache := challengecache.New(&fakeLister{}, newBlobs(), zap.NewNop())

	if cache.Loaded() {
		t.Error("Loaded = true before Load")
	}
	if got := cache.Search("murph"); got != nil {
		t.Errorf("Search before load = %+v, want nil", got)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	source := &fakeLister{items: catalog()}
	cache := challengecache.New(source, newBlobs(), zap.NewNop())
	if err := cache.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := cache.Search("   "); got != nil {
		t.Errorf("Search with blank query = %+v, want nil", got)
	}
}

func TestSearch_CaseInsensitiveAndCapped(t *testing.T) {
	items := make([]models.ChallengeSummary, 0, 15)
	for i := 0; i < 15; i++ {
		items = append(items, models.ChallengeSummary{
			ID:     "ch-active-" + string(rune('a'+i)),
			Title:  "Challenge",
			Status: "Active",
		})
	}
	source := &fakeLister{items: items}
	cache := challengecache.New(source, newBlobs(), zap.NewNop())
	if err := cache.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := cache.Search("ACTIVE")
	if len(got) != challengecache.MaxResults {
		t.Errorf("Search result count = %d, want cap of %d", len(got), challengecache.MaxResults)
	}
}
