package reflections_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/forgefit/adminhub/internal/app/store/docstore"
	"github.com/forgefit/adminhub/internal/app/store/docstore/memdoc"
	"github.com/forgefit/adminhub/internal/app/store/reflections"
	"github.com/forgefit/adminhub/internal/domain/models"
)

func newStore(t *testing.T) (*reflections.Store, *memdoc.Store) {
	t.Helper()
	docs := memdoc.New()
	return reflections.New(docs, zap.NewNop()), docs
}

func TestCreateGet_General(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, models.Reflection{
		DateKey: "01-15-2025",
		Text:    "What pacing strategy worked today?",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "01-15-2025-general" {
		t.Errorf("ID = %q, want 01-15-2025-general", created.ID)
	}
	if created.ContextKey != "general" {
		t.Errorf("ContextKey = %q, want general", created.ContextKey)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("timestamps not set on create")
	}

	got, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for existing reflection")
	}
	if got.Text != created.Text || got.DateKey != "01-15-2025" {
		t.Errorf("Get = %+v, want created reflection back", got)
	}
}

func TestCreateGet_Challenge(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, models.Reflection{
		DateKey:       "01-15-2025",
		Text:          "How did the first week feel?",
		ChallengeID:   "ch-squat-30",
		ChallengeName: "30 Day Squat Challenge",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "01-15-2025-ch-squat-30" {
		t.Errorf("ID = %q, want challenge ID appended", created.ID)
	}

	// Challenge IDs contain hyphens; the full ID must still round-trip.
	got, err := store.Get(ctx, "01-15-2025-ch-squat-30")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for existing challenge reflection")
	}
	if got.ChallengeID != "ch-squat-30" || got.ChallengeName != "30 Day Squat Challenge" {
		t.Errorf("Get = %+v, want challenge fields preserved", got)
	}
}

func TestCreate_OverwritesSlot(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	first, err := store.Create(ctx, models.Reflection{
		DateKey:      "01-15-2025",
		Text:         "Original prompt",
		ExerciseID:   "ex-1",
		ExerciseName: "Back Squat",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := store.Create(ctx, models.Reflection{
		DateKey: "01-15-2025",
		Text:    "Replacement prompt",
	}); err != nil {
		t.Fatalf("Create (overwrite): %v", err)
	}

	got, err := store.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Text != "Replacement prompt" {
		t.Errorf("Text = %q, want replacement", got.Text)
	}
	if got.ExerciseID != "" {
		t.Errorf("ExerciseID = %q, want cleared by overwrite", got.ExerciseID)
	}
}

func TestCreate_Validation(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, models.Reflection{DateKey: "01-15-2025", Text: "   "})
	if !errors.Is(err, reflections.ErrEmptyText) {
		t.Errorf("blank text err = %v, want ErrEmptyText", err)
	}

	// Text that sanitizes down to nothing is also empty.
	_, err = store.Create(ctx, models.Reflection{
		DateKey: "01-15-2025",
		Text:    "<script>alert('x')</script>",
	})
	if !errors.Is(err, reflections.ErrEmptyText) {
		t.Errorf("script-only text err = %v, want ErrEmptyText", err)
	}

	for _, dateKey := range []string{"", "1-15-2025", "2025-01-15", "13-40-2025", "01-15-25"} {
		_, err := store.Create(ctx, models.Reflection{DateKey: dateKey, Text: "ok"})
		if !errors.Is(err, reflections.ErrBadDateKey) {
			t.Errorf("dateKey %q err = %v, want ErrBadDateKey", dateKey, err)
		}
	}
}

func TestCreate_SanitizesText(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, models.Reflection{
		DateKey: "01-15-2025",
		Text:    "<p>Reflect</p><script>alert('x')</script>",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if strings.Contains(created.Text, "script") {
		t.Errorf("Text = %q, want script stripped", created.Text)
	}
}

func TestGet_MalformedAndMissing(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	for _, id := range []string{"", "nonsense", "01-15-2025", "01-15-2025-"} {
		got, err := store.Get(ctx, id)
		if err != nil {
			t.Errorf("Get(%q) err = %v, want nil", id, err)
		}
		if got != nil {
			t.Errorf("Get(%q) = %+v, want nil", id, got)
		}
	}

	got, err := store.Get(ctx, "01-15-2025-general")
	if err != nil {
		t.Errorf("Get missing err = %v, want nil", err)
	}
	if got != nil {
		t.Errorf("Get missing = %+v, want nil", got)
	}
}

func TestDelete(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, models.Reflection{DateKey: "01-15-2025", Text: "prompt"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err := store.Get(ctx, created.ID)
	if err != nil || got != nil {
		t.Errorf("Get after delete = (%+v, %v), want (nil, nil)", got, err)
	}

	// Malformed and already-deleted IDs are silent no-ops.
	if err := store.Delete(ctx, "garbage"); err != nil {
		t.Errorf("Delete malformed = %v, want nil", err)
	}
	if err := store.Delete(ctx, created.ID); err != nil {
		t.Errorf("Delete again = %v, want nil", err)
	}
}

func seedDates(t *testing.T, store *reflections.Store) {
	t.Helper()
	ctx := context.Background()

	fixtures := []models.Reflection{
		{DateKey: "12-30-2024", Text: "End of year check-in"},
		{DateKey: "01-02-2025", Text: "New year general"},
		{DateKey: "01-02-2025", Text: "Row challenge day 2", ChallengeID: "ch-row"},
		{DateKey: "01-10-2025", Text: "Latest general"},
	}
	for _, f := range fixtures {
		if _, err := store.Create(ctx, f); err != nil {
			t.Fatalf("seed %s: %v", f.DateKey, err)
		}
	}
}

func TestList_OrderAndLimit(t *testing.T) {
	store, _ := newStore(t)
	seedDates(t, store)
	ctx := context.Background()

	got, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	wantIDs := []string{
		"01-10-2025-general",
		"01-02-2025-general",
		"01-02-2025-ch-row",
		"12-30-2024-general",
	}
	if len(got) != len(wantIDs) {
		t.Fatalf("List returned %d reflections, want %d", len(got), len(wantIDs))
	}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Errorf("List[%d].ID = %q, want %q", i, got[i].ID, want)
		}
	}
}

func TestList_TruncatesToLimit(t *testing.T) {
	store, _ := newStore(t)
	seedDates(t, store)
	ctx := context.Background()

	got, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List(2) returned %d reflections", len(got))
	}
	if got[0].ID != "01-10-2025-general" || got[1].ID != "01-02-2025-general" {
		t.Errorf("List(2) = [%s %s], want newest two", got[0].ID, got[1].ID)
	}
}

func TestList_CrossYearOrdering(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	// As strings, "12-30-2024" sorts after "01-10-2025". Listing must
	// order by actual date.
	for _, f := range []models.Reflection{
		{DateKey: "12-30-2024", Text: "older"},
		{DateKey: "01-10-2025", Text: "newer"},
	} {
		if _, err := store.Create(ctx, f); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	got, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].DateKey != "01-10-2025" {
		t.Errorf("List = %+v, want 2025 date first", got)
	}
}

func TestList_ZeroLimit(t *testing.T) {
	store, _ := newStore(t)
	seedDates(t, store)

	got, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List(0) returned %d reflections, want 0", len(got))
	}
}

// failingDocs wraps a store and fails reads touching one date partition.
type failingDocs struct {
	docstore.Store
	failDate string
}

func (f *failingDocs) ListDocs(ctx context.Context, container docstore.Path, opts docstore.ListOptions) ([]docstore.Entry, error) {
	if len(container) >= 2 && container[1] == f.failDate {
		return nil, errors.New("partition unavailable")
	}
	return f.Store.ListDocs(ctx, container, opts)
}

func TestList_SkipsFailedPartition(t *testing.T) {
	docs := memdoc.New()
	seedStore := reflections.New(docs, zap.NewNop())
	seedDates(t, seedStore)

	store := reflections.New(&failingDocs{Store: docs, failDate: "01-02-2025"}, zap.NewNop())

	got, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, r := range got {
		if r.DateKey == "01-02-2025" {
			t.Errorf("List included reflection from failed partition: %s", r.ID)
		}
	}
	if len(got) != 2 {
		t.Errorf("List returned %d reflections, want 2 from healthy partitions", len(got))
	}
}
