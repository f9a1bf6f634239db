package storage

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/relpanel/pkg/errors"
	"github.com/matzehuels/relpanel/pkg/scene"
)

func testRecord(t *testing.T, name string) *Record {
	t.Helper()
	s := &scene.Scene{Width: 100, Height: 50, Elements: []scene.Element{
		{Name: "a", Width: 20, Height: 10, AlignRightWithPanel: true},
	}}
	res, err := scene.Solve(s)
	if err != nil {
		t.Fatal(err)
	}
	return NewRecord(name, s, res)
}

// exerciseStore runs the Store contract against any backend.
func exerciseStore(t *testing.T, store Store) {
	ctx := context.Background()

	first := testRecord(t, "first")
	second := testRecord(t, "second")
	second.CreatedAt = first.CreatedAt.Add(time.Second)

	for _, rec := range []*Record{first, second} {
		if err := store.Save(ctx, rec); err != nil {
			t.Fatalf("Save(%s): %v", rec.Name, err)
		}
	}

	got, err := store.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(first, got); diff != "" {
		t.Errorf("Get mismatch (-want +got):\n%s", diff)
	}

	list, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var names []string
	for _, rec := range list {
		names = append(names, rec.Name)
	}
	if diff := cmp.Diff([]string{"second", "first"}, names); diff != "" {
		t.Errorf("List order mismatch (-want +got):\n%s", diff)
	}

	if list, _ := store.List(ctx, 1); len(list) != 1 {
		t.Errorf("List(1) returned %d records", len(list))
	}

	if err := store.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, first.ID); !IsNotFound(err) {
		t.Errorf("Get after Delete: err = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, first.ID); !IsNotFound(err) {
		t.Errorf("second Delete: err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close(context.Background())
	exerciseStore(t, store)
}

func TestMemoryStore_CopiesRecords(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	rec := testRecord(t, "orig")
	if err := store.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}
	rec.Name = "mutated"

	got, err := store.Get(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "orig" {
		t.Errorf("stored record changed through caller pointer: %q", got.Name)
	}
}

func TestMemoryStore_DeepCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	rec := testRecord(t, "orig")
	want := &Record{
		ID: rec.ID, Name: rec.Name, CreatedAt: rec.CreatedAt,
		Scene: rec.Scene.Clone(), Result: rec.Result.Clone(),
	}
	if err := store.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}
	rec.Scene.Elements[0].Name = "changed"
	rec.Result.Blocks[0].X = -1
	rec.Result.Blocks[0].Constraints[0] = "changed"

	got, err := store.Get(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stored record changed after Save (-want +got):\n%s", diff)
	}

	got.Result.Blocks[0].Width = 999
	again, err := store.Get(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, again); diff != "" {
		t.Errorf("stored record changed through Get result (-want +got):\n%s", diff)
	}
}

func TestMemoryStore_Capacity(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WithCapacity(2))

	var recs []*Record
	for i := range 3 {
		rec := testRecord(t, fmt.Sprintf("r%d", i))
		recs = append(recs, rec)
		if err := store.Save(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2", store.Len())
	}
	if _, err := store.Get(ctx, recs[0].ID); !IsNotFound(err) {
		t.Errorf("oldest record: err = %v, want ErrNotFound", err)
	}
	for _, rec := range recs[1:] {
		if _, err := store.Get(ctx, rec.ID); err != nil {
			t.Errorf("Get(%s): %v", rec.Name, err)
		}
	}

	// Replacing a stored record does not evict anything.
	if err := store.Save(ctx, recs[1]); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, recs[2].ID); err != nil {
		t.Errorf("Get after replace: %v", err)
	}

	// Deleting frees a slot.
	if err := store.Delete(ctx, recs[1].ID); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, recs[0]); err != nil {
		t.Fatal(err)
	}
	if store.Len() != 2 {
		t.Errorf("Len() after delete and save = %d, want 2", store.Len())
	}
	if _, err := store.Get(ctx, recs[2].ID); err != nil {
		t.Errorf("Get(%s) after delete and save: %v", recs[2].Name, err)
	}
}

func TestSave_Invalid(t *testing.T) {
	store := NewMemoryStore()
	tests := []struct {
		name string
		rec  *Record
	}{
		{"nil", nil},
		{"no id", &Record{Result: &scene.Result{}}},
		{"no result", &Record{ID: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Save(context.Background(), tt.rec)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("err = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestErrNotFoundCode(t *testing.T) {
	if got := errors.GetCode(ErrNotFound); got != errors.ErrCodeNotFound {
		t.Errorf("code = %q", got)
	}
}

func TestNewMongoStore_RequiresURI(t *testing.T) {
	_, err := NewMongoStore(context.Background(), MongoConfig{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

// TestMongoStore runs against a live server when RELPANEL_TEST_MONGO_URI is
// set.
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("RELPANEL_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("RELPANEL_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	store, err := NewMongoStore(ctx, MongoConfig{
		URI:        uri,
		Database:   "relpanel_test",
		Collection: fmt.Sprintf("layouts_%d", time.Now().UnixNano()),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close(ctx)
	defer store.coll.Drop(ctx)

	exerciseStore(t, store)
}
