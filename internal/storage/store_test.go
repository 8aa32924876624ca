package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/pders01/featured/internal/apps"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	tmpDir, err := os.MkdirTemp("", "store-test-*")
	if err != nil {
		t.Fatal(err)
	}

	dbPath := filepath.Join(tmpDir, "test.db")
	store, err := NewStore(dbPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatal(err)
	}

	cleanup := func() {
		store.Close()
		os.RemoveAll(tmpDir)
	}

	return store, cleanup
}

func TestStore_LoadAppsMiss(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	list, err := store.LoadApps()
	if err != nil {
		t.Fatalf("cache miss should not be an error: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", list)
	}

	cachedAt, err := store.CachedAt()
	if err != nil {
		t.Fatalf("CachedAt failed: %v", err)
	}
	if !cachedAt.IsZero() {
		t.Errorf("expected zero CachedAt on miss, got %v", cachedAt)
	}
}

func TestStore_SaveAndLoadApps(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	list := []apps.App{
		{ID: "3", Name: "Three", Description: "third\nmore", Categories: apps.Categories{"games"}},
		{ID: "1", Name: "One", Image: "https://cdn.apps.io/one.png", Categories: apps.Categories{"other"}},
		{ID: "2", Name: "Two", UpdateDate: "2025-01-02", Categories: apps.Categories{"tools", "media"}},
	}

	before := time.Now().Add(-time.Second)
	if err := store.SaveApps(list); err != nil {
		t.Fatalf("failed to save apps: %v", err)
	}

	loaded, err := store.LoadApps()
	if err != nil {
		t.Fatalf("failed to load apps: %v", err)
	}

	if len(loaded) != len(list) {
		t.Fatalf("expected %d apps, got %d", len(list), len(loaded))
	}
	for i := range list {
		if loaded[i].ID != list[i].ID {
			t.Errorf("position %d: expected id %s, got %s", i, list[i].ID, loaded[i].ID)
		}
		if loaded[i].Categories.Primary() != list[i].Categories.Primary() {
			t.Errorf("position %d: expected category %s, got %s", i, list[i].Categories.Primary(), loaded[i].Categories.Primary())
		}
	}

	cachedAt, err := store.CachedAt()
	if err != nil {
		t.Fatalf("CachedAt failed: %v", err)
	}
	if cachedAt.Before(before) {
		t.Errorf("CachedAt %v should be after %v", cachedAt, before)
	}
}

func TestStore_SaveAppsReplacesList(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	first := make([]apps.App, 12)
	for i := range first {
		first[i] = apps.App{ID: apps.AppID(string(rune('a' + i))), Name: "old"}
	}
	if err := store.SaveApps(first); err != nil {
		t.Fatal(err)
	}

	second := []apps.App{{ID: "100", Name: "new"}}
	if err := store.SaveApps(second); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.LoadApps()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 || loaded[0].Name != "new" {
		t.Errorf("expected only the replacement list, got %#v", loaded)
	}
}

func TestStore_LoadAppsSkipsCorruptEntries(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	if err := store.SaveApps([]apps.App{{ID: "1", Name: "Good"}}); err != nil {
		t.Fatal(err)
	}

	err := store.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(appsBucket).Put(orderKey(1), []byte("{not json"))
	})
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := store.LoadApps()
	if err != nil {
		t.Fatalf("corrupt entries should be skipped: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Name != "Good" {
		t.Errorf("expected the valid entry only, got %#v", loaded)
	}
}

func TestStore_Clear(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	if err := store.SaveApps([]apps.App{{ID: "1"}}); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	loaded, err := store.LoadApps()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 0 {
		t.Errorf("expected empty cache after Clear, got %d apps", len(loaded))
	}

	cachedAt, _ := store.CachedAt()
	if !cachedAt.IsZero() {
		t.Errorf("expected zero CachedAt after Clear, got %v", cachedAt)
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")

	store, err := NewStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SaveApps([]apps.App{{ID: "9", Name: "Nine"}}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	reopened, err := NewStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	loaded, err := reopened.LoadApps()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 || loaded[0].ID != "9" {
		t.Errorf("expected cached app after reopen, got %#v", loaded)
	}
}
