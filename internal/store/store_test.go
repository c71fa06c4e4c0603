package store

import (
	"fmt"
	"testing"

	"github.com/litescript/ls-globeradio/internal/station"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func rec(name string) station.Record {
	return station.Record{
		StreamURL: "http://" + name + ".example/stream",
		Name:      name,
		Latitude:  1,
		Longitude: 2,
	}
}

func TestStore_ToggleFavorite(t *testing.T) {
	s := openTestStore(t)

	key := rec("nyc").Key()
	if s.IsFavorite(key) {
		t.Fatal("fresh store should have no favorites")
	}

	fav, err := s.ToggleFavorite(key)
	if err != nil {
		t.Fatalf("ToggleFavorite() error = %v", err)
	}
	if !fav || !s.IsFavorite(key) {
		t.Error("first toggle should add the favorite")
	}

	fav, err = s.ToggleFavorite(key)
	if err != nil {
		t.Fatalf("ToggleFavorite() error = %v", err)
	}
	if fav || s.IsFavorite(key) {
		t.Error("second toggle should remove the favorite")
	}
}

func TestStore_HistoryDedupeToFront(t *testing.T) {
	s := openTestStore(t)

	for _, name := range []string{"a", "b", "c", "a"} {
		if err := s.PushHistory(rec(name)); err != nil {
			t.Fatalf("PushHistory(%s) error = %v", name, err)
		}
	}

	h := s.History()
	if len(h) != 3 {
		t.Fatalf("history length = %d, want 3 (deduplicated)", len(h))
	}
	want := []string{"a", "c", "b"}
	for i, name := range want {
		if h[i].Name != name {
			t.Errorf("history[%d] = %q, want %q", i, h[i].Name, name)
		}
	}
}

func TestStore_HistoryCapEvictsOldest(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < MaxHistory+1; i++ {
		if err := s.PushHistory(rec(fmt.Sprintf("s%02d", i))); err != nil {
			t.Fatalf("PushHistory error = %v", err)
		}
	}

	if s.HistoryLen() != MaxHistory {
		t.Fatalf("history length = %d, want %d", s.HistoryLen(), MaxHistory)
	}

	h := s.History()
	if h[0].Name != fmt.Sprintf("s%02d", MaxHistory) {
		t.Errorf("newest entry = %q, want the last pushed station", h[0].Name)
	}
	for _, entry := range h {
		if entry.Name == "s00" {
			t.Error("oldest entry should have been evicted")
		}
	}
}

func TestStore_HistoryAt(t *testing.T) {
	s := openTestStore(t)
	_ = s.PushHistory(rec("a"))
	_ = s.PushHistory(rec("b"))

	got, ok := s.HistoryAt(1)
	if !ok || got.Name != "a" {
		t.Errorf("HistoryAt(1) = %q, %v; want a, true", got.Name, ok)
	}
	if _, ok := s.HistoryAt(2); ok {
		t.Error("HistoryAt out of range should report false")
	}
	if _, ok := s.HistoryAt(-1); ok {
		t.Error("HistoryAt(-1) should report false")
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := s.ToggleFavorite(rec("nyc").Key()); err != nil {
		t.Fatalf("ToggleFavorite() error = %v", err)
	}
	if err := s.PushHistory(rec("nyc")); err != nil {
		t.Fatalf("PushHistory() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	if !reopened.IsFavorite(rec("nyc").Key()) {
		t.Error("favorite did not survive reopen")
	}
	h := reopened.History()
	if len(h) != 1 || h[0].Name != "nyc" {
		t.Errorf("history after reopen = %v, want the single nyc entry", h)
	}
}

func TestStore_ClosedMutationsFail(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	_ = s.Close()

	if _, err := s.ToggleFavorite("x"); err != ErrClosed {
		t.Errorf("ToggleFavorite on closed store: err = %v, want ErrClosed", err)
	}
	if err := s.PushHistory(rec("a")); err != ErrClosed {
		t.Errorf("PushHistory on closed store: err = %v, want ErrClosed", err)
	}
}
