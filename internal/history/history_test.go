package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return s
}

func record(t *testing.T, s *Store, visits ...[2]string) {
	t.Helper()
	for _, v := range visits {
		if err := s.Record(context.Background(), v[0], v[1]); err != nil {
			t.Fatalf("Record(%s): %v", v[0], err)
		}
	}
}

func urls(visits []Visit) []string {
	out := make([]string, len(visits))
	for i, v := range visits {
		out[i] = v.URL
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRecentDeduplicates(t *testing.T) {
	s := openTest(t)
	record(t, s,
		[2]string{"https://a.example", "Old"},
		[2]string{"https://b.example", "B"},
		[2]string{"https://a.example", "New"},
	)

	got, err := s.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if want := []string{"https://a.example", "https://b.example"}; !equal(urls(got), want) {
		t.Fatalf("Recent() = %v, want %v", urls(got), want)
	}
	if got[0].Title != "New" {
		t.Errorf("title = %q, want the latest title", got[0].Title)
	}
	if !got[0].VisitedAt.After(got[1].VisitedAt) {
		t.Errorf("VisitedAt not descending: %v, %v", got[0].VisitedAt, got[1].VisitedAt)
	}
}

func TestRecentLimit(t *testing.T) {
	s := openTest(t)
	record(t, s,
		[2]string{"https://a.example", "A"},
		[2]string{"https://b.example", "B"},
		[2]string{"https://c.example", "C"},
	)

	tests := []struct {
		limit int
		want  []string
	}{
		{1, []string{"https://c.example"}},
		{2, []string{"https://c.example", "https://b.example"}},
		{0, nil},
	}
	for _, tt := range tests {
		got, err := s.Recent(context.Background(), tt.limit)
		if err != nil {
			t.Fatalf("Recent(%d): %v", tt.limit, err)
		}
		if !equal(urls(got), tt.want) {
			t.Errorf("Recent(%d) = %v, want %v", tt.limit, urls(got), tt.want)
		}
	}
}

func TestSearch(t *testing.T) {
	s := openTest(t)
	record(t, s,
		[2]string{"https://go.dev", "Go"},
		[2]string{"https://example.com", "Example"},
		[2]string{"https://rust-lang.org", "Rust"},
	)
	ctx := context.Background()

	got, err := s.Search(ctx, "go.dev", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if want := []string{"https://go.dev"}; !equal(urls(got), want) {
		t.Errorf("Search(go.dev) = %v, want %v", urls(got), want)
	}

	got, err = s.Search(ctx, "Example", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) == 0 || got[0].URL != "https://example.com" {
		t.Errorf("Search(Example) = %v, want example.com first", urls(got))
	}

	got, err = s.Search(ctx, "zzz", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Search(zzz) = %v, want none", urls(got))
	}

	got, err = s.Search(ctx, "", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if want := []string{"https://rust-lang.org", "https://example.com"}; !equal(urls(got), want) {
		t.Errorf("Search(\"\") = %v, want %v", urls(got), want)
	}
}

func TestClear(t *testing.T) {
	s := openTest(t)
	record(t, s, [2]string{"https://a.example", "A"})

	if err := s.Clear(context.Background()); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, err := s.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Recent() after Clear = %v", urls(got))
	}
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	record(t, s, [2]string{"https://a.example", "A"})
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if want := []string{"https://a.example"}; !equal(urls(got), want) {
		t.Errorf("Recent() = %v, want %v", urls(got), want)
	}
	if s.Path() != path {
		t.Errorf("Path() = %q, want %q", s.Path(), path)
	}
}
