package service

import (
	"sync"
	"testing"

	"linguabot/internal/core/langpack"
	"linguabot/internal/services/prefs/domain"
)

func TestOverwriteKeepsPosition(t *testing.T) {
	s := New()
	s.Set(1, "uk")
	s.Set(2, "pl")
	s.Set(1, "en") // overwrite, position stays first

	got := s.Snapshot()
	want := []domain.Preference{
		{User: 1, Target: "en"},
		{User: 2, Target: "pl"},
	}
	if len(got) != len(want) {
		t.Fatalf("snapshot = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("snapshot[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	c, ok := s.Get(1)
	if !ok || c != "en" {
		t.Fatalf("Get(1) = %q, %v", c, ok)
	}
	if _, ok := s.Get(99); ok {
		t.Fatal("Get(99) should miss")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New()
	s.Set(1, "uk")

	snap := s.Snapshot()
	snap[0].Target = "pl"

	if c, _ := s.Get(1); c != "uk" {
		t.Fatalf("store mutated through snapshot: %q", c)
	}
}

func TestConcurrentSetAndSnapshot(t *testing.T) {
	s := New()
	langs := []langpack.Code{"en", "uk", "pl"}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				s.Set(domain.UserID(i%50), langs[i%len(langs)])
				if i%10 == 0 {
					_ = s.Snapshot()
				}
			}
		}(w)
	}
	wg.Wait()

	if s.Len() != 50 {
		t.Fatalf("Len = %d, want 50", s.Len())
	}
	snap := s.Snapshot()
	seen := map[domain.UserID]bool{}
	for _, p := range snap {
		if seen[p.User] {
			t.Fatalf("duplicate user %v in snapshot", p.User)
		}
		seen[p.User] = true
	}
}
