package tablequery

import (
	"testing"
	"time"
)

func TestDebouncedSearchCommitsOnce(t *testing.T) {
	coord := NewCoordinator(NewStore())
	key := coord.RegisterPage("/admin/articles", PageConfig{})

	in := NewSearchInput(coord, key, 40*time.Millisecond)

	// Five keystrokes inside the quiet window.
	for _, v := range []string{"h", "he", "hel", "hell", "hello"} {
		in.Type(v)
		time.Sleep(5 * time.Millisecond)
		if got := coord.Store().Search(key); got != "" {
			t.Fatalf("committed too early: %q", got)
		}
	}

	time.Sleep(100 * time.Millisecond)
	if got := coord.Store().Search(key); got != "hello" {
		t.Fatalf("committed=%q, want \"hello\"", got)
	}
	if in.Draft() != "hello" {
		t.Fatalf("draft=%q", in.Draft())
	}
}

func TestDebouncedSearchFlush(t *testing.T) {
	coord := NewCoordinator(NewStore())
	key := coord.RegisterPage("/admin/articles", PageConfig{})

	in := NewSearchInput(coord, key, time.Hour)
	in.Type("hello")
	in.Flush()

	if got := coord.Store().Search(key); got != "hello" {
		t.Fatalf("flush did not commit: %q", got)
	}
}

func TestDebouncedSearchStop(t *testing.T) {
	coord := NewCoordinator(NewStore())
	key := coord.RegisterPage("/admin/articles", PageConfig{})

	in := NewSearchInput(coord, key, 20*time.Millisecond)
	in.Type("hello")
	in.Stop()

	time.Sleep(60 * time.Millisecond)
	if got := coord.Store().Search(key); got != "" {
		t.Fatalf("stopped input still committed: %q", got)
	}
}

func TestDebouncedCommitResetsOffset(t *testing.T) {
	coord := NewCoordinator(NewStore())
	key := coord.RegisterPage("/admin/articles", PageConfig{DefaultLimit: 10})
	coord.Store().SetCount(key, 100)
	coord.Store().SetOffset(key, 5)

	in := NewSearchInput(coord, key, 10*time.Millisecond)
	in.Type("go")
	time.Sleep(50 * time.Millisecond)

	if coord.Store().Offset(key) != 0 {
		t.Fatalf("offset=%d after committed search", coord.Store().Offset(key))
	}
}
