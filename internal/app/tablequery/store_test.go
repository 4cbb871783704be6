package tablequery

import "testing"

func TestPageScopedFilterIsolation(t *testing.T) {
	s := NewStore()
	s.RegisterPage("/admin/articles", PageConfig{})
	s.RegisterPage("/admin/projects", PageConfig{DefaultFilter: FilterObject{"featured": true}})

	s.SetFilter("/admin/articles", FilterObject{"topic": "golang"})

	got := s.Filter("/admin/projects")
	if len(got) != 1 || got["featured"] != true {
		t.Fatalf("projects filter changed: %v", got)
	}
	if s.Filter("/admin/articles")["topic"] != "golang" {
		t.Fatalf("articles filter not applied")
	}
}

func TestOffsetScopedPerPage(t *testing.T) {
	s := NewStore()
	s.RegisterPage("/a", PageConfig{})
	s.RegisterPage("/b", PageConfig{})

	s.SetCount("/a", 100)
	s.SetOffset("/a", 3)

	if s.Offset("/b") != 0 {
		t.Fatalf("offset bled across pages: %d", s.Offset("/b"))
	}
}

func TestOffsetResetOnMutations(t *testing.T) {
	s := NewStore()
	s.RegisterPage("/p", PageConfig{})

	s.SetOffset("/p", 4)
	s.SetSearch("/p", "hello")
	if s.Offset("/p") != 0 {
		t.Fatalf("search commit must reset offset, got %d", s.Offset("/p"))
	}

	s.SetOffset("/p", 4)
	s.SetFilter("/p", FilterObject{"published": true})
	if s.Offset("/p") != 0 {
		t.Fatalf("filter apply must reset offset, got %d", s.Offset("/p"))
	}

	s.SetOffset("/p", 4)
	s.SetLimit("/p", 25)
	if s.Offset("/p") != 0 {
		t.Fatalf("limit change must reset offset, got %d", s.Offset("/p"))
	}
	if s.Limit("/p") != 25 {
		t.Fatalf("limit=%d", s.Limit("/p"))
	}
}

func TestSetFilterReplacesNotMerges(t *testing.T) {
	s := NewStore()
	s.RegisterPage("/p", PageConfig{})

	s.SetFilter("/p", FilterObject{"topic": "golang", "published": true})
	s.SetFilter("/p", FilterObject{"featured": true})

	got := s.Filter("/p")
	if _, ok := got["topic"]; ok {
		t.Fatalf("old field survived a full replace: %v", got)
	}
	if len(got) != 1 || got["featured"] != true {
		t.Fatalf("filter=%v", got)
	}
}

func TestDefaultFilterInitializesOnce(t *testing.T) {
	s := NewStore()
	s.RegisterPage("/p", PageConfig{DefaultFilter: FilterObject{"published": true}})

	if s.Filter("/p")["published"] != true {
		t.Fatalf("default filter not applied on first mount")
	}

	s.SetFilter("/p", FilterObject{"published": false})
	s.SetOffset("/p", 2)

	// Remount: offset resets, the user's filter survives.
	s.RegisterPage("/p", PageConfig{DefaultFilter: FilterObject{"published": true}})
	if s.Offset("/p") != 0 {
		t.Fatalf("offset must reset on remount, got %d", s.Offset("/p"))
	}
	if s.Filter("/p")["published"] != false {
		t.Fatalf("remount must not clobber an existing filter")
	}
}

func TestSortToggling(t *testing.T) {
	s := NewStore()
	s.RegisterPage("/p", PageConfig{})

	s.ToggleSort("/p", "title", Ascending)
	srt := s.Sort("/p")
	if srt == nil || srt.Field != "title" || srt.Direction != Ascending {
		t.Fatalf("first toggle: %+v", srt)
	}

	s.ToggleSort("/p", "title", Ascending)
	srt = s.Sort("/p")
	if srt.Direction != Descending {
		t.Fatalf("second toggle must flip, got %+v", srt)
	}

	// A different column replaces the sort entirely with its own default.
	s.ToggleSort("/p", "created_at", Descending)
	srt = s.Sort("/p")
	if srt.Field != "created_at" || srt.Direction != Descending {
		t.Fatalf("column switch: %+v", srt)
	}
}

func TestLimitClamping(t *testing.T) {
	s := NewStore()
	s.RegisterPage("/p", PageConfig{})

	s.SetLimit("/p", 100000)
	if s.Limit("/p") != MaxLimit {
		t.Fatalf("limit not capped: %d", s.Limit("/p"))
	}
	s.SetLimit("/p", -1)
	if s.Limit("/p") != DefaultLimit {
		t.Fatalf("bad limit must fall back to default: %d", s.Limit("/p"))
	}
}

func TestDraftIndependentUntilApplied(t *testing.T) {
	s := NewStore()
	s.RegisterPage("/p", PageConfig{})

	s.SetDraftField("/p", "topic", "golang")
	if s.Filter("/p")["topic"] != nil {
		t.Fatalf("draft edit must not touch applied filter")
	}
	if s.Draft("/p")["topic"] != "golang" {
		t.Fatalf("draft=%v", s.Draft("/p"))
	}
}
