// SPDX-License-Identifier: EPL-2.0

package marker

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func TestSetMarker_AutoPair(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		typ       Type
		position  float64
		wantStart float64
		wantEnd   float64
	}{
		{"end first", End, 5, 0, 5},
		{"start first", Start, 40, 40, 100},
		{"clamped high", End, 250, 0, 100},
		{"clamped low", Start, -3, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewSet(100)
			if _, err := s.SetMarker(tt.typ, tt.position); err != nil {
				t.Fatalf("SetMarker() error = %v", err)
			}

			start, okStart := s.Get(Start)
			end, okEnd := s.Get(End)
			if !okStart || !okEnd {
				t.Fatalf("markers present: start=%v end=%v", okStart, okEnd)
			}
			if start.Position != tt.wantStart || end.Position != tt.wantEnd {
				t.Errorf("markers = {start: %v, end: %v}, want {start: %v, end: %v}",
					start.Position, end.Position, tt.wantStart, tt.wantEnd)
			}
			if start.ID == "" || end.ID == "" || start.ID == end.ID {
				t.Errorf("IDs = %q, %q; want distinct non-empty", start.ID, end.ID)
			}
		})
	}
}

func TestSetMarker_ReplacesSameType(t *testing.T) {
	t.Parallel()

	s := NewSet(60)
	first, _ := s.SetMarker(Start, 10)
	second, _ := s.SetMarker(Start, 20)

	if first.ID == second.ID {
		t.Error("replacement kept the old ID")
	}
	if got, _ := s.Get(Start); got.Position != 20 {
		t.Errorf("start = %v, want 20", got.Position)
	}
	if got := len(s.List()); got != 2 {
		t.Errorf("len(List()) = %d, want 2", got)
	}
	if end, _ := s.Get(End); end.Position != 60 {
		t.Errorf("end = %v, want 60 (auto-paired once)", end.Position)
	}
}

func TestSetMarker_NoPairWhenNotEmpty(t *testing.T) {
	t.Parallel()

	s := NewSet(100)
	_, _ = s.SetMarker(Start, 10)
	s.Remove(End)

	_, _ = s.SetMarker(Start, 30)
	if _, ok := s.Get(End); ok {
		t.Error("end marker re-created on a non-empty set")
	}
	if s.CanExport() {
		t.Error("CanExport() = true with only a start marker")
	}
}

func TestSetMarker_Invalid(t *testing.T) {
	t.Parallel()

	s := NewSet(10)

	if _, err := s.SetMarker("middle", 1); !errors.Is(err, ErrUnknownType) {
		t.Errorf("unknown type error = %v", err)
	}
	for _, p := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := s.SetMarker(Start, p); !errors.Is(err, ErrInvalidPosition) {
			t.Errorf("SetMarker(%v) error = %v, want ErrInvalidPosition", p, err)
		}
	}
	if len(s.List()) != 0 {
		t.Error("invalid calls changed the set")
	}
}

func TestCanExport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(*Set)
		want  bool
	}{
		{"empty", func(*Set) {}, false},
		{"auto paired", func(s *Set) { _, _ = s.SetMarker(End, 5) }, true},
		{"inverted", func(s *Set) {
			_, _ = s.SetMarker(Start, 50)
			_, _ = s.SetMarker(End, 10)
		}, false},
		{"equal", func(s *Set) {
			_, _ = s.SetMarker(Start, 10)
			_, _ = s.SetMarker(End, 10)
		}, false},
		{"end at zero", func(s *Set) { _, _ = s.SetMarker(End, 0) }, false},
		{"cleared", func(s *Set) {
			_, _ = s.SetMarker(End, 5)
			s.Clear()
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewSet(100)
			tt.setup(s)
			if got := s.CanExport(); got != tt.want {
				t.Errorf("CanExport() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRange(t *testing.T) {
	t.Parallel()

	s := NewSet(100)
	_, _ = s.SetMarker(Start, 12.5)
	_, _ = s.SetMarker(End, 30)

	start, end, ok := s.Range()
	if !ok || start != 12.5 || end != 30 {
		t.Errorf("Range() = %v, %v, %v; want 12.5, 30, true", start, end, ok)
	}
}

func TestSetDuration_ClearsMarkers(t *testing.T) {
	t.Parallel()

	s := NewSet(100)
	_, _ = s.SetMarker(End, 80)

	s.SetDuration(20)
	if len(s.List()) != 0 {
		t.Fatal("markers survived a new source")
	}
	if s.Duration() != 20 {
		t.Errorf("Duration() = %v, want 20", s.Duration())
	}

	m, _ := s.SetMarker(End, 80)
	if m.Position != 20 {
		t.Errorf("end = %v, want clamped to 20", m.Position)
	}
}

func TestList_Ordered(t *testing.T) {
	t.Parallel()

	s := NewSet(10)
	_, _ = s.SetMarker(Start, 10)

	got := s.List()
	if len(got) != 2 || got[0].Type != Start || got[1].Type != End {
		t.Errorf("List() = %+v, want start then end", got)
	}
}

func TestSet_Concurrent(t *testing.T) {
	t.Parallel()

	s := NewSet(100)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			typ := Start
			if i%2 == 1 {
				typ = End
			}
			_, _ = s.SetMarker(typ, float64(i))
			s.CanExport()
			s.List()
		}()
	}
	wg.Wait()

	if n := len(s.List()); n != 2 {
		t.Errorf("len(List()) = %d, want 2", n)
	}
}
