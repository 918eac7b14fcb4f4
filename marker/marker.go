// SPDX-License-Identifier: EPL-2.0

package marker

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Type names a marker.
type Type string

const (
	Start Type = "start"
	End   Type = "end"
)

var (
	// ErrUnknownType is returned for marker types other than Start and End.
	ErrUnknownType = errors.New("unknown marker type")

	// ErrInvalidPosition is returned for NaN or infinite positions.
	ErrInvalidPosition = errors.New("invalid marker position")
)

// Opposite returns the other marker type.
func (t Type) Opposite() Type {
	if t == Start {
		return End
	}
	return Start
}

func (t Type) valid() bool { return t == Start || t == End }

// Marker is a named position along the timeline, in seconds.
type Marker struct {
	ID       string
	Type     Type
	Position float64
}

// Set holds at most one marker of each type for a timeline of a given
// duration. It is safe for concurrent use.
type Set struct {
	mu       sync.RWMutex
	duration float64
	markers  map[Type]Marker
}

// NewSet returns an empty set for a timeline of duration seconds.
func NewSet(duration float64) *Set {
	return &Set{
		duration: max(0, duration),
		markers:  make(map[Type]Marker, 2),
	}
}

// Duration returns the timeline length in seconds.
func (s *Set) Duration() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.duration
}

// SetDuration switches the set to a new timeline and clears every marker.
func (s *Set) SetDuration(duration float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.duration = max(0, duration)
	clear(s.markers)
}

// SetMarker places a marker of type t at position, clamped to the timeline,
// replacing any marker of the same type. When the set was empty the
// opposite marker is added too: a start at 0 or an end at the duration.
func (s *Set) SetMarker(t Type, position float64) (Marker, error) {
	if !t.valid() {
		return Marker{}, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	if math.IsNaN(position) || math.IsInf(position, 0) {
		return Marker{}, fmt.Errorf("%w: %v", ErrInvalidPosition, position)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.markers) == 0 {
		pair := s.duration
		if t == End {
			pair = 0
		}
		s.markers[t.Opposite()] = newMarker(t.Opposite(), pair)
	}

	m := newMarker(t, min(max(position, 0), s.duration))
	s.markers[t] = m

	return m, nil
}

func newMarker(t Type, position float64) Marker {
	return Marker{ID: uuid.New().String(), Type: t, Position: position}
}

// Remove deletes the marker of type t and reports whether one existed.
func (s *Set) Remove(t Type) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.markers[t]
	delete(s.markers, t)
	return ok
}

// Clear deletes every marker.
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.markers)
}

// Get returns the marker of type t.
func (s *Set) Get(t Type) (Marker, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.markers[t]
	return m, ok
}

// List returns the markers ordered by position.
func (s *Set) List() []Marker {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Marker, 0, len(s.markers))
	for _, m := range s.markers {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position == out[j].Position {
			return out[i].Type == Start
		}
		return out[i].Position < out[j].Position
	})

	return out
}

// Range returns the start and end positions. ok is false unless both
// markers exist and start < end.
func (s *Set) Range() (start, end float64, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, hasStart := s.markers[Start]
	en, hasEnd := s.markers[End]
	if !hasStart || !hasEnd || st.Position >= en.Position {
		return 0, 0, false
	}
	return st.Position, en.Position, true
}

// CanExport reports whether the markers select a non-empty range.
func (s *Set) CanExport() bool {
	_, _, ok := s.Range()
	return ok
}
