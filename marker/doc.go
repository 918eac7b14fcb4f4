// SPDX-License-Identifier: EPL-2.0

// Package marker keeps the start and end markers that delimit the segment
// to export.
//
// A Set holds at most one marker per type. Placing the first marker on an
// empty set also places its partner at the matching edge of the timeline,
// so a single action is enough to trim from one side:
//
//	s := marker.NewSet(100)
//	s.SetMarker(marker.End, 5) // start is added at 0
//
// Positions are clamped to [0, duration]. Loading a new source calls
// SetDuration, which drops all markers.
package marker
