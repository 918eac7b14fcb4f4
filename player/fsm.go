// SPDX-License-Identifier: EPL-2.0

package player

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned for an event the current state does not
// accept.
var ErrInvalidTransition = errors.New("invalid player transition")

// State of playback.
type State int

const (
	Idle State = iota
	Loading
	Ready
	Playing
	Paused
	Buffering
	Ended
	Error
)

var stateNames = [...]string{
	Idle:      "idle",
	Loading:   "loading",
	Ready:     "ready",
	Playing:   "playing",
	Paused:    "paused",
	Buffering: "buffering",
	Ended:     "ended",
	Error:     "error",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Event drives a State change.
type Event int

const (
	EventLoad Event = iota
	EventLoaded
	EventPlay
	EventPause
	EventSeek
	EventStall
	EventResume
	EventFinish
	EventFail
	EventStop
)

var eventNames = [...]string{
	EventLoad:   "load",
	EventLoaded: "loaded",
	EventPlay:   "play",
	EventPause:  "pause",
	EventSeek:   "seek",
	EventStall:  "stall",
	EventResume: "resume",
	EventFinish: "finish",
	EventFail:   "fail",
	EventStop:   "stop",
}

func (e Event) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[e]
}

var transitions = map[State]map[Event]State{
	Idle: {
		EventLoad: Loading,
	},
	Loading: {
		EventLoad:   Loading,
		EventLoaded: Ready,
		EventFail:   Error,
	},
	Ready: {
		EventLoad: Loading,
		EventPlay: Playing,
		EventSeek: Ready,
		EventStop: Ready,
		EventFail: Error,
	},
	Playing: {
		EventLoad:   Loading,
		EventPause:  Paused,
		EventSeek:   Playing,
		EventStall:  Buffering,
		EventFinish: Ended,
		EventStop:   Ready,
		EventFail:   Error,
	},
	Paused: {
		EventLoad: Loading,
		EventPlay: Playing,
		EventSeek: Paused,
		EventStop: Ready,
		EventFail: Error,
	},
	Buffering: {
		EventLoad:   Loading,
		EventResume: Playing,
		EventPause:  Paused,
		EventSeek:   Buffering,
		EventFinish: Ended,
		EventStop:   Ready,
		EventFail:   Error,
	},
	Ended: {
		EventLoad: Loading,
		EventPlay: Playing,
		EventSeek: Paused,
		EventStop: Ready,
		EventFail: Error,
	},
	Error: {
		EventLoad: Loading,
	},
}

// Transition returns the state reached from s on e.
func Transition(s State, e Event) (State, error) {
	next, ok := transitions[s][e]
	if !ok {
		return s, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, s, e)
	}
	return next, nil
}
