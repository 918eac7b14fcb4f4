// SPDX-License-Identifier: EPL-2.0

// Package engine owns the audio output device and the decoder registry.
//
// An Engine starts Closed and opens its device the first time Device is
// called. Suspend and Resume toggle the device; Close ends the engine.
package engine
