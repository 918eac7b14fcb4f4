// SPDX-License-Identifier: EPL-2.0

// Package player controls playback of a decoded buffer.
//
// Transition is the pure state table. Controller applies it while driving an
// engine device: the buffer is resampled to the device rate, mapped to two
// channels and streamed as 16-bit PCM.
package player
