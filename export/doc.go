// SPDX-License-Identifier: EPL-2.0

// Package export turns a marked range of a source into encoded files.
//
// An Orchestrator runs one export at a time through these states:
//
//	Idle → Preparing → Extracting → Encoding → Finalizing → Idle
//
// Any failure passes through Failed back to Idle and produces a single
// Notice. Artifacts go to a Sink; each delivery returns a Handle that is
// released after a short delay.
package export
