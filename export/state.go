// SPDX-License-Identifier: EPL-2.0

package export

// State of the orchestrator.
type State int32

const (
	Idle State = iota
	Preparing
	Extracting
	Encoding
	Finalizing
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Preparing:
		return "preparing"
	case Extracting:
		return "extracting"
	case Encoding:
		return "encoding"
	case Finalizing:
		return "finalizing"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
