// package viewer owns the model-viewing session: it mounts a stage, kicks off
// the asset pipeline in the background, tracks the load state machine, and
// feeds user input into the camera navigator.
package viewer

// Phase is the load state of a viewing session.
type Phase int

const (
	// PhaseInit is the state before Mount has been called.
	PhaseInit Phase = iota

	// PhaseLoading is the state while the asset pipeline runs.
	PhaseLoading

	// PhaseReady is the state after the asset was loaded and staged.
	PhaseReady

	// PhaseFailed is the state after the pipeline returned an error.
	PhaseFailed
)

// String returns the phase name for diagnostics.
func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Status is the observable state of a viewing session: the phase plus the
// load error when the phase is PhaseFailed.
type Status struct {
	Phase Phase
	Err   error
}
