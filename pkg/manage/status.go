package manage

// Status values reported by managed configurations and long-running
// management operations.
const (
	StatusDone        = "Done"
	StatusFailed      = "Failed"
	StatusRunning     = "Running"
	StatusStopped     = "Stopped"
	StatusTimedout    = "Timedout"
	StatusInterrupted = "Interrupted"
	StatusUnknown     = "Unknown"
)
