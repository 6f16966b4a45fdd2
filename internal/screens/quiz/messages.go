package quiz

// attemptSavedMsg reports the outcome of persisting a finished attempt.
type attemptSavedMsg struct {
	SessionID string
	Err       error
}
