package core

// Notifier surfaces per-operation outcomes to the user. Calls are
// fire-and-forget; callers never consume a return value.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// NopNotifier silences notifications where none are wired (tests, CLI).
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}
