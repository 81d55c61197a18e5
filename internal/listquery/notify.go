package listquery

// Notifier receives the transient user-visible outcomes of fetches and
// mutations, the terminal analog of a toast.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}
