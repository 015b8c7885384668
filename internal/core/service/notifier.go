package service

// Notifier receives the non-blocking user notifications the flows emit:
// success toasts after a mutation, error toasts for backend rejections.
// Implementations must not block.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// NopNotifier discards all notifications. Useful in tests and headless use.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}
