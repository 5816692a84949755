package mock

import "github.com/pmazur/clipview"

// Compile-time interface verification.
var _ clipview.Notifier = (*Notifier)(nil)

// Notifier is a mock implementation of clipview.Notifier.
type Notifier struct {
	InfoFn  func(msg string)
	ErrorFn func(msg string)
}

func (n *Notifier) Info(msg string) {
	n.InfoFn(msg)
}

func (n *Notifier) Error(msg string) {
	n.ErrorFn(msg)
}
