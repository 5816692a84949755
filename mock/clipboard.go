package mock

import "github.com/pmazur/clipview"

// Compile-time interface verification.
var _ clipview.Clipboard = (*Clipboard)(nil)

// Clipboard is a mock implementation of clipview.Clipboard.
type Clipboard struct {
	CopyFn func(text string) error
}

func (c *Clipboard) Copy(text string) error {
	return c.CopyFn(text)
}
