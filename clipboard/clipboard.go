// Package clipboard provides clipboard operations via platform-specific commands.
package clipboard

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/pmazur/clipview"
)

// Ensure Command implements the Clipboard interface.
var _ clipview.Clipboard = (*Command)(nil)

// Command implements Clipboard by piping content to the platform's
// clipboard utility.
type Command struct {
	name string
	args []string
}

// New returns a clipboard backed by the first available platform utility.
func New() (*Command, error) {
	candidates := [][]string{
		{"wl-copy"},
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
	}
	if runtime.GOOS == "darwin" {
		candidates = [][]string{{"pbcopy"}}
	}

	for _, c := range candidates {
		if _, err := exec.LookPath(c[0]); err == nil {
			return &Command{name: c[0], args: c[1:]}, nil
		}
	}

	return nil, fmt.Errorf("no clipboard utility found")
}

// Copy writes content to the system clipboard.
func (c *Command) Copy(content string) error {
	cmd := exec.Command(c.name, c.args...)
	cmd.Stdin = strings.NewReader(content)
	return cmd.Run()
}
