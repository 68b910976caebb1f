// Package render turns emissions into displayed output.
package render

import (
	"fmt"
	"io"
	"sync"

	"everywhere_bot/pkg"

	"github.com/fatih/color"
)

// Renderer displays bot emissions. Implementations must be safe for concurrent use,
// delayed emissions arrive from timer goroutines.
type Renderer interface {
	Render(emission pkg.Emission)
}

// Console writes emissions as colored lines
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	label  *color.Color
	styles map[pkg.EmissionKind]*color.Color
}

// NewConsole creates a console renderer. colored=false strips escape codes.
func NewConsole(out io.Writer, colored bool) *Console {
	c := &Console{
		out:   out,
		label: color.New(color.FgMagenta, color.Bold),
		styles: map[pkg.EmissionKind]*color.Color{
			pkg.EmissionPrimary:     color.New(color.FgCyan),
			pkg.EmissionFollowUp:    color.New(color.FgBlue),
			pkg.EmissionNameRequest: color.New(color.FgYellow),
			pkg.EmissionSystem:      color.New(color.FgGreen),
		},
	}
	if !colored {
		c.label.DisableColor()
		for _, style := range c.styles {
			style.DisableColor()
		}
	} else {
		c.label.EnableColor()
		for _, style := range c.styles {
			style.EnableColor()
		}
	}
	return c
}

// Render prints one emission
func (c *Console) Render(emission pkg.Emission) {
	c.mu.Lock()
	defer c.mu.Unlock()

	style, ok := c.styles[emission.Kind]
	if !ok {
		style = c.styles[pkg.EmissionPrimary]
	}
	c.label.Fprint(c.out, "Everywhere: ")
	style.Fprintln(c.out, emission.Text)
}

// Prompt prints the user input prompt
func (c *Console) Prompt() {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprint(c.out, "> ")
}
