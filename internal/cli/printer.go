package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Printer renders the scenario transition log, colored when stdout is a
// terminal.
type Printer struct {
	out     io.Writer
	profile termenv.Profile
	color   bool
}

// NewPrinter builds a printer for out. Color engages only for an
// interactive stdout.
func NewPrinter(out io.Writer) *Printer {
	color := false
	if f, ok := out.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &Printer{
		out:     out,
		profile: termenv.ColorProfile(),
		color:   color,
	}
}

func (p *Printer) paint(s, hex string) string {
	if !p.color {
		return s
	}
	return termenv.String(s).Foreground(p.profile.Color(hex)).String()
}

// Attached logs one successful attachment and its resulting state.
func (p *Printer) Attached(target, state string) {
	hex := "#34d399"
	if state != "ready" {
		hex = "#fbbf24"
	}
	fmt.Fprintf(p.out, "%s %s (%s)\n", p.paint("attached", hex), target, state)
}

// Transition logs the controller state after one script step.
func (p *Printer) Transition(step Step, target string, triggered, hovering bool, rates []float64) {
	label := step.Event
	if step.Target != "" {
		label += " " + step.Target
	}
	state := fmt.Sprintf("triggered=%v hovering=%v rates=%v", triggered, hovering, rates)
	hex := "#818cf8"
	if triggered {
		hex = "#f472b6"
	}
	fmt.Fprintf(p.out, "  %s %s → %s\n", p.paint("▸", hex), label, state)
}
