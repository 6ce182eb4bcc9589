package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/canvass/pkg/domain"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// terminal renders survey content and reads answers from the user.
type terminal struct {
	out     io.Writer
	in      *bufio.Reader
	profile termenv.Profile
	render  func(string) (string, error)

	// showRequiredHint controls whether skipping a required question
	// prints a reminder. The navigation gate enforces it either way.
	showRequiredHint bool
}

func newTerminal(out io.Writer, in *bufio.Reader) *terminal {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	render := func(md string) (string, error) { return md + "\n", nil }
	if err == nil {
		render = r.Render
	}

	return &terminal{
		out:              out,
		in:               in,
		profile:          termenv.ColorProfile(),
		render:           render,
		showRequiredHint: true,
	}
}

func (t *terminal) title(s string) {
	styled := termenv.String(s).Foreground(t.profile.Color("#818cf8")).Bold()
	fmt.Fprintf(t.out, "\n%s\n", styled)
}

func (t *terminal) stepHeader(num, total int, step *domain.Step) {
	progress := termenv.String(fmt.Sprintf("[%d/%d]", num, total)).Foreground(t.profile.Color("#a78bfa"))
	fmt.Fprintf(t.out, "\n%s %s\n", progress, step.Title)
	if step.Description != "" {
		t.markdown(step.Description)
	}
}

func (t *terminal) question(q *domain.Question) {
	marker := ""
	if q.Required {
		marker = termenv.String(" *").Foreground(t.profile.Color("#fb7185")).String()
	}
	fmt.Fprintf(t.out, "\n%s%s\n", q.Title, marker)
	if q.Description != "" {
		t.markdown(q.Description)
	}
}

func (t *terminal) options(opts []ChoiceOption) {
	for i, o := range opts {
		fmt.Fprintf(t.out, "  %d) %s\n", i+1, o.label())
	}
}

func (t *terminal) markdown(md string) {
	rendered, err := t.render(md)
	if err != nil {
		fmt.Fprintln(t.out, md)
		return
	}
	fmt.Fprint(t.out, rendered)
}

func (t *terminal) system(format string, args ...any) {
	fmt.Fprintf(t.out, ">>> %s\n", fmt.Sprintf(format, args...))
}

func (t *terminal) warn(format string, args ...any) {
	msg := termenv.String(fmt.Sprintf(format, args...)).Foreground(t.profile.Color("#fb7185"))
	fmt.Fprintf(t.out, "%s\n", msg)
}

// readLine prompts and returns a trimmed line. "exit" and "quit"
// surface as errQuit so the caller can save and leave.
func (t *terminal) readLine(hint string) (string, error) {
	if hint != "" {
		fmt.Fprintf(t.out, "%s > ", hint)
	} else {
		fmt.Fprint(t.out, "> ")
	}

	line, err := t.in.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return "", errQuit
		}
		return "", err
	}

	line = strings.TrimSpace(line)
	switch line {
	case "exit", "quit":
		return "", errQuit
	}
	return line, nil
}

func (t *terminal) confirm(prompt string) (bool, error) {
	line, err := t.readLine(prompt + " [y/n]")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
