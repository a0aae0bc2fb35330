package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Header is the box printed above a command's results: the command title,
// the command line, and the inputs it is working on.
type Header struct {
	Title   string   // e.g., "IDENTIFY"
	Command string   // e.g., "k4tool identify"
	Params  []Detail // e.g., {"Files", "2"}, {"Messages", "3"}
	Width   int
}

// NewHeader creates a header sized to the terminal
func NewHeader(title, command string, params ...Detail) *Header {
	return &Header{
		Title:   title,
		Command: command,
		Params:  params,
		Width:   GetTerminalWidth(),
	}
}

// SetWidth overrides the terminal width
func (h *Header) SetWidth(width int) *Header {
	h.Width = width
	return h
}

// Render draws the header. Parameters share one line under a divider.
func (h *Header) Render() string {
	width := max(h.Width, MinTerminalWidth)

	lines := []string{
		HeaderTitleStyle.Render(strings.ToUpper(h.Title)) + HeaderCommandStyle.Render(h.Command),
	}

	if len(h.Params) > 0 {
		params := make([]string, len(h.Params))
		for i, p := range h.Params {
			params[i] = HeaderParamKeyStyle.Render(p.Key+":") + " " + HeaderParamValueStyle.Render(p.Value)
		}
		lines = append(lines,
			RenderHorizontalDivider(max(width-6, 10), "─"),
			strings.Join(params, "   "),
		)
	}

	return HeaderBorderStyle(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// String implements fmt.Stringer
func (h *Header) String() string {
	return h.Render()
}
