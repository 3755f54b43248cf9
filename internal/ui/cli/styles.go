package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

// console writes human-facing status lines. Rendered output goes to stdout
// separately so it stays pipeable.
type console struct {
	w io.Writer
}

func (c console) line(style lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(c.w, style.Render(fmt.Sprintf(format, args...)))
}

func (c console) Info(format string, args ...any)    { c.line(infoStyle, format, args...) }
func (c console) Success(format string, args ...any) { c.line(successStyle, format, args...) }
func (c console) Warn(format string, args ...any)    { c.line(warnStyle, format, args...) }
func (c console) Error(format string, args ...any)   { c.line(errorStyle, format, args...) }
func (c console) Muted(format string, args ...any)   { c.line(mutedStyle, format, args...) }
