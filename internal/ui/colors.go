package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#7D56F4", "#04B575", "#dc3545", "#17a2b8", "#626262")

// interface Painter defines coloring text with [lipgloss] styles
type Painter interface {
	On(string, lipgloss.Color) string // Sets background color
	As(string, lipgloss.Color) string // Sets foreground color
}

var _ Painter = (*Palette)(nil)

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	err   lipgloss.Style
	info  lipgloss.Style
	help  lipgloss.Style
	faint lipgloss.Style
	big   lipgloss.Style
}

func NewPalette(t, s, e, i, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		err:   NewBold(e),
		info:  NewStyle(i),
		help:  NewEm(h),
		faint: NewStyle(h).Faint(true),
		big:   NewBold(s).Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(t)),
	}
}

func (p *Palette) On(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Background(c).Foreground(lipgloss.Color("#ffffff")).Render(s)
}

func (p *Palette) As(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(c).Render(s)
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
