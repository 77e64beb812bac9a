package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ToastKind selects the notification colour.
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastWarning
	ToastError
)

func (k ToastKind) color() lipgloss.Color {
	switch k {
	case ToastError:
		return lipgloss.Color("#dc3545")
	case ToastWarning:
		return lipgloss.Color("#ffc107")
	default:
		return lipgloss.Color("#17a2b8")
	}
}

type toast struct {
	id      int
	kind    ToastKind
	message string
	leaving bool
}

// notifier shows at most one toast. Showing a new toast replaces the current one; timers for replaced toasts are
// ignored by id.
type notifier struct {
	current *toast
	seq     int
	timeout time.Duration
	exit    time.Duration
}

func newNotifier(timeout, exit time.Duration) *notifier {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if exit <= 0 {
		exit = 300 * time.Millisecond
	}
	return &notifier{timeout: timeout, exit: exit}
}

func (n *notifier) show(message string, kind ToastKind) tea.Cmd {
	n.seq++
	id := n.seq
	n.current = &toast{id: id, kind: kind, message: message}
	return tea.Tick(n.timeout, func(time.Time) tea.Msg { return toastExpiredMsg(id) })
}

func (n *notifier) expire(id int) tea.Cmd {
	if n.current == nil || n.current.id != id {
		return nil
	}
	n.current.leaving = true
	return tea.Tick(n.exit, func(time.Time) tea.Msg { return toastRemovedMsg(id) })
}

func (n *notifier) remove(id int) {
	if n.current != nil && n.current.id == id {
		n.current = nil
	}
}

func (n *notifier) view(width int) string {
	if n.current == nil {
		return ""
	}
	style := lipgloss.NewStyle().
		Background(n.current.kind.color()).
		Foreground(lipgloss.Color("#ffffff")).
		Bold(true).
		Padding(0, 2).
		MaxWidth(40)
	if n.current.leaving {
		style = style.Faint(true)
	}
	box := style.Render(n.current.message)
	if width <= 0 {
		return box
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, box)
}
