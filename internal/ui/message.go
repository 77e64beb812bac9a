package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mcview/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgResultsLoaded MsgKind = iota
	MsgFrame
	MsgStartCounters
	MsgToastExpired
	MsgToastRemoved
)

// resultsLoadedMsg is the constructor for [MsgResultsLoaded]
func resultsLoadedMsg(results *models.Results, err error) Msg {
	return Msg{
		kind: MsgResultsLoaded,
		data: struct {
			results *models.Results
			err     error
		}{results, err},
	}
}

// frameMsg is the constructor for [MsgFrame]
func frameMsg(t time.Time) Msg {
	return Msg{kind: MsgFrame, data: t}
}

// startCountersMsg is the constructor for [MsgStartCounters]; generation identifies the results being shown.
func startCountersMsg(generation int) Msg {
	return Msg{kind: MsgStartCounters, data: generation}
}

// toastExpiredMsg is the constructor for [MsgToastExpired]
func toastExpiredMsg(id int) Msg {
	return Msg{kind: MsgToastExpired, data: id}
}

// toastRemovedMsg is the constructor for [MsgToastRemoved]
func toastRemovedMsg(id int) Msg {
	return Msg{kind: MsgToastRemoved, data: id}
}
