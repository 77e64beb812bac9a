package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/mcview/internal/counter"
	"github.com/desertthunder/mcview/internal/feedback"
	"github.com/desertthunder/mcview/internal/models"
	"github.com/desertthunder/mcview/internal/results"
	"github.com/desertthunder/mcview/internal/shared"
	"github.com/desertthunder/mcview/internal/trigger"
)

const (
	intervalTable   = 0
	simulationTable = 1

	// lines used by everything except the two tables
	chromeLines = 20
	minRows     = 3
)

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	source results.Source
	config *shared.Config
	logger *log.Logger
	limits feedback.Limits
	now    func() time.Time
	width  int
	height int

	results    *models.Results
	generation int
	loadedAt   time.Time
	reveal     *reveal
	offset     int

	scheduler   *frameScheduler
	interp      *counter.Interpolator
	prediction  *counter.TextBuffer
	simulations *counter.TextBuffer
	jobs        []trigger.Job
	animations  []*counter.Animation
	ticking     bool

	input   textinput.Model
	loading bool
	toasts  *notifier
	err     error
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model that reads results from source.
func NewModel(ctx context.Context, source results.Source, config *shared.Config, logger *log.Logger) *Model {
	if config == nil {
		config = shared.DefaultConfig()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	limits := feedback.LimitsFromConfig(config.Validation)
	input := textinput.New()
	input.Placeholder = strconv.Itoa(config.Validation.Default)
	input.CharLimit = 7
	input.Width = 10
	input.Prompt = ""

	origin := time.Now()
	scheduler := newFrameScheduler(origin)

	return &Model{
		ctx:       ctx,
		source:    source,
		config:    config,
		logger:    logger,
		limits:    limits,
		now:       time.Now,
		scheduler: scheduler,
		interp:    counter.New(scheduler, counter.WithLogger(logger)),
		input:     input,
		toasts:    newNotifier(config.Notification.Timeout(), config.Notification.Exit()),
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init loads the results for the default number of simulations.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(m.config.Validation.Default), textinput.Blink)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.ensureTicking()

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgResultsLoaded:
		data := msg.data.(struct {
			results *models.Results
			err     error
		})
		m.loading = false
		if data.err != nil {
			m.logger.Error("failed to load results", "err", data.err)
			if m.results == nil {
				m.err = data.err
				return m, nil
			}
			return m, tea.Batch(m.toasts.show(fmt.Sprintf("Failed to run simulation: %v", data.err), ToastError), m.input.Focus())
		}
		return m, m.show(data.results)

	case MsgFrame:
		m.ticking = false
		m.advance(msg.data.(time.Time))
		if m.animating() {
			return m, m.ensureTicking()
		}
		return m, nil

	case MsgStartCounters:
		if msg.data.(int) != m.generation {
			return m, nil
		}
		m.animations = trigger.StartAll(m.interp, m.jobs)
		return m, m.ensureTicking()

	case MsgToastExpired:
		return m, m.toasts.expire(msg.data.(int))

	case MsgToastRemoved:
		m.toasts.remove(msg.data.(int))
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.input.Focused() {
		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit
		case key.Matches(msg, m.keys.submit):
			return m.submit()
		case key.Matches(msg, m.keys.blur):
			m.input.Blur()
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.focus):
		if m.loading {
			return m, nil
		}
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.submit):
		return m.submit()
	case key.Matches(msg, m.keys.down):
		m.scroll(1)
		return m, m.ensureTicking()
	case key.Matches(msg, m.keys.up):
		m.scroll(-1)
		return m, m.ensureTicking()
	}
	return m, nil
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	n, err := feedback.Validate(m.input.Value(), m.limits)
	if err != nil {
		kind := ToastError
		if errors.Is(err, feedback.ErrAboveMaximum) {
			kind = ToastWarning
		}
		m.logger.Debug("rejected simulation count", "value", m.input.Value(), "err", err)
		return m, tea.Batch(m.toasts.show(feedback.Message(err), kind), m.input.Focus())
	}

	m.logger.Info("running simulation", "n", n)
	return m, m.fetch(n)
}

func (m *Model) fetch(n int) tea.Cmd {
	m.loading = true
	m.input.Blur()

	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		if source == nil {
			return resultsLoadedMsg(nil, fmt.Errorf("%w: no results source", shared.ErrSourceUnavailable))
		}
		r, err := source.Fetch(ctx, n)
		return resultsLoadedMsg(r, err)
	}
}

// show replaces the page with r and replays the page-load reveal.
func (m *Model) show(r *models.Results) tea.Cmd {
	for _, a := range m.animations {
		a.Cancel()
	}

	m.generation++
	m.results = r
	m.loadedAt = m.now()
	m.offset = 0
	m.animations = nil
	m.reveal = newReveal(m.fps(), len(r.IntervalTable), len(r.SimulationResults))
	m.input.SetValue(strconv.Itoa(r.NumSimulations))

	predictionText := counter.FormatNumber(r.FinalPrediction) + " visitors"
	simulationsText := counter.FormatNumber(r.NumSimulations) + " simulations"
	m.prediction = counter.NewTextBuffer(predictionText)
	m.simulations = counter.NewTextBuffer(simulationsText)

	m.jobs = trigger.Prepare([]trigger.Target{
		{Name: "prediction", DataValue: strconv.Itoa(r.FinalPrediction), Text: predictionText, Sink: m.prediction},
		{Name: "simulations", DataValue: strconv.Itoa(r.NumSimulations), Text: simulationsText, Sink: m.simulations},
	}, trigger.Options{Duration: m.config.Animation.Duration(), Logger: m.logger})

	m.logger.Info("results loaded", "simulations", r.NumSimulations, "prediction", r.FinalPrediction, "counters", len(m.jobs))

	gen := m.generation
	start := tea.Tick(m.config.Animation.Delay(), func(time.Time) tea.Msg { return startCountersMsg(gen) })
	return tea.Batch(start, m.ensureTicking())
}

// advance moves every animation to frame time t.
func (m *Model) advance(t time.Time) {
	if m.reveal != nil && m.results != nil {
		m.reveal.advance(t.Sub(m.loadedAt))
		m.reveal.observe(intervalTable, 0, len(m.results.IntervalTable))
		m.reveal.observe(simulationTable, m.offset, m.offset+m.visibleRows())
	}
	m.scheduler.flush(t)
}

func (m *Model) animating() bool {
	return (m.reveal != nil && m.reveal.busy()) || m.scheduler.active()
}

func (m *Model) ensureTicking() tea.Cmd {
	if m.ticking || m.results == nil {
		return nil
	}
	m.ticking = true
	return tea.Tick(time.Second/time.Duration(m.fps()), func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *Model) fps() int {
	if m.config.Animation.FPS <= 0 {
		return counter.DefaultFPS
	}
	return m.config.Animation.FPS
}

func (m *Model) visibleRows() int {
	if m.height == 0 {
		return 10
	}
	rows := m.height - chromeLines
	if m.results != nil {
		rows -= len(m.results.IntervalTable)
	}
	return max(rows, minRows)
}

func (m *Model) scroll(delta int) {
	if m.results == nil {
		return
	}
	last := max(len(m.results.SimulationResults)-m.visibleRows(), 0)
	m.offset = min(max(m.offset+delta, 0), last)
}

// View renders the UI based on the current state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	toast := m.toasts.view(m.width)
	if m.results == nil {
		return joinSections(toast, styles.faint.Render("Loading results..."))
	}
	if !m.reveal.containerVisible() {
		return toast
	}

	sections := []string{
		toast,
		styles.title.Render("Monte Carlo Visitor Prediction"),
		m.renderForm(),
	}
	if m.reveal.predictionVisible() {
		sections = append(sections, m.renderPrediction())
	}
	if m.reveal.tableVisible(intervalTable) {
		sections = append(sections, m.renderIntervals())
	}
	if m.reveal.tableVisible(simulationTable) {
		sections = append(sections, m.renderSimulations())
	}
	sections = append(sections, m.help.ShortHelpView([]key.Binding{m.keys.focus, m.keys.submit, m.keys.down, m.keys.up, m.keys.quit}))

	return joinSections(sections...)
}

func (m *Model) renderForm() string {
	level := feedback.Classify(m.input.Value(), m.limits)
	box := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(level.Color())).
		Padding(0, 1)
	if m.input.Focused() {
		box = box.BorderStyle(lipgloss.ThickBorder())
	}

	field := m.input.View()
	if m.loading {
		field = styles.On(" Processing... ", ToastInfo.color())
	}

	label := "Number of simulations"
	if level != feedback.Neutral {
		label = styles.As(label, lipgloss.Color(level.Color()))
	}

	lines := []string{label, box.Render(field)}
	if m.input.Focused() {
		lines = append(lines, styles.help.Render(feedback.Hint(m.limits)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderPrediction() string {
	return styles.big.Render(m.prediction.Text()) + "\n" + styles.faint.Render("predicted from "+m.simulations.Text())
}

func (m *Model) renderIntervals() string {
	lines := []string{
		styles.info.Render(fmt.Sprintf("%-6s %12s %11s %11s %11s", "Year", "Visitors", "Probability", "Cumulative", "Interval")),
	}
	for i, row := range m.results.IntervalTable {
		text := fmt.Sprintf("%-6d %12s %11.4f %11.4f %11s",
			row.Year, counter.FormatNumber(row.Visitors), row.Probability, row.Cumulative, row.Interval())
		lines = append(lines, m.renderRow(intervalTable, i, text))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderSimulations() string {
	rows := m.results.SimulationResults
	end := min(m.offset+m.visibleRows(), len(rows))

	lines := []string{
		styles.info.Render(fmt.Sprintf("%-6s %8s %14s", "No.", "Random", "Prediction")),
	}
	for i := m.offset; i < end; i++ {
		row := rows[i]
		text := fmt.Sprintf("%-6d %8s %14s", row.No, row.RandomString(), counter.FormatNumber(row.Prediction))
		lines = append(lines, m.renderRow(simulationTable, i, text))
	}
	if len(rows) > 0 {
		lines = append(lines, styles.faint.Render(fmt.Sprintf("rows %d-%d of %d", m.offset+1, end, len(rows))))
	}
	return strings.Join(lines, "\n")
}

// renderRow keeps hidden rows as blank lines so the layout does not jump while rows slide in.
func (m *Model) renderRow(table, i int, text string) string {
	visible, indent := m.reveal.row(table, i)
	if !visible {
		return ""
	}
	line := strings.Repeat(" ", indent) + text
	if !m.reveal.settledRow(table, i) {
		return styles.faint.Render(line)
	}
	return line
}

// joinSections separates non-empty sections with a blank line.
func joinSections(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}
