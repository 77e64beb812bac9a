package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mcview/internal/models"
	"github.com/desertthunder/mcview/internal/shared"
)

type stubSource struct {
	results *models.Results
	err     error
	calls   []int
}

func (s *stubSource) Fetch(ctx context.Context, n int) (*models.Results, error) {
	s.calls = append(s.calls, n)
	return s.results, s.err
}

func sampleResults(rows int) *models.Results {
	r := &models.Results{
		IntervalTable: []models.IntervalRow{
			{Year: 2019, Visitors: 1000, Probability: 0.4, Cumulative: 0.4, Lower: 0, Upper: 399},
			{Year: 2020, Visitors: 1500, Probability: 0.6, Cumulative: 1, Lower: 400, Upper: 999},
		},
		FinalPrediction: 2500,
		NumSimulations:  rows,
	}
	for i := 0; i < rows; i++ {
		r.SimulationResults = append(r.SimulationResults, models.SimulationRow{No: i + 1, Random: i * 37 % 1000, Prediction: 1000})
	}
	return r
}

// newTestModel returns a model whose clock is frozen at base.
func newTestModel(t *testing.T, src *stubSource) (*Model, time.Time) {
	t.Helper()
	m := NewModel(context.Background(), src, shared.DefaultConfig(), nil)
	base := time.Now()
	m.now = func() time.Time { return base }
	return m, base
}

func run(t *testing.T, m *Model, msg tea.Msg) tea.Cmd {
	t.Helper()
	_, cmd := m.Update(msg)
	return cmd
}

func TestModel(t *testing.T) {
	t.Run("fetch requests the default count", func(t *testing.T) {
		src := &stubSource{results: sampleResults(5)}
		m, _ := newTestModel(t, src)

		cmd := m.fetch(m.config.Validation.Default)
		if !m.loading {
			t.Error("expected loading state while fetching")
		}

		msg := cmd()
		if len(src.calls) != 1 || src.calls[0] != 5 {
			t.Errorf("expected a fetch for 5 simulations, got %v", src.calls)
		}

		run(t, m, msg)
		if m.loading {
			t.Error("expected loading to clear")
		}
		if m.results == nil {
			t.Fatal("expected results to be shown")
		}
	})

	t.Run("counters start from zero and count up", func(t *testing.T) {
		m, base := newTestModel(t, &stubSource{})
		run(t, m, resultsLoadedMsg(sampleResults(5), nil))

		if got := m.prediction.Text(); got != "0 visitors" {
			t.Errorf("expected primed prediction, got %q", got)
		}
		if got := m.simulations.Text(); got != "0 simulations" {
			t.Errorf("expected primed simulations, got %q", got)
		}

		run(t, m, startCountersMsg(m.generation))
		if len(m.animations) != 2 {
			t.Fatalf("expected 2 animations, got %d", len(m.animations))
		}

		run(t, m, frameMsg(base.Add(1*time.Second)))
		run(t, m, frameMsg(base.Add(2*time.Second)))
		if got := m.prediction.Text(); got != "1,250 visitors" {
			t.Errorf("expected halfway prediction, got %q", got)
		}

		run(t, m, frameMsg(base.Add(3*time.Second)))
		if got := m.prediction.Text(); got != "2,500 visitors" {
			t.Errorf("expected final prediction, got %q", got)
		}
		if got := m.simulations.Text(); got != "5 simulations" {
			t.Errorf("expected final simulations, got %q", got)
		}
		if m.scheduler.active() {
			t.Error("expected no pending frames after the counters finish")
		}
	})

	t.Run("stale counter start is ignored", func(t *testing.T) {
		m, _ := newTestModel(t, &stubSource{})
		run(t, m, resultsLoadedMsg(sampleResults(5), nil))
		stale := m.generation
		run(t, m, resultsLoadedMsg(sampleResults(6), nil))

		run(t, m, startCountersMsg(stale))
		if len(m.animations) != 0 {
			t.Errorf("expected stale start to be ignored, got %d animations", len(m.animations))
		}
	})

	t.Run("zero prediction is not animated", func(t *testing.T) {
		m, _ := newTestModel(t, &stubSource{})
		r := sampleResults(3)
		r.FinalPrediction = 0
		run(t, m, resultsLoadedMsg(r, nil))

		if len(m.jobs) != 1 {
			t.Errorf("expected only the simulations counter, got %d jobs", len(m.jobs))
		}
		if got := m.prediction.Text(); got != "0 visitors" {
			t.Errorf("unexpected prediction text %q", got)
		}
	})

	t.Run("initial fetch error is shown", func(t *testing.T) {
		m, _ := newTestModel(t, &stubSource{})
		run(t, m, resultsLoadedMsg(nil, shared.ErrResultsNotFound))

		if !errors.Is(m.err, shared.ErrResultsNotFound) {
			t.Fatalf("expected error to be kept, got %v", m.err)
		}
		if !strings.Contains(m.View(), "Error:") {
			t.Errorf("expected error view, got %q", m.View())
		}

		cmd := run(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected quit message")
		}
	})

	t.Run("later fetch error raises a notification", func(t *testing.T) {
		m, _ := newTestModel(t, &stubSource{})
		run(t, m, resultsLoadedMsg(sampleResults(5), nil))
		run(t, m, resultsLoadedMsg(nil, shared.ErrSourceUnavailable))

		if m.err != nil {
			t.Errorf("page should stay up, got %v", m.err)
		}
		if m.toasts.current == nil || m.toasts.current.kind != ToastError {
			t.Fatal("expected an error notification")
		}
		if !m.input.Focused() {
			t.Error("expected input focus to be restored")
		}
	})
}

func TestSubmit(t *testing.T) {
	tc := []struct {
		name     string
		value    string
		wantKind ToastKind
		wantMsg  string
	}{
		{name: "below minimum", value: "0", wantKind: ToastError, wantMsg: "number of simulations must be at least 1"},
		{name: "not a number", value: "abc", wantKind: ToastError, wantMsg: "number of simulations must be at least 1"},
		{name: "above maximum", value: "5000", wantKind: ToastWarning, wantMsg: "number of simulations is limited to 1000 for performance"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			src := &stubSource{results: sampleResults(5)}
			m, _ := newTestModel(t, src)
			m.input.SetValue(tt.value)

			m.submit()

			if m.loading {
				t.Error("rejected input must not start loading")
			}
			if m.toasts.current == nil {
				t.Fatal("expected a notification")
			}
			if m.toasts.current.kind != tt.wantKind || m.toasts.current.message != tt.wantMsg {
				t.Errorf("notification = %+v", *m.toasts.current)
			}
			if !m.input.Focused() {
				t.Error("expected input to keep focus")
			}
			if len(src.calls) != 0 {
				t.Errorf("expected no fetch, got %v", src.calls)
			}
		})
	}

	t.Run("valid value fetches new results", func(t *testing.T) {
		src := &stubSource{results: sampleResults(25)}
		m, _ := newTestModel(t, src)
		run(t, m, resultsLoadedMsg(sampleResults(5), nil))
		m.input.SetValue("25")

		_, cmd := m.submit()
		if !m.loading {
			t.Error("expected loading state")
		}
		if !strings.Contains(m.renderForm(), "Processing...") {
			t.Error("expected loading text in the form")
		}

		run(t, m, cmd())
		if len(src.calls) != 1 || src.calls[0] != 25 {
			t.Errorf("expected fetch for 25, got %v", src.calls)
		}
		if m.results.NumSimulations != 25 {
			t.Errorf("expected new results, got %d simulations", m.results.NumSimulations)
		}
	})

	t.Run("submit while loading is ignored", func(t *testing.T) {
		src := &stubSource{results: sampleResults(5)}
		m, _ := newTestModel(t, src)
		m.loading = true
		m.input.SetValue("10")

		if _, cmd := m.submit(); cmd != nil {
			t.Error("expected no command while loading")
		}
	})
}

func TestNotifier(t *testing.T) {
	n := newNotifier(time.Second, 100*time.Millisecond)

	if n.show("first", ToastInfo) == nil {
		t.Fatal("expected dismiss timer")
	}
	n.show("second", ToastWarning)

	if n.current.message != "second" || n.current.id != 2 {
		t.Fatalf("expected second toast to replace the first, got %+v", *n.current)
	}

	if n.expire(1) != nil {
		t.Error("expected stale expiry to be ignored")
	}
	if n.current.leaving {
		t.Error("stale expiry must not start the exit phase")
	}

	if n.expire(2) == nil {
		t.Error("expected exit timer")
	}
	if !n.current.leaving {
		t.Error("expected exit phase")
	}

	n.remove(1)
	if n.current == nil {
		t.Fatal("stale removal must keep the current toast")
	}
	if !strings.Contains(n.view(60), "second") {
		t.Errorf("expected toast in view, got %q", n.view(60))
	}

	n.remove(2)
	if n.current != nil || n.view(60) != "" {
		t.Error("expected toast to be removed")
	}
}

func TestReveal(t *testing.T) {
	t.Run("sections appear on schedule", func(t *testing.T) {
		r := newReveal(60, 2, 2)

		r.advance(50 * time.Millisecond)
		if r.containerVisible() {
			t.Error("container should be hidden at 50ms")
		}

		r.advance(350 * time.Millisecond)
		if !r.containerVisible() || !r.tableVisible(0) || r.tableVisible(1) {
			t.Error("expected container and first table only at 350ms")
		}

		r.advance(800 * time.Millisecond)
		if !r.tableVisible(1) || !r.predictionVisible() {
			t.Error("expected everything visible at 800ms")
		}
	})

	t.Run("rows are staggered and settle", func(t *testing.T) {
		r := newReveal(60, 3, 20)

		r.advance(0)
		r.observe(0, 0, 3)
		if visible, _ := r.row(0, 0); visible {
			t.Error("rows must wait for their table")
		}

		r.advance(300 * time.Millisecond)
		r.observe(0, 0, 3)
		if visible, indent := r.row(0, 0); !visible || indent != int(slideDistance) {
			t.Errorf("first row: visible=%v indent=%d", visible, indent)
		}
		if visible, _ := r.row(0, 1); visible {
			t.Error("second row should wait 50ms")
		}

		for elapsed := 316 * time.Millisecond; elapsed < 4*time.Second; elapsed += 16 * time.Millisecond {
			r.advance(elapsed)
			r.observe(0, 0, 3)
		}

		for i := 0; i < 3; i++ {
			visible, indent := r.row(0, i)
			if !visible || indent != 0 || !r.settledRow(0, i) {
				t.Errorf("row %d: visible=%v indent=%d settled=%v", i, visible, indent, r.settledRow(0, i))
			}
		}
		if r.busy() {
			t.Error("expected reveal to be idle once rows settle")
		}
		if visible, _ := r.row(1, 0); visible {
			t.Error("unobserved rows stay hidden")
		}
	})
}

func TestScroll(t *testing.T) {
	m, base := newTestModel(t, &stubSource{})
	run(t, m, resultsLoadedMsg(sampleResults(20), nil))

	for i := 0; i < 15; i++ {
		run(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	}
	if m.offset != 10 {
		t.Errorf("expected offset capped at 10, got %d", m.offset)
	}

	run(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	if m.offset != 9 {
		t.Errorf("expected offset 9, got %d", m.offset)
	}

	run(t, m, frameMsg(base.Add(time.Second)))
	view := m.View()
	if !strings.Contains(view, "rows 10-19 of 20") {
		t.Errorf("expected scroll indicator, got:\n%s", view)
	}
}

func TestView(t *testing.T) {
	m, base := newTestModel(t, &stubSource{})
	if !strings.Contains(m.View(), "Loading results") {
		t.Errorf("expected loading view, got %q", m.View())
	}

	run(t, m, resultsLoadedMsg(sampleResults(5), nil))
	run(t, m, frameMsg(base.Add(50*time.Millisecond)))
	if strings.Contains(m.View(), "Monte Carlo") {
		t.Error("container should still be hidden")
	}

	for ts := 66 * time.Millisecond; ts < 3*time.Second; ts += 16 * time.Millisecond {
		run(t, m, frameMsg(base.Add(ts)))
	}

	view := m.View()
	for _, want := range []string{"Monte Carlo Visitor Prediction", "0 visitors", "Year", "000 - 399", "No."} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestFrameScheduler(t *testing.T) {
	origin := time.Now()
	s := newFrameScheduler(origin)

	var stamps []time.Duration
	record := func(ts time.Duration) { stamps = append(stamps, ts) }

	s.RequestFrame(record)
	s.flush(origin.Add(time.Second))
	s.RequestFrame(record)
	s.flush(origin.Add(time.Second))

	if len(stamps) != 2 || stamps[1] <= stamps[0] {
		t.Errorf("expected strictly increasing stamps, got %v", stamps)
	}
	if s.active() {
		t.Error("expected nothing pending")
	}
}
