package ui

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Page-load reveal timings.
const (
	containerDelay  = 100 * time.Millisecond
	tableDelay      = 300 * time.Millisecond
	tableStagger    = 200 * time.Millisecond
	predictionDelay = 800 * time.Millisecond
	rowStagger      = 50 * time.Millisecond

	// rows start this many cells to the right and spring back to 0
	slideDistance = 4.0
	settleEpsilon = 0.01
)

// rowState tracks one table row. A row is scheduled once it first enters the viewport and never again.
type rowState struct {
	scheduled bool
	revealAt  time.Duration
	pos       float64
	vel       float64
}

func (r *rowState) visible(elapsed time.Duration) bool {
	return r.scheduled && elapsed >= r.revealAt
}

func (r *rowState) settled() bool {
	return r.scheduled && r.pos == 0 && r.vel == 0
}

// reveal animates the page sections and the rows of each table.
type reveal struct {
	spring  harmonica.Spring
	elapsed time.Duration
	tables  [][]rowState
}

func newReveal(fps int, rowsPerTable ...int) *reveal {
	r := &reveal{spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 1.0)}
	for _, n := range rowsPerTable {
		rows := make([]rowState, n)
		for i := range rows {
			rows[i].pos = slideDistance
		}
		r.tables = append(r.tables, rows)
	}
	return r
}

func (r *reveal) containerVisible() bool  { return r.elapsed >= containerDelay }
func (r *reveal) predictionVisible() bool { return r.elapsed >= predictionDelay }

func (r *reveal) tableVisible(i int) bool {
	return r.elapsed >= tableDelay+time.Duration(i)*tableStagger
}

// observe schedules rows [from, to) of table t that are in view but not yet scheduled, staggered from now.
func (r *reveal) observe(t, from, to int) {
	if t >= len(r.tables) || !r.tableVisible(t) {
		return
	}
	rows := r.tables[t]
	from = max(from, 0)
	to = min(to, len(rows))

	k := 0
	for i := from; i < to; i++ {
		if rows[i].scheduled {
			continue
		}
		rows[i].scheduled = true
		rows[i].revealAt = r.elapsed + time.Duration(k)*rowStagger
		k++
	}
}

// advance moves the clock to elapsed and steps every visible row's spring.
func (r *reveal) advance(elapsed time.Duration) {
	r.elapsed = elapsed
	for _, rows := range r.tables {
		for i := range rows {
			row := &rows[i]
			if !row.visible(elapsed) || row.settled() {
				continue
			}
			row.pos, row.vel = r.spring.Update(row.pos, row.vel, 0)
			if math.Abs(row.pos) < settleEpsilon && math.Abs(row.vel) < settleEpsilon {
				row.pos, row.vel = 0, 0
			}
		}
	}
}

// row returns whether row i of table t is shown and its current indent in cells.
func (r *reveal) row(t, i int) (bool, int) {
	if t >= len(r.tables) || i >= len(r.tables[t]) {
		return false, 0
	}
	row := r.tables[t][i]
	if !row.visible(r.elapsed) {
		return false, 0
	}
	return true, int(math.Round(math.Max(row.pos, 0)))
}

// settledRow reports whether row i of table t has finished sliding in.
func (r *reveal) settledRow(t, i int) bool {
	if t >= len(r.tables) || i >= len(r.tables[t]) {
		return false
	}
	return r.tables[t][i].settled()
}

// busy reports whether any section or scheduled row is still animating.
func (r *reveal) busy() bool {
	if !r.predictionVisible() || !r.tableVisible(len(r.tables)-1) {
		return true
	}
	for _, rows := range r.tables {
		for _, row := range rows {
			if row.scheduled && !row.settled() {
				return true
			}
		}
	}
	return false
}
