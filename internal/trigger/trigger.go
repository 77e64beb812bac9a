// Package trigger locates counter targets and starts one animation per target.
//
// A [Target] mirrors a page element carrying a data value (the integer to count to) and the text rendered around it.
// [Prepare] validates every target, writes the initial "0" text into its sink, and returns a [Job] per valid target.
// Targets with a missing, non-numeric, or non-positive value are skipped and logged; they are never surfaced to the
// user.
package trigger

import (
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mcview/internal/counter"
)

// DefaultDuration is the usual counter animation length.
const DefaultDuration = 2 * time.Second

var (
	numberRun    = regexp.MustCompile(`\d[\d,]*`)
	leadingValue = regexp.MustCompile(`^\s*[+-]?\d+`)
)

// Target is a candidate counter.
type Target struct {
	Name      string
	DataValue string // raw target value, e.g. "2500"
	Text      string // rendered text, e.g. "2,500 orang"
	Sink      counter.Sink
}

// Job is a validated target ready to animate.
type Job struct {
	Target  Target
	Request counter.Request
}

// Start animates the job's sink with in.
func (j Job) Start(in *counter.Interpolator) *counter.Animation {
	return in.AnimateRequest(j.Target.Sink, j.Request)
}

// Options configures [Prepare]. A non-positive Duration makes each job write its final value at once.
type Options struct {
	Duration time.Duration
	Logger   *log.Logger
}

// ParseValue reads the leading integer of raw: an optional sign followed by digits. Trailing text is ignored.
func ParseValue(raw string) (int, bool) {
	m := leadingValue.FindString(raw)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(m))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Suffix removes every number (digits with optional grouping commas) from text, leaving the static text around it.
func Suffix(text string) string {
	return numberRun.ReplaceAllString(text, "")
}

// Prepare primes every valid target's sink with "0" plus its suffix and returns the jobs to start.
func Prepare(targets []Target, opts Options) []Job {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	jobs := make([]Job, 0, len(targets))
	for _, target := range targets {
		if target.Sink == nil {
			logger.Debug("skipping target without sink", "target", target.Name)
			continue
		}

		value, ok := ParseValue(target.DataValue)
		if !ok || value <= 0 {
			logger.Debug("skipping target", "target", target.Name, "value", target.DataValue)
			continue
		}

		suffix := Suffix(target.Text)
		target.Sink.SetText("0" + suffix)

		jobs = append(jobs, Job{
			Target: target,
			Request: counter.Request{
				Start:    0,
				End:      value,
				Duration: opts.Duration,
				Suffix:   suffix,
			},
		})
	}
	return jobs
}

// StartAll starts every job and returns the running animations in order.
func StartAll(in *counter.Interpolator, jobs []Job) []*counter.Animation {
	animations := make([]*counter.Animation, len(jobs))
	for i, job := range jobs {
		animations[i] = job.Start(in)
	}
	return animations
}

