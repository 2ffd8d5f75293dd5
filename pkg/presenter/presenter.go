// Package presenter holds the per-session praise state and reacts to the two
// user events: a worker was clicked, or another random praise was requested.
package presenter

import (
	"time"

	"github.com/grovetools/praise/errors"
	"github.com/grovetools/praise/pkg/workers"
)

// TimeLayout is the timestamp format shown next to each praise.
const TimeLayout = "2006-01-02 15:04:05"

// DefaultHistoryDisplay is how many history entries a View carries.
const DefaultHistoryDisplay = 10

// Notices shown instead of a praise.
const (
	NoticeClickPrompt = "左の画像をクリックしてね"
	NoticeNoWorkers   = "画像が見つからないよ。assets/workers に png / jpg / jpeg / webp を置いてね"
)

// State is the presenter's position in its two-state lifecycle.
type State string

const (
	StateEmpty   State = "empty"
	StateShowing State = "showing"
)

// Variant selects the page layout.
type Variant string

const (
	// VariantGrid shows every worker; nothing is praised until one is clicked.
	VariantGrid Variant = "grid"
	// VariantSingle shows one rotating worker, praised on first render.
	VariantSingle Variant = "single"
)

// Entry is one recorded praise.
type Entry struct {
	Time    string `json:"time"`
	Who     string `json:"who"`
	Message string `json:"message"`
}

// Picker draws messages and random indices.
type Picker interface {
	Select() string
	Intn(n int) int
}

// Clock returns the current wall-clock time.
type Clock func() time.Time

// View is everything a front end needs to draw one session.
// Current indexes Workers and is -1 when nothing is shown or the shown
// worker has since left the asset folder.
type View struct {
	Variant      Variant          `json:"variant"`
	State        State            `json:"state"`
	Workers      []workers.Worker `json:"workers"`
	Current      int              `json:"current"`
	Last         *Entry           `json:"last,omitempty"`
	History      []Entry          `json:"history"`
	TotalHistory int              `json:"total_history"`
	Notice       string           `json:"notice,omitempty"`
	NoticeLevel  string           `json:"notice_level,omitempty"`
}

// Presenter is one session's state. It is not safe for concurrent use; the
// session store serializes access per session.
type Presenter struct {
	variant        Variant
	picker         Picker
	now            Clock
	historyDisplay int

	rendered bool
	// current is the Path of the praised worker; stems can repeat across extensions.
	current  string
	last     *Entry
	lastAt   time.Time
	// history is stored oldest-first and reversed on read.
	history []Entry
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithClock replaces time.Now.
func WithClock(c Clock) Option {
	return func(p *Presenter) { p.now = c }
}

// WithHistoryDisplay caps the entries carried by a View.
func WithHistoryDisplay(n int) Option {
	return func(p *Presenter) {
		if n > 0 {
			p.historyDisplay = n
		}
	}
}

// New creates a presenter in the empty state.
func New(variant Variant, picker Picker, opts ...Option) *Presenter {
	if variant != VariantSingle {
		variant = VariantGrid
	}
	p := &Presenter{
		variant:        variant,
		picker:         picker,
		now:            time.Now,
		historyDisplay: DefaultHistoryDisplay,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State reports whether a praise has been shown yet.
func (p *Presenter) State() State {
	if p.last == nil {
		return StateEmpty
	}
	return StateShowing
}

// Render returns the current view. The first render of a single-variant
// session with workers available shows a random worker; every other render is
// a pure read, so redrawing never draws new random values.
func (p *Presenter) Render(list []workers.Worker) View {
	if !p.rendered && len(list) > 0 {
		p.rendered = true
		if p.variant == VariantSingle && p.State() == StateEmpty {
			p.record(list[p.picker.Intn(len(list))])
		}
	}
	return p.view(list)
}

// Click praises the k-th worker.
func (p *Presenter) Click(list []workers.Worker, k int) error {
	if len(list) == 0 {
		return errors.NoWorkers()
	}
	if k < 0 || k >= len(list) {
		return errors.IndexOutOfRange(k, len(list))
	}
	p.rendered = true
	p.record(list[k])
	return nil
}

// Another praises a uniformly chosen worker. The same worker may come up
// twice in a row.
func (p *Presenter) Another(list []workers.Worker) error {
	if len(list) == 0 {
		return errors.NoWorkers()
	}
	p.rendered = true
	p.record(list[p.picker.Intn(len(list))])
	return nil
}

// History returns every stored entry, most recent first.
func (p *Presenter) History() []Entry {
	return p.recent(len(p.history))
}

// Last returns the most recent entry, if any.
func (p *Presenter) Last() (Entry, bool) {
	if p.last == nil {
		return Entry{}, false
	}
	return *p.last, true
}

func (p *Presenter) record(w workers.Worker) {
	at := p.now()
	// Keep timestamps non-decreasing within a session even if the wall clock steps back.
	if at.Before(p.lastAt) {
		at = p.lastAt
	}
	p.lastAt = at

	entry := Entry{
		Time:    at.Format(TimeLayout),
		Who:     w.Name,
		Message: p.picker.Select(),
	}
	p.current = w.Path
	p.last = &entry
	p.history = append(p.history, entry)
}

func (p *Presenter) recent(n int) []Entry {
	if n > len(p.history) {
		n = len(p.history)
	}
	out := make([]Entry, 0, n)
	for i := len(p.history) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, p.history[i])
	}
	return out
}

func (p *Presenter) view(list []workers.Worker) View {
	if list == nil {
		list = []workers.Worker{}
	}
	v := View{
		Variant:      p.variant,
		State:        p.State(),
		Workers:      list,
		Current:      -1,
		History:      p.recent(p.historyDisplay),
		TotalHistory: len(p.history),
	}
	if p.last != nil {
		last := *p.last
		v.Last = &last
	}
	if p.current != "" {
		for i, w := range list {
			if w.Path == p.current {
				v.Current = i
				break
			}
		}
	}

	switch {
	case len(list) == 0:
		v.Notice = NoticeNoWorkers
		v.NoticeLevel = "warning"
	case v.State == StateEmpty:
		v.Notice = NoticeClickPrompt
		v.NoticeLevel = "info"
	}
	return v
}
