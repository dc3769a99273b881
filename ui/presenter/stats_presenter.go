package presenter

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/soocke/tiffscope/domain/stack"
)

// NoSelection is shown when ROI mode is on but no usable rectangle exists.
const NoSelection = "No selection"

// StatRow is one label/value line of the statistics panel.
type StatRow struct {
	Label string
	Value string
}

// StatsView displays ROI statistics.
type StatsView interface {
	SetStats(rows []StatRow)
	// ClearStats empties the panel and shows msg ("" hides the panel content).
	ClearStats(msg string)
}

// StatsPresenter computes statistics on demand from raw frame values and
// formats them for the view. Nothing is cached between calls.
type StatsPresenter struct {
	view StatsView
}

func NewStatsPresenter(view StatsView) *StatsPresenter { return &StatsPresenter{view: view} }

// Show computes statistics of f inside r and pushes them, or "No selection"
// when r has no area. Returns the computed stats.
func (p *StatsPresenter) Show(f *stack.Frame, r image.Rectangle) (stack.Stats, error) {
	if p == nil || p.view == nil {
		return stack.Stats{}, nil
	}
	if f == nil {
		p.view.ClearStats(NoSelection)
		return stack.Stats{}, stack.ErrNoSelection
	}
	s, err := stack.ComputeStats(f, r)
	if err != nil {
		if errors.Is(err, stack.ErrNoSelection) {
			p.view.ClearStats(NoSelection)
		}
		return s, err
	}
	p.view.SetStats(FormatStats(s))
	return s, nil
}

// NoSelection shows the empty-selection message.
func (p *StatsPresenter) NoSelection() {
	if p == nil || p.view == nil {
		return
	}
	p.view.ClearStats(NoSelection)
}

// Hide clears the panel entirely.
func (p *StatsPresenter) Hide() {
	if p == nil || p.view == nil {
		return
	}
	p.view.ClearStats("")
}

// FormatStats renders s as panel rows.
func FormatStats(s stack.Stats) []StatRow {
	r := s.Region
	return []StatRow{
		{"Region", fmt.Sprintf("(%d, %d)-(%d, %d)  %dx%d", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, r.Dx(), r.Dy())},
		{"Pixels", humanize.Comma(int64(s.Count))},
		{"Min", formatStat(s.Min)},
		{"Max", formatStat(s.Max)},
		{"Mean", formatStat(s.Mean)},
		{"Std Dev", formatStat(s.StdDev)},
		{"Median", formatStat(s.Median)},
	}
}

func formatStat(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
