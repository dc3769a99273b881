package view

import (
	"fmt"
	"strings"

	"github.com/soocke/tiffscope/ui/presenter"
	"github.com/soocke/tiffscope/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// StatsPanel shows ROI statistics as label/value lines.
type StatsPanel interface {
	SetStats(rows []presenter.StatRow)
	ClearStats(msg string)
}

type statsPanel struct {
	title *TLabelWidget
	body  *LabelWidget
}

// NewStatsPanel creates the panel inside parent starting at row.
func NewStatsPanel(parent *FrameWidget, row int) StatsPanel {
	s := &statsPanel{
		title: TLabel(Txt("ROI Statistics"), Style(theme.StyleHeadingLabel)),
		body:  Label(Txt(""), Anchor("nw"), Justify("left"), Width(34)),
	}
	Grid(s.title, In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.2m"))
	Grid(s.body, In(parent), Row(row+1), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	return s
}

func (s *statsPanel) SetStats(rows []presenter.StatRow) {
	if s == nil || s.body == nil {
		return
	}
	s.body.Configure(Txt(formatStatRows(rows)))
}

func (s *statsPanel) ClearStats(msg string) {
	if s == nil || s.body == nil {
		return
	}
	s.body.Configure(Txt(msg))
}

func formatStatRows(rows []presenter.StatRow) string {
	width := 0
	for _, r := range rows {
		if len(r.Label) > width {
			width = len(r.Label)
		}
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%-*s  %s", width+1, r.Label+":", r.Value))
	}
	return strings.Join(lines, "\n")
}
