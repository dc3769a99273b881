package view

import (
	"fmt"
	"image"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/tiffscope/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ContrastModes lists the values offered by the contrast mode selector.
var ContrastModes = []string{"linear", "gamma"}

// Handlers receives user actions from the control panel and the image panel.
// Nil handlers are ignored.
type Handlers struct {
	Open            func()
	SetFrame        func(i int)
	StepFrame       func(delta int)
	SetContrast     func(c float64)
	NudgeContrast   func(steps int)
	SetContrastMode func(mode string)
	ToggleROI       func()
	SelectDisplay   func(a, b image.Point)
	ApplyROI        func(r image.Rectangle)
	ClearROI        func()
	ToggleDark      func()
	SettingsApplied func()
	Exit            func()
}

// ControlPanel owns the navigation, contrast and ROI input widgets.
type ControlPanel interface {
	Build(parent *FrameWidget, startRow int) (endRow int)
	SetFrameControls(index, count int)
	SetContrastValue(c float64)
	SetContrastModeValue(mode string)
	SetROIMode(on bool)
	SetROIFields(r image.Rectangle)
}

type controlPanel struct {
	h      Handlers
	mode   string
	logger *slog.Logger

	frameEntry *TextWidget
	frameCount *LabelWidget
	frameBtns  []*ButtonWidget

	contrastEntry *TextWidget
	modeSelect    *TComboboxWidget

	roiBtn    *ButtonWidget
	roiFields [4]*TextWidget // x0, y0, x1, y1
}

// NewControlPanel creates the panel; mode is the initial contrast mode.
func NewControlPanel(h Handlers, mode string, logger *slog.Logger) ControlPanel {
	return &controlPanel{h: h, mode: mode, logger: logger}
}

func entry(width int) *TextWidget { return Text(Height(1), Width(width)) }

func setEntry(w *TextWidget, value string) {
	if w == nil {
		return
	}
	w.Delete("1.0", END)
	w.Insert("1.0", value)
}

func entryText(w *TextWidget) string {
	if w == nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), ""))
}

func (v *controlPanel) Build(parent *FrameWidget, startRow int) (row int) {
	row = startRow
	grid := func(w Widget, r, c int, opts ...Opt) {
		Grid(w, append([]Opt{In(parent), Row(r), Column(c), Sticky("we"), Padx("0.3m"), Pady("0.2m")}, opts...)...)
	}

	open := TButton(Txt("Open TIFF..."), Style(theme.StylePrimaryButton), Command(func() { call(v.h.Open) }))
	grid(open, row, 0, Columnspan(2))
	dark := Button(Txt("Light/Dark"), Command(func() { call(v.h.ToggleDark) }))
	grid(dark, row, 2, Columnspan(2))
	exit := Button(Txt("Exit"), Command(func() { call(v.h.Exit) }))
	grid(exit, row, 4)
	row++

	// Frame navigation
	grid(Label(Txt("Frame"), Anchor("w")), row, 0)
	prev := Button(Txt("<"), Command(func() { v.step(-1) }))
	grid(prev, row, 1)
	v.frameEntry = entry(6)
	grid(v.frameEntry, row, 2)
	next := Button(Txt(">"), Command(func() { v.step(1) }))
	grid(next, row, 3)
	v.frameCount = Label(Txt("of 0"), Anchor("w"), Width(8))
	grid(v.frameCount, row, 4)
	Bind(v.frameEntry, "<Return>", Command(func() { v.applyFrame() }))
	goBtn := Button(Txt("Go"), Command(func() { v.applyFrame() }))
	grid(goBtn, row, 5)
	v.frameBtns = []*ButtonWidget{prev, next, goBtn}
	row++

	// Contrast
	grid(Label(Txt("Contrast"), Anchor("w")), row, 0)
	minus := Button(Txt("-"), Command(func() {
		if v.h.NudgeContrast != nil {
			v.h.NudgeContrast(-1)
		}
	}))
	grid(minus, row, 1)
	v.contrastEntry = entry(6)
	grid(v.contrastEntry, row, 2)
	plus := Button(Txt("+"), Command(func() {
		if v.h.NudgeContrast != nil {
			v.h.NudgeContrast(1)
		}
	}))
	grid(plus, row, 3)
	Bind(v.contrastEntry, "<Return>", Command(func() { v.applyContrast() }))
	grid(Button(Txt("Set"), Command(func() { v.applyContrast() })), row, 4)
	v.modeSelect = TCombobox(Values(ContrastModes), Width(8), State("readonly"))
	grid(v.modeSelect, row, 5)
	v.modeSelect.Current(modeIndex(v.mode))
	Bind(v.modeSelect, "<<ComboboxSelected>>", Command(func() {
		idx, err := strconv.Atoi(v.modeSelect.Current(nil))
		if err != nil || idx < 0 || idx >= len(ContrastModes) {
			if v.logger != nil {
				v.logger.Error("contrast mode selection parse error", "error", err)
			}
			return
		}
		v.mode = ContrastModes[idx]
		if v.h.SetContrastMode != nil {
			v.h.SetContrastMode(v.mode)
		}
	}))
	row++

	// ROI
	v.roiBtn = Button(Txt(roiButtonText(false)), Command(func() { call(v.h.ToggleROI) }))
	grid(v.roiBtn, row, 0, Columnspan(2))
	grid(Button(Txt("Clear ROI"), Command(func() { call(v.h.ClearROI) })), row, 2, Columnspan(2))
	row++
	for i, name := range []string{"x0", "y0", "x1", "y1"} {
		grid(Label(Txt(name), Anchor("e")), row, i)
		v.roiFields[i] = entry(6)
		grid(v.roiFields[i], row+1, i)
	}
	grid(Button(Txt("Apply ROI"), Command(func() { v.applyROI() })), row+1, 4, Columnspan(2))
	row += 2
	return row
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

func modeIndex(mode string) int {
	for i, m := range ContrastModes {
		if m == mode {
			return i
		}
	}
	return 0
}

func roiButtonText(on bool) string {
	if on {
		return "ROI Mode: On"
	}
	return "ROI Mode: Off"
}

func (v *controlPanel) step(delta int) {
	if v.h.StepFrame != nil {
		v.h.StepFrame(delta)
	}
}

// applyFrame reads the 1-based frame entry.
func (v *controlPanel) applyFrame() {
	i, ok := parseIntField(entryText(v.frameEntry))
	if !ok {
		return
	}
	if v.h.SetFrame != nil {
		v.h.SetFrame(i - 1)
	}
}

func (v *controlPanel) applyContrast() {
	c, ok := parseFloatField(entryText(v.contrastEntry))
	if !ok {
		return
	}
	if v.h.SetContrast != nil {
		v.h.SetContrast(c)
	}
}

func (v *controlPanel) applyROI() {
	var vals [4]string
	for i, w := range v.roiFields {
		vals[i] = entryText(w)
	}
	r, ok := parseROIFields(vals)
	if !ok {
		if v.logger != nil {
			v.logger.Warn("invalid roi fields", "values", strings.Join(vals[:], ","))
		}
		return
	}
	if v.h.ApplyROI != nil {
		v.h.ApplyROI(r)
	}
}

// SetFrameControls shows the 1-based index; single-frame stacks disable navigation.
func (v *controlPanel) SetFrameControls(index, count int) {
	if v.frameEntry != nil {
		v.frameEntry.Configure(State("normal"))
	}
	if count > 0 {
		setEntry(v.frameEntry, strconv.Itoa(index+1))
	} else {
		setEntry(v.frameEntry, "")
	}
	if v.frameCount != nil {
		v.frameCount.Configure(Txt(fmt.Sprintf("of %d", count)))
	}
	state := "normal"
	if count <= 1 {
		state = "disabled"
	}
	for _, b := range v.frameBtns {
		if b != nil {
			b.Configure(State(state))
		}
	}
	if v.frameEntry != nil {
		v.frameEntry.Configure(State(state))
	}
}

func (v *controlPanel) SetContrastValue(c float64) {
	setEntry(v.contrastEntry, strconv.FormatFloat(c, 'f', 2, 64))
}

func (v *controlPanel) SetContrastModeValue(mode string) {
	v.mode = mode
	if v.modeSelect != nil {
		v.modeSelect.Current(modeIndex(mode))
	}
}

func (v *controlPanel) SetROIMode(on bool) {
	if v.roiBtn != nil {
		v.roiBtn.Configure(Txt(roiButtonText(on)))
	}
}

func (v *controlPanel) SetROIFields(r image.Rectangle) {
	if r.Empty() {
		for _, w := range v.roiFields {
			setEntry(w, "")
		}
		return
	}
	for i, n := range []int{r.Min.X, r.Min.Y, r.Max.X, r.Max.Y} {
		setEntry(v.roiFields[i], strconv.Itoa(n))
	}
}

// parseROIFields parses x0, y0, x1, y1. Corners may be given in any order.
func parseROIFields(vals [4]string) (image.Rectangle, bool) {
	var n [4]int
	for i, s := range vals {
		v, ok := parseIntField(s)
		if !ok {
			return image.Rectangle{}, false
		}
		n[i] = v
	}
	return image.Rect(n[0], n[1], n[2], n[3]), true
}
