package view

import (
	"github.com/soocke/tiffscope/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// MetadataPanel is a read-only text area listing file metadata.
type MetadataPanel interface {
	SetText(s string)
}

type metadataPanel struct {
	text *TextWidget
}

// NewMetadataPanel creates the scrollable text area inside parent at row.
// It occupies rows row..row+2.
func NewMetadataPanel(parent *FrameWidget, row int) MetadataPanel {
	title := TLabel(Txt("Metadata"), Style(theme.StyleHeadingLabel))
	Grid(title, In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.2m"))
	var yscroll, xscroll *TScrollbarWidget
	t := Text(Height(12), Width(48), Wrap("none"),
		Yscrollcommand(func(e *Event) { e.ScrollSet(yscroll) }),
		Xscrollcommand(func(e *Event) { e.ScrollSet(xscroll) }))
	yscroll = TScrollbar(Command(func(e *Event) { e.Yview(t) }))
	xscroll = TScrollbar(Orient("horizontal"), Command(func(e *Event) { e.Xview(t) }))
	Grid(t, In(parent), Row(row+1), Column(0), Sticky("nsew"), Padx("0.4m"), Pady("0.2m"))
	Grid(yscroll, In(parent), Row(row+1), Column(1), Sticky("ns"), Pady("0.2m"))
	Grid(xscroll, In(parent), Row(row+2), Column(0), Sticky("we"), Padx("0.4m"))
	GridRowConfigure(parent, row+1, Weight(1))
	GridColumnConfigure(parent, 0, Weight(1))
	v := &metadataPanel{text: t}
	v.SetText("")
	return v
}

// SetText replaces the content; the widget is re-disabled afterwards.
func (v *metadataPanel) SetText(s string) {
	if v == nil || v.text == nil {
		return
	}
	v.text.Configure(State("normal"))
	v.text.Delete("1.0", END)
	v.text.Insert("1.0", s)
	v.text.Configure(State("disabled"))
}
