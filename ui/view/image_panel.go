package view

import (
	"image"

	"github.com/soocke/tiffscope/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// imageInset is the label border between the widget origin and the first image pixel.
const imageInset = 1

// ImagePanel shows the display copy of the active frame and reports mouse
// drags in display coordinates.
type ImagePanel interface {
	Show(img image.Image)
	Reset()
}

type imagePanel struct {
	label     *LabelWidget
	prevPhoto *Img // disposed before every replacement
	pressAt   image.Point
	pressed   bool
	onDrag    func(a, b image.Point)
}

// NewImagePanel creates the image label inside parent at (row, col) with a
// w x h blank placeholder. onDrag receives press and release points.
func NewImagePanel(parent *FrameWidget, row, col, w, h int, onDrag func(a, b image.Point)) ImagePanel {
	photo := NewPhoto(Data(images.EncodePNG(images.Placeholder(w, h))))
	lbl := Label(Image(photo), Borderwidth(imageInset), Relief("sunken"), Padx(0), Pady(0))
	Grid(lbl, In(parent), Row(row), Column(col), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	v := &imagePanel{label: lbl, prevPhoto: photo, onDrag: onDrag}
	Bind(lbl, "<ButtonPress-1>", Command(func(e *Event) {
		v.pressAt = image.Pt(e.X-imageInset, e.Y-imageInset)
		v.pressed = true
	}))
	Bind(lbl, "<ButtonRelease-1>", Command(func(e *Event) {
		if !v.pressed {
			return
		}
		v.pressed = false
		if v.onDrag != nil {
			v.onDrag(v.pressAt, image.Pt(e.X-imageInset, e.Y-imageInset))
		}
	}))
	return v
}

func (v *imagePanel) Show(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	pngBytes := images.EncodePNG(img)
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = NewPhoto(Data(pngBytes))
	v.label.Configure(Image(v.prevPhoto))
}

func (v *imagePanel) Reset() {
	v.Show(images.Placeholder(512, 512))
}
