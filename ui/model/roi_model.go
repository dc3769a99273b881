package model

import (
	"image"

	"github.com/soocke/tiffscope/domain/stack"
)

// ROIModel holds the ROI mode flag and the active rectangle in image coordinates.
// The zero value has ROI mode off and no rectangle. No synchronization needed:
// updates occur on the Tk event loop.
type ROIModel struct {
	enabled bool
	roi     image.Rectangle
}

func NewROIModel() *ROIModel { return &ROIModel{} }

// Enabled reports whether ROI mode is on.
func (m *ROIModel) Enabled() bool {
	if m == nil {
		return false
	}
	return m.enabled
}

// SetEnabled toggles ROI mode; disabling clears the rectangle.
func (m *ROIModel) SetEnabled(b bool) {
	if m == nil {
		return
	}
	m.enabled = b
	if !b {
		m.roi = image.Rectangle{}
	}
}

// SetROI stores r canonicalized and clipped to bounds. Zero-area results clear
// the rectangle and report false.
func (m *ROIModel) SetROI(r, bounds image.Rectangle) bool {
	if m == nil {
		return false
	}
	m.roi = stack.ClipROI(r, bounds)
	return !m.roi.Empty()
}

// Clear drops the rectangle but keeps ROI mode.
func (m *ROIModel) Clear() {
	if m == nil {
		return
	}
	m.roi = image.Rectangle{}
}

// ROI returns the current rectangle (may be empty).
func (m *ROIModel) ROI() image.Rectangle {
	if m == nil {
		return image.Rectangle{}
	}
	return m.roi
}

// Active reports whether ROI mode is on and a non-empty rectangle is set.
func (m *ROIModel) Active() bool {
	return m.Enabled() && !m.ROI().Empty()
}
