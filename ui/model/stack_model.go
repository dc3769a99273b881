package model

import (
	"github.com/soocke/tiffscope/domain/stack"
)

// StackModel holds the loaded image stack, its metadata, the active frame
// index and the contrast parameter. The zero value means nothing is loaded and
// is ready to use.
type StackModel struct {
	stack    *stack.ImageStack
	meta     stack.Metadata
	path     string
	frame    int
	contrast float64
}

// NewStackModel returns a model with the given initial contrast.
func NewStackModel(contrast float64) *StackModel { return &StackModel{contrast: contrast} }

// Replace swaps in a freshly loaded stack and resets the frame index to 0.
func (m *StackModel) Replace(s *stack.ImageStack, meta stack.Metadata, path string) {
	if m == nil {
		return
	}
	m.stack, m.meta, m.path = s, meta, path
	m.frame = 0
}

// Loaded reports whether a stack is present.
func (m *StackModel) Loaded() bool { return m != nil && m.stack != nil }

func (m *StackModel) Stack() *stack.ImageStack {
	if m == nil {
		return nil
	}
	return m.stack
}

func (m *StackModel) Metadata() stack.Metadata {
	if m == nil {
		return nil
	}
	return m.meta
}

func (m *StackModel) Path() string {
	if m == nil {
		return ""
	}
	return m.path
}

// FrameIndex returns the active frame index.
func (m *StackModel) FrameIndex() int {
	if m == nil {
		return 0
	}
	return m.frame
}

// SetFrame clamps i to the stack and stores it. Returns the stored index.
func (m *StackModel) SetFrame(i int) int {
	if m == nil || m.stack == nil {
		return 0
	}
	m.frame = m.stack.Clamp(i)
	return m.frame
}

// Frame returns the active raw frame or nil when nothing is loaded.
func (m *StackModel) Frame() *stack.Frame {
	if m == nil || m.stack == nil {
		return nil
	}
	return m.stack.Frame(m.frame)
}

// FrameCount returns the number of frames, 0 when empty.
func (m *StackModel) FrameCount() int {
	if m == nil || m.stack == nil {
		return 0
	}
	return m.stack.Len()
}

func (m *StackModel) Contrast() float64 {
	if m == nil {
		return 0
	}
	return m.contrast
}

func (m *StackModel) SetContrast(c float64) {
	if m == nil {
		return
	}
	m.contrast = c
}
