package presenter

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/soocke/tiffscope/domain/stack"
	"github.com/soocke/tiffscope/domain/tiffio"
)

// StatusView sets the status line text.
type StatusView interface{ SetStatus(string) }

// StatusPresenter formats user-facing status messages. Repeated identical
// messages are not pushed again.
type StatusPresenter struct {
	view   StatusView
	latest string
}

func NewStatusPresenter(view StatusView) *StatusPresenter {
	return &StatusPresenter{view: view}
}

func (p *StatusPresenter) set(msg string) {
	if p == nil || p.view == nil || msg == p.latest {
		return
	}
	p.latest = msg
	p.view.SetStatus(msg)
}

// Latest returns the last message pushed.
func (p *StatusPresenter) Latest() string {
	if p == nil {
		return ""
	}
	return p.latest
}

func (p *StatusPresenter) Info(msg string) { p.set(msg) }

func (p *StatusPresenter) Loaded(path string, frames, w, h int) {
	unit := "frames"
	if frames == 1 {
		unit = "frame"
	}
	p.set(fmt.Sprintf("Loaded %s: %d %s, %dx%d", filepath.Base(path), frames, unit, w, h))
}

// LoadFailed reports a load error, classifying it as unreadable or invalid.
func (p *StatusPresenter) LoadFailed(path string, err error) {
	p.set(LoadErrorMessage(path, err))
}

// LoadErrorMessage maps a loader error to the status line text.
func LoadErrorMessage(path string, err error) string {
	name := filepath.Base(path)
	switch {
	case errors.Is(err, tiffio.ErrNotFound):
		return fmt.Sprintf("Cannot read %s: file not found or unreadable", name)
	case errors.Is(err, tiffio.ErrUnsupported):
		return fmt.Sprintf("Cannot open %s: unsupported TIFF (%v)", name, err)
	case errors.Is(err, stack.ErrInconsistentFrames):
		return fmt.Sprintf("Cannot open %s: frames differ in size", name)
	case errors.Is(err, tiffio.ErrMalformed):
		return fmt.Sprintf("Cannot open %s: not a valid TIFF (%v)", name, err)
	default:
		return fmt.Sprintf("Cannot open %s: %v", name, err)
	}
}
