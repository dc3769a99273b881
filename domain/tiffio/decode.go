// Package tiffio reads single and multi-page TIFF files into image stacks.
//
// Pages are found by walking the IFD chain; each page's pixels are decoded by
// golang.org/x/image/tiff. Tags of the first page become metadata.
package tiffio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/image/tiff"

	"github.com/soocke/tiffscope/domain/stack"
)

var (
	// ErrNotFound reports a missing or unreadable file.
	ErrNotFound = errors.New("file not found")
	// ErrMalformed reports content that is not a well-formed TIFF.
	ErrMalformed = errors.New("malformed tiff")
	// ErrUnsupported reports a TIFF variant this loader cannot decode.
	ErrUnsupported = errors.New("unsupported tiff")
)

// Extensions lists the file suffixes offered by the open dialog.
var Extensions = []string{".tif", ".tiff"}

// IsTIFFPath reports whether path carries a TIFF extension.
func IsTIFFPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Loader decodes TIFF files. The zero value is usable; Logger may be nil.
type Loader struct {
	Logger *slog.Logger
}

// NewLoader returns a loader logging to logger.
func NewLoader(logger *slog.Logger) *Loader { return &Loader{Logger: logger} }

// Load reads and decodes the file at path.
func (l *Loader) Load(path string) (*stack.ImageStack, stack.Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	st, meta, err := l.DecodeBytes(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if l != nil && l.Logger != nil {
		l.Logger.Info("tiff loaded", "path", path, "frames", st.Len(), "width", st.Width(), "height", st.Height(), "dtype", st.DataType())
	}
	return st, meta, nil
}

// Decode consumes r fully and decodes it.
func (l *Loader) Decode(r io.Reader) (*stack.ImageStack, stack.Metadata, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read tiff stream: %w", err)
	}
	return l.DecodeBytes(data)
}

// DecodeBytes decodes every page of data into a stack plus first-page metadata.
func (l *Loader) DecodeBytes(data []byte) (*stack.ImageStack, stack.Metadata, error) {
	order, pages, err := walkIFDs(data)
	if err != nil {
		return nil, nil, err
	}
	frames := make([]*stack.Frame, 0, len(pages))
	dt := stack.Uint8
	for i, p := range pages {
		f, pdt, err := decodePage(data, order, p)
		if err != nil {
			return nil, nil, fmt.Errorf("page %d: %w", i, err)
		}
		if l != nil && l.Logger != nil {
			l.Logger.Debug("tiff page decoded", "page", i, "width", f.Width, "height", f.Height, "dtype", pdt)
		}
		if pdt == stack.Uint16 {
			dt = stack.Uint16
		}
		frames = append(frames, f)
	}
	st, err := stack.New(frames, dt)
	if err != nil {
		return nil, nil, err
	}
	return st, buildMetadata(st, order, pages[0], len(data)), nil
}

// decodePage decodes one directory through x/image/tiff.
func decodePage(data []byte, order binary.ByteOrder, p ifd) (*stack.Frame, stack.DataType, error) {
	img, err := tiff.Decode(newPageReader(data, order, p.Offset))
	if err != nil {
		var ue tiff.UnsupportedError
		if errors.As(err, &ue) {
			return nil, "", fmt.Errorf("%v: %w", err, ErrUnsupported)
		}
		return nil, "", fmt.Errorf("%v: %w", err, ErrMalformed)
	}
	wide := false
	if e, ok := p.lookup(tagBitsPerSample); ok {
		if bps, ok := e.first(order); ok && bps > 8 {
			wide = true
		}
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, "", fmt.Errorf("empty page: %w", ErrMalformed)
	}
	pix := make([]float64, 0, w*h)
	dt := stack.Uint8
	switch m := img.(type) {
	case *image.Gray:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				pix = append(pix, float64(m.GrayAt(x, y).Y))
			}
		}
	case *image.Gray16:
		dt = stack.Uint16
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				pix = append(pix, float64(m.Gray16At(x, y).Y))
			}
		}
	default:
		// colour pages are reduced to luminance at their native depth
		if wide {
			dt = stack.Uint16
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.Gray16Model.Convert(img.At(x, y)).(color.Gray16)
				if wide {
					pix = append(pix, float64(c.Y))
				} else {
					pix = append(pix, float64(c.Y>>8))
				}
			}
		}
	}
	f, err := stack.NewFrame(w, h, pix)
	if err != nil {
		return nil, "", err
	}
	return f, dt, nil
}

func buildMetadata(st *stack.ImageStack, order binary.ByteOrder, first ifd, size int) stack.Metadata {
	meta := stack.Metadata(first.tags(order))
	if st.Len() == 1 {
		meta["Dimensions"] = fmt.Sprintf("(%d, %d)", st.Height(), st.Width())
	} else {
		meta["Dimensions"] = fmt.Sprintf("(%d, %d, %d)", st.Len(), st.Height(), st.Width())
	}
	lo, hi := st.Range()
	meta["Data Type"] = string(st.DataType())
	meta["Value Range"] = formatValue(lo) + " to " + formatValue(hi)
	meta["Frames"] = strconv.Itoa(st.Len())
	meta["Pixels"] = humanize.Comma(int64(st.Len() * st.Width() * st.Height()))
	meta["File Size"] = humanize.Bytes(uint64(size))
	return meta
}

func formatValue(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
