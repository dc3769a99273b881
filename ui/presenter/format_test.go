package presenter

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"testing"

	"github.com/soocke/tiffscope/domain/stack"
	"github.com/soocke/tiffscope/domain/tiffio"
)

func TestFormatMetadata_Sections(t *testing.T) {
	meta := stack.Metadata{
		"Dimensions":  "(3, 100, 100)",
		"Data Type":   "uint16",
		"Software":    "scope",
		"Compression": "1 (none)",
	}
	text := FormatMetadata(meta.Rows())
	lines := strings.Split(text, "\n")
	if lines[0] != stack.SectionBasic || !strings.HasPrefix(strings.TrimSpace(lines[1]), "Dimensions:") {
		t.Fatalf("basic section should come first:\n%s", text)
	}
	ti := strings.Index(text, stack.SectionTIFF)
	if ti < 0 || strings.Index(text, "Compression") < ti || strings.Index(text, "Compression") > strings.Index(text, "Software") {
		t.Fatalf("tiff tags should follow sorted by key:\n%s", text)
	}
	if FormatMetadata(nil) != NoFileLoaded {
		t.Fatalf("empty metadata should read %q", NoFileLoaded)
	}
}

func TestMetadataPresenter_Show(t *testing.T) {
	v := &mockMetaView{}
	p := NewMetadataPresenter(v)
	p.Show(stack.Metadata{"Frames": "2"})
	if !strings.Contains(v.text, "Frames: 2") {
		t.Fatalf("unexpected text %q", v.text)
	}
	p.Show(nil)
	if v.text != NoFileLoaded {
		t.Fatalf("unexpected text %q", v.text)
	}
}

func TestFormatStats(t *testing.T) {
	rows := FormatStats(stack.Stats{Region: image.Rect(1, 2, 4, 6), Count: 12345, Min: 1, Max: 9, Mean: 2.123456, StdDev: 0.5, Median: 2})
	got := map[string]string{}
	for _, r := range rows {
		got[r.Label] = r.Value
	}
	if got["Pixels"] != "12,345" || got["Mean"] != "2.123" || got["Std Dev"] != "0.5" || got["Region"] != "(1, 2)-(4, 6)  3x4" {
		t.Fatalf("unexpected rows %v", got)
	}
}

func TestStatusPresenter_Messages(t *testing.T) {
	v := &mockStatusView{}
	p := NewStatusPresenter(v)
	p.Loaded("/x/cells.tif", 1, 64, 32)
	p.Loaded("/x/cells.tif", 1, 64, 32)
	if len(v.msgs) != 1 || v.msgs[0] != "Loaded cells.tif: 1 frame, 64x32" {
		t.Fatalf("unexpected messages %v", v.msgs)
	}
	cases := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("a: %w", tiffio.ErrNotFound), "not found"},
		{fmt.Errorf("a: %w", tiffio.ErrMalformed), "not a valid TIFF"},
		{fmt.Errorf("a: %w", tiffio.ErrUnsupported), "unsupported TIFF"},
		{stack.ErrInconsistentFrames, "frames differ"},
		{errors.New("boom"), "boom"},
	}
	for _, c := range cases {
		if got := LoadErrorMessage("/x/bad.tif", c.err); !strings.Contains(got, c.want) || !strings.Contains(got, "bad.tif") {
			t.Errorf("LoadErrorMessage(%v) = %q, want substring %q", c.err, got, c.want)
		}
	}
}
