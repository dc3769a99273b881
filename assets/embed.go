package assets

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
)

// DemoName is the display name of the embedded sample stack.
const DemoName = "demo_stack.tif"

// DemoTIFF contains a synthetic 3 frame 64x64 16-bit grayscale stack with a
// bright spot moving left to right.
//
//go:embed demo_stack.tif
var DemoTIFF []byte

// DemoReader returns a reader over the embedded sample stack.
func DemoReader() (io.Reader, error) {
	if len(DemoTIFF) == 0 {
		return nil, fmt.Errorf("embedded %s is empty", DemoName)
	}
	return bytes.NewReader(DemoTIFF), nil
}
