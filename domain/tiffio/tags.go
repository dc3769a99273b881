package tiffio

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// maxListed caps how many array elements a formatted tag value shows.
const maxListed = 16

const (
	tagBitsPerSample = 258
	tagCompression   = 259
	tagPhotometric   = 262
	tagPlanarConfig  = 284
	tagResUnit       = 296
	tagSampleFormat  = 339
)

var tagNames = map[uint16]string{
	254:   "NewSubfileType",
	255:   "SubfileType",
	256:   "ImageWidth",
	257:   "ImageLength",
	258:   "BitsPerSample",
	259:   "Compression",
	262:   "PhotometricInterpretation",
	266:   "FillOrder",
	269:   "DocumentName",
	270:   "ImageDescription",
	271:   "Make",
	272:   "Model",
	273:   "StripOffsets",
	274:   "Orientation",
	277:   "SamplesPerPixel",
	278:   "RowsPerStrip",
	279:   "StripByteCounts",
	280:   "MinSampleValue",
	281:   "MaxSampleValue",
	282:   "XResolution",
	283:   "YResolution",
	284:   "PlanarConfiguration",
	285:   "PageName",
	286:   "XPosition",
	287:   "YPosition",
	296:   "ResolutionUnit",
	297:   "PageNumber",
	305:   "Software",
	306:   "DateTime",
	315:   "Artist",
	316:   "HostComputer",
	317:   "Predictor",
	320:   "ColorMap",
	322:   "TileWidth",
	323:   "TileLength",
	324:   "TileOffsets",
	325:   "TileByteCounts",
	338:   "ExtraSamples",
	339:   "SampleFormat",
	340:   "SMinSampleValue",
	341:   "SMaxSampleValue",
	700:   "XMP",
	33432: "Copyright",
	34665: "ExifIFD",
	50838: "IJMetadataByteCounts",
	50839: "IJMetadata",
}

// enumNames labels common single-valued enumerations.
var enumNames = map[uint16]map[int64]string{
	tagCompression:  {1: "none", 2: "ccitt rle", 5: "lzw", 7: "jpeg", 8: "deflate", 32773: "packbits", 32946: "deflate"},
	tagPhotometric:  {0: "min-is-white", 1: "min-is-black", 2: "rgb", 3: "palette", 4: "mask", 5: "separated", 6: "ycbcr"},
	tagPlanarConfig: {1: "contig", 2: "separate"},
	tagResUnit:      {1: "none", 2: "inch", 3: "centimeter"},
	tagSampleFormat: {1: "uint", 2: "int", 3: "float", 4: "void"},
}

// TagName returns the conventional name of a tag, or "Tag N" when unknown.
func TagName(tag uint16) string {
	if n, ok := tagNames[tag]; ok {
		return n
	}
	return "Tag " + strconv.Itoa(int(tag))
}

// ints decodes integral entry values; ok is false for non-integral types.
func (e entry) ints(order binary.ByteOrder) ([]int64, bool) {
	size := typeSize[e.Type]
	n := int(e.Count)
	out := make([]int64, 0, n)
	for i := range n {
		b := e.raw[i*int(size):]
		switch e.Type {
		case dtByte, dtUndefined:
			out = append(out, int64(b[0]))
		case dtSByte:
			out = append(out, int64(int8(b[0])))
		case dtShort:
			out = append(out, int64(order.Uint16(b)))
		case dtSShort:
			out = append(out, int64(int16(order.Uint16(b))))
		case dtLong, dtIFD:
			out = append(out, int64(order.Uint32(b)))
		case dtSLong:
			out = append(out, int64(int32(order.Uint32(b))))
		default:
			return nil, false
		}
	}
	return out, true
}

// first returns the first integral value of e.
func (e entry) first(order binary.ByteOrder) (int64, bool) {
	v, ok := e.ints(order)
	if !ok || len(v) == 0 {
		return 0, false
	}
	return v[0], true
}

// format renders the entry value for the metadata table.
func (e entry) format(order binary.ByteOrder) string {
	if e.Type == dtASCII {
		parts := strings.Split(strings.TrimRight(string(e.raw), "\x00"), "\x00")
		return strings.TrimSpace(strings.Join(parts, "; "))
	}
	if e.Type == dtUndefined && e.Count > maxListed {
		return fmt.Sprintf("<%s>", humanize.Bytes(uint64(e.Count)))
	}
	var items []string
	shown := min(int(e.Count), maxListed)
	size := int(typeSize[e.Type])
	switch e.Type {
	case dtRational, dtSRational:
		for i := range shown {
			b := e.raw[i*size:]
			num, den := order.Uint32(b), order.Uint32(b[4:])
			if e.Type == dtSRational {
				items = append(items, fmt.Sprintf("%d/%d", int32(num), int32(den)))
			} else {
				items = append(items, fmt.Sprintf("%d/%d", num, den))
			}
		}
	case dtFloat:
		for i := range shown {
			items = append(items, strconv.FormatFloat(float64(math.Float32frombits(order.Uint32(e.raw[i*size:]))), 'g', -1, 32))
		}
	case dtDouble:
		for i := range shown {
			items = append(items, strconv.FormatFloat(math.Float64frombits(order.Uint64(e.raw[i*size:])), 'g', -1, 64))
		}
	default:
		vals, _ := e.ints(order)
		if len(vals) == 1 {
			if names, ok := enumNames[e.Tag]; ok {
				if name, ok := names[vals[0]]; ok {
					return fmt.Sprintf("%d (%s)", vals[0], name)
				}
			}
		}
		for _, v := range vals[:min(len(vals), shown)] {
			items = append(items, strconv.FormatInt(v, 10))
		}
	}
	if len(items) == 1 && e.Count == 1 {
		return items[0]
	}
	s := "(" + strings.Join(items, ", ")
	if int(e.Count) > shown {
		s += fmt.Sprintf(", ... %s values", humanize.Comma(int64(e.Count)))
	}
	return s + ")"
}

// lookup finds the first entry with tag in dir.
func (d ifd) lookup(tag uint16) (entry, bool) {
	for _, e := range d.Entries {
		if e.Tag == tag {
			return e, true
		}
	}
	return entry{}, false
}

// tags renders every entry of d keyed by tag name.
func (d ifd) tags(order binary.ByteOrder) map[string]string {
	out := make(map[string]string, len(d.Entries))
	for _, e := range d.Entries {
		out[TagName(e.Tag)] = e.format(order)
	}
	return out
}
