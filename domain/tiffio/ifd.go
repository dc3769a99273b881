package tiffio

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Field types from the TIFF 6.0 specification.
const (
	dtByte      = 1
	dtASCII     = 2
	dtShort     = 3
	dtLong      = 4
	dtRational  = 5
	dtSByte     = 6
	dtUndefined = 7
	dtSShort    = 8
	dtSLong     = 9
	dtSRational = 10
	dtFloat     = 11
	dtDouble    = 12
	dtIFD       = 13
)

var typeSize = map[uint16]uint32{
	dtByte: 1, dtASCII: 1, dtShort: 2, dtLong: 4, dtRational: 8,
	dtSByte: 1, dtUndefined: 1, dtSShort: 2, dtSLong: 4, dtSRational: 8,
	dtFloat: 4, dtDouble: 8, dtIFD: 4,
}

// maxPages bounds the IFD walk on crafted files.
const maxPages = 1 << 16

// entry is one decoded IFD directory entry. raw holds count*size bytes in file order.
type entry struct {
	Tag   uint16
	Type  uint16
	Count uint32
	raw   []byte
}

// ifd is one image file directory.
type ifd struct {
	Offset  uint32
	Entries []entry
}

// header validates the 8-byte TIFF header and returns byte order and first IFD offset.
func header(data []byte) (binary.ByteOrder, uint32, error) {
	if len(data) < 8 {
		return nil, 0, fmt.Errorf("header truncated: %w", ErrMalformed)
	}
	var order binary.ByteOrder
	switch {
	case data[0] == 'I' && data[1] == 'I':
		order = binary.LittleEndian
	case data[0] == 'M' && data[1] == 'M':
		order = binary.BigEndian
	default:
		return nil, 0, fmt.Errorf("bad byte order mark %q: %w", data[:2], ErrMalformed)
	}
	switch magic := order.Uint16(data[2:4]); magic {
	case 42:
	case 43:
		return nil, 0, fmt.Errorf("BigTIFF: %w", ErrUnsupported)
	default:
		return nil, 0, fmt.Errorf("bad magic %d: %w", magic, ErrMalformed)
	}
	return order, order.Uint32(data[4:8]), nil
}

// walkIFDs follows the IFD chain from the header and returns every page directory.
func walkIFDs(data []byte) (binary.ByteOrder, []ifd, error) {
	order, off, err := header(data)
	if err != nil {
		return nil, nil, err
	}
	seen := make(map[uint32]bool)
	var pages []ifd
	for off != 0 {
		if seen[off] {
			return nil, nil, fmt.Errorf("IFD loop at offset %d: %w", off, ErrMalformed)
		}
		if len(pages) >= maxPages {
			return nil, nil, fmt.Errorf("more than %d pages: %w", maxPages, ErrUnsupported)
		}
		seen[off] = true
		dir, next, err := readIFD(data, order, off)
		if err != nil {
			return nil, nil, err
		}
		pages = append(pages, dir)
		off = next
	}
	if len(pages) == 0 {
		return nil, nil, fmt.Errorf("no image directories: %w", ErrMalformed)
	}
	return order, pages, nil
}

func readIFD(data []byte, order binary.ByteOrder, off uint32) (ifd, uint32, error) {
	if uint64(off)+2 > uint64(len(data)) {
		return ifd{}, 0, fmt.Errorf("IFD offset %d out of range: %w", off, ErrMalformed)
	}
	n := uint64(order.Uint16(data[off : off+2]))
	start := uint64(off) + 2
	end := start + n*12
	if end+4 > uint64(len(data)) {
		return ifd{}, 0, fmt.Errorf("IFD at %d truncated: %w", off, ErrMalformed)
	}
	dir := ifd{Offset: off, Entries: make([]entry, 0, n)}
	for p := start; p < end; p += 12 {
		e := data[p : p+12]
		ent := entry{Tag: order.Uint16(e[0:2]), Type: order.Uint16(e[2:4]), Count: order.Uint32(e[4:8])}
		size, ok := typeSize[ent.Type]
		if !ok {
			// readers must skip unknown field types
			continue
		}
		length := uint64(size) * uint64(ent.Count)
		if length <= 4 {
			ent.raw = e[8 : 8+length]
		} else {
			vo := uint64(order.Uint32(e[8:12]))
			if vo+length > uint64(len(data)) {
				return ifd{}, 0, fmt.Errorf("tag %d value out of range: %w", ent.Tag, ErrMalformed)
			}
			ent.raw = data[vo : vo+length]
		}
		dir.Entries = append(dir.Entries, ent)
	}
	return dir, order.Uint32(data[end : end+4]), nil
}

// pageReader serves data with the header's first-IFD offset replaced, so that a
// single-image decoder reads the chosen page.
type pageReader struct {
	data []byte
	ifd  [4]byte
	pos  int64
}

func newPageReader(data []byte, order binary.ByteOrder, off uint32) *pageReader {
	p := &pageReader{data: data}
	order.PutUint32(p.ifd[:], off)
	return p
}

func (p *pageReader) ReadAt(b []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative offset %d", off)
	}
	if off >= int64(len(p.data)) {
		return 0, io.EOF
	}
	n := copy(b, p.data[off:])
	for i := range n {
		if at := off + int64(i); at >= 4 && at < 8 {
			b[i] = p.ifd[at-4]
		}
	}
	if n < len(b) {
		return n, io.EOF
	}
	return n, nil
}

func (p *pageReader) Read(b []byte) (int, error) {
	n, err := p.ReadAt(b, p.pos)
	p.pos += int64(n)
	return n, err
}
