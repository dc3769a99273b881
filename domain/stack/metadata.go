package stack

import "sort"

// Metadata section names.
const (
	SectionBasic = "Basic Properties"
	SectionTIFF  = "TIFF Metadata"
)

// Basic property keys, rendered in this order ahead of the tag rows.
var BasicKeys = []string{"Dimensions", "Data Type", "Value Range", "Frames", "Pixels", "File Size"}

// Row is one displayable metadata entry.
type Row struct {
	Section string
	Key     string
	Value   string
}

// Metadata is a flat tag-name to value mapping captured at load time.
type Metadata map[string]string

// Rows flattens m: basic properties first in BasicKeys order, then every other
// key sorted alphabetically.
func (m Metadata) Rows() []Row {
	if len(m) == 0 {
		return nil
	}
	basic := make(map[string]bool, len(BasicKeys))
	rows := make([]Row, 0, len(m))
	for _, k := range BasicKeys {
		basic[k] = true
		if v, ok := m[k]; ok {
			rows = append(rows, Row{Section: SectionBasic, Key: k, Value: v})
		}
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		if !basic[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		rows = append(rows, Row{Section: SectionTIFF, Key: k, Value: m[k]})
	}
	return rows
}
