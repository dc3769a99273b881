package presenter

import (
	"strings"

	"github.com/soocke/tiffscope/domain/stack"
)

// NoFileLoaded is shown in the metadata panel before the first successful load.
const NoFileLoaded = "No file loaded"

// MetadataView shows the read-only metadata text.
type MetadataView interface{ SetMetadataText(string) }

// MetadataPresenter renders metadata rows grouped by section.
type MetadataPresenter struct {
	view MetadataView
}

func NewMetadataPresenter(view MetadataView) *MetadataPresenter {
	return &MetadataPresenter{view: view}
}

// Show pushes meta to the view; an empty map shows NoFileLoaded.
func (p *MetadataPresenter) Show(meta stack.Metadata) {
	if p == nil || p.view == nil {
		return
	}
	p.view.SetMetadataText(FormatMetadata(meta.Rows()))
}

// FormatMetadata renders rows as "key: value" lines under section headings.
func FormatMetadata(rows []stack.Row) string {
	if len(rows) == 0 {
		return NoFileLoaded
	}
	width := 0
	for _, r := range rows {
		if len(r.Key) > width {
			width = len(r.Key)
		}
	}
	var b strings.Builder
	section := ""
	for _, r := range rows {
		if r.Section != section {
			if section != "" {
				b.WriteByte('\n')
			}
			section = r.Section
			b.WriteString(section)
			b.WriteByte('\n')
		}
		b.WriteString("  ")
		b.WriteString(r.Key)
		b.WriteString(":")
		b.WriteString(strings.Repeat(" ", width-len(r.Key)+1))
		b.WriteString(r.Value)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
