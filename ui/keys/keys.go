// Package keys routes global key bindings around widgets that edit text.
package keys

import "strings"

// editorPrefixes are the leaf path prefixes tk9.0 gives editable widgets
// (".text12", ".tentry7", ".tcombobox3").
var editorPrefixes = []string{"text", "entry", "tentry", "tcombobox", "spinbox", "tspinbox"}

// EditsText reports whether the Tk widget at path consumes cursor keys itself.
func EditsText(path string) bool {
	leaf := path[strings.LastIndexByte(path, '.')+1:]
	for _, p := range editorPrefixes {
		rest, ok := strings.CutPrefix(leaf, p)
		if ok && rest != "" && rest[0] >= '0' && rest[0] <= '9' {
			return true
		}
	}
	return false
}

// FrameStep maps keysym to a frame delta. Keys pressed inside an editor are
// left to it and yield 0.
func FrameStep(keysym, focusPath string) int {
	if EditsText(focusPath) {
		return 0
	}
	switch keysym {
	case "Left":
		return -1
	case "Right":
		return 1
	}
	return 0
}
