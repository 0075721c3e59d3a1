package canvas

import (
	"hash/fnv"

	"github.com/vk/portgraph/internal/typesys"
)

const (
	execColor      = "#ffffff"
	undefinedColor = "#9e9e9e"
)

var palette = []string{
	"#e57373", "#f06292", "#ba68c8", "#9575cd",
	"#7986cb", "#64b5f6", "#4dd0e1", "#4db6ac",
	"#81c784", "#dce775", "#ffd54f", "#ffb74d",
}

// Color returns the display color of a port type. Concrete types are colored
// by descriptor, so List<int> and List<string> share a color; a type that
// still carries placeholders is grey.
func Color(t typesys.Type) string {
	switch {
	case t == nil:
		return undefinedColor
	case t.IsExec():
		return execColor
	case t.HasUndefinedGenerics():
		return undefinedColor
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(t.Name()))
	return palette[h.Sum32()%uint32(len(palette))]
}
