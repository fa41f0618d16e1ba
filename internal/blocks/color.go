package blocks

// propertyColors is the fixed palette cycled when new select options are
// created, in palette order.
var propertyColors = []string{
	"propColorGray",
	"propColorBrown",
	"propColorOrange",
	"propColorYellow",
	"propColorGreen",
	"propColorBlue",
	"propColorPurple",
	"propColorPink",
	"propColorRed",
}

// DefaultColor is the color assigned outside any allocation cycle.
const DefaultColor = "propColorDefault"

// ColorAllocator hands out palette colors round-robin. Thread one through an
// import run instead of sharing a process-wide counter.
type ColorAllocator struct {
	next int
}

// Next returns the next palette color, wrapping around at the end.
func (a *ColorAllocator) Next() string {
	color := propertyColors[a.next%len(propertyColors)]
	a.next++
	return color
}
