package nbplot

const PaletteSize = 15

// Palette is a fixed set of stroke colors assigned to y-series by index.
type Palette [PaletteSize]string

// Purple shades, darkest first.
var DefaultPalette = reversed(Palette{
	"lavender",
	"thistle",
	"plum",
	"violet",
	"orchid",
	"fuchsia",
	"magenta",
	"mediumorchid",
	"mediumpurple",
	"blueviolet",
	"darkviolet",
	"darkorchid",
	"darkmagenta",
	"purple",
	"indigo",
})

func reversed(p Palette) Palette {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
	return p
}

// Color returns the color for the y-series at index i.
func (p Palette) Color(i int) (string, error) {
	if i < 0 || i >= len(p) {
		return "", &InputError{Op: "palette", Series: i, Index: -1, Err: ErrPaletteExhausted}
	}
	return p[i], nil
}
