package viz

import (
	"fmt"
	"math"
	"sort"
)

// Colormap maps a normalized value in [0, 1] onto an RGB ramp by
// linear interpolation between evenly spaced anchor colors.
type Colormap struct {
	Name    string
	Anchors [][3]uint8
}

var (
	// Viridis uses the standard anchor colors of the matplotlib ramp.
	Viridis = Colormap{
		Name: "viridis",
		Anchors: [][3]uint8{
			{68, 1, 84}, {70, 50, 126}, {54, 92, 141}, {39, 127, 142},
			{31, 161, 135}, {74, 193, 109}, {160, 218, 57}, {253, 231, 37},
		},
	}

	Magma = Colormap{
		Name: "magma",
		Anchors: [][3]uint8{
			{0, 0, 4}, {29, 17, 71}, {81, 18, 124}, {130, 38, 129},
			{182, 54, 121}, {230, 81, 100}, {251, 136, 97}, {254, 194, 135},
			{252, 253, 191},
		},
	}

	Grayscale = Colormap{
		Name:    "grayscale",
		Anchors: [][3]uint8{{0, 0, 0}, {255, 255, 255}},
	}
)

var colormaps = map[string]Colormap{
	"viridis":   Viridis,
	"magma":     Magma,
	"grayscale": Grayscale,
}

// ColormapByName looks up a bundled colormap, falling back to viridis
// for unknown names.
func ColormapByName(name string) Colormap {
	if cm, ok := colormaps[name]; ok {
		return cm
	}
	return Viridis
}

// ColormapNames lists the bundled colormaps in stable order.
func ColormapNames() []string {
	names := make([]string, 0, len(colormaps))
	for name := range colormaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// At returns the interpolated color for v, clamping v into [0, 1].
func (cm Colormap) At(v float64) [3]uint8 {
	if math.IsNaN(v) || v <= 0 {
		return cm.Anchors[0]
	}
	if v >= 1 {
		return cm.Anchors[len(cm.Anchors)-1]
	}
	pos := v * float64(len(cm.Anchors)-1)
	i := int(pos)
	frac := pos - float64(i)
	a, b := cm.Anchors[i], cm.Anchors[i+1]
	var c [3]uint8
	for ch := 0; ch < 3; ch++ {
		c[ch] = uint8(math.Round(float64(a[ch]) + frac*(float64(b[ch])-float64(a[ch]))))
	}
	return c
}

// Hex returns the color for v as a #rrggbb string.
func (cm Colormap) Hex(v float64) string {
	c := cm.At(v)
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// Normalize maps v into [0, 1] over [vmin, vmax], clamping at both
// ends. A degenerate range maps every value to 0.
func Normalize(v, vmin, vmax float64) float64 {
	if vmax <= vmin {
		return 0
	}
	u := (v - vmin) / (vmax - vmin)
	if u < 0 {
		return 0
	}
	if u > 1 {
		return 1
	}
	return u
}
