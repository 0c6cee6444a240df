package palette

import (
	"regexp"
	"strconv"
)

var (
	rgbFunc = regexp.MustCompile(`rgba?\s*\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)`)
	hex6    = regexp.MustCompile(`(?i)#([0-9a-f]{2})([0-9a-f]{2})([0-9a-f]{2})`)
	hex3    = regexp.MustCompile(`(?i)#([0-9a-f])([0-9a-f])([0-9a-f])`)
)

// Parse reads a CSS color in rgb()/rgba(), #rrggbb or #rgb form, in that
// order of precedence. Channel values above 255 are clamped.
func Parse(css string) (RGB, bool) {
	if css == "" {
		return RGB{}, false
	}
	if m := rgbFunc.FindStringSubmatch(css); m != nil {
		return RGB{channel(m[1], 10), channel(m[2], 10), channel(m[3], 10)}, true
	}
	if m := hex6.FindStringSubmatch(css); m != nil {
		return RGB{channel(m[1], 16), channel(m[2], 16), channel(m[3], 16)}, true
	}
	if m := hex3.FindStringSubmatch(css); m != nil {
		return RGB{
			channel(m[1]+m[1], 16),
			channel(m[2]+m[2], 16),
			channel(m[3]+m[3], 16),
		}, true
	}
	return RGB{}, false
}

func channel(s string, base int) uint8 {
	v, err := strconv.ParseUint(s, base, 64)
	if err != nil || v > 255 {
		// Only overflow can fail here; the regexps admit digits only.
		return 255
	}
	return uint8(v)
}

// Quantize maps a CSS color string to the nearest palette code. Unparsable
// input maps to white.
func Quantize(css string) Code {
	c, ok := Parse(css)
	if !ok {
		return Unparsable
	}
	return Nearest(c)
}

// Nearest returns the palette code closest to c. Near-black and near-white
// colors snap to black and white; everything else goes to the entry with the
// smallest Euclidean distance, earliest entry on ties. Transparent is never
// chosen.
func Nearest(c RGB) Code {
	if c.R < 30 && c.G < 30 && c.B < 30 {
		return NearBlack
	}
	if c.R > 225 && c.G > 225 && c.B > 225 {
		return NearWhite
	}

	best := White
	bestDist := -1
	for _, e := range Entries {
		if e.Code == Transparent {
			continue
		}
		// Squared distance orders the same as Euclidean distance.
		d := sq(int(c.R)-int(e.RGB.R)) + sq(int(c.G)-int(e.RGB.G)) + sq(int(c.B)-int(e.RGB.B))
		if bestDist < 0 || d < bestDist {
			best = e.Code
			bestDist = d
		}
	}
	return best
}

func sq(v int) int { return v * v }
