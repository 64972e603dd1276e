package export

import (
	"image/color"
	"math"
	"strconv"
	"strings"
)

// parseColor understands "oklch(L C H[ / A])" and "#rrggbb".
func parseColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case strings.HasPrefix(s, "#") && len(s) == 7:
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return color.RGBA{}, false
		}
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true

	case strings.HasPrefix(s, "oklch(") && strings.HasSuffix(s, ")"):
		body := s[len("oklch(") : len(s)-1]
		if i := strings.IndexByte(body, '/'); i >= 0 {
			body = body[:i]
		}
		f := strings.Fields(body)
		if len(f) != 3 {
			return color.RGBA{}, false
		}
		var v [3]float64
		for i, x := range f {
			pct := strings.HasSuffix(x, "%")
			n, err := strconv.ParseFloat(strings.TrimSuffix(x, "%"), 64)
			if err != nil {
				return color.RGBA{}, false
			}
			if pct {
				n /= 100
			}
			v[i] = n
		}
		return oklch(v[0], v[1], v[2]), true
	}
	return color.RGBA{}, false
}

// oklch converts OKLCH to 8-bit sRGB.
func oklch(l, c, h float64) color.RGBA {
	hr := h * math.Pi / 180
	a, b := c*math.Cos(hr), c*math.Sin(hr)

	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b
	lc, mc, sc := l_*l_*l_, m_*m_*m_, s_*s_*s_

	r := 4.0767416621*lc - 3.3077115913*mc + 0.2309699292*sc
	g := -1.2684380046*lc + 2.6097574011*mc - 0.3413193965*sc
	bl := -0.0041960863*lc - 0.7034186147*mc + 1.7076147010*sc

	return color.RGBA{R: gamma(r), G: gamma(g), B: gamma(bl), A: 0xff}
}

func gamma(x float64) uint8 {
	if x <= 0.0031308 {
		x *= 12.92
	} else {
		x = 1.055*math.Pow(x, 1/2.4) - 0.055
	}
	x = math.Max(0, math.Min(1, x))
	return uint8(math.Round(x * 255))
}

// mix blends fg over bg with weight w of fg.
func mix(fg, bg color.RGBA, w float64) color.RGBA {
	blend := func(a, b uint8) uint8 { return uint8(math.Round(float64(a)*w + float64(b)*(1-w))) }
	return color.RGBA{R: blend(fg.R, bg.R), G: blend(fg.G, bg.G), B: blend(fg.B, bg.B), A: 0xff}
}
