package export

import (
	"image/color"
	"strconv"
	"strings"
)

// Palette is the resolved set of theme colors a scene paints with.
type Palette struct {
	Background, Foreground             color.RGBA
	Primary, PrimaryForeground         color.RGBA
	Secondary, SecondaryForeground     color.RGBA
	Muted, MutedForeground             color.RGBA
	Accent, AccentForeground           color.RGBA
	Destructive, DestructiveForeground color.RGBA
	Border                             color.RGBA
}

var darkTheme = []Property{
	{"--background", "oklch(0.145 0 0)"},
	{"--foreground", "oklch(0.985 0 0)"},
	{"--primary", "oklch(0.67 0.16 58)"},
	{"--primary-foreground", "oklch(0.99 0.02 95)"},
	{"--secondary", "oklch(0.274 0.006 286.033)"},
	{"--secondary-foreground", "oklch(0.985 0 0)"},
	{"--muted", "oklch(0.269 0 0)"},
	{"--muted-foreground", "oklch(0.708 0 0)"},
	{"--accent", "oklch(0.269 0 0)"},
	{"--accent-foreground", "oklch(0.985 0 0)"},
	{"--destructive", "oklch(0.704 0.191 22.216)"},
	{"--border", "oklch(0.3 0 0)"},
}

// Surface is what the rasterizer reads off the styled target.
type Surface struct {
	Palette     Palette
	Dark        bool
	ClipWidth   int // 0 = no clipping
	MinWidth    int
	ShowDetails bool
}

// ReadSurface resolves theme and layout constraints from the target's
// current class list and inline style. The dark class selects the dark
// table; inline --variables override either table.
func ReadSurface(root Styleable) Surface {
	dark := hasClass(root, "dark") && root.Style("color-scheme") != "light"
	base := LightTheme
	if dark {
		base = darkTheme
	}
	vars := map[string]color.RGBA{}
	for _, p := range base {
		if c, ok := parseColor(p.Value); ok {
			vars[p.Name] = c
		}
	}
	for name := range vars {
		if c, ok := parseColor(root.Style(name)); ok {
			vars[name] = c
		}
	}

	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	s := Surface{
		Dark: dark,
		Palette: Palette{
			Background:            vars["--background"],
			Foreground:            vars["--foreground"],
			Primary:               vars["--primary"],
			PrimaryForeground:     vars["--primary-foreground"],
			Secondary:             vars["--secondary"],
			SecondaryForeground:   vars["--secondary-foreground"],
			Muted:                 vars["--muted"],
			MutedForeground:       vars["--muted-foreground"],
			Accent:                vars["--accent"],
			AccentForeground:      vars["--accent-foreground"],
			Destructive:           vars["--destructive"],
			DestructiveForeground: white,
			Border:                vars["--border"],
		},
		MinWidth:    px(root.Style("min-width")),
		ShowDetails: true,
	}
	if clips(root) {
		s.ClipWidth = px(root.Style("max-width"))
	}
	descendants(root, func(n Styleable) {
		if hasClass(n, "md:block") && hasClass(n, "hidden") {
			s.ShowDetails = false
		}
	})
	return s
}

// px reads "123px"; anything else is 0.
func px(v string) int {
	v = strings.TrimSpace(v)
	if !strings.HasSuffix(v, "px") {
		return 0
	}
	n, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	if err != nil || n < 0 {
		return 0
	}
	return int(n)
}
