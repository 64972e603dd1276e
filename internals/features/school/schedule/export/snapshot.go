package export

import "fmt"

// Kind names what is being exported; it also appears in filenames and the
// failure alert.
type Kind string

const (
	KindSchedule Kind = "schedule"
	KindCalendar Kind = "calendar"
)

// Fidelity of one rasterization attempt.
type Fidelity struct {
	PixelRatio int
	CacheBust  bool
}

var (
	HighFidelity    = Fidelity{PixelRatio: 2}
	ReducedFidelity = Fidelity{PixelRatio: 1, CacheBust: true}
)

// RevealRule drops Remove from every node whose class list carries Marker.
type RevealRule struct {
	Marker string
	Remove string
}

// StyleOverrides is everything applied to the export target for the
// duration of a snapshot.
type StyleOverrides struct {
	Kind          Kind
	Fidelity      Fidelity
	RemoveClasses []string
	Root          []Property
	Clipping      []Property
	Reveal        *RevealRule
	Background    string
}

// LightTheme is the theme variable table forced onto the target.
var LightTheme = []Property{
	{"--background", "oklch(1 0 0)"},
	{"--foreground", "oklch(0.145 0 0)"},
	{"--card", "oklch(1 0 0)"},
	{"--card-foreground", "oklch(0.145 0 0)"},
	{"--popover", "oklch(1 0 0)"},
	{"--popover-foreground", "oklch(0.145 0 0)"},
	{"--primary", "oklch(0.67 0.16 58)"},
	{"--primary-foreground", "oklch(0.99 0.02 95)"},
	{"--secondary", "oklch(0.967 0.001 286.375)"},
	{"--secondary-foreground", "oklch(0.21 0.006 285.885)"},
	{"--muted", "oklch(0.97 0 0)"},
	{"--muted-foreground", "oklch(0.556 0 0)"},
	{"--accent", "oklch(0.97 0 0)"},
	{"--accent-foreground", "oklch(0.205 0 0)"},
	{"--destructive", "oklch(0.58 0.22 27)"},
	{"--border", "oklch(0.922 0 0)"},
	{"--input", "oklch(0.922 0 0)"},
	{"--ring", "oklch(0.708 0 0)"},
}

// CalendarMinWidth forces the desktop layout onto calendar images.
const CalendarMinWidth = 1000

// SnapshotConfig describes the overrides for kind at fidelity. It has no side
// effects; Scope applies the result.
func SnapshotConfig(kind Kind, fidelity Fidelity) StyleOverrides {
	o := StyleOverrides{
		Kind:          kind,
		Fidelity:      fidelity,
		RemoveClasses: []string{"dark"},
		Clipping: []Property{
			{"overflow", "visible"},
			{"max-width", "none"},
		},
		Background: "#ffffff",
	}

	root := []Property{
		{"overflow", "visible"},
		{"max-width", "none"},
	}
	if kind == KindCalendar {
		root = append(root,
			Property{"min-width", fmt.Sprintf("%dpx", CalendarMinWidth)},
			Property{"width", "fit-content"},
		)
		o.Reveal = &RevealRule{Marker: "md:block", Remove: "hidden"}
	}
	root = append(root, LightTheme...)
	root = append(root,
		Property{"color-scheme", "light"},
		Property{"background-color", "oklch(1 0 0)"},
		Property{"color", "oklch(0.145 0 0)"},
	)
	o.Root = root
	return o
}
