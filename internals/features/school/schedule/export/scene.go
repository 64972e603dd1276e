package export

import (
	"encoding/hex"
	"hash/fnv"
	"image"
	"image/color"
	"strconv"

	"github.com/bytedance/sonic"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	calDTO "github.com/AungS8430/schooler/internals/features/school/schedule/calendar/dto"
	ttDTO "github.com/AungS8430/schooler/internals/features/school/schedule/timetable/dto"
)

// Scene paints one exportable view at pixel ratio 1.
type Scene interface {
	Size(s Surface) (w, h int)
	Paint(dst *image.RGBA, s Surface)
	Fingerprint() string
}

const (
	pad        = 16
	glyphW     = 7 // basicfont.Face7x13 advance
	lineH      = 15
	cellGap    = 4
	dayLabelW  = 64
	slotW      = 120
	headerH    = 40
	rowH       = 64
	calColW    = 140
	calHeadH   = 28
	calRowH    = 96
	calRowHMin = 44
)

/* ===================== drawing helpers ===================== */

func fill(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func outline(dst draw.Image, r image.Rectangle, c color.Color) {
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	fill(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	fill(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// text draws s with its baseline at y, cut to fit maxW pixels.
func text(dst draw.Image, x, y, maxW int, c color.Color, s string) {
	if maxW > 0 {
		if n := maxW / glyphW; len([]rune(s)) > n {
			r := []rune(s)
			if n > 1 {
				s = string(r[:n-1]) + "~"
			} else {
				s = ""
			}
		}
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func fingerprint(v any) string {
	b, err := sonic.Marshal(v)
	if err != nil {
		return ""
	}
	h := fnv.New64a()
	_, _ = h.Write(b)
	return hex.EncodeToString(h.Sum(nil))
}

/* ===================== timetable ===================== */

// TimetableScene paints a timetable grid.
type TimetableScene struct {
	Grid  ttDTO.Grid
	Title string
}

func (t TimetableScene) Fingerprint() string { return fingerprint(t) }

func (t TimetableScene) Size(Surface) (int, int) {
	return pad*2 + dayLabelW + t.Grid.Columns*slotW, pad*2 + lineH*2 + headerH + len(t.Grid.Rows)*rowH
}

func (t TimetableScene) Paint(dst *image.RGBA, s Surface) {
	p := s.Palette
	fill(dst, dst.Bounds(), p.Background)

	x0, y := pad, pad+lineH
	text(dst, x0, y, 0, p.Foreground, t.Title)
	y += lineH

	// header
	for i, h := range t.Grid.Headers {
		r := image.Rect(x0+dayLabelW+i*slotW, y, x0+dayLabelW+(i+1)*slotW-cellGap, y+headerH-cellGap)
		fill(dst, r, p.Muted)
		text(dst, r.Min.X+6, r.Min.Y+16, r.Dx()-12, p.MutedForeground, h.Start+"-"+h.End)
		text(dst, r.Min.X+6, r.Min.Y+30, r.Dx()-12, p.MutedForeground, h.SlotID)
	}
	y += headerH

	for _, row := range t.Grid.Rows {
		text(dst, x0, y+rowH/2, dayLabelW-cellGap, p.Foreground, row.DayName[:min(3, len(row.DayName))])
		col := 0
		for _, c := range row.Cells {
			span := max(c.Span, 1)
			r := image.Rect(x0+dayLabelW+col*slotW, y, x0+dayLabelW+(col+span)*slotW-cellGap, y+rowH-cellGap)
			col += span
			if c.Empty {
				outline(dst, r, p.Border)
				continue
			}
			bg, fg := t.tone(c.Tone, p)
			fill(dst, r, bg)
			text(dst, r.Min.X+6, r.Min.Y+18, r.Dx()-12, fg, c.Title)
			if len(c.Times) > 0 {
				text(dst, r.Min.X+6, r.Min.Y+34, r.Dx()-12, fg, c.Times[0])
			}
		}
		y += rowH
	}

	if t.Grid.Progress != nil && t.Grid.Columns > 0 {
		gx := x0 + dayLabelW + int(*t.Grid.Progress/100*float64(t.Grid.Columns*slotW))
		top := pad + lineH*2
		fill(dst, image.Rect(gx-1, top, gx+1, y), p.Primary)
	}
}

func (TimetableScene) tone(tone string, p Palette) (bg, fg color.RGBA) {
	switch tone {
	case ttDTO.ToneCurrent:
		return p.Primary, p.PrimaryForeground
	case ttDTO.ToneToday:
		return mix(p.Primary, p.Background, 0.65), p.PrimaryForeground
	case ttDTO.ToneMuted:
		return p.Muted, p.MutedForeground
	default:
		return p.Secondary, p.SecondaryForeground
	}
}

/* ===================== calendar ===================== */

// CalendarScene paints the academic calendar grid.
type CalendarScene struct {
	Month calDTO.Month
	Title string
}

func (c CalendarScene) Fingerprint() string { return fingerprint(c) }

func (c CalendarScene) rowH(s Surface) int {
	if s.ShowDetails {
		return calRowH
	}
	return calRowHMin
}

func (c CalendarScene) Size(s Surface) (int, int) {
	return pad*2 + 7*calColW, pad*2 + lineH*2 + calHeadH + len(c.Month.Weeks)*c.rowH(s)
}

func (c CalendarScene) Paint(dst *image.RGBA, s Surface) {
	p := s.Palette
	fill(dst, dst.Bounds(), p.Background)

	x0, y := pad, pad+lineH
	text(dst, x0, y, 0, p.Foreground, c.Title)
	y += lineH

	for i, label := range c.Month.Weekdays {
		text(dst, x0+i*calColW+calColW/2-len(label)*glyphW/2, y+18, calColW, p.Foreground, label)
	}
	y += calHeadH

	rh := c.rowH(s)
	for _, week := range c.Month.Weeks {
		for i, d := range week {
			r := image.Rect(x0+i*calColW, y, x0+(i+1)*calColW-cellGap, y+rh-cellGap)
			bg, fg := c.tone(d.Tone, p)
			fill(dst, r, bg)
			if d.Today {
				outline(dst, r, p.Primary)
			}
			text(dst, r.Min.X+6, r.Min.Y+16, 0, fg, strconv.Itoa(d.Day))
			if d.MonthLabel != "" {
				text(dst, r.Max.X-6-len(d.MonthLabel)*glyphW, r.Min.Y+16, 0, fg, d.MonthLabel)
			}
			if !s.ShowDetails {
				continue
			}
			ly := r.Min.Y + 16 + lineH
			for _, ev := range d.Events {
				if ly > r.Max.Y-4 {
					break
				}
				text(dst, r.Min.X+6, ly, r.Dx()-12, fg, "- "+ev.Title)
				ly += lineH
			}
		}
		y += rh
	}
}

func (CalendarScene) tone(tone string, p Palette) (bg, fg color.RGBA) {
	switch tone {
	case calDTO.ToneMuted:
		return p.Muted, p.MutedForeground
	case calDTO.ToneSecondary:
		return p.Secondary, p.SecondaryForeground
	case calDTO.ToneDestructive:
		return p.Destructive, p.DestructiveForeground
	case calDTO.ToneAccent:
		return p.Accent, p.AccentForeground
	default:
		return p.Background, p.Foreground
	}
}
