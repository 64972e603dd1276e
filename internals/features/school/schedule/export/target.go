package export

// Container builds the export target as the page lays it out: a padded,
// horizontally scrolling wrapper that carries the theme class. Calendar
// containers also hold the per-day event lines, hidden on narrow screens.
func Container(kind Kind, dark bool, days int) *Element {
	class := "p-4 w-fit overflow-x-auto max-w-full"
	if dark {
		class += " dark"
	}
	grid := NewElement("div", "grid grid-cols-7 gap-1", "")
	if kind == KindCalendar {
		for i := 0; i < days; i++ {
			grid.Kids = append(grid.Kids, NewElement("div", "text-xs hidden md:block", ""))
		}
	} else {
		grid = NewElement("div", "timetable", "overflow-x: auto")
	}
	return NewElement("div", class, "overflow-x: auto; max-width: 1024px", grid)
}
