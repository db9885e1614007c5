package tasklist

import (
	"fmt"
	"iter"
	"strings"

	"github.com/muesli/termenv"

	"tasklist/internal/models"
)

// EmptyMessage is the single line rendered for an empty list.
const EmptyMessage = "No tasks have been input"

var (
	tableBorder = "+----+------------+-------+---+---+" + strings.Repeat("-", models.LineWidth) + "+"
	tableHeader = "| N  |    Date    | Time  | P | D |" +
		strings.Repeat(" ", 19) + "Task" + strings.Repeat(" ", models.LineWidth-23) + "|"
	continuation = "|    |            |       |   |   |"
)

// Palette paints the one-character priority and due swatches.
type Palette struct {
	profile termenv.Profile
}

// NewPalette returns a palette for the given color profile. termenv.Ascii
// renders swatches as plain spaces.
func NewPalette(profile termenv.Profile) Palette {
	return Palette{profile: profile}
}

// Swatch returns a single colored cell for a priority or due code.
func (p Palette) Swatch(code string) string {
	var color termenv.Color
	switch code {
	case string(models.PriorityCritical), string(models.DueOverdue):
		color = termenv.ANSIBrightRed
	case string(models.PriorityHigh), string(models.DueToday):
		color = termenv.ANSIBrightYellow
	case string(models.PriorityNormal), string(models.DueInTime):
		color = termenv.ANSIBrightGreen
	default:
		color = termenv.ANSIBrightBlue
	}
	return p.profile.String(" ").Background(color).String()
}

// Render yields the table one output line at a time. The sequence reads
// the list when iterated, so ranging over it again shows later changes.
func (l *List) Render(p Palette) iter.Seq[string] {
	return func(yield func(string) bool) {
		if len(l.tasks) == 0 {
			yield(EmptyMessage)
			return
		}

		for _, line := range []string{tableBorder, tableHeader, tableBorder} {
			if !yield(line) {
				return
			}
		}

		for i, t := range l.tasks {
			for j, body := range t.Lines {
				var row string
				if j == 0 {
					row = fmt.Sprintf("%s %s | %s | %s | %s |%s|",
						positionCell(i+1), t.Date, t.Time,
						p.Swatch(string(t.Priority)), p.Swatch(string(t.Due)), body)
				} else {
					row = continuation + body + "|"
				}
				if !yield(row) {
					return
				}
			}
			if !yield(tableBorder) {
				return
			}
		}
	}
}

// positionCell pads single-digit positions below 9 with an extra space.
// Position 9 already gets the narrow cell.
func positionCell(n int) string {
	if n < 9 {
		return fmt.Sprintf("| %d  |", n)
	}
	return fmt.Sprintf("| %d |", n)
}
