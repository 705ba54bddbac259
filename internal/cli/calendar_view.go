package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/remis/internal/model"
)

// WeekdayHeaders are the column titles of the month grid, Sunday first.
var WeekdayHeaders = [7]string{"Do", "Lu", "Ma", "Mi", "Ju", "Vi", "Sá"}

// DayMarks describes how one day of the grid is drawn.
type DayMarks struct {
	Working   bool
	HasIncome bool
}

// Cell markers.
const (
	markIncome     = "•"
	markNonWorking = "x"
)

// RenderMonth draws a Sunday-first month grid. Days with income get a dot;
// other non-working days are dimmed and marked x.
func RenderMonth(year int, month time.Month, marks func(model.Date) DayMarks) string {
	grid := RenderGrid(year, month, func(d model.Date) string {
		return DayCell(d, marks(d), false)
	})
	return grid + Legend()
}

// RenderGrid draws the title, weekday headers and one cell per day of the
// month. Each cell must be four columns wide.
func RenderGrid(year int, month time.Month, cell func(model.Date) string) string {
	var b strings.Builder

	title := fmt.Sprintf("%s %d", MonthName(month), year)
	b.WriteString(BoldStyle.Render(title))
	b.WriteString("\n")

	for _, h := range WeekdayHeaders {
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("%4s", h)))
	}
	b.WriteString("\n")

	first := model.NewDate(year, month, 1)
	lead := int(first.Weekday())
	b.WriteString(strings.Repeat("    ", lead))

	col := lead
	for d := first; d.InMonth(year, month); d = model.DateOf(d.AddDate(0, 0, 1)) {
		b.WriteString(cell(d))
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}
	return b.String()
}

// Legend explains the cell markers.
func Legend() string {
	return SubtleStyle.Render(fmt.Sprintf("%s ingreso   %s no laborable", markIncome, markNonWorking))
}

// DayCell renders one four-column grid cell. A selected cell is drawn in
// reverse video.
func DayCell(d model.Date, m DayMarks, selected bool) string {
	suffix := " "
	style := lipgloss.NewStyle()
	switch {
	case m.HasIncome:
		suffix = markIncome
		style = IncomeStyle
	case !m.Working:
		suffix = markNonWorking
		style = SubtleStyle
	}
	if selected {
		style = style.Reverse(true)
	}
	return style.Render(fmt.Sprintf("%3d%s", d.Day(), suffix))
}

var monthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthName returns the Spanish name of month.
func MonthName(month time.Month) string {
	return monthNames[month-1]
}
