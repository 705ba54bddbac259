package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/remis/internal/cli"
	"github.com/Veraticus/remis/internal/model"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cli.PrimaryColor).
			Padding(0, 1)
	statusStyle = lipgloss.NewStyle().
			Foreground(cli.InfoColor).
			Italic(true)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	grid := cli.RenderGrid(m.cursor.Year(), m.cursor.Month(), m.cell) + cli.Legend()
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(grid),
		panelStyle.Render(m.summary()),
	)

	var b strings.Builder
	b.WriteString(cli.FormatTitle("remis"))
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.dayDetail())
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keymap))
	return b.String()
}

func (m Model) cell(d model.Date) string {
	_, income := m.stats.IncomeByDay[d.Key()]
	marks := cli.DayMarks{Working: m.cal.IsWorkingDay(d), HasIncome: income}
	return cli.DayCell(d, marks, d.SameDay(m.cursor))
}

func (m Model) summary() string {
	s := m.stats
	lines := []string{
		cli.BoldStyle.Render("Mes"),
		"Ingresos  " + cli.IncomeStyle.Render(cli.FormatMoney(s.TotalIncome, m.currency)),
		"Gastos    " + cli.ExpenseStyle.Render(cli.FormatMoney(s.TotalExpenses, m.currency)),
		"Neto      " + cli.FormatSigned(s.NetIncome, m.currency),
		"",
		fmt.Sprintf("Días laborables  %d", s.TotalWorkDays),
		"Promedio/día     " + cli.FormatMoney(s.AverageDailyIncome, m.currency),
		fmt.Sprintf("Movimientos      %d", s.TransactionCount),
	}
	return strings.Join(lines, "\n")
}

func (m Model) dayDetail() string {
	d := m.cursor
	state := "laborable"
	if !m.cal.IsWorkingDay(d) {
		state = "no laborable"
	}

	line := fmt.Sprintf("%s %s (%s)", cli.MonthName(d.Month()), d.Format("2"), state)
	if v, ok := m.stats.IncomeByDay[d.Key()]; ok {
		line += "  " + cli.IncomeStyle.Render("+"+cli.FormatMoney(v, m.currency))
	}
	if v, ok := m.stats.ExpensesByDay[d.Key()]; ok {
		line += "  " + cli.ExpenseStyle.Render("-"+cli.FormatMoney(v, m.currency))
	}
	return line
}
