// Package tui is the interactive month calendar: move between days, mark
// days off, and watch the month's totals follow.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/remis/internal/model"
)

// Calendar is the part of the ledger the calendar view reads and edits.
type Calendar interface {
	IsWorkingDay(date model.Date) bool
	ToggleNonWorkingDay(ctx context.Context, date model.Date) bool
	MonthlyStats(year int, month time.Month) model.MonthlyStats
}

// Model holds the calendar view state.
type Model struct {
	ctx      context.Context
	cal      Calendar
	cursor   model.Date
	stats    model.MonthlyStats
	status   string
	currency string
	help     help.Model
	keymap   KeyMap
	width    int
	quitting bool
}

// NewModel opens the calendar on the month containing start.
func NewModel(ctx context.Context, cal Calendar, start model.Date, currency string) Model {
	m := Model{
		ctx:      ctx,
		cal:      cal,
		cursor:   start,
		currency: currency,
		help:     help.New(),
		keymap:   DefaultKeyMap(),
	}
	m.refresh()
	return m
}

// Cursor returns the selected day.
func (m Model) Cursor() model.Date {
	return m.cursor
}

// Stats returns the totals of the displayed month.
func (m Model) Stats() model.MonthlyStats {
	return m.stats
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keymap.Left):
		m.move(model.DateOf(m.cursor.AddDate(0, 0, -1)))
	case key.Matches(msg, m.keymap.Right):
		m.move(model.DateOf(m.cursor.AddDate(0, 0, 1)))
	case key.Matches(msg, m.keymap.Up):
		m.move(model.DateOf(m.cursor.AddDate(0, 0, -7)))
	case key.Matches(msg, m.keymap.Down):
		m.move(model.DateOf(m.cursor.AddDate(0, 0, 7)))
	case key.Matches(msg, m.keymap.PrevMonth):
		m.move(shiftMonth(m.cursor, -1))
	case key.Matches(msg, m.keymap.NextMonth):
		m.move(shiftMonth(m.cursor, 1))
	case key.Matches(msg, m.keymap.Today):
		m.move(model.Today())

	case key.Matches(msg, m.keymap.Toggle):
		m.toggle()
	}
	return m, nil
}

// move selects to, recomputing the totals when the month changes.
func (m *Model) move(to model.Date) {
	changed := !to.InMonth(m.cursor.Year(), m.cursor.Month())
	m.cursor = to
	m.status = ""
	if changed {
		m.refresh()
	}
}

func (m *Model) toggle() {
	d := m.cursor
	if m.cal.ToggleNonWorkingDay(m.ctx, d) {
		m.status = fmt.Sprintf("%s marked as a day off", d.Key())
	} else if m.cal.IsWorkingDay(d) {
		m.status = fmt.Sprintf("%s is a working day again", d.Key())
	} else {
		m.status = fmt.Sprintf("%s unmarked, its weekday is off every week", d.Key())
	}
	m.refresh()
}

func (m *Model) refresh() {
	m.stats = m.cal.MonthlyStats(m.cursor.Year(), m.cursor.Month())
}

// shiftMonth moves d by n months, clamping the day to the target month's
// length.
func shiftMonth(d model.Date, n int) model.Date {
	first := model.NewDate(d.Year(), d.Month()+time.Month(n), 1)
	last := model.NewDate(first.Year(), first.Month()+1, 0).Day()
	return model.NewDate(first.Year(), first.Month(), min(d.Day(), last))
}
