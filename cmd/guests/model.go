package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmoreno/invitado/internal/dashboard"
	"github.com/dmoreno/invitado/internal/models"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ade80"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80"))
	selectedStyle = lipgloss.NewStyle().Bold(true)
	inactiveStyle = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("240"))
	confirmStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	declineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// sortCycle is the order the sort hotkey walks through.
var sortCycle = []string{
	dashboard.SortByTimestamp,
	dashboard.SortByName,
	dashboard.SortByAttendance,
	dashboard.SortByAdults,
	dashboard.SortByKids,
	dashboard.SortByIndex,
}

var sortLabels = map[string]string{
	dashboard.SortByTimestamp:  "fecha",
	dashboard.SortByName:       "invitado",
	dashboard.SortByAttendance: "asistencia",
	dashboard.SortByAdults:     "adultos",
	dashboard.SortByKids:       "niños",
	dashboard.SortByIndex:      "#",
}

// -- messages --

type loadedMsg struct {
	fromCache bool
	err       error
}

type actionMsg struct {
	note string
	err  error
}

// -- model --

type model struct {
	dash      *dashboard.Dashboard
	cursor    int
	searching bool
	search    string
	sortIdx   int
	confirmID string // pending delete target, second "d" confirms
	status    string
	loading   bool
	width     int
	height    int
}

func newModel(dash *dashboard.Dashboard) model {
	return model{dash: dash, loading: true}
}

func (m model) Init() tea.Cmd {
	return m.load()
}

func (m model) load() tea.Cmd {
	dash := m.dash
	return func() tea.Msg {
		fromCache := dash.LoadCached(context.Background())
		err := dash.Refresh(context.Background())
		return loadedMsg{fromCache: fromCache, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			if msg.fromCache {
				m.status = errStyle.Render("sin conexión, mostrando copia local")
			} else {
				m.status = errStyle.Render("error: " + msg.err.Error())
			}
		} else {
			m.status = ""
		}
		m.clampCursor()

	case actionMsg:
		if msg.err != nil {
			m.status = errStyle.Render("error: " + msg.err.Error())
		} else {
			m.status = dimStyle.Render(msg.note)
		}
		m.clampCursor()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter", "esc":
			m.searching = false
		case "backspace":
			if len(m.search) > 0 {
				runes := []rune(m.search)
				m.search = string(runes[:len(runes)-1])
				m.dash.Filter(m.search)
				m.cursor = 0
			}
		default:
			if msg.Type == tea.KeyRunes {
				m.search += string(msg.Runes)
				m.dash.Filter(m.search)
				m.cursor = 0
			}
		}
		return m, nil
	}

	rows := m.dash.Rows()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "l", "right":
		m.dash.NextPage()
		m.cursor = 0
	case "h", "left":
		m.dash.PrevPage()
		m.cursor = 0

	case "/":
		m.searching = true
		m.search = ""
		m.dash.Filter("")
		m.cursor = 0

	case "o":
		m.sortIdx = (m.sortIdx + 1) % len(sortCycle)
		key := sortCycle[m.sortIdx]
		if cur, _ := m.dash.SortState(); cur != key {
			m.dash.Sort(key)
		}
		m.cursor = 0
	case "O":
		key, _ := m.dash.SortState()
		m.dash.Sort(key) // same key toggles direction
		m.cursor = 0

	case "c":
		if g, ok := m.selected(rows); ok {
			if g.Link == "" {
				m.status = dimStyle.Render("este invitado no tiene enlace")
			} else if err := clipboard.WriteAll(g.Link); err != nil {
				m.status = errStyle.Render("no se pudo copiar: " + err.Error())
			} else {
				m.status = dimStyle.Render("enlace copiado: " + g.Link)
			}
		}

	case "t":
		if g, ok := m.selected(rows); ok {
			dash := m.dash
			id := g.ID
			return m, func() tea.Msg {
				err := dash.ToggleActive(context.Background(), id)
				return actionMsg{note: "estado cambiado", err: err}
			}
		}

	case "d":
		if g, ok := m.selected(rows); ok {
			if m.confirmID != g.ID {
				m.confirmID = g.ID
				m.status = errStyle.Render("¿eliminar a " + g.Name + "? pulsa d otra vez")
				return m, nil
			}
			m.confirmID = ""
			dash := m.dash
			id := g.ID
			return m, func() tea.Msg {
				err := dash.Delete(context.Background(), id)
				return actionMsg{note: "invitado eliminado", err: err}
			}
		}

	case "r":
		m.loading = true
		return m, m.load()

	case "esc":
		m.confirmID = ""
		m.status = ""
	}

	if msg.String() != "d" {
		m.confirmID = ""
	}
	return m, nil
}

func (m *model) clampCursor() {
	if n := len(m.dash.Rows()); m.cursor >= n {
		m.cursor = 0
	}
}

func (m model) selected(rows []models.Guest) (models.Guest, bool) {
	if len(rows) == 0 || m.cursor >= len(rows) {
		return models.Guest{}, false
	}
	return rows[m.cursor], true
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(" " + titleStyle.Render("Invitados") + "\n")
	b.WriteString(" " + m.statsLine() + "\n\n")

	if m.searching || m.search != "" {
		prompt := "/" + m.search
		if m.searching {
			prompt += "▌"
		}
		b.WriteString(" " + accentStyle.Render(prompt) + "\n")
	}

	if m.loading {
		b.WriteString(" " + dimStyle.Render("cargando...") + "\n")
		return b.String()
	}

	rows := m.dash.Rows()
	if len(rows) == 0 {
		b.WriteString(" " + dimStyle.Render("sin invitados") + "\n")
	}

	for i, g := range rows {
		cursor := " "
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
		}

		name := fmt.Sprintf("%-24s", truncate(g.Name, 24))
		if i == m.cursor {
			name = selectedStyle.Render(name)
		}
		if !g.Active {
			name = inactiveStyle.Render(name)
		}

		att := fmt.Sprintf("%-10s", g.Attendance)
		switch {
		case g.Attendance.Confirmed():
			att = confirmStyle.Render(att)
		case g.Attendance.Declined():
			att = declineStyle.Render(att)
		default:
			att = dimStyle.Render(att)
		}

		row := fmt.Sprintf(" %s %s %s  %s %s  %s",
			cursor,
			dimStyle.Render(fmt.Sprintf("%3d", m.dash.RowNumber(g.ID))),
			name,
			att,
			fmt.Sprintf("%2dA %2dN", g.Adults, g.Kids),
			dimStyle.Render(g.ID),
		)
		b.WriteString(row + "\n")
	}

	b.WriteString("\n " + m.pageLine() + "\n")
	if m.status != "" {
		b.WriteString(" " + m.status + "\n")
	}
	b.WriteString(" " + m.helpLine() + "\n")
	return b.String()
}

func (m model) statsLine() string {
	s := m.dash.Stats()
	return dimStyle.Render(fmt.Sprintf(
		"adultos %d/%d · niños %d/%d · confirman %d · declinan %d · activas %d",
		s.ConfirmedAdults, s.TotalAdults, s.ConfirmedKids, s.TotalKids,
		s.Accepted, s.Declined, s.ActiveInvites,
	))
}

func (m model) pageLine() string {
	var parts []string
	for _, n := range m.dash.PageWindow() {
		switch {
		case n == dashboard.Ellipsis:
			parts = append(parts, dimStyle.Render("…"))
		case n == m.dash.CurrentPage():
			parts = append(parts, accentStyle.Render(fmt.Sprintf("[%d]", n)))
		default:
			parts = append(parts, dimStyle.Render(fmt.Sprintf("%d", n)))
		}
	}
	key, asc := m.dash.SortState()
	dir := "↓"
	if asc {
		dir = "↑"
	}
	return strings.Join(parts, " ") + "   " + dimStyle.Render("orden: "+sortLabels[key]+" "+dir)
}

func (m model) helpLine() string {
	return dimStyle.Render("j/k fila · h/l página · / buscar · o orden · O dirección · c copiar enlace · t activar · d eliminar · r recargar · q salir")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
