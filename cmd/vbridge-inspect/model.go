package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vbridgekit/vbridge/internal/hostval"
	"github.com/vbridgekit/vbridge/pkg/handle"
	"github.com/vbridgekit/vbridge/pkg/vbridge"
)

var (
	primaryColor = lipgloss.Color("#7D56F4")
	mutedColor   = lipgloss.Color("#666666")
	borderColor  = lipgloss.Color("#383838")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).MarginBottom(1)
	reservedRow = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
	selectedRow = lipgloss.NewStyle().Background(primaryColor).Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	paneStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderColor).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(mutedColor)
)

type row struct {
	h        handle.Handle
	kind     string
	value    string
	refs     uint64
	reserved bool
}

type model struct {
	path     string
	guest    *vbridge.Guest
	rows     []row
	cursor   int
	viewport int
	width    int
	height   int
}

func newModel(path string, guest *vbridge.Guest) model {
	return model{path: path, guest: guest, rows: snapshot(guest), viewport: 20}
}

func snapshot(guest *vbridge.Guest) []row {
	var rows []row
	guest.Kernel().Table.Each(func(h handle.Handle, v hostval.Value, refs uint64, reserved bool) {
		rows = append(rows, row{
			h:        h,
			kind:     v.TypeOf(),
			value:    fmt.Sprintf("%v", v),
			refs:     refs,
			reserved: reserved,
		})
	})
	return rows
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.height > 6 {
			m.viewport = m.height - 6
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "r":
			m.rows = snapshot(m.guest)
			if m.cursor >= len(m.rows) {
				m.cursor = len(m.rows) - 1
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	header := headerStyle.Render(fmt.Sprintf("vbridge-inspect — %s (%d handles)", m.path, len(m.rows)))

	start := 0
	if m.cursor >= m.viewport {
		start = m.cursor - m.viewport + 1
	}
	end := start + m.viewport
	if end > len(m.rows) {
		end = len(m.rows)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		r := m.rows[i]
		line := fmt.Sprintf("%6d  %-10s refs=%-4d  %s", r.h, r.kind, r.refs, r.value)
		switch {
		case i == m.cursor:
			line = selectedRow.Render(line)
		case r.reserved:
			line = reservedRow.Render(line)
		}
		lines = append(lines, line)
	}

	body := paneStyle.Render(joinLines(lines))
	status := statusStyle.Render("↑/k ↓/j move  r refresh  q quit")
	return header + "\n" + body + "\n" + status
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
