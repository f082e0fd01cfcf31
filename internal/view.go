package internal

import (
	"fmt"
	"strconv"
	"strings"

	"health_tracker/internal/entry"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
)

const fieldsPerRow = 3

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	fieldStyle = lipgloss.NewStyle().
			Width(32).
			MarginRight(2)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	inputInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 2)

	updateButtonStyle = buttonStyle.
				Background(lipgloss.Color("136"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")).
			Bold(true)

	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

func tableColumns() []table.Column {
	columns := []table.Column{{Title: "Date", Width: 10}}
	for _, f := range entry.Fields {
		columns = append(columns, table.Column{
			Title: f.Column(),
			Width: max(len(f.Column()), 8),
		})
	}
	return append(columns, table.Column{Title: "Actions", Width: 14})
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("86"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	return s
}

func (m *Model) tableRows() []table.Row {
	rows := make([]table.Row, 0, m.Store.Len())
	for _, e := range m.Store.All() {
		row := table.Row{e.Date}
		for _, f := range entry.Fields {
			row = append(row, e.Get(f))
		}
		rows = append(rows, append(row, "e Edit  d Del"))
	}
	return rows
}

func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Health Tracker"))
	sb.WriteString("  ")
	sb.WriteString(dateStyle.Render(m.Today))
	sb.WriteString("\n\n")

	sb.WriteString(m.formView())
	sb.WriteString("\n")

	if msg := m.errorMessage(); msg != "" {
		sb.WriteString(errorStyle.Render(msg))
		sb.WriteString("\n")
	}

	sb.WriteString(m.buttonView())
	sb.WriteString("\n\n")

	sb.WriteString(headerStyle.Render("Monitor Progress"))
	sb.WriteString("\n\n")
	sb.WriteString(m.historyView())
	sb.WriteString("\n\n")

	if m.ConfirmClear {
		sb.WriteString(warnStyle.Render(fmt.Sprintf("Delete all %d logs? (y/n)", m.Store.Len())))
		sb.WriteString("\n")
	}
	sb.WriteString(helpStyle.Render(m.helpText()))

	return sb.String()
}

func (m *Model) formView() string {
	var rows []string
	for start := 0; start < len(entry.Fields); start += fieldsPerRow {
		end := min(start+fieldsPerRow, len(entry.Fields))

		var cells []string
		for i := start; i < end; i++ {
			cells = append(cells, m.fieldView(i))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) fieldView(i int) string {
	f := entry.Fields[i]
	focused := m.Focus == focusForm && m.InputFocus == i

	marker := "  "
	label := inputInactiveStyle
	if focused {
		marker = "→ "
		label = inputStyle
	}

	return fieldStyle.Render(
		label.Render(marker+f.Label()) + "\n" +
			"  " + m.Inputs[i].View() + "\n",
	)
}

func (m *Model) errorMessage() string {
	if m.Err != nil {
		return m.Err.Error()
	}
	if err := m.Form.Err(); err != nil {
		return err.Error()
	}
	return ""
}

func (m *Model) buttonView() string {
	if m.Editing() {
		return updateButtonStyle.Render("Update")
	}
	return buttonStyle.Render("Submit")
}

func (m *Model) historyView() string {
	if m.Store.Len() == 0 {
		return inactiveStyle.Render("No logs to display")
	}
	return boxStyle.Render(m.Table.View())
}

func (m *Model) helpText() string {
	if m.Focus == focusTable {
		return "Navigate: Up/Down | Edit: e | Delete: d | Delete all: D | Form: Tab | Quit: q"
	}
	if m.Editing() {
		return "Next: Tab | Prev: Shift+Tab | Update: Enter | Cancel edit: Esc | Quit: Ctrl+C"
	}
	return "Next: Tab | Prev: Shift+Tab | Submit: Enter | History: Esc | Quit: Ctrl+C"
}

// RenderHistory draws entries as a static table for non-interactive output.
func RenderHistory(entries []entry.Entry) string {
	headers := []string{"#", "Date"}
	for _, f := range entry.Fields {
		headers = append(headers, f.Column())
	}

	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		row := []string{strconv.Itoa(i), e.Date}
		for _, f := range entry.Fields {
			row = append(row, e.Get(f))
		}
		rows = append(rows, row)
	}

	return ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(inactiveStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			// row 0 is the header
			if row == 0 {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...).
		Render()
}
