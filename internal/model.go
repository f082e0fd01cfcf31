package internal

import (
	"log/slog"
	"time"

	"health_tracker/internal/entry"
	"health_tracker/internal/form"
	"health_tracker/internal/logstore"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// MsgTick refreshes the date shown in the header.
type MsgTick struct{}

type focusArea int

const (
	focusForm focusArea = iota
	focusTable
)

type Model struct {
	Form         *form.Form
	Store        *logstore.Store
	Inputs       []textinput.Model
	InputFocus   int
	Table        table.Model
	Focus        focusArea
	ConfirmClear bool
	Err          error
	Today        string

	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Model)

func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewModel builds the UI over an already loaded store.
func NewModel(store *logstore.Store, opts ...Option) *Model {
	m := &Model{
		Store:  store,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.Form = form.New(store, form.WithClock(m.now), form.WithLogger(m.logger))
	m.Today = entry.Stamp(m.now())

	m.Inputs = make([]textinput.Model, len(entry.Fields))
	for i, f := range entry.Fields {
		m.Inputs[i] = newInput(f)
	}
	m.Inputs[0].Focus()

	m.Table = table.New(
		table.WithColumns(tableColumns()),
		table.WithRows(m.tableRows()),
		table.WithHeight(10),
	)
	m.Table.SetStyles(tableStyles())

	return m
}

func newInput(f entry.Field) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 32
	ti.Width = 24
	if f.Numeric() {
		ti.Placeholder = "0"
	} else {
		ti.Placeholder = "120/80"
	}
	return ti
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgTick:
		m.Today = entry.Stamp(m.now())
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m, nil
	}

	// cursor blink
	var cmd tea.Cmd
	m.Inputs[m.InputFocus], cmd = m.Inputs[m.InputFocus].Update(msg)
	return m, cmd
}

// Editing reports whether the form is updating an existing entry.
func (m *Model) Editing() bool {
	_, ok := m.Form.Editing()
	return ok
}

// syncInputs copies the draft into the inputs.
func (m *Model) syncInputs() {
	draft := m.Form.Draft()
	for i, f := range entry.Fields {
		m.Inputs[i].SetValue(draft.Get(f))
		m.Inputs[i].CursorEnd()
	}
}

func (m *Model) focusInput(i int) tea.Cmd {
	for j := range m.Inputs {
		m.Inputs[j].Blur()
	}
	m.InputFocus = i
	return m.Inputs[i].Focus()
}

func (m *Model) focusForm() tea.Cmd {
	m.Table.Blur()
	m.Focus = focusForm
	return m.focusInput(m.InputFocus)
}

func (m *Model) focusTable() {
	for j := range m.Inputs {
		m.Inputs[j].Blur()
	}
	m.Table.Focus()
	m.Focus = focusTable
}

func (m *Model) refreshTable() {
	m.Table.SetRows(m.tableRows())
	n := m.Store.Len()
	if n == 0 {
		return
	}
	if c := m.Table.Cursor(); c < 0 || c >= n {
		m.Table.SetCursor(min(max(c, 0), n-1))
	}
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.ConfirmClear {
		return m.handleConfirmClear(msg)
	}

	if m.Focus == focusTable {
		return m.handleTableInput(msg)
	}

	return m.handleFormInput(msg)
}

func (m *Model) handleFormInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.Inputs)

	switch msg.String() {
	case "esc":
		if m.Editing() {
			m.Form.CancelEdit()
			m.syncInputs()
			return m, nil
		}
		m.focusTable()
		return m, nil
	case "tab", "down":
		return m, m.focusInput((m.InputFocus + 1) % n)
	case "shift+tab", "up":
		return m, m.focusInput((m.InputFocus - 1 + n) % n)
	case "enter":
		m.Err = nil
		if err := m.Form.Submit(); err != nil {
			m.logger.Debug("submit rejected", "error", err)
			return m, nil
		}
		m.syncInputs()
		m.refreshTable()
		return m, m.focusInput(0)
	}

	field := entry.Fields[m.InputFocus]
	if field.Numeric() && (msg.Type == tea.KeySpace || msg.Type == tea.KeyRunes && !numericRunes(msg.Runes)) {
		return m, nil
	}

	var cmd tea.Cmd
	m.Inputs[m.InputFocus], cmd = m.Inputs[m.InputFocus].Update(msg)
	m.Form.Set(field, m.Inputs[m.InputFocus].Value())
	return m, cmd
}

func (m *Model) handleTableInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab", "n", "esc":
		return m, m.focusForm()
	case "e", "enter":
		if m.Store.Len() == 0 {
			return m, nil
		}
		if err := m.Form.BeginEdit(m.Table.Cursor()); err != nil {
			return m, nil
		}
		m.syncInputs()
		m.InputFocus = 0
		return m, m.focusForm()
	case "d", "delete":
		if m.Store.Len() == 0 {
			return m, nil
		}
		editing := m.Editing()
		if err := m.Form.DeleteAt(m.Table.Cursor()); err != nil {
			return m, nil
		}
		if editing && !m.Editing() {
			m.syncInputs()
		}
		m.refreshTable()
		return m, nil
	case "D":
		if m.Store.Len() > 0 {
			m.ConfirmClear = true
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmClear(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.ConfirmClear = false
	if msg.String() != "y" {
		return m, nil
	}

	m.Err = nil
	if err := m.Store.Clear(); err != nil {
		m.Err = err
		return m, nil
	}
	m.logger.Info("logs cleared")
	m.Form.CancelEdit()
	m.syncInputs()
	m.refreshTable()
	return m, nil
}

func numericRunes(runes []rune) bool {
	for _, r := range runes {
		if (r < '0' || r > '9') && r != '.' && r != '-' {
			return false
		}
	}
	return true
}
