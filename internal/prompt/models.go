package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// status tracks how a prompt program ended.
type status int

const (
	statusActive status = iota
	statusDone
	statusCancelled
	statusAborted
)

// finished is implemented by every prompt model so the runner can read the
// final status without knowing the concrete model.
type finished interface {
	tea.Model
	outcome() status
}

// handleCommon applies the bindings shared by all prompts. It reports true
// when the key ended the prompt.
func handleCommon(msg tea.KeyMsg, keys KeyMap, st *status) bool {
	switch {
	case key.Matches(msg, keys.Abort):
		*st = statusAborted
		return true
	case key.Matches(msg, keys.Cancel):
		*st = statusCancelled
		return true
	}
	return false
}

func renderFinal(theme Theme, label string, st status, answer string) string {
	if st == statusCancelled {
		return theme.Label.Render(label) + " " + theme.Help.Render("<canceled>") + "\n"
	}
	if st == statusAborted {
		return theme.Label.Render(label) + "\n"
	}
	return theme.Label.Render(label) + " " + theme.Answer.Render(answer) + "\n"
}

type selectModel struct {
	label   string
	options []string
	cursor  int
	status  status
	keys    KeyMap
	theme   Theme
}

func (m selectModel) outcome() status { return m.status }

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if handleCommon(keyMsg, m.keys, &m.status) {
		return m, tea.Quit
	}
	switch {
	case key.Matches(keyMsg, m.keys.Submit):
		if len(m.options) > 0 {
			m.status = statusDone
			return m, tea.Quit
		}
	case key.Matches(keyMsg, m.keys.Up):
		m.cursor--
		if m.cursor < 0 {
			m.cursor = len(m.options) - 1
		}
	case key.Matches(keyMsg, m.keys.Down):
		m.cursor++
		if m.cursor >= len(m.options) {
			m.cursor = 0
		}
	}
	return m, nil
}

func (m selectModel) View() string {
	if m.status != statusActive {
		answer := ""
		if m.cursor >= 0 && m.cursor < len(m.options) {
			answer = m.options[m.cursor]
		}
		return renderFinal(m.theme, m.label, m.status, answer)
	}

	var b strings.Builder
	b.WriteString(m.theme.Label.Render(m.label))
	b.WriteString("\n")
	for i, option := range m.options {
		if i == m.cursor {
			b.WriteString(m.theme.Cursor.Render("> "))
			b.WriteString(m.theme.Selected.Render(option))
		} else {
			b.WriteString("  ")
			b.WriteString(m.theme.Option.Render(option))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Help.Render("↑/↓ move • enter select • esc back"))
	b.WriteString("\n")
	return b.String()
}

type confirmModel struct {
	label  string
	value  bool
	status status
	keys   KeyMap
	theme  Theme
}

func (m confirmModel) outcome() status { return m.status }

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if handleCommon(keyMsg, m.keys, &m.status) {
		return m, tea.Quit
	}
	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		m.value = true
		m.status = statusDone
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.No), key.Matches(keyMsg, m.keys.Submit):
		// Enter takes the default, which is No.
		m.value = false
		m.status = statusDone
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.status != statusActive {
		answer := "No"
		if m.value {
			answer = "Yes"
		}
		return renderFinal(m.theme, m.label, m.status, answer)
	}
	return m.theme.Label.Render(m.label) + " " + m.theme.Help.Render("(y/N)") + "\n"
}

type textModel struct {
	label    string
	input    textinput.Model
	validate func(string) error
	err      error
	status   status
	keys     KeyMap
	theme    Theme
}

func newTextModel(label, placeholder string, validate func(string) error, keys KeyMap, theme Theme) textModel {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Focus()
	return textModel{
		label:    label,
		input:    input,
		validate: validate,
		keys:     keys,
		theme:    theme,
	}
}

func (m textModel) outcome() status { return m.status }

func (m textModel) value() string { return strings.TrimSpace(m.input.Value()) }

func (m textModel) Init() tea.Cmd { return textinput.Blink }

func (m textModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if handleCommon(keyMsg, m.keys, &m.status) {
			return m, tea.Quit
		}
		if key.Matches(keyMsg, m.keys.Submit) {
			if m.validate != nil {
				if err := m.validate(m.value()); err != nil {
					m.err = err
					return m, nil
				}
			}
			m.status = statusDone
			return m, tea.Quit
		}
		m.err = nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textModel) View() string {
	if m.status != statusActive {
		return renderFinal(m.theme, m.label, m.status, m.value())
	}
	view := m.theme.Label.Render(m.label) + " " + m.input.View() + "\n"
	if m.err != nil {
		view += m.theme.Error.Render("  "+m.err.Error()) + "\n"
	}
	return view
}

type dateModel struct {
	label  string
	input  textinput.Model
	rng    *DateRange
	date   time.Time
	err    error
	status status
	keys   KeyMap
	theme  Theme
}

func newDateModel(label string, rng *DateRange, today time.Time, keys KeyMap, theme Theme) dateModel {
	initial := Day(today)
	if rng != nil {
		initial = rng.Clamp(initial)
	}
	input := textinput.New()
	input.Placeholder = "YYYY-MM-DD"
	input.CharLimit = len(DateLayout)
	input.SetValue(initial.Format(DateLayout))
	input.Focus()
	return dateModel{
		label: label,
		input: input,
		rng:   rng,
		keys:  keys,
		theme: theme,
	}
}

func (m dateModel) outcome() status { return m.status }

func (m dateModel) Init() tea.Cmd { return textinput.Blink }

func (m dateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if handleCommon(keyMsg, m.keys, &m.status) {
			return m, tea.Quit
		}
		switch {
		case key.Matches(keyMsg, m.keys.Submit):
			d, err := checkDate(m.input.Value(), m.rng)
			if err != nil {
				m.err = err
				return m, nil
			}
			m.date = d
			m.status = statusDone
			return m, tea.Quit
		case key.Matches(keyMsg, m.keys.NextDay):
			m.step(1)
			return m, nil
		case key.Matches(keyMsg, m.keys.PrevDay):
			m.step(-1)
			return m, nil
		}
		m.err = nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// step moves the entered date by days, staying inside the range.
func (m *dateModel) step(days int) {
	d, err := ParseDate(strings.TrimSpace(m.input.Value()))
	if err != nil {
		return
	}
	d = d.AddDate(0, 0, days)
	if m.rng != nil {
		d = m.rng.Clamp(d)
	}
	m.input.SetValue(d.Format(DateLayout))
	m.input.CursorEnd()
	m.err = nil
}

func (m dateModel) View() string {
	if m.status != statusActive {
		return renderFinal(m.theme, m.label, m.status, m.date.Format(DateLayout))
	}
	view := m.theme.Label.Render(m.label) + " " + m.input.View()
	if m.rng != nil {
		view += " " + m.theme.Help.Render("("+m.rng.String()+")")
	}
	view += "\n"
	if m.err != nil {
		view += m.theme.Error.Render("  "+m.err.Error()) + "\n"
	}
	return view
}

// checkDate parses s and verifies it lies within r when r is non-nil.
func checkDate(s string, r *DateRange) (time.Time, error) {
	d, err := ParseDate(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	if r != nil && !r.Contains(d) {
		return time.Time{}, fmt.Errorf("date must be between %s", r)
	}
	return d, nil
}
