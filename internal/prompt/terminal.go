package prompt

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Terminal is a Prompter that renders each prompt as a short-lived
// bubbletea program on the given input and output.
type Terminal struct {
	in  io.Reader
	out io.Writer

	Keys  KeyMap
	Theme Theme

	// Now supplies the default date for date prompts.
	Now func() time.Time
}

var _ Prompter = (*Terminal)(nil)

// NewTerminal creates a terminal prompter reading keys from in and
// rendering to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:    in,
		out:   out,
		Keys:  DefaultKeyMap,
		Theme: DefaultTheme,
		Now:   time.Now,
	}
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Select implements Prompter.
func (t *Terminal) Select(label string, options []string) (Answer[int], error) {
	final, err := t.run(selectModel{
		label:   label,
		options: options,
		keys:    t.Keys,
		theme:   t.Theme,
	})
	if err != nil {
		return Cancelled[int](), err
	}
	return answerOf(final, func(m selectModel) int { return m.cursor })
}

// Confirm implements Prompter.
func (t *Terminal) Confirm(label string) (Answer[bool], error) {
	final, err := t.run(confirmModel{
		label: label,
		keys:  t.Keys,
		theme: t.Theme,
	})
	if err != nil {
		return Cancelled[bool](), err
	}
	return answerOf(final, func(m confirmModel) bool { return m.value })
}

// Text implements Prompter.
func (t *Terminal) Text(label, placeholder string, validate func(string) error) (Answer[string], error) {
	final, err := t.run(newTextModel(label, placeholder, validate, t.Keys, t.Theme))
	if err != nil {
		return Cancelled[string](), err
	}
	return answerOf(final, func(m textModel) string { return m.value() })
}

// Date implements Prompter.
func (t *Terminal) Date(label string, r *DateRange) (Answer[time.Time], error) {
	final, err := t.run(newDateModel(label, r, t.Now(), t.Keys, t.Theme))
	if err != nil {
		return Cancelled[time.Time](), err
	}
	return answerOf(final, func(m dateModel) time.Time { return m.date })
}

// run executes one prompt program to completion.
func (t *Terminal) run(m finished) (finished, error) {
	program := tea.NewProgram(m, tea.WithInput(t.in), tea.WithOutput(t.out))
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputClosed, err)
	}
	result, ok := final.(finished)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected prompt model %T", ErrInputClosed, final)
	}
	return result, nil
}

// answerOf converts the final model of a prompt program into an Answer.
func answerOf[M finished, T any](final finished, value func(M) T) (Answer[T], error) {
	m, ok := final.(M)
	if !ok {
		return Cancelled[T](), fmt.Errorf("%w: unexpected prompt model %T", ErrInputClosed, final)
	}
	switch m.outcome() {
	case statusDone:
		return Answered(value(m)), nil
	case statusAborted, statusActive:
		return Cancelled[T](), ErrInputClosed
	default:
		return Cancelled[T](), nil
	}
}
