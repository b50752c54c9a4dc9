package testutil

import (
	"fmt"
	"slices"
	"time"

	"twilly/internal/prompt"
)

// PromptKind names a Prompter method.
type PromptKind string

const (
	KindSelect  PromptKind = "select"
	KindConfirm PromptKind = "confirm"
	KindText    PromptKind = "text"
	KindDate    PromptKind = "date"
)

// PromptCall records one prompt shown to the user.
type PromptCall struct {
	Kind    PromptKind
	Label   string
	Options []string
	Range   *prompt.DateRange
}

type step struct {
	kind     PromptKind
	cancel   bool
	index    int
	option   string
	yes      bool
	text     string
	date     time.Time
	closeErr bool
}

// ScriptedPrompter is a prompt.Prompter that replays scripted answers in
// order. When the script runs out, or the next answer is for a different
// kind of prompt, it returns prompt.ErrInputClosed so loops under test end.
//
// Text answers rejected by the validator and dates outside the range are
// treated like a real terminal would: the input is rejected, recorded in
// Rejected, and the next scripted answer is used for the same prompt.
type ScriptedPrompter struct {
	steps []step

	Calls    []PromptCall
	Rejected []string
}

var _ prompt.Prompter = (*ScriptedPrompter)(nil)

// NewScriptedPrompter creates an empty script.
func NewScriptedPrompter() *ScriptedPrompter {
	return &ScriptedPrompter{}
}

// Choose scripts a selection by option text.
func (s *ScriptedPrompter) Choose(option string) *ScriptedPrompter {
	s.steps = append(s.steps, step{kind: KindSelect, option: option, index: -1})
	return s
}

// ChooseIndex scripts a selection by position.
func (s *ScriptedPrompter) ChooseIndex(i int) *ScriptedPrompter {
	s.steps = append(s.steps, step{kind: KindSelect, index: i})
	return s
}

// Answer scripts a confirmation.
func (s *ScriptedPrompter) Answer(yes bool) *ScriptedPrompter {
	s.steps = append(s.steps, step{kind: KindConfirm, yes: yes})
	return s
}

// Type scripts a line of text.
func (s *ScriptedPrompter) Type(text string) *ScriptedPrompter {
	s.steps = append(s.steps, step{kind: KindText, text: text})
	return s
}

// Pick scripts a date.
func (s *ScriptedPrompter) Pick(d time.Time) *ScriptedPrompter {
	s.steps = append(s.steps, step{kind: KindDate, date: d})
	return s
}

// Cancel scripts backing out of a prompt of the given kind.
func (s *ScriptedPrompter) Cancel(kind PromptKind) *ScriptedPrompter {
	s.steps = append(s.steps, step{kind: kind, cancel: true})
	return s
}

// Close scripts losing the input stream at the next prompt.
func (s *ScriptedPrompter) Close() *ScriptedPrompter {
	s.steps = append(s.steps, step{closeErr: true})
	return s
}

// Remaining returns how many scripted answers were not consumed.
func (s *ScriptedPrompter) Remaining() int {
	return len(s.steps)
}

// Labels returns the labels of every prompt shown, in order.
func (s *ScriptedPrompter) Labels() []string {
	labels := make([]string, len(s.Calls))
	for i, c := range s.Calls {
		labels[i] = c.Label
	}
	return labels
}

func (s *ScriptedPrompter) next(kind PromptKind) (step, error) {
	if len(s.steps) == 0 {
		return step{}, fmt.Errorf("%w: script exhausted at %s prompt", prompt.ErrInputClosed, kind)
	}
	st := s.steps[0]
	s.steps = s.steps[1:]
	if st.closeErr {
		return step{}, prompt.ErrInputClosed
	}
	if st.kind != kind {
		return step{}, fmt.Errorf("%w: scripted %s answer for %s prompt", prompt.ErrInputClosed, st.kind, kind)
	}
	return st, nil
}

// Select implements prompt.Prompter.
func (s *ScriptedPrompter) Select(label string, options []string) (prompt.Answer[int], error) {
	s.Calls = append(s.Calls, PromptCall{Kind: KindSelect, Label: label, Options: slices.Clone(options)})
	st, err := s.next(KindSelect)
	if err != nil {
		return prompt.Cancelled[int](), err
	}
	if st.cancel {
		return prompt.Cancelled[int](), nil
	}
	index := st.index
	if index < 0 {
		index = slices.Index(options, st.option)
		if index < 0 {
			return prompt.Cancelled[int](), fmt.Errorf("%w: option %q not offered in %q", prompt.ErrInputClosed, st.option, options)
		}
	}
	return prompt.Answered(index), nil
}

// Confirm implements prompt.Prompter.
func (s *ScriptedPrompter) Confirm(label string) (prompt.Answer[bool], error) {
	s.Calls = append(s.Calls, PromptCall{Kind: KindConfirm, Label: label})
	st, err := s.next(KindConfirm)
	if err != nil {
		return prompt.Cancelled[bool](), err
	}
	if st.cancel {
		return prompt.Cancelled[bool](), nil
	}
	return prompt.Answered(st.yes), nil
}

// Text implements prompt.Prompter.
func (s *ScriptedPrompter) Text(label, placeholder string, validate func(string) error) (prompt.Answer[string], error) {
	s.Calls = append(s.Calls, PromptCall{Kind: KindText, Label: label})
	for {
		st, err := s.next(KindText)
		if err != nil {
			return prompt.Cancelled[string](), err
		}
		if st.cancel {
			return prompt.Cancelled[string](), nil
		}
		if validate != nil {
			if err := validate(st.text); err != nil {
				s.Rejected = append(s.Rejected, st.text)
				continue
			}
		}
		return prompt.Answered(st.text), nil
	}
}

// Date implements prompt.Prompter.
func (s *ScriptedPrompter) Date(label string, r *prompt.DateRange) (prompt.Answer[time.Time], error) {
	call := PromptCall{Kind: KindDate, Label: label}
	if r != nil {
		rc := *r
		call.Range = &rc
	}
	s.Calls = append(s.Calls, call)
	for {
		st, err := s.next(KindDate)
		if err != nil {
			return prompt.Cancelled[time.Time](), err
		}
		if st.cancel {
			return prompt.Cancelled[time.Time](), nil
		}
		if r != nil && !r.Contains(st.date) {
			s.Rejected = append(s.Rejected, st.date.Format(prompt.DateLayout))
			continue
		}
		return prompt.Answered(st.date), nil
	}
}
