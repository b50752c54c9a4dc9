package nav

import (
	"fmt"

	"twilly/internal/prompt"
)

// Outcome is the kind of result a selection prompt produced.
type Outcome int

const (
	Selected Outcome = iota
	BackOutcome
	ExitOutcome
)

// Choice is the result of Choose. Index and Value are set only when
// Outcome is Selected.
type Choice struct {
	Outcome Outcome
	Index   int
	Value   string
}

// Choose presents labels followed by the reserved Back and Exit entries.
// Labels must be unique. Cancelling the prompt resolves to Back.
func Choose(p prompt.Prompter, label string, labels []string) (Choice, error) {
	options := make([]string, 0, len(labels)+2)
	options = append(options, labels...)
	options = append(options, Back.String(), Exit.String())

	answer, err := p.Select(label, options)
	if err != nil {
		return Choice{}, err
	}
	i, ok := answer.Get()
	switch {
	case !ok, i == len(labels):
		return Choice{Outcome: BackOutcome}, nil
	case i == len(labels)+1:
		return Choice{Outcome: ExitOutcome}, nil
	case i < 0 || i > len(labels)+1:
		return Choice{}, fmt.Errorf("selection %d out of range (%d options)", i, len(options))
	}
	return Choice{Outcome: Selected, Index: i, Value: labels[i]}, nil
}

// ChooseAction presents a menu of actions and returns the one chosen.
// Cancelling the prompt resolves to Back.
func ChooseAction(p prompt.Prompter, label string, actions []Action) (Action, error) {
	options := make([]string, len(actions))
	for i, a := range actions {
		options[i] = a.String()
	}

	answer, err := p.Select(label, options)
	if err != nil {
		return Back, err
	}
	i, ok := answer.Get()
	if !ok {
		return Back, nil
	}
	if i < 0 || i >= len(actions) {
		return Back, fmt.Errorf("selection %d out of range (%d options)", i, len(actions))
	}
	return actions[i], nil
}

// AnyLabel is the filter entry meaning "do not filter".
const AnyLabel = "Any"

// Filter is the result of ChooseFilter: either Any or one known value.
type Filter struct {
	Any   bool
	Value string
}

// ChooseFilter offers Any followed by values.
func ChooseFilter(p prompt.Prompter, label string, values []string) (prompt.Answer[Filter], error) {
	options := make([]string, 0, len(values)+1)
	options = append(options, AnyLabel)
	options = append(options, values...)

	answer, err := p.Select(label, options)
	if err != nil {
		return prompt.Cancelled[Filter](), err
	}
	i, ok := answer.Get()
	if !ok {
		return prompt.Cancelled[Filter](), nil
	}
	switch {
	case i == 0:
		return prompt.Answered(Filter{Any: true}), nil
	case i < 0 || i > len(values):
		return prompt.Cancelled[Filter](), fmt.Errorf("selection %d out of range (%d options)", i, len(options))
	}
	return prompt.Answered(Filter{Value: values[i-1]}), nil
}
