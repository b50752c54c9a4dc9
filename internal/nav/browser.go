package nav

import (
	"context"
	"io"
	"slices"

	"twilly/internal/logging"
	"twilly/internal/prompt"
)

// Transition tells the Browser what to do after an action handler returns.
type Transition int

const (
	// Stay keeps the selected entry and asks for the next action.
	Stay Transition = iota

	// Removed drops the selected entry from the cache and returns to the list.
	Removed

	// Leave returns to the list without changing the cache.
	Leave
)

// HandlerFunc performs action on the selected entry.
type HandlerFunc[T any] func(ctx context.Context, item *T, action Action) (Transition, error)

// Browser is the navigation loop for one resource kind: pick an entry from a
// cached list, then pick actions for it until Back.
//
// Back and Exit never reach Handle.
type Browser[T any] struct {
	Prompter prompt.Prompter
	Out      io.Writer

	// Noun names one entry in prompts, e.g. "Sync Service".
	Noun string

	// Label renders an entry for the selection list. Labels must be unique.
	Label func(T) string

	// Actions is the menu offered once an entry is selected.
	Actions []Action

	Handle HandlerFunc[T]
}

// Run browses items, which become owned by this call. It returns when the
// user picks Back at the list or the last entry is removed, and returns the
// cache as it stands so callers can observe removals.
func (b *Browser[T]) Run(ctx context.Context, items []T) ([]T, error) {
	logger := logging.FromContext(ctx)

	for len(items) > 0 {
		labels := make([]string, len(items))
		for i, item := range items {
			labels[i] = b.Label(item)
		}

		choice, err := Choose(b.Prompter, "Choose a "+b.Noun+":", labels)
		if err != nil {
			return items, err
		}
		switch choice.Outcome {
		case BackOutcome:
			return items, nil
		case ExitOutcome:
			return items, ErrExit
		}

		logger.Debug("entry selected", "kind", b.Noun, "entry", choice.Value)
		transition, err := b.RunSelected(ctx, &items[choice.Index])
		if err != nil {
			return items, err
		}
		if transition == Removed {
			items = slices.Delete(items, choice.Index, choice.Index+1)
			logger.Debug("entry removed from cache", "kind", b.Noun, "remaining", len(items))
		}
	}
	return items, nil
}

// RunSelected offers the action menu for a single entry until an action
// leaves it. Used directly when the entry was not chosen from a list, in
// which case Back ends the call.
//
// The returned Transition is Removed if the entry was deleted, otherwise Leave.
func (b *Browser[T]) RunSelected(ctx context.Context, item *T) (Transition, error) {
	for {
		action, err := ChooseAction(b.Prompter, "Select an action:", b.Actions)
		if err != nil {
			return Stay, err
		}
		switch action {
		case Back:
			return Leave, nil
		case Exit:
			return Stay, ErrExit
		}

		transition, err := b.Handle(ctx, item, action)
		if err != nil {
			return Stay, err
		}
		if transition != Stay {
			return transition, nil
		}
	}
}
