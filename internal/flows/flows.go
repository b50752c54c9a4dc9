// Package flows implements the interactive menus for each Twilio resource
// kind on top of the navigation engine in package nav.
package flows

import (
	"context"
	"fmt"
	"io"
	"time"

	"twilly/internal/nav"
	"twilly/internal/output"
	"twilly/internal/prompt"
	"twilly/internal/service"
)

// Flows holds what every menu needs. All output goes to Out.
type Flows struct {
	Service  service.Service
	Prompter prompt.Prompter
	Out      io.Writer

	// Now returns the current time; date ranges are bounded by it.
	Now func() time.Time
}

// New creates Flows using the wall clock.
func New(svc service.Service, p prompt.Prompter, out io.Writer) *Flows {
	return &Flows{
		Service:  svc,
		Prompter: p,
		Out:      out,
		Now:      time.Now,
	}
}

func (f *Flows) now() time.Time {
	if f.Now == nil {
		return time.Now().UTC()
	}
	return f.Now().UTC()
}

// Browse runs the top-level menu. Backing out of it ends the session.
func (f *Flows) Browse(ctx context.Context) error {
	for {
		action, err := nav.ChooseAction(f.Prompter, "Select a resource:", nav.RootMenu)
		if err != nil {
			return err
		}

		switch action {
		case nav.Back:
			return nil
		case nav.Exit:
			return nav.ErrExit
		case nav.Conversations:
			err = f.Conversations(ctx)
		case nav.Sync:
			err = f.Sync(ctx)
		default:
			err = fmt.Errorf("unsupported action %q", action)
		}
		if err != nil {
			return err
		}
	}
}

// browse fetches every page of a resource list and hands the result to b.
func browse[T any](ctx context.Context, f *Flows, b *nav.Browser[T], nouns string, first nav.FirstPageFunc[T], next nav.NextPageFunc[T]) error {
	items, err := nav.FetchAll(ctx, first, next)
	if err != nil {
		return fmt.Errorf("list %s: %w", nouns, err)
	}
	if len(items) == 0 {
		output.FormatNoneFound(f.Out, nouns)
		return nil
	}
	output.FormatFound(f.Out, len(items), nouns)

	_, err = b.Run(ctx, items)
	return err
}

func (f *Flows) details(v any) (nav.Transition, error) {
	return nav.Stay, output.FormatDetails(f.Out, v)
}

func (f *Flows) remove(ctx context.Context, noun, sid string, del func(context.Context) error) (nav.Transition, error) {
	gone, err := nav.DeleteOne(ctx, f.Prompter, f.Out, noun, sid, del)
	if err != nil {
		return nav.Stay, err
	}
	if gone {
		return nav.Removed, nil
	}
	return nav.Stay, nil
}

func unsupported(action nav.Action) (nav.Transition, error) {
	return nav.Stay, fmt.Errorf("unsupported action %q", action)
}
