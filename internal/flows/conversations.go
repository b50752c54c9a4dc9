package flows

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"twilly/internal/logging"
	"twilly/internal/nav"
	"twilly/internal/output"
	"twilly/internal/prompt"
	"twilly/internal/service"
)

const (
	conversationNoun  = "Conversation"
	conversationNouns = "conversations"

	conversationSIDPrefix = "CH"
	conversationSIDLength = 34
)

var errConversationSID = errors.New("Conversation SID should be 34 characters in length")

func validateConversationSID(s string) error {
	if !strings.HasPrefix(s, conversationSIDPrefix) || len(s) != conversationSIDLength {
		return errConversationSID
	}
	return nil
}

// Conversations runs the conversations menu until Back.
func (f *Flows) Conversations(ctx context.Context) error {
	for {
		action, err := nav.ChooseAction(f.Prompter, "Select an action:", nav.ConversationMenu)
		if err != nil {
			return err
		}

		switch action {
		case nav.Back:
			return nil
		case nav.Exit:
			return nav.ErrExit
		case nav.GetConversation:
			err = f.getConversation(ctx)
		case nav.ListConversations:
			err = f.listConversations(ctx)
		case nav.DeleteConversation:
			err = f.deleteConversation(ctx)
		case nav.DeleteAllConversations:
			var deleted bool
			deleted, err = f.deleteAllConversations(ctx)
			if err == nil && deleted {
				return nil
			}
		default:
			err = fmt.Errorf("unsupported action %q", action)
		}
		if err != nil {
			return err
		}
	}
}

func (f *Flows) conversationBrowser() *nav.Browser[service.Conversation] {
	return &nav.Browser[service.Conversation]{
		Prompter: f.Prompter,
		Out:      f.Out,
		Noun:     conversationNoun,
		Label:    output.ConversationLabel,
		Actions:  nav.ConversationEntryMenu,
		Handle:   f.handleConversation,
	}
}

func (f *Flows) handleConversation(ctx context.Context, c *service.Conversation, action nav.Action) (nav.Transition, error) {
	switch action {
	case nav.ListDetails:
		return f.details(c)
	case nav.Delete:
		return f.remove(ctx, conversationNoun, c.SID, func(ctx context.Context) error {
			return f.Service.DeleteConversation(ctx, c.SID)
		})
	}
	return unsupported(action)
}

func (f *Flows) askConversationSID() (prompt.Answer[string], error) {
	return f.Prompter.Text("Please provide a conversation SID, or unique name:", conversationSIDPrefix+"...", validateConversationSID)
}

func (f *Flows) getConversation(ctx context.Context) error {
	answer, err := f.askConversationSID()
	if err != nil {
		return err
	}
	sid, ok := answer.Get()
	if !ok {
		return nil
	}

	conv, err := f.Service.GetConversation(ctx, sid)
	if err != nil {
		if service.IsNotFound(err) {
			nav.PrintNotFound(f.Out, conversationNoun, sid)
			return nil
		}
		return fmt.Errorf("get conversation %s: %w", sid, err)
	}
	output.FormatConversation(f.Out, conv)

	_, err = f.conversationBrowser().RunSelected(ctx, &conv)
	return err
}

// conversationParams asks for the list filters. It returns nil if the
// operator backed out of any of them.
func (f *Flows) conversationParams() (service.Params, error) {
	params := service.Params{}

	answer, err := f.Prompter.Confirm("Would you like to filter between specified dates?")
	if err != nil {
		return nil, err
	}
	filterDates, ok := answer.Get()
	if !ok {
		return nil, nil
	}
	if filterDates {
		rng, err := nav.SelectDateRange(f.Prompter, f.now())
		if err != nil {
			return nil, err
		}
		r, ok := rng.Get()
		if !ok {
			return nil, nil
		}
		params[service.ParamStartDate] = r.Min.Format(service.ParamDateLayout)
		params[service.ParamEndDate] = r.Max.Format(service.ParamDateLayout)
	}

	states := make([]string, len(service.ConversationStates))
	for i, s := range service.ConversationStates {
		states[i] = string(s)
	}
	filter, err := nav.ChooseFilter(f.Prompter, "Filter by state?", states)
	if err != nil {
		return nil, err
	}
	state, ok := filter.Get()
	if !ok {
		return nil, nil
	}
	if !state.Any {
		params[service.ParamState] = state.Value
	}
	return params, nil
}

func (f *Flows) listConversations(ctx context.Context) error {
	params, err := f.conversationParams()
	if err != nil || params == nil {
		return err
	}
	logging.FromContext(ctx).Debug("listing conversations", "params", params)

	fmt.Fprintln(f.Out, "Fetching conversations...")
	convs, err := nav.FetchAll[service.Conversation](ctx,
		func(ctx context.Context) (service.Page[service.Conversation], error) {
			return f.Service.ListConversations(ctx, params)
		},
		f.Service.NextConversations,
	)
	if err != nil {
		return fmt.Errorf("list conversations: %w", err)
	}

	if len(convs) == 0 {
		output.FormatNoneFound(f.Out, conversationNouns)
		return nil
	}
	output.FormatFound(f.Out, len(convs), conversationNouns)
	for _, c := range convs {
		output.FormatConversation(f.Out, c)
	}
	return nil
}

func (f *Flows) deleteConversation(ctx context.Context) error {
	answer, err := f.askConversationSID()
	if err != nil {
		return err
	}
	sid, ok := answer.Get()
	if !ok {
		fmt.Fprintln(f.Out, nav.CanceledMessage)
		fmt.Fprintln(f.Out)
		return nil
	}

	_, err = nav.DeleteOne(ctx, f.Prompter, f.Out, conversationNoun, sid, func(ctx context.Context) error {
		return f.Service.DeleteConversation(ctx, sid)
	})
	return err
}

// deleteAllConversations reports whether the delete went ahead.
func (f *Flows) deleteAllConversations(ctx context.Context) (bool, error) {
	ok, err := nav.ConfirmDeleteAll(f.Prompter, f.Out, "Conversations")
	if err != nil || !ok {
		return false, err
	}

	fmt.Fprintln(f.Out, "Proceeding with deletion. Please wait...")
	if err := f.Service.DeleteAllConversations(ctx, nil); err != nil {
		return false, fmt.Errorf("delete all conversations: %w", err)
	}
	fmt.Fprintln(f.Out, "All conversations deleted.")
	fmt.Fprintln(f.Out)
	return true, nil
}
