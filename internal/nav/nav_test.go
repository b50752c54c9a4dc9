package nav_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"twilly/internal/nav"
	"twilly/internal/prompt"
	"twilly/internal/service"
	"twilly/internal/testutil"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Tests for the choice resolver
func TestChoose_SelectedIndex(t *testing.T) {
	labels := []string{"alpha", "beta", "gamma"}
	for i, want := range labels {
		p := testutil.NewScriptedPrompter().ChooseIndex(i)

		choice, err := nav.Choose(p, "Pick:", labels)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if choice.Outcome != nav.Selected || choice.Index != i || choice.Value != want {
			t.Errorf("index %d: expected Selected(%q), got %+v", i, want, choice)
		}
	}
}

func TestChoose_ReservedEntries(t *testing.T) {
	labels := []string{"alpha", "beta"}

	p := testutil.NewScriptedPrompter().Choose("Back").Choose("Exit").Cancel(testutil.KindSelect)

	choice, _ := nav.Choose(p, "Pick:", labels)
	if choice.Outcome != nav.BackOutcome {
		t.Errorf("expected Back, got %+v", choice)
	}
	choice, _ = nav.Choose(p, "Pick:", labels)
	if choice.Outcome != nav.ExitOutcome {
		t.Errorf("expected Exit, got %+v", choice)
	}
	choice, _ = nav.Choose(p, "Pick:", labels)
	if choice.Outcome != nav.BackOutcome {
		t.Errorf("cancel should resolve to Back, got %+v", choice)
	}

	want := []string{"alpha", "beta", "Back", "Exit"}
	if diff := cmp.Diff(want, p.Calls[0].Options); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestChoose_InputClosed(t *testing.T) {
	p := testutil.NewScriptedPrompter().Close()
	_, err := nav.Choose(p, "Pick:", []string{"a"})
	if !errors.Is(err, prompt.ErrInputClosed) {
		t.Errorf("expected ErrInputClosed, got %v", err)
	}
}

func TestChooseAction(t *testing.T) {
	p := testutil.NewScriptedPrompter().Choose("List Conversations").Cancel(testutil.KindSelect)

	action, err := nav.ChooseAction(p, "Select an action:", nav.ConversationMenu)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action != nav.ListConversations {
		t.Errorf("expected ListConversations, got %v", action)
	}

	action, _ = nav.ChooseAction(p, "Select an action:", nav.ConversationMenu)
	if action != nav.Back {
		t.Errorf("cancel should resolve to Back, got %v", action)
	}
}

func TestActionNames(t *testing.T) {
	if nav.DeleteAllConversations.String() != "Delete all Conversations" {
		t.Errorf("unexpected name %q", nav.DeleteAllConversations.String())
	}
	if nav.Action(999).String() != "Action(999)" {
		t.Errorf("unknown action should render its number, got %q", nav.Action(999).String())
	}
}

func TestChooseFilter(t *testing.T) {
	states := []string{"active", "inactive", "closed"}
	p := testutil.NewScriptedPrompter().Choose("Any").Choose("closed").Cancel(testutil.KindSelect)

	answer, _ := nav.ChooseFilter(p, "Filter by state?", states)
	if f, ok := answer.Get(); !ok || !f.Any {
		t.Errorf("expected Any, got %+v", f)
	}

	answer, _ = nav.ChooseFilter(p, "Filter by state?", states)
	if f, ok := answer.Get(); !ok || f.Any || f.Value != "closed" {
		t.Errorf("expected Specific(closed), got %+v", f)
	}

	answer, _ = nav.ChooseFilter(p, "Filter by state?", states)
	if !answer.IsCancelled() {
		t.Error("expected cancelled filter")
	}
}

// Tests for the date range selector
func TestSelectDate_OutOfRangeNeverReturned(t *testing.T) {
	r, _ := prompt.NewDateRange(date(2023, 1, 1), date(2023, 6, 1))
	p := testutil.NewScriptedPrompter().
		Pick(date(2022, 12, 31)).
		Pick(date(2023, 6, 2)).
		Pick(date(2023, 3, 3))

	answer, err := nav.SelectDate(p, "Choose a start date:", &r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, ok := answer.Get()
	if !ok || !d.Equal(date(2023, 3, 3)) {
		t.Errorf("expected 2023-03-03, got %v (%v)", d, ok)
	}
	if diff := cmp.Diff([]string{"2022-12-31", "2023-06-02"}, p.Rejected); diff != "" {
		t.Errorf("rejected mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectDate_NoRange(t *testing.T) {
	p := testutil.NewScriptedPrompter().Pick(date(1990, 5, 5))
	answer, _ := nav.SelectDate(p, "Any date:", nil)
	if d, ok := answer.Get(); !ok || !d.Equal(date(1990, 5, 5)) {
		t.Errorf("expected 1990-05-05, got %v", d)
	}
}

func TestSelectDateRange(t *testing.T) {
	now := time.Date(2023, 6, 1, 15, 30, 0, 0, time.UTC)
	p := testutil.NewScriptedPrompter().Pick(date(2023, 1, 1)).Pick(date(2023, 6, 1))

	answer, err := nav.SelectDateRange(p, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, ok := answer.Get()
	if !ok {
		t.Fatal("expected a range")
	}
	want := prompt.DateRange{Min: date(2023, 1, 1), Max: date(2023, 6, 1)}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("range mismatch (-want +got):\n%s", diff)
	}

	// Start bounded to the last 365 days, end bounded below by the start.
	startRange := p.Calls[0].Range
	if !startRange.Min.Equal(date(2022, 6, 1)) || !startRange.Max.Equal(date(2023, 6, 1)) {
		t.Errorf("unexpected start range %s", startRange)
	}
	endRange := p.Calls[1].Range
	if !endRange.Min.Equal(date(2023, 1, 1)) || !endRange.Max.Equal(date(2023, 6, 1)) {
		t.Errorf("unexpected end range %s", endRange)
	}
}

func TestSelectDateRange_CancelStartSkipsEnd(t *testing.T) {
	p := testutil.NewScriptedPrompter().Cancel(testutil.KindDate)

	answer, err := nav.SelectDateRange(p, date(2023, 6, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !answer.IsCancelled() {
		t.Error("expected cancelled range")
	}
	if len(p.Calls) != 1 {
		t.Errorf("end date must not be prompted, got %d prompts", len(p.Calls))
	}
}

func TestSelectDateRange_CancelEndAbandons(t *testing.T) {
	p := testutil.NewScriptedPrompter().Pick(date(2023, 1, 1)).Cancel(testutil.KindDate)

	answer, err := nav.SelectDateRange(p, date(2023, 6, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !answer.IsCancelled() {
		t.Error("a partial range must not be returned")
	}
}

// Tests for the pagination aggregator
type pager struct {
	pages   map[string]service.Page[string]
	calls   int
	cursors []string
	failOn  int
}

func (pg *pager) first(ctx context.Context) (service.Page[string], error) {
	pg.calls++
	if pg.failOn == pg.calls {
		return service.Page[string]{}, testutil.ErrRemote
	}
	return pg.pages[""], nil
}

func (pg *pager) next(ctx context.Context, cursor string) (service.Page[string], error) {
	pg.calls++
	pg.cursors = append(pg.cursors, cursor)
	if pg.failOn == pg.calls {
		return service.Page[string]{}, testutil.ErrRemote
	}
	page, ok := pg.pages[cursor]
	if !ok {
		return service.Page[string]{}, fmt.Errorf("unknown cursor %q", cursor)
	}
	return page, nil
}

const (
	cursor1 = "https://x/p?Page=1&PageToken=C1"
	cursor2 = "https://x/p?Page=2&PageToken=C2"
)

func threePages() *pager {
	return &pager{pages: map[string]service.Page[string]{
		"":      {Items: []string{"a", "b"}, NextPageURL: cursor1},
		cursor1: {Items: []string{"c"}, NextPageURL: cursor2},
		cursor2: {Items: []string{"d", "e"}},
	}}
}

func TestFetchAll_FollowsCursorsInOrder(t *testing.T) {
	pg := threePages()

	items, err := nav.FetchAll[string](context.Background(), pg.first, pg.next)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "d", "e"}, items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	if pg.calls != 3 {
		t.Errorf("expected exactly 3 fetches, got %d", pg.calls)
	}
	wantCursors := []string{cursor1, cursor2}
	if diff := cmp.Diff(wantCursors, pg.cursors); diff != "" {
		t.Errorf("cursors must be passed verbatim (-want +got):\n%s", diff)
	}
}

func TestFetchAll_AllOrNothing(t *testing.T) {
	pg := threePages()
	pg.failOn = 2

	items, err := nav.FetchAll[string](context.Background(), pg.first, pg.next)
	if !errors.Is(err, testutil.ErrRemote) {
		t.Errorf("expected the page error unchanged, got %v", err)
	}
	if items != nil {
		t.Errorf("expected no items, got %v", items)
	}
	if pg.calls != 2 {
		t.Errorf("expected aggregation to stop after the failure, got %d calls", pg.calls)
	}
}

func TestFetchAll_SinglePage(t *testing.T) {
	pg := &pager{pages: map[string]service.Page[string]{"": {}}}
	items, err := nav.FetchAll[string](context.Background(), pg.first, pg.next)
	if err != nil || len(items) != 0 || pg.calls != 1 {
		t.Errorf("expected one call and no items, got %v, %v, %d calls", items, err, pg.calls)
	}
}

// Tests for the confirmation protocol
func TestDeleteOne_DeclineMakesNoCall(t *testing.T) {
	var out bytes.Buffer
	calls := 0
	del := func(context.Context) error { calls++; return nil }

	p := testutil.NewScriptedPrompter().Answer(false).Cancel(testutil.KindConfirm)

	for i := 0; i < 2; i++ {
		gone, err := nav.DeleteOne(context.Background(), p, &out, "Conversation", "CH1", del)
		if err != nil || gone {
			t.Errorf("expected (false, nil), got (%v, %v)", gone, err)
		}
	}
	if calls != 0 {
		t.Errorf("expected zero delete calls, got %d", calls)
	}
	expected := nav.CanceledMessage + "\n\n" + nav.CanceledMessage + "\n\n"
	if out.String() != expected {
		t.Errorf("expected %q, got %q", expected, out.String())
	}
}

func TestDeleteOne_NotFoundIsBenign(t *testing.T) {
	var out bytes.Buffer
	p := testutil.NewScriptedPrompter().Answer(true)

	gone, err := nav.DeleteOne(context.Background(), p, &out, "Conversation", "CH1",
		func(context.Context) error { return testutil.ErrNotFound })
	if err != nil || !gone {
		t.Errorf("expected (true, nil), got (%v, %v)", gone, err)
	}
	expected := "Deleting Conversation...\nA Conversation with SID 'CH1' was not found.\n\n"
	if out.String() != expected {
		t.Errorf("expected %q, got %q", expected, out.String())
	}
}

func TestDeleteOne_RemoteFailureIsFatal(t *testing.T) {
	var out bytes.Buffer
	p := testutil.NewScriptedPrompter().Answer(true)

	_, err := nav.DeleteOne(context.Background(), p, &out, "Conversation", "CH1",
		func(context.Context) error { return testutil.ErrRemote })
	if !errors.Is(err, testutil.ErrRemote) {
		t.Errorf("expected remote error, got %v", err)
	}
}

func TestConfirmDeleteAll_SecondDeclineAborts(t *testing.T) {
	var out bytes.Buffer
	p := testutil.NewScriptedPrompter().Answer(true).Answer(false)

	ok, err := nav.ConfirmDeleteAll(p, &out, "Conversations")
	if err != nil || ok {
		t.Errorf("expected (false, nil), got (%v, %v)", ok, err)
	}
	if len(p.Calls) != 2 {
		t.Errorf("expected two confirmations, got %d", len(p.Calls))
	}
	if out.String() != nav.CanceledMessage+"\n\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestConfirmDeleteAll_FirstDeclineSkipsSecond(t *testing.T) {
	var out bytes.Buffer
	p := testutil.NewScriptedPrompter().Answer(false)

	ok, _ := nav.ConfirmDeleteAll(p, &out, "Conversations")
	if ok || len(p.Calls) != 1 {
		t.Errorf("expected a single declined confirmation, got ok=%v prompts=%d", ok, len(p.Calls))
	}
}

// Tests for the browser loop
type entry struct {
	ID string
}

func newBrowser(p prompt.Prompter, out *bytes.Buffer, handle nav.HandlerFunc[entry]) *nav.Browser[entry] {
	return &nav.Browser[entry]{
		Prompter: p,
		Out:      out,
		Noun:     "Thing",
		Label:    func(e entry) string { return e.ID },
		Actions:  []nav.Action{nav.ListDetails, nav.Delete, nav.Back, nav.Exit},
		Handle:   handle,
	}
}

func TestBrowser_DeleteRemovesFromCache(t *testing.T) {
	var out bytes.Buffer
	var handled []string
	handle := func(ctx context.Context, e *entry, a nav.Action) (nav.Transition, error) {
		handled = append(handled, e.ID+":"+a.String())
		if a == nav.Delete {
			return nav.Removed, nil
		}
		return nav.Stay, nil
	}

	p := testutil.NewScriptedPrompter().
		Choose("b").Choose("List Details").Choose("Delete").
		Choose("Back")
	b := newBrowser(p, &out, handle)

	items, err := b.Run(context.Background(), []entry{{"a"}, {"b"}, {"c"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]entry{{"a"}, {"c"}}, items); diff != "" {
		t.Errorf("cache mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b:List Details", "b:Delete"}, handled); diff != "" {
		t.Errorf("handled mismatch (-want +got):\n%s", diff)
	}

	// The root menu shown after the delete no longer offers the entry.
	last := p.Calls[len(p.Calls)-1]
	if diff := cmp.Diff([]string{"a", "c", "Back", "Exit"}, last.Options); diff != "" {
		t.Errorf("root options mismatch (-want +got):\n%s", diff)
	}
}

func TestBrowser_BackReturnsToRoot(t *testing.T) {
	var out bytes.Buffer
	p := testutil.NewScriptedPrompter().Choose("a").Choose("Back").Choose("Back")
	b := newBrowser(p, &out, func(context.Context, *entry, nav.Action) (nav.Transition, error) {
		t.Fatal("handler must not run")
		return nav.Stay, nil
	})

	items, err := b.Run(context.Background(), []entry{{"a"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("Back must not alter the cache, got %v", items)
	}
	want := []string{"Choose a Thing:", "Select an action:", "Choose a Thing:"}
	if diff := cmp.Diff(want, p.Labels()); diff != "" {
		t.Errorf("prompt sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestBrowser_ExitUnwinds(t *testing.T) {
	var out bytes.Buffer
	p := testutil.NewScriptedPrompter().Choose("a").Choose("Exit")
	b := newBrowser(p, &out, nil)

	_, err := b.Run(context.Background(), []entry{{"a"}})
	if !errors.Is(err, nav.ErrExit) {
		t.Errorf("expected ErrExit, got %v", err)
	}

	p = testutil.NewScriptedPrompter().Choose("Exit")
	b = newBrowser(p, &out, nil)
	_, err = b.Run(context.Background(), []entry{{"a"}})
	if !errors.Is(err, nav.ErrExit) {
		t.Errorf("expected ErrExit from the root menu, got %v", err)
	}
}

func TestBrowser_LastEntryRemovedReturns(t *testing.T) {
	var out bytes.Buffer
	p := testutil.NewScriptedPrompter().Choose("a").Choose("Delete")
	b := newBrowser(p, &out, func(context.Context, *entry, nav.Action) (nav.Transition, error) {
		return nav.Removed, nil
	})

	items, err := b.Run(context.Background(), []entry{{"a"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty cache, got %v", items)
	}
	if p.Remaining() != 0 || len(p.Calls) != 2 {
		t.Errorf("loop should return without another prompt, got %d prompts", len(p.Calls))
	}
}

func TestBrowser_RunSelectedBackEndsCall(t *testing.T) {
	var out bytes.Buffer
	p := testutil.NewScriptedPrompter().Choose("List Details").Choose("Back")
	calls := 0
	b := newBrowser(p, &out, func(context.Context, *entry, nav.Action) (nav.Transition, error) {
		calls++
		return nav.Stay, nil
	})

	e := entry{"fixed"}
	transition, err := b.RunSelected(context.Background(), &e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if transition != nav.Leave {
		t.Errorf("expected Leave, got %v", transition)
	}
	if calls != 1 {
		t.Errorf("expected one handled action, got %d", calls)
	}
}

func TestBrowser_HandlerErrorPropagates(t *testing.T) {
	var out bytes.Buffer
	p := testutil.NewScriptedPrompter().Choose("a").Choose("Delete")
	b := newBrowser(p, &out, func(context.Context, *entry, nav.Action) (nav.Transition, error) {
		return nav.Stay, testutil.ErrRemote
	})

	_, err := b.Run(context.Background(), []entry{{"a"}})
	if !errors.Is(err, testutil.ErrRemote) {
		t.Errorf("expected remote error, got %v", err)
	}
}
