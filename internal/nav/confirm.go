package nav

import (
	"context"
	"fmt"
	"io"

	"twilly/internal/prompt"
	"twilly/internal/service"
)

// ConfirmDelete asks once before deleting a single resource. A decline or
// cancel prints CanceledMessage and returns false.
func ConfirmDelete(p prompt.Prompter, out io.Writer, noun string) (bool, error) {
	ok, err := confirm(p, fmt.Sprintf("Are you sure you wish to delete the %s?", noun))
	if err != nil {
		return false, err
	}
	if !ok {
		printCanceled(out)
	}
	return ok, nil
}

// ConfirmDeleteAll asks twice before a bulk delete. The second question is
// only asked after a yes to the first.
func ConfirmDeleteAll(p prompt.Prompter, out io.Writer, nouns string) (bool, error) {
	ok, err := confirm(p, fmt.Sprintf("Are you sure you wish to delete **all** %s?", nouns))
	if err != nil {
		return false, err
	}
	if ok {
		ok, err = confirm(p, "Are you double sure? There is no going back.")
		if err != nil {
			return false, err
		}
	}
	if !ok {
		printCanceled(out)
	}
	return ok, nil
}

// DeleteOne runs the single delete protocol: confirm, call del, report.
// It returns true when the resource no longer exists remotely, including
// when del reports it was already gone. Any other failure is returned.
func DeleteOne(ctx context.Context, p prompt.Prompter, out io.Writer, noun, sid string, del func(context.Context) error) (bool, error) {
	ok, err := ConfirmDelete(p, out, noun)
	if err != nil || !ok {
		return false, err
	}

	fmt.Fprintf(out, "Deleting %s...\n", noun)
	if err := del(ctx); err != nil {
		if service.IsNotFound(err) {
			PrintNotFound(out, noun, sid)
			return true, nil
		}
		return false, fmt.Errorf("delete %s %s: %w", noun, sid, err)
	}
	fmt.Fprintf(out, "%s deleted.\n\n", noun)
	return true, nil
}

// PrintNotFound reports a resource the API does not know.
func PrintNotFound(out io.Writer, noun, sid string) {
	fmt.Fprintf(out, "A %s with SID '%s' was not found.\n\n", noun, sid)
}

func confirm(p prompt.Prompter, label string) (bool, error) {
	answer, err := p.Confirm(label)
	if err != nil {
		return false, err
	}
	yes, ok := answer.Get()
	return ok && yes, nil
}

func printCanceled(out io.Writer) {
	fmt.Fprintln(out, CanceledMessage)
	fmt.Fprintln(out)
}
