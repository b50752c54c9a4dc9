package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/pflag"

	"twilly/internal/exitcode"
	"twilly/internal/flows"
	"twilly/internal/nav"
	"twilly/internal/prompt"
	"twilly/internal/service"
)

func init() {
	Register(&BrowseCmd{})
	Register(&ConversationsCmd{})
	Register(&SyncCmd{})
}

// BrowseCmd implements the browse command, the top-level resource menu.
type BrowseCmd struct{}

func (c *BrowseCmd) Name() string      { return "browse" }
func (c *BrowseCmd) Aliases() []string { return nil }
func (c *BrowseCmd) Synopsis() string  { return "Choose a resource kind to browse" }
func (c *BrowseCmd) Usage() string     { return "twilly browse [common flags]" }
func (c *BrowseCmd) NeedsAuth() bool   { return true }
func (c *BrowseCmd) Interactive() bool { return true }

func (c *BrowseCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *BrowseCmd) Run(ctx context.Context, env Env, args []string) int {
	return runFlow(ctx, env, args, (*flows.Flows).Browse)
}

// ConversationsCmd implements the conversations command.
type ConversationsCmd struct{}

func (c *ConversationsCmd) Name() string      { return "conversations" }
func (c *ConversationsCmd) Aliases() []string { return []string{"conv"} }
func (c *ConversationsCmd) Synopsis() string  { return "Get, list and delete conversations" }
func (c *ConversationsCmd) Usage() string     { return "twilly conversations [common flags]" }
func (c *ConversationsCmd) NeedsAuth() bool   { return true }
func (c *ConversationsCmd) Interactive() bool { return true }

func (c *ConversationsCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *ConversationsCmd) Run(ctx context.Context, env Env, args []string) int {
	return runFlow(ctx, env, args, (*flows.Flows).Conversations)
}

// SyncCmd implements the sync command.
type SyncCmd struct{}

func (c *SyncCmd) Name() string      { return "sync" }
func (c *SyncCmd) Aliases() []string { return nil }
func (c *SyncCmd) Synopsis() string  { return "Browse Sync services, documents, maps and map items" }
func (c *SyncCmd) Usage() string     { return "twilly sync [common flags]" }
func (c *SyncCmd) NeedsAuth() bool   { return true }
func (c *SyncCmd) Interactive() bool { return true }

func (c *SyncCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *SyncCmd) Run(ctx context.Context, env Env, args []string) int {
	return runFlow(ctx, env, args, (*flows.Flows).Sync)
}

// runFlow is the shared implementation for the menu commands.
func runFlow(ctx context.Context, env Env, args []string, run func(*flows.Flows, context.Context) error) int {
	if len(args) > 0 {
		fmt.Fprintf(env.ErrOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	f := flows.New(env.Service, env.Prompter, env.Out)
	return exitCode(run(f, ctx), env.ErrOut)
}

// exitCode reports err on errOut and maps it to an exit code.
// Exit chosen from any menu is a success.
func exitCode(err error, errOut io.Writer) int {
	if err == nil || errors.Is(err, nav.ErrExit) {
		return exitcode.Success
	}

	var serr *service.Error
	switch {
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(errOut, "error: cancelled")
	case errors.Is(err, prompt.ErrInputClosed):
		fmt.Fprintln(errOut, "error: input closed")
	case errors.As(err, &serr) && (serr.Status == http.StatusUnauthorized || serr.Status == http.StatusForbidden):
		fmt.Fprintf(errOut, "error: auth error: %v (run: twilly login)\n", err)
		return exitcode.AuthError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	}
	return exitcode.BackendError
}
