package commands

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"twilly/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "twilly help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }
func (c *HelpCmd) Interactive() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env Env, args []string) int {
	fmt.Fprint(env.Out, helpText)
	fmt.Fprintln(env.Out, "\nCommands:")
	for _, cmd := range DefaultRegistry.All() {
		fmt.Fprintf(env.Out, "  %-15s %s\n", cmd.Name(), cmd.Synopsis())
	}
	return exitcode.Success
}

const helpText = `Usage:
  twilly                                  Choose a resource kind to browse
  twilly browse [common flags]
  twilly conversations [common flags]     Get, list and delete conversations
  twilly conv [common flags]
  twilly sync [common flags]              Browse Sync services, documents, maps and map items
  twilly login [common flags] [--force]
  twilly logout [common flags]
  twilly help
  twilly version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Environment:
  TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN override stored credentials
`
