package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"twilly/internal/config"
	"twilly/internal/exitcode"
	"twilly/internal/prompt"
)

const (
	accountSIDPrefix = "AC"
	accountSIDLength = 34
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	force bool
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Store Twilio credentials" }
func (c *LoginCmd) Usage() string     { return "twilly login [common flags] [--force]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }
func (c *LoginCmd) Interactive() bool { return true }

func (c *LoginCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&c.force, "force", "f", false, "")
}

func (c *LoginCmd) Run(ctx context.Context, env Env, args []string) int {
	cfg := env.Config

	// Existing credentials are kept unless --force is given
	if cfg.HasCredentials() && !c.force {
		if creds, err := cfg.LoadCredentials(); err == nil && creds.Validate() == nil {
			if !cfg.Quiet {
				fmt.Fprintln(env.Out, "already logged in")
			}
			return exitcode.Success
		}
	}

	creds, ok, err := askCredentials(env.Prompter)
	if err != nil {
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return exitcode.AuthError
	}
	if !ok {
		fmt.Fprintln(env.ErrOut, "error: login cancelled")
		return exitcode.UserError
	}

	if err := cfg.SaveCredentials(creds); err != nil {
		fmt.Fprintf(env.ErrOut, "error: failed to save credentials: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(env.Out, "ok")
	}
	return exitcode.Success
}

// askCredentials prompts for an account SID and auth token.
// ok is false if either prompt was cancelled.
func askCredentials(p prompt.Prompter) (creds config.Credentials, ok bool, err error) {
	sid, err := p.Text("Account SID:", accountSIDPrefix+"...", validateAccountSID)
	if err != nil {
		return creds, false, err
	}
	if creds.AccountSID, ok = sid.Get(); !ok {
		return creds, false, nil
	}

	token, err := p.Text("Auth token:", "", validateAuthToken)
	if err != nil {
		return creds, false, err
	}
	if creds.AuthToken, ok = token.Get(); !ok {
		return creds, false, nil
	}
	return creds, true, nil
}

func validateAccountSID(s string) error {
	if !strings.HasPrefix(s, accountSIDPrefix) || len(s) != accountSIDLength {
		return errors.New("account SID should start with AC and be 34 characters in length")
	}
	return nil
}

func validateAuthToken(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("auth token required")
	}
	return nil
}
