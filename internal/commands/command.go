// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"twilly/internal/config"
	"twilly/internal/prompt"
	"twilly/internal/service"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires authentication.
	// Commands like help, version, login, logout return false.
	NeedsAuth() bool

	// Interactive returns true if the command prompts the user.
	Interactive() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *pflag.FlagSet)

	// Run executes the command.
	// env.Config is always provided (config dir, paths).
	// env.Service is nil if NeedsAuth() returns false.
	// env.Prompter is nil if Interactive() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env Env, args []string) int
}

// Env is everything a command runs against.
type Env struct {
	Config   *config.Config
	Service  service.Service
	Prompter prompt.Prompter
	Out      io.Writer
	ErrOut   io.Writer
}
