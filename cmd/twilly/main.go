// Package main is the entry point for the twilly CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"twilly/internal/backend/twilio"
	"twilly/internal/cli"
	"twilly/internal/commands"
	"twilly/internal/config"
	"twilly/internal/prompt"
	"twilly/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return twilio.New(ctx, cfg)
	}

	prompter := func() (prompt.Prompter, error) {
		if !prompt.IsInteractive(os.Stdin) {
			return nil, errors.New("an interactive terminal is required")
		}
		return prompt.NewTerminal(os.Stdin, os.Stdout), nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory, prompter)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
