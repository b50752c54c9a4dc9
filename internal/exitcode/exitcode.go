// Package exitcode defines the process exit codes of twilly.
package exitcode

const (
	// Success covers normal completion, including leaving a menu with Exit.
	Success = 0

	// UserError is a bad invocation or a cancelled login.
	UserError = 1

	// AuthError means credentials are missing or were rejected by Twilio.
	AuthError = 2

	// BackendError is any other failure talking to Twilio or the terminal.
	BackendError = 3
)
