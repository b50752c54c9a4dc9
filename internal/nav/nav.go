// Package nav implements the interactive resource-navigation engine.
//
// A session is a stack of menu loops. Each loop asks the Prompter for the
// next choice, dispatches it and repeats until the user picks Back (return to
// the enclosing loop) or Exit. Exit is not handled anywhere in this package:
// every loop returns ErrExit unchanged so it unwinds to the top-level
// command, which ends the process.
//
// Remote lists are fetched in full with FetchAll when a menu is entered and
// then owned by that menu's loop. Deleting an entry removes it from the
// loop's cache instead of refetching.
package nav

import "errors"

// ErrExit is returned up the call stack when the user selects Exit.
var ErrExit = errors.New("exit requested")

// CanceledMessage is printed when a destructive action is declined.
const CanceledMessage = "Operation canceled. No changes were made."
