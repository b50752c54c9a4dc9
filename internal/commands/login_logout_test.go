package commands_test

import (
	"bytes"
	"context"
	"testing"

	"twilly/internal/commands"
	"twilly/internal/config"
	"twilly/internal/exitcode"
	"twilly/internal/testutil"
)

const testAccountSID = "AC00000000000000000000000000000001"

func loginEnv(t *testing.T, p *testutil.ScriptedPrompter) (commands.Env, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv(config.EnvAccountSID, "")
	t.Setenv(config.EnvAuthToken, "")

	var outBuf, errBuf bytes.Buffer
	env := commands.Env{
		Config: &config.Config{Dir: t.TempDir()},
		Out:    &outBuf,
		ErrOut: &errBuf,
	}
	if p != nil {
		env.Prompter = p
	}
	return env, &outBuf, &errBuf
}

// TestLoginCommand_SavesCredentials verifies login stores what was typed
func TestLoginCommand_SavesCredentials(t *testing.T) {
	p := testutil.NewScriptedPrompter().
		Type("ACshort").
		Type(testAccountSID).
		Type("   ").
		Type("token")
	env, outBuf, errBuf := loginEnv(t, p)

	code := (&commands.LoginCmd{}).Run(context.Background(), env, nil)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, errBuf.String())
	}
	if outBuf.String() != "ok\n" {
		t.Errorf("expected ok, got %q", outBuf.String())
	}
	if len(p.Rejected) != 2 {
		t.Errorf("expected 2 rejected inputs, got %v", p.Rejected)
	}

	creds, err := env.Config.LoadCredentials()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.AccountSID != testAccountSID || creds.AuthToken != "token" {
		t.Errorf("unexpected credentials %+v", creds)
	}
}

// TestLoginCommand_AlreadyLoggedIn verifies valid stored credentials are kept
func TestLoginCommand_AlreadyLoggedIn(t *testing.T) {
	p := testutil.NewScriptedPrompter()
	env, outBuf, _ := loginEnv(t, p)
	if err := env.Config.SaveCredentials(config.Credentials{AccountSID: testAccountSID, AuthToken: "t"}); err != nil {
		t.Fatal(err)
	}

	code := (&commands.LoginCmd{}).Run(context.Background(), env, nil)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if outBuf.String() != "already logged in\n" {
		t.Errorf("expected 'already logged in', got %q", outBuf.String())
	}
	if len(p.Calls) != 0 {
		t.Errorf("expected no prompts, got %d", len(p.Calls))
	}
}

// TestLoginCommand_InvalidStoredCredentials verifies login proceeds when the file is incomplete
func TestLoginCommand_InvalidStoredCredentials(t *testing.T) {
	p := testutil.NewScriptedPrompter().Type(testAccountSID).Type("fresh")
	env, outBuf, _ := loginEnv(t, p)
	if err := env.Config.SaveCredentials(config.Credentials{AccountSID: testAccountSID}); err != nil {
		t.Fatal(err)
	}

	code := (&commands.LoginCmd{}).Run(context.Background(), env, nil)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if outBuf.String() == "already logged in\n" {
		t.Error("should not say 'already logged in' with incomplete credentials")
	}
}

// TestLoginCommand_Cancelled verifies nothing is written when a prompt is cancelled
func TestLoginCommand_Cancelled(t *testing.T) {
	p := testutil.NewScriptedPrompter().Type(testAccountSID).Cancel(testutil.KindText)
	env, _, errBuf := loginEnv(t, p)

	code := (&commands.LoginCmd{}).Run(context.Background(), env, nil)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if errBuf.String() != "error: login cancelled\n" {
		t.Errorf("unexpected stderr %q", errBuf.String())
	}
	if env.Config.HasCredentials() {
		t.Error("credentials must not be written")
	}
}

// TestLoginCommand_InputClosed verifies a lost terminal is an auth failure
func TestLoginCommand_InputClosed(t *testing.T) {
	p := testutil.NewScriptedPrompter().Close()
	env, _, _ := loginEnv(t, p)

	code := (&commands.LoginCmd{}).Run(context.Background(), env, nil)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
}

// TestLogoutCommand_NotLoggedIn verifies logout without credentials
func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	env, outBuf, errBuf := loginEnv(t, nil)

	code := (&commands.LogoutCmd{}).Run(context.Background(), env, nil)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if outBuf.String() != "not logged in\n" {
		t.Errorf("expected 'not logged in', got %q", outBuf.String())
	}
	if errBuf.String() != "" {
		t.Errorf("expected no stderr, got %q", errBuf.String())
	}
}

// TestLogoutCommand_RemovesCredentials verifies logout deletes the file
func TestLogoutCommand_RemovesCredentials(t *testing.T) {
	env, outBuf, _ := loginEnv(t, nil)
	env.Config.Quiet = true
	if err := env.Config.SaveCredentials(config.Credentials{AccountSID: testAccountSID, AuthToken: "t"}); err != nil {
		t.Fatal(err)
	}

	code := (&commands.LogoutCmd{}).Run(context.Background(), env, nil)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if outBuf.String() != "" {
		t.Errorf("expected no output with --quiet, got %q", outBuf.String())
	}
	if env.Config.HasCredentials() {
		t.Error("expected credentials removed")
	}
}
