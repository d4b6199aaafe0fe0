package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/lifeboard/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email and password and starts a signup. On
// success the user is taken straight to the verification prompt. The
// password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.auth.Register(ctx, name, email, string(password))
	printlnFn(res.Message)
	if !res.Success {
		return nil
	}
	return a.Verify(ctx)
}

// Login prompts for credentials and authenticates. An unverified account is
// routed to the verification prompt, matching the web shell's redirect to
// the verification screen.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.auth.Login(ctx, email, string(password))
	printlnFn(res.Message)
	if !res.Success && a.hasPendingVerification() {
		return a.Verify(ctx)
	}
	return nil
}

// Verify prompts for the one-time code. Entering an empty line leaves the
// verification screen and clears the pending slot.
func (a *App) Verify(ctx context.Context) error {
	if !a.hasPendingVerification() {
		printlnFn("Nothing to verify")
		return nil
	}

	code, err := getSimpleText(a.reader, "Enter the 6-digit code (empty line to cancel)", os.Stdout)
	if err != nil {
		return err
	}
	if code == "" {
		a.auth.AbandonVerification()
		printlnFn("Verification cancelled")
		return nil
	}

	res := a.auth.VerifyOTP(ctx, code)
	printlnFn(res.Message)
	return nil
}

// Resend requests another verification code. The cooldown lives here, in
// the UI layer; the controller itself does not rate-limit.
func (a *App) Resend(ctx context.Context) error {
	a.mu.Lock()
	since := time.Since(a.lastResend)
	cooldown := a.config.ResendCooldown
	a.mu.Unlock()

	if since < cooldown {
		printlnFn(fmt.Sprintf("Please wait %.0fs before requesting another code", (cooldown - since).Seconds()))
		return nil
	}

	if !a.auth.ResendOTP(ctx) {
		printlnFn("No pending registration")
		return nil
	}

	a.mu.Lock()
	a.lastResend = time.Now()
	a.mu.Unlock()

	printlnFn("Verification code sent")
	return nil
}

// Logout ends the session. Safe to call when already logged out.
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	printlnFn("Logged out")
	return nil
}

// Status prints what the dashboard header would show: the current identity
// and the active theme.
func (a *App) Status(ctx context.Context) error {
	if user := a.auth.CurrentUser(); user != nil {
		printlnFn(fmt.Sprintf("Signed in as %s <%s>", user.Name, user.Email))
	} else {
		printlnFn("Not signed in")
	}
	printlnFn(fmt.Sprintf("Theme: %s (dark: %v)", a.auth.Theme(), a.auth.IsDarkTheme()))
	return nil
}
