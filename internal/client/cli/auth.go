package cli

import (
	"context"
	"time"
)

// getSimpleText is swapped in tests.
var getSimpleText = GetSimpleText

// now is swapped in tests.
var now = time.Now

// Login prints the provider sign-in URL and then asks for the URL the
// browser landed on. An empty answer leaves the flow waiting; the result can
// be fed later with Callback.
func (a *App) Login(ctx context.Context) error {
	u, err := a.flow.BeginSignIn(ctx)
	if err != nil {
		return err
	}
	a.printf("Open this URL in your browser to sign in:\n  %s\n", u)

	redirected, err := getSimpleText(a.reader, "Paste the URL you were redirected to (empty to skip)", a.out)
	if err != nil {
		return err
	}
	if redirected == "" {
		a.printf("Use 'callback <url>' once you have it.\n")
		return nil
	}
	return a.Callback(ctx, redirected)
}

// Callback hands a redirect URL to the flow.
func (a *App) Callback(ctx context.Context, rawURL string) error {
	stripped, err := a.flow.HandleCallback(ctx, rawURL)
	if err != nil {
		return err
	}
	if stripped == rawURL {
		a.printf("No sign-in result in that URL.\n")
	}
	return nil
}

func (a *App) Nickname(ctx context.Context, nickname string) error {
	if _, ok := a.flow.Pending(); !ok {
		a.printf("Nothing to confirm. Use 'login' first.\n")
		return nil
	}
	return a.flow.ConfirmNickname(ctx, nickname)
}

func (a *App) Cancel(ctx context.Context) error {
	if _, ok := a.flow.Pending(); !ok {
		a.printf("No registration in progress.\n")
		return nil
	}
	if err := a.flow.CancelRegistration(ctx); err != nil {
		return err
	}
	a.printf("Registration cancelled.\n")
	return nil
}

func (a *App) TestLogin(ctx context.Context) error {
	return a.flow.TestLogin(ctx)
}

func (a *App) Logout(ctx context.Context) error {
	return a.flow.Logout(ctx)
}

// Status prints the flow state, the identity, the stored token and the
// active scope.
func (a *App) Status(ctx context.Context) error {
	a.printf("State: %s\n", a.flow.State())

	id := a.store.Get()
	if id.IsAuthenticated() {
		a.printf("User: %s <%s>, level %d, score %d\n", id.DisplayName(), *id.Email, id.Level, id.Score)
	} else {
		a.printf("User: anonymous\n")
	}

	if p, ok := a.flow.Pending(); ok {
		a.printf("Pending registration: %s <%s>\n", p.Name, p.Email)
	}

	info, err := a.store.TokenInfo(ctx)
	if err != nil {
		return err
	}
	switch {
	case !info.Present:
		a.printf("Token: none\n")
	case info.Opaque:
		a.printf("Token: opaque\n")
	case info.ExpiresAt == nil:
		a.printf("Token: JWT, subject %q, no expiry\n", info.Subject)
	case info.Expired(now()):
		a.printf("Token: JWT, subject %q, expired %s\n", info.Subject, info.ExpiresAt.Format(time.RFC3339))
	default:
		a.printf("Token: JWT, subject %q, expires %s\n", info.Subject, info.ExpiresAt.Format(time.RFC3339))
	}

	if err := a.binder.Wait(ctx); err != nil {
		return err
	}
	if scope := a.binder.Current(); scope != "" {
		a.printf("Scope: %s\n", scope)
	} else {
		a.printf("Scope: unavailable\n")
	}
	return nil
}
