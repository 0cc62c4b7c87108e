package auth

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/dmitrijs2005/gophsession/internal/client/oauth"
	"github.com/dmitrijs2005/gophsession/internal/client/session"
)

const (
	NicknameMinLen = 2
	NicknameMaxLen = 20
)

// ValidateNickname checks an already trimmed nickname locally.
func ValidateNickname(nickname string) error {
	return validation.Validate(nickname,
		validation.Required.Error("Please enter a nickname."),
		validation.RuneLength(NicknameMinLen, NicknameMaxLen).
			Error(fmt.Sprintf("Nickname must be between %d and %d characters.", NicknameMinLen, NicknameMaxLen)),
	)
}

func validateProfile(p oauth.Profile) error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	return nil
}

// ConfirmNickname completes the pending registration. Without a pending
// registration it does nothing, so a repeated confirm after success is
// harmless.
func (f *Flow) ConfirmNickname(ctx context.Context, nickname string) error {
	const op = "confirm"

	if !f.acquire(ctx, op) {
		return ErrBusy
	}
	defer f.release()

	f.mu.Lock()
	p := f.pending
	f.mu.Unlock()
	if p == nil {
		f.log.Debug(ctx, "no pending registration")
		return nil
	}

	nickname = strings.TrimSpace(nickname)
	if err := ValidateNickname(nickname); err != nil {
		return f.invalid(ctx, newError(KindValidation, op, err))
	}

	taken, err := f.api.NicknameExists(ctx, nickname)
	if err != nil {
		return f.remoteFailure(ctx, op, err, f.fallback())
	}
	if taken {
		return f.invalid(ctx, newError(KindValidation, op, ErrNicknameTaken))
	}

	if !p.complete() {
		return f.fail(ctx, newError(KindIncomplete, op, ErrIncompleteProfile))
	}

	res, err := f.api.Register(ctx, p.token, p.registration(nickname))
	if err != nil {
		return f.remoteFailure(ctx, op, err, f.fallback())
	}

	f.mu.Lock()
	f.pending = nil
	f.mu.Unlock()

	f.authenticate(ctx, session.Identity{
		ID:       res.User.Idx,
		Name:     session.String(p.Name),
		Email:    session.String(p.Email),
		Nickname: session.String(nickname),
		Picture:  session.String(p.Picture),
		Level:    levelOrDefault(res.User.Level),
		Score:    0,
	}, res.Token)
	f.hooks.OnNotice(fmt.Sprintf("Welcome, %s!", nickname))
	return nil
}

// invalid reports a validation error and keeps the registration pending.
func (f *Flow) invalid(ctx context.Context, e *Error) error {
	f.mu.Lock()
	f.lastErr = e
	f.state = StatePendingRegistration
	f.mu.Unlock()

	f.log.Debug(ctx, "nickname rejected", "error", e.Err)
	f.hooks.OnValidationError(e.Message())
	return e
}
