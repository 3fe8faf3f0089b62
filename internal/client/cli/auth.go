package cli

import (
	"context"

	"github.com/dmitrijs2005/phishshield/internal/client/models"
	"github.com/dmitrijs2005/phishshield/internal/client/validate"
	"github.com/dmitrijs2005/phishshield/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

const (
	msgLocalDataCleared = "All local data removed"
	msgClearFailed      = "Could not remove local data"
)

// promptIfEmpty returns v, or asks for it when empty.
func (a *App) promptIfEmpty(v, prompt string) (string, error) {
	if v != "" {
		return v, nil
	}
	return getSimpleText(a.reader, prompt, a.out.w)
}

// Login authenticates with email (prompted when empty) and a password read
// from the terminal. The password is wiped before returning.
func (a *App) Login(ctx context.Context, email string) error {
	email, err := a.promptIfEmpty(email, "Enter email")
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out.w)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.check(a.store.Login(ctx, email, string(password)))
}

// SignupForm carries values supplied on the command line; empty fields are
// prompted for.
type SignupForm struct {
	Name        string
	Email       string
	PhoneNumber string
}

// Signup creates an account and signs in to it. When the password is
// rejected the strength checklist is shown.
func (a *App) Signup(ctx context.Context, form SignupForm) error {
	var err error
	if form.Name, err = a.promptIfEmpty(form.Name, "Enter full name"); err != nil {
		return err
	}
	if form.Email, err = a.promptIfEmpty(form.Email, "Enter email"); err != nil {
		return err
	}
	if form.PhoneNumber, err = a.promptIfEmpty(form.PhoneNumber, "Enter phone number"); err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out.w)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	out := a.store.Signup(ctx, models.SignupRequest{
		Name:        form.Name,
		Email:       form.Email,
		Password:    string(password),
		PhoneNumber: form.PhoneNumber,
	})
	if out.Fields.Get(validate.FieldPassword) != "" {
		a.out.passwordChecklist(string(password))
	}
	return a.check(out)
}

func (a *App) Logout(ctx context.Context) error {
	return a.check(a.store.Logout(ctx))
}

// ForgetAll signs out and removes every record of the local database,
// mock-mode accounts included.
func (a *App) ForgetAll(ctx context.Context) error {
	if err := a.Logout(ctx); err != nil {
		return err
	}
	if a.meta == nil {
		return nil
	}
	if err := a.meta.Clear(ctx); err != nil {
		a.logger.Error(ctx, "failed to clear local data", "error", err)
		return a.fail(msgClearFailed)
	}
	a.out.Success(msgLocalDataCleared)
	return nil
}

// WhoAmI prints the signed-in user.
func (a *App) WhoAmI(ctx context.Context) error {
	if err := a.requireUser(); err != nil {
		return err
	}
	a.out.user(*a.store.User())

	if a.tokens == nil {
		return nil
	}
	since, err := a.tokens.SavedAt(ctx)
	if err != nil {
		a.logger.Warn(ctx, "failed to read session start", "error", err)
		return nil
	}
	if !since.IsZero() {
		a.out.println(a.out.kv("Signed in", since.Local().Format("2006-01-02 15:04")))
	}
	return nil
}
