package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/accountcli/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to the interactive input helpers and can be swapped
// in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account fields and attempts to create a new
// account. On success the session is already authenticated (the backend
// issues a token on signup) and the profile snapshot is refreshed.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Enter phone (optional)", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password: ", os.Stdout)
	if err != nil {
		return err
	}

	data := models.RegisterData{Name: name, Email: email, Password: password, Phone: phone}
	if err := a.session.Register(ctx, data); err != nil {
		printlnFn(renderError(err.Error()))
		return err
	}

	printlnFn(renderSuccess("Success!"))
	return nil
}

// Login prompts for credentials and tries to authenticate.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password: ", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, models.LoginData{Email: email, Password: password}); err != nil {
		printlnFn(renderError(err.Error()))
		return err
	}

	printlnFn(renderSuccess("Logged in."))
	return nil
}

// Logout ends the session. Always succeeds locally; a failed server call
// is only logged.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn(renderSuccess("Logged out."))
	return nil
}
