package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/accountcli/internal/client/models"
)

// ShowProfile renders the current profile: the live session user's data
// when authenticated, the last persisted snapshot otherwise.
func (a *App) ShowProfile(ctx context.Context) error {
	if a.profile.Loading() {
		printlnFn("Loading...")
		return nil
	}
	printlnFn(renderProfileCard(a.profile.Profile()))
	return nil
}

// Edit prompts for new profile fields (empty input keeps the current
// value). When authenticated the change is pushed to the backend through
// the session store, which re-derives and persists the local snapshot on
// success; when logged out only the local snapshot is updated.
func (a *App) Edit(ctx context.Context) error {
	current := a.profile.Profile()
	if current == nil {
		d := models.DefaultProfile()
		current = &d
	}

	name, err := getSimpleText(a.reader, "Name ["+current.Name+"]", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email ["+current.Email+"]", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Phone ["+current.Phone+"]", os.Stdout)
	if err != nil {
		return err
	}

	var patch models.UpdateProfileData
	if name != "" && name != current.Name {
		patch.Name = &name
	}
	if email != "" && email != current.Email {
		patch.Email = &email
	}
	if phone != "" && phone != current.Phone {
		patch.Phone = &phone
	}
	if patch == (models.UpdateProfileData{}) {
		printlnFn("Nothing to change.")
		return nil
	}

	if a.isLoggedIn() {
		if err := a.session.UpdateUserProfile(ctx, patch); err != nil {
			printlnFn(renderError(err.Error()))
			return err
		}
	} else {
		if err := a.profile.Update(ctx, patch); err != nil {
			printlnFn(renderError(err.Error()))
			return err
		}
	}

	printlnFn(renderSuccess("Profile updated."))
	return nil
}

// ChangePassword asks for the new password twice and pushes it to the
// backend. Requires an authenticated session.
func (a *App) ChangePassword(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn(renderError("you must be logged in to change the password"))
		return nil
	}

	password, err := getPassword("New password: ", os.Stdout)
	if err != nil {
		return err
	}
	confirm, err := getPassword("Repeat password: ", os.Stdout)
	if err != nil {
		return err
	}
	if password != confirm {
		printlnFn(renderError("passwords do not match"))
		return nil
	}

	if err := a.session.UpdateUserProfile(ctx, models.UpdateProfileData{Password: &password}); err != nil {
		printlnFn(renderError(err.Error()))
		return err
	}

	printlnFn(renderSuccess("Password changed."))
	return nil
}

// Wipe removes all locally persisted state (token and profile snapshot).
// Only available when logged out, so the session invariants stay intact.
func (a *App) Wipe(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn(renderError("log out before wiping local data"))
		return nil
	}

	if err := a.store.Wipe(ctx); err != nil {
		printlnFn(renderError(err.Error()))
		return err
	}
	a.profile.Refresh(ctx)

	printlnFn(renderSuccess("Local data wiped."))
	return nil
}
