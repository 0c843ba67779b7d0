package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bizcards/internal/client/models"
	"github.com/dmitrijs2005/bizcards/internal/client/notify"
	"github.com/dmitrijs2005/bizcards/internal/client/policy"
)

// getSimpleText, getPassword and getConfirmation are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getConfirmation = GetConfirmation
)

// confirm asks before a destructive action and returns errCancelled on no.
func (a *App) confirm(prompt string) error {
	ok, err := getConfirmation(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if !ok {
		return errCancelled
	}
	return nil
}

// Register walks through the sign-up form and creates the account. The
// session is not opened; the user logs in afterwards.
func (a *App) Register(ctx context.Context) error {
	var u models.User
	if err := a.fill(registrationFields(&u)); err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	u.Password = string(password)

	business, err := getConfirmation(a.reader, "Register as a business account?", a.out)
	if err != nil {
		return err
	}
	u.IsBusiness = business

	created, err := a.auth.Register(ctx, &u)
	if err != nil {
		return err
	}

	a.notes.Push(ctx, notify.Success, fmt.Sprintf("Welcome, %s! You can log in now", created.Name.First))
	return nil
}

// Login prompts for credentials and opens a session. With "remember me"
// the token lands in the durable area and every process of this user sees
// the login; otherwise it lives only as long as this process.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	remember, err := getConfirmation(a.reader, "Remember me?", a.out)
	if err != nil {
		return err
	}

	claims, err := a.auth.Login(ctx, strings.TrimSpace(email), string(password), remember)
	if err != nil {
		return err
	}

	a.refreshIdentity(ctx)
	a.notes.Push(ctx, notify.Success, fmt.Sprintf("Logged in as %s", policy.RoleOf(claims)))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.notes.Push(ctx, notify.Info, "You are not logged in")
		return nil
	}
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.notes.Push(ctx, notify.Success, "Logged out")
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	u, err := a.auth.Profile(ctx)
	if err != nil {
		return err
	}
	renderUser(a.out, u)
	return nil
}

// EditProfile shows the stored profile as defaults; empty answers keep them.
func (a *App) EditProfile(ctx context.Context) error {
	u, err := a.auth.Profile(ctx)
	if err != nil {
		return err
	}

	p := u.Profile()
	if err := a.fill(profileFields(&p)); err != nil {
		return err
	}

	updated, err := a.auth.UpdateProfile(ctx, p)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.userName = updated.Name.First
	a.mu.Unlock()
	a.notes.Push(ctx, notify.Success, "Profile updated")
	return nil
}

// Business flips the business flag of the logged-in user. The role shown in
// the prompt follows at the next login.
func (a *App) Business(ctx context.Context) error {
	u, err := a.auth.ToggleBusiness(ctx)
	if err != nil {
		return err
	}
	state := "disabled"
	if u.IsBusiness {
		state = "enabled"
	}
	a.notes.Push(ctx, notify.Success, fmt.Sprintf("Business account %s, log in again to use it", state))
	return nil
}

func (a *App) DeleteAccount(ctx context.Context) error {
	if a.isLoggedIn() {
		if err := a.confirm("Delete your account? This cannot be undone"); err != nil {
			return err
		}
	}
	return a.auth.DeleteAccount(ctx)
}

// Status prints the session, connectivity and local storage state.
func (a *App) Status(ctx context.Context) error {
	claims := a.session.CurrentClaims()

	if claims == nil {
		fmt.Fprintln(a.out, "Session:     logged out")
	} else {
		fmt.Fprintf(a.out, "Session:     logged in as %s (%s)\n", claims.SubjectID, policy.RoleOf(claims))
		fmt.Fprintf(a.out, "Stored in:   %s\n", a.session.Persistence())
		if !claims.ExpiresAt.IsZero() {
			fmt.Fprintf(a.out, "Expires:     %s\n", claims.ExpiresAt.Local().Format("2006-01-02 15:04"))
		}
	}

	mode := a.getMode()
	if mode == "" {
		mode = "unknown"
	}
	fmt.Fprintf(a.out, "Backend:     %s (%s)\n", a.config.APIBaseURL, mode)
	if a.theme != nil {
		fmt.Fprintf(a.out, "Theme:       %s\n", a.theme.Current())
	}

	keys, err := a.auth.StoredKeys(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Local keys:  %s (%s)\n", strings.Join(keys, ", "), a.config.StorageBackend)
	return nil
}

// Reset logs out and wipes the durable area, theme preference and cached
// listing included.
func (a *App) Reset(ctx context.Context) error {
	if err := a.confirm("Log out and remove all locally stored data?"); err != nil {
		return err
	}
	if err := a.auth.ClearLocalData(ctx); err != nil {
		return err
	}
	if err := a.cards.ForgetListing(ctx); err != nil {
		return err
	}
	if a.theme != nil {
		if _, err := a.theme.Load(ctx); err != nil {
			a.log.Warn(ctx, "failed to reload theme", "error", err)
		}
	}
	a.notes.Push(ctx, notify.Success, "Local data cleared")
	return nil
}

func (a *App) ToggleTheme(ctx context.Context) error {
	if a.theme == nil {
		return nil
	}
	t, err := a.theme.Toggle(ctx)
	if err != nil {
		return err
	}
	a.notes.Push(ctx, notify.Info, fmt.Sprintf("Switched to %s theme", t))
	return nil
}
