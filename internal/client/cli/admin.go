package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bizcards/internal/client/notify"
	"github.com/dmitrijs2005/bizcards/internal/client/services"
)

// denied is the error of a command the current role may not run.
func (a *App) denied() error {
	if !a.isLoggedIn() {
		return services.ErrNotLoggedIn
	}
	return services.ErrNotPermitted
}

// Users lists accounts matching query by name, email or role.
func (a *App) Users(ctx context.Context, query string) error {
	users, err := a.admin.Users(ctx, query)
	if err != nil {
		return err
	}
	renderUsers(a.out, users)
	return nil
}

// UserType flips the business flag of another user.
func (a *App) UserType(ctx context.Context, id string) error {
	u, err := a.admin.ToggleBusiness(ctx, id)
	if err != nil {
		return err
	}
	kind := "a regular"
	if u.IsBusiness {
		kind = "a business"
	}
	a.notes.Push(ctx, notify.Success, fmt.Sprintf("%s is now %s account", u.Name.Full(), kind))
	return nil
}

func (a *App) DeleteUser(ctx context.Context, id string) error {
	if err := a.confirm(fmt.Sprintf("Delete user %s?", id)); err != nil {
		return err
	}
	u, err := a.admin.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	a.notes.Push(ctx, notify.Success, fmt.Sprintf("User %s deleted", u.Name.Full()))
	return nil
}
