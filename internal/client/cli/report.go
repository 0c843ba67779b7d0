package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/bizcards/internal/client/client"
	"github.com/dmitrijs2005/bizcards/internal/client/models"
	"github.com/dmitrijs2005/bizcards/internal/client/notify"
	"github.com/dmitrijs2005/bizcards/internal/client/services"
	"github.com/dmitrijs2005/bizcards/internal/client/token"
)

var errCancelled = errors.New("cancelled")

// describe turns a command error into the text shown to the user.
func describe(err error) string {
	var (
		verr *models.ValidationError
		herr *client.HTTPError
	)

	switch {
	case errors.Is(err, errCancelled):
		return "Cancelled"
	case errors.Is(err, services.ErrNotLoggedIn):
		return "Please log in first"
	case errors.Is(err, services.ErrNotPermitted):
		return "You are not allowed to do that"
	case errors.As(err, &verr):
		return "Please fix the form: " + verr.Error()
	case errors.Is(err, client.ErrUnavailable):
		return "The card directory is unavailable, try again later"
	case token.IsDecodeError(err):
		return "The server sent a session token this client cannot read"
	case errors.Is(err, client.ErrUnauthorized):
		return "Your session is no longer valid, please log in again"
	case errors.As(err, &herr) && herr.Message != "":
		return herr.Message
	case errors.Is(err, client.ErrNotFound):
		return "Not found"
	default:
		return err.Error()
	}
}

func (a *App) report(ctx context.Context, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	level := notify.Danger
	if errors.Is(err, errCancelled) {
		level = notify.Info
	}
	a.log.Debug(ctx, "command failed", "error", err)
	a.notes.Push(ctx, level, describe(err))
}
