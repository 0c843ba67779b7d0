package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bizcards/internal/client/catalog"
	"github.com/dmitrijs2005/bizcards/internal/client/models"
	"github.com/dmitrijs2005/bizcards/internal/client/notify"
	"github.com/dmitrijs2005/bizcards/internal/client/policy"
)

// List shows one page of the public listing filtered by query and
// remembers both for Page.
func (a *App) List(ctx context.Context, query string, page int) error {
	p, err := a.cards.Browse(ctx, query, page, catalog.DefaultPerPage)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.lastQuery = query
	a.mu.Unlock()

	renderPage(a.out, a.session.CurrentClaims(), p, query)
	return nil
}

// Page moves to another page of the last listing.
func (a *App) Page(ctx context.Context, page int) error {
	a.mu.Lock()
	query := a.lastQuery
	a.mu.Unlock()
	return a.List(ctx, query, page)
}

func (a *App) Show(ctx context.Context, id string) error {
	card, err := a.cards.Get(ctx, id)
	if err != nil {
		return err
	}
	renderCard(a.out, a.session.CurrentClaims(), card)
	return nil
}

func (a *App) MyCards(ctx context.Context) error {
	cards, err := a.cards.Mine(ctx)
	if err != nil {
		return err
	}
	renderCards(a.out, a.session.CurrentClaims(), cards)
	return nil
}

func (a *App) Favorites(ctx context.Context) error {
	cards, err := a.cards.Favorites(ctx)
	if err != nil {
		return err
	}
	renderCards(a.out, a.session.CurrentClaims(), cards)
	return nil
}

// Like toggles the card in the caller's favorites.
func (a *App) Like(ctx context.Context, id string) error {
	card, liked, err := a.cards.ToggleFavorite(ctx, id)
	if err != nil {
		return err
	}
	if liked {
		a.notes.Push(ctx, notify.Success, fmt.Sprintf("%q added to favorites", card.Title))
	} else {
		a.notes.Push(ctx, notify.Info, fmt.Sprintf("%q removed from favorites", card.Title))
	}
	return nil
}

func (a *App) CreateCard(ctx context.Context) error {
	if !policy.CanCreateCard(a.session.CurrentClaims()) {
		return a.denied()
	}

	var in models.CardInput
	if err := a.fill(cardFields(&in)); err != nil {
		return err
	}

	card, err := a.cards.Create(ctx, in)
	if err != nil {
		return err
	}
	a.notes.Push(ctx, notify.Success, fmt.Sprintf("Card %q created with id %s", card.Title, card.ID))
	return nil
}

// EditCard prompts with the current values of the card; empty answers keep
// them.
func (a *App) EditCard(ctx context.Context, id string) error {
	card, err := a.cards.Get(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanEdit(a.session.CurrentClaims(), card) {
		return a.denied()
	}

	in := card.Input()
	if err := a.fill(cardFields(&in)); err != nil {
		return err
	}

	updated, err := a.cards.Update(ctx, id, in)
	if err != nil {
		return err
	}
	a.notes.Push(ctx, notify.Success, fmt.Sprintf("Card %q updated", updated.Title))
	return nil
}

func (a *App) DeleteCard(ctx context.Context, id string) error {
	card, err := a.cards.Get(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanDelete(a.session.CurrentClaims(), card) {
		return a.denied()
	}
	if err := a.confirm(fmt.Sprintf("Delete card %q?", card.Title)); err != nil {
		return err
	}

	if _, err := a.cards.Delete(ctx, id); err != nil {
		return err
	}
	a.notes.Push(ctx, notify.Success, fmt.Sprintf("Card %q deleted", card.Title))
	return nil
}
