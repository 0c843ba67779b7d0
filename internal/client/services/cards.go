package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bizcards/internal/client/catalog"
	"github.com/dmitrijs2005/bizcards/internal/client/client"
	"github.com/dmitrijs2005/bizcards/internal/client/models"
	"github.com/dmitrijs2005/bizcards/internal/client/policy"
	"github.com/dmitrijs2005/bizcards/internal/logging"
)

type CardService interface {
	// Browse fetches the public listing, filters it by query and returns
	// the requested page.
	Browse(ctx context.Context, query string, page, perPage int) (catalog.Page[models.Card], error)
	Get(ctx context.Context, id string) (*models.Card, error)
	Mine(ctx context.Context) ([]models.Card, error)
	Favorites(ctx context.Context) ([]models.Card, error)
	Create(ctx context.Context, in models.CardInput) (*models.Card, error)
	Update(ctx context.Context, id string, in models.CardInput) (*models.Card, error)
	Delete(ctx context.Context, id string) (*models.Card, error)
	// ToggleFavorite returns the updated card and whether the caller now
	// likes it.
	ToggleFavorite(ctx context.Context, id string) (*models.Card, bool, error)
	// ForgetListing drops the cached listing, if any.
	ForgetListing(ctx context.Context) error
}

// ListingCache keeps the last public listing for offline browsing.
type ListingCache interface {
	ReplaceAll(ctx context.Context, cards []models.Card) error
	List(ctx context.Context) ([]models.Card, time.Time, error)
	Clear(ctx context.Context) error
}

type CardOption func(*cardService)

// WithListingCache stores every fetched listing in cache and serves it
// when the backend is unavailable.
func WithListingCache(cache ListingCache) CardOption {
	return func(s *cardService) { s.cache = cache }
}

type cardService struct {
	client  client.CardClient
	session Session
	cache   ListingCache
	log     logging.Logger
}

func NewCardService(c client.CardClient, s Session, log logging.Logger, opts ...CardOption) CardService {
	if log == nil {
		log = logging.Discard()
	}
	svc := &cardService{client: c, session: s, log: log.With("component", "cards")}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// listing fetches the public cards. When the backend is unavailable and a
// cached copy exists, the copy is returned with the time it was fetched.
func (s *cardService) listing(ctx context.Context) ([]models.Card, time.Time, error) {
	cards, err := s.client.ListCards(ctx)
	if err == nil {
		if s.cache != nil {
			if cerr := s.cache.ReplaceAll(ctx, cards); cerr != nil {
				s.log.Warn(ctx, "failed to cache card listing", "error", cerr)
			}
		}
		return cards, time.Time{}, nil
	}

	if s.cache != nil && errors.Is(err, client.ErrUnavailable) {
		cached, at, cerr := s.cache.List(ctx)
		if cerr != nil {
			s.log.Warn(ctx, "failed to read cached listing", "error", cerr)
		} else if !at.IsZero() {
			s.log.Info(ctx, "serving cached listing", "fetched_at", at, "cards", len(cached))
			return cached, at, nil
		}
	}
	return nil, time.Time{}, fmt.Errorf("list cards error: %w", err)
}

func (s *cardService) Browse(ctx context.Context, query string, page, perPage int) (catalog.Page[models.Card], error) {
	cards, cachedAt, err := s.listing(ctx)
	if err != nil {
		return catalog.Page[models.Card]{}, err
	}
	p := catalog.Paginate(catalog.SearchCards(cards, query), page, perPage)
	p.CachedAt = cachedAt
	return p, nil
}

func (s *cardService) Get(ctx context.Context, id string) (*models.Card, error) {
	return s.client.GetCard(ctx, id)
}

func (s *cardService) Mine(ctx context.Context) ([]models.Card, error) {
	if _, err := requireLogin(s.session); err != nil {
		return nil, err
	}
	return s.client.MyCards(ctx)
}

// Favorites are the listed cards whose likes contain the caller.
func (s *cardService) Favorites(ctx context.Context) ([]models.Card, error) {
	c, err := requireLogin(s.session)
	if err != nil {
		return nil, err
	}
	cards, _, err := s.listing(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.FavoritesOf(cards, c.SubjectID), nil
}

func (s *cardService) Create(ctx context.Context, in models.CardInput) (*models.Card, error) {
	c, err := requireLogin(s.session)
	if err != nil {
		return nil, err
	}
	if !policy.CanCreateCard(c) {
		return nil, fmt.Errorf("%w: only business accounts can create cards", ErrNotPermitted)
	}
	if err := models.ValidateCard(in); err != nil {
		return nil, err
	}

	card, err := s.client.CreateCard(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "card created", "card", card.ID)
	return card, nil
}

// owned fetches card id and checks allowed against it.
func (s *cardService) owned(ctx context.Context, id string, allowed func(*models.Card) bool) (*models.Card, error) {
	if _, err := requireLogin(s.session); err != nil {
		return nil, err
	}
	card, err := s.client.GetCard(ctx, id)
	if err != nil {
		return nil, err
	}
	if !allowed(card) {
		return nil, fmt.Errorf("%w: only the owner can change this card", ErrNotPermitted)
	}
	return card, nil
}

func (s *cardService) Update(ctx context.Context, id string, in models.CardInput) (*models.Card, error) {
	if err := models.ValidateCard(in); err != nil {
		return nil, err
	}
	if _, err := s.owned(ctx, id, func(card *models.Card) bool {
		return policy.CanEdit(s.session.CurrentClaims(), card)
	}); err != nil {
		return nil, err
	}
	return s.client.UpdateCard(ctx, id, in)
}

func (s *cardService) Delete(ctx context.Context, id string) (*models.Card, error) {
	if _, err := s.owned(ctx, id, func(card *models.Card) bool {
		return policy.CanDelete(s.session.CurrentClaims(), card)
	}); err != nil {
		return nil, err
	}

	card, err := s.client.DeleteCard(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "card deleted", "card", id)
	return card, nil
}

func (s *cardService) ToggleFavorite(ctx context.Context, id string) (*models.Card, bool, error) {
	c := s.session.CurrentClaims()
	if !policy.CanFavorite(c) {
		return nil, false, ErrNotLoggedIn
	}

	card, err := s.client.ToggleLike(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return card, policy.HasLiked(c, card.LikedBy), nil
}

func (s *cardService) ForgetListing(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Clear(ctx)
}
