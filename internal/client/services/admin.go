package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bizcards/internal/client/catalog"
	"github.com/dmitrijs2005/bizcards/internal/client/client"
	"github.com/dmitrijs2005/bizcards/internal/client/models"
	"github.com/dmitrijs2005/bizcards/internal/client/policy"
	"github.com/dmitrijs2005/bizcards/internal/logging"
)

// UserSummary is one row of the user-management listing.
type UserSummary struct {
	models.User
	Role  string
	Cards int
}

type AdminService interface {
	// Users lists the users matching query by name, email or role, with
	// their card counts.
	Users(ctx context.Context, query string) ([]UserSummary, error)
	ToggleBusiness(ctx context.Context, id string) (*models.User, error)
	DeleteUser(ctx context.Context, id string) (*models.User, error)
}

type adminService struct {
	client  client.Client
	session Session
	log     logging.Logger
}

func NewAdminService(c client.Client, s Session, log logging.Logger) AdminService {
	if log == nil {
		log = logging.Discard()
	}
	return &adminService{client: c, session: s, log: log.With("component", "admin")}
}

func (s *adminService) requireAdmin() error {
	c, err := requireLogin(s.session)
	if err != nil {
		return err
	}
	if !policy.CanViewUsers(c) {
		return fmt.Errorf("%w: admin only", ErrNotPermitted)
	}
	return nil
}

func (s *adminService) Users(ctx context.Context, query string) ([]UserSummary, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}

	users, err := s.client.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users error: %w", err)
	}
	cards, err := s.client.ListCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cards error: %w", err)
	}
	counts := catalog.CountByOwner(cards)

	matched := catalog.SearchUsers(users, query)
	out := make([]UserSummary, 0, len(matched))
	for _, u := range matched {
		out = append(out, UserSummary{User: u, Role: catalog.UserRole(u), Cards: counts[u.ID]})
	}
	return out, nil
}

// target loads user id and checks that the caller may manage it.
func (s *adminService) target(ctx context.Context, id string) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	u, err := s.client.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanManageUser(s.session.CurrentClaims(), u) {
		return fmt.Errorf("%w: admins cannot be managed", ErrNotPermitted)
	}
	return nil
}

func (s *adminService) ToggleBusiness(ctx context.Context, id string) (*models.User, error) {
	if err := s.target(ctx, id); err != nil {
		return nil, err
	}
	u, err := s.client.ToggleBusiness(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "business flag changed", "user", id, "business", u.IsBusiness)
	return u, nil
}

func (s *adminService) DeleteUser(ctx context.Context, id string) (*models.User, error) {
	if err := s.target(ctx, id); err != nil {
		return nil, err
	}
	u, err := s.client.DeleteUser(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "user deleted", "user", id)
	return u, nil
}
