package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/bizcards/internal/client/client"
	"github.com/dmitrijs2005/bizcards/internal/client/models"
	"github.com/dmitrijs2005/bizcards/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bizcards/internal/client/token"
	"github.com/dmitrijs2005/bizcards/internal/logging"
)

// AuthService defines account operations for the CLI.
//
// Contract:
//   - Login: exchange credentials for a token and open a session, durable
//     when remember is set.
//   - Register: create an account; the session is not opened.
//   - Logout: close the session in this and every sharing process.
//   - Profile/UpdateProfile/ToggleBusiness/DeleteAccount: act on the
//     logged-in user. DeleteAccount ends the session.
//   - Ping: check backend liveness.
//   - StoredKeys/ClearLocalData: inspect and wipe the durable area.
//   - Close: release underlying client resources.
type AuthService interface {
	Login(ctx context.Context, email, password string, remember bool) (*token.Claims, error)
	Register(ctx context.Context, u *models.User) (*models.User, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, p models.ProfileUpdate) (*models.User, error)
	ToggleBusiness(ctx context.Context) (*models.User, error)
	DeleteAccount(ctx context.Context) error
	Ping(ctx context.Context) error
	StoredKeys(ctx context.Context) ([]string, error)
	ClearLocalData(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client  client.Client
	session Session
	durable metadata.Repository
	log     logging.Logger
}

// NewAuthService constructs an AuthService over the backend client, the
// session and the durable area.
func NewAuthService(c client.Client, s Session, durable metadata.Repository, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Discard()
	}
	return &authService{
		client:  c,
		session: s,
		durable: durable,
		log:     log.With("component", "auth"),
	}
}

func (a *authService) Login(ctx context.Context, email, password string, remember bool) (*token.Claims, error) {
	if err := models.ValidateCredentials(email, password); err != nil {
		return nil, err
	}

	raw, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	claims, err := a.session.Login(ctx, raw, remember)
	if err != nil {
		return nil, fmt.Errorf("session error: %w", err)
	}
	a.log.Info(ctx, "user logged in", "user", claims.SubjectID, "remember", remember)
	return claims, nil
}

// Register normalizes and validates u before sending it.
func (a *authService) Register(ctx context.Context, u *models.User) (*models.User, error) {
	models.NormalizeRegistration(u)
	if err := models.ValidateRegistration(u); err != nil {
		return nil, err
	}

	created, err := a.client.Register(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}
	return created, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

func (a *authService) Profile(ctx context.Context) (*models.User, error) {
	c, err := requireLogin(a.session)
	if err != nil {
		return nil, err
	}
	return a.client.GetUser(ctx, c.SubjectID)
}

func (a *authService) UpdateProfile(ctx context.Context, p models.ProfileUpdate) (*models.User, error) {
	c, err := requireLogin(a.session)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateProfile(p); err != nil {
		return nil, err
	}
	return a.client.UpdateUser(ctx, c.SubjectID, p)
}

// ToggleBusiness flips the caller's own business flag. The new role shows
// in the token only after the next login.
func (a *authService) ToggleBusiness(ctx context.Context) (*models.User, error) {
	c, err := requireLogin(a.session)
	if err != nil {
		return nil, err
	}
	return a.client.ToggleBusiness(ctx, c.SubjectID)
}

func (a *authService) DeleteAccount(ctx context.Context) error {
	c, err := requireLogin(a.session)
	if err != nil {
		return err
	}
	if _, err := a.client.DeleteUser(ctx, c.SubjectID); err != nil {
		return fmt.Errorf("delete account error: %w", err)
	}
	a.log.Info(ctx, "account deleted", "user", c.SubjectID)
	return a.session.ForceLogout(ctx, ErrAccountDeleted)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) StoredKeys(ctx context.Context) ([]string, error) {
	all, err := a.durable.List(ctx)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

// ClearLocalData logs out and wipes the durable area, preferences included.
func (a *authService) ClearLocalData(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	return a.durable.Clear(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
