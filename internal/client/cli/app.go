package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/bizcards/internal/client/client"
	"github.com/dmitrijs2005/bizcards/internal/client/config"
	"github.com/dmitrijs2005/bizcards/internal/client/notify"
	"github.com/dmitrijs2005/bizcards/internal/client/repositories/cards"
	"github.com/dmitrijs2005/bizcards/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bizcards/internal/client/services"
	"github.com/dmitrijs2005/bizcards/internal/client/session"
	"github.com/dmitrijs2005/bizcards/internal/client/theme"
	"github.com/dmitrijs2005/bizcards/internal/client/token"
	"github.com/dmitrijs2005/bizcards/internal/logging"
	"github.com/redis/go-redis/v9"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// sessionView is the read side of session.Store the REPL renders from.
type sessionView interface {
	Initialize(ctx context.Context) error
	CurrentClaims() *token.Claims
	Persistence() session.Persistence
	Subscribe(l session.Listener) (cancel func())
}

type App struct {
	config  *config.Config
	log     logging.Logger
	auth    services.AuthService
	cards   services.CardService
	admin   services.AdminService
	session sessionView
	theme   *theme.Service
	notes   *notify.Queue
	reader  *bufio.Reader
	out     io.Writer

	// watchers run in the background for the lifetime of Run.
	watchers    []func(ctx context.Context) error
	closers     []func() error
	unsubscribe func()

	mu        sync.Mutex
	mode      Mode
	userName  string
	lastQuery string
}

// NewApp opens the durable area selected by c, builds the session store and
// the backend client on top of it and wires the services.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Discard()
	}

	storage, err := openStorage(ctx, c, log)
	if err != nil {
		log.Error(ctx, "error initializing durable storage", "backend", c.StorageBackend, "error", err)
		return nil, err
	}

	durable := storage.durable
	store := session.NewStore(durable, metadata.NewMemoryRepository(), token.NewCodec(), log)

	api, err := client.NewHTTPClient(c.APIBaseURL, store,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log),
		client.WithUnauthorizedHandler(func(ctx context.Context, rejected string, err error) {
			if _, ferr := store.ForceLogoutIfToken(ctx, rejected, err); ferr != nil {
				log.Warn(ctx, "failed to clear rejected session", "error", ferr)
			}
		}),
	)
	if err != nil {
		_ = storage.close()
		return nil, err
	}

	th := theme.NewService(durable, log)

	var cardOpts []services.CardOption
	if storage.cache != nil {
		cardOpts = append(cardOpts, services.WithListingCache(storage.cache))
	}

	return &App{
		config:  c,
		log:     log,
		auth:    services.NewAuthService(api, store, durable, log),
		cards:   services.NewCardService(api, store, log, cardOpts...),
		admin:   services.NewAdminService(api, store, log),
		session: store,
		theme:   th,
		notes:   notify.NewQueue(time.Minute, log),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		watchers: []func(context.Context) error{
			func(ctx context.Context) error { return store.Watch(ctx, durable) },
			func(ctx context.Context) error { return th.Watch(ctx, durable) },
		},
		closers: []func() error{storage.close},
	}, nil
}

// durableArea is a persistence area with a native change feed.
type durableArea interface {
	metadata.Repository
	metadata.Notifier
}

// localStorage is what openStorage hands to NewApp. cache is nil when the
// backend keeps no card listing.
type localStorage struct {
	durable durableArea
	cache   services.ListingCache
	close   func() error
}

func openStorage(ctx context.Context, c *config.Config, log logging.Logger) (*localStorage, error) {
	switch c.StorageBackend {
	case config.StorageRedis:
		rdb := redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to connect to redis %s: %w", c.RedisAddr, err)
		}
		return &localStorage{
			durable: metadata.NewRedisRepository(rdb, c.RedisPrefix),
			close:   rdb.Close,
		}, nil

	case config.StorageSQLite:
		db, err := metadata.OpenSQLite(ctx, c.DatabasePath)
		if err != nil {
			return nil, err
		}
		return &localStorage{
			durable: metadata.NewSQLiteRepository(db).WithPollInterval(c.WatchInterval).WithLogger(log),
			cache:   cards.NewSQLiteRepository(db),
			close:   db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}

// Run restores the session, starts the background watchers and blocks in
// the REPL until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.close(ctx)

	a.start(ctx)
	a.Root(ctx)
}

func (a *App) start(ctx context.Context) {
	if err := a.session.Initialize(ctx); err != nil {
		a.log.Warn(ctx, "failed to restore session", "error", err)
		a.notes.Push(ctx, notify.Warning, "Could not restore the previous session")
	}
	a.subscribe(ctx)
	if a.theme != nil {
		if _, err := a.theme.Load(ctx); err != nil {
			a.log.Warn(ctx, "failed to load theme", "error", err)
		}
	}

	for _, w := range a.watchers {
		go func() {
			err := w(ctx)
			if err == nil || errors.Is(err, context.Canceled) {
				return
			}
			a.log.Error(ctx, "watcher stopped", "error", err)
			if errors.Is(err, metadata.ErrFeedClosed) {
				a.notes.Push(ctx, notify.Warning, "Stopped following changes from other windows")
			}
		}()
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	a.refreshIdentity(ctx)
}

// subscribe routes session events to onSessionEvent, replacing any earlier
// subscription.
func (a *App) subscribe(ctx context.Context) {
	cancel := a.session.Subscribe(func(ev session.Event) { a.onSessionEvent(ctx, ev) })

	a.mu.Lock()
	prev := a.unsubscribe
	a.unsubscribe = cancel
	a.mu.Unlock()

	if prev != nil {
		prev()
	}
}

func (a *App) close(ctx context.Context) {
	a.mu.Lock()
	unsubscribe := a.unsubscribe
	a.unsubscribe = nil
	a.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}

	if err := a.auth.Close(ctx); err != nil {
		a.log.Warn(ctx, "failed to close backend client", "error", err)
	}
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.log.Warn(ctx, "failed to close storage", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.CurrentClaims() != nil
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	prev := a.mode
	a.mode = mode
	a.mu.Unlock()

	if prev == mode {
		return
	}
	a.log.Info(ctx, "connectivity changed", "mode", mode)
	switch {
	case prev == "" && mode == ModeOnline:
	case mode == ModeOffline:
		a.notes.Push(ctx, notify.Warning, "Backend is unreachable, working offline")
	default:
		a.notes.Push(ctx, notify.Info, "Backend is reachable again")
	}
}

func (a *App) getMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// checkOnline pings the backend once and updates the mode.
func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.auth.Ping(pingCtx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// onSessionEvent runs on whichever goroutine changed the session, so it
// only touches guarded state and the notification queue.
func (a *App) onSessionEvent(ctx context.Context, ev session.Event) {
	a.mu.Lock()
	a.userName = ""
	a.mu.Unlock()

	switch ev.Kind {
	case session.EventForcedLogout:
		if errors.Is(ev.Cause, services.ErrAccountDeleted) {
			a.notes.Push(ctx, notify.Info, "Your account was deleted")
			return
		}
		a.notes.Push(ctx, notify.Warning, "You have been logged out, please log in again")
	case session.EventExternal:
		if ev.State == session.LoggedIn {
			a.notes.Push(ctx, notify.Info, "Session changed in another window")
			go a.refreshIdentity(ctx)
		} else {
			a.notes.Push(ctx, notify.Info, "Logged out in another window")
		}
	}
}

// refreshIdentity caches the display name of the logged-in user. The name
// is dropped if the session changed hands while the profile was loading.
func (a *App) refreshIdentity(ctx context.Context) {
	if !a.isLoggedIn() {
		return
	}
	u, err := a.auth.Profile(ctx)
	if err != nil {
		a.log.Debug(ctx, "profile unavailable", "error", err)
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if c := a.session.CurrentClaims(); c == nil || c.SubjectID != u.ID {
		return
	}
	a.userName = u.Name.First
}
