package app

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/chargehive/chargehive-client/internal/api"
	"github.com/chargehive/chargehive-client/internal/auth"
	"github.com/chargehive/chargehive-client/internal/booking"
	"github.com/chargehive/chargehive-client/internal/config"
	"github.com/chargehive/chargehive-client/internal/directory"
	"github.com/chargehive/chargehive-client/internal/history"
	"github.com/chargehive/chargehive-client/internal/location"
	"github.com/chargehive/chargehive-client/internal/models"
	"github.com/chargehive/chargehive-client/internal/payment"
	"github.com/chargehive/chargehive-client/internal/store"
	"github.com/chargehive/chargehive-client/internal/wallet"
)

// ErrNotAuthenticated guards operations that require a logged-in user.
var ErrNotAuthenticated = errors.New("not logged in")

// App is the composition root: one API client, one session holder, one
// credential store, and the feature facades built on top of them. The
// CLI talks only to App.
type App struct {
	cfg    *config.Config
	prefs  *config.Preferences
	logger *zap.Logger

	store     store.Store
	session   *auth.Session
	api       *api.Client
	booker    *booking.Booker
	directory *directory.Directory
	history   *history.History
	wallet    *wallet.Wallet
	location  *location.Resolver
}

// New wires the app from configuration. The session is hydrated from
// the store, so a previously logged-in user stays logged in across
// runs. The location provider may be nil.
func New(cfg *config.Config, prefs *config.Preferences, logger *zap.Logger, st store.Store, loc location.Provider) (*App, error) {
	session := auth.NewSession(st, logger.Named("auth"))

	client := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout,
		api.WithTokenSource(session),
		api.WithUnauthorizedHook(session.Invalidate),
		api.WithLogger(logger.Named("api")),
	)
	session.Bind(client)
	session.Hydrate()

	return &App{
		cfg:       cfg,
		prefs:     prefs,
		logger:    logger,
		store:     st,
		session:   session,
		api:       client,
		booker:    booking.NewBooker(client, logger.Named("booking")),
		directory: directory.New(client, logger.Named("directory")),
		history:   history.New(client, logger.Named("history")),
		wallet:    wallet.New(client, logger.Named("wallet")),
		location:  location.NewResolver(loc, prefs, logger.Named("location")),
	}, nil
}

// PreferencesPath returns where the app looks for the preferences file.
func PreferencesPath(cfg *config.Config) string {
	return filepath.Join(cfg.StatePath, "preferences.toml")
}

// Close releases the credential store.
func (a *App) Close() error {
	return a.store.Close()
}

func (a *App) Login(ctx context.Context, email, password string) (*models.User, error) {
	return a.session.Login(ctx, email, password)
}

func (a *App) Register(ctx context.Context, req api.RegisterRequest) (*models.User, error) {
	return a.session.Register(ctx, req)
}

func (a *App) Logout() {
	a.session.Logout()
}

func (a *App) IsAuthenticated() bool {
	return a.session.IsAuthenticated()
}

// Profile fetches the authoritative user record from the backend,
// falling back to the cached session user when the fetch fails but a
// session exists.
func (a *App) Profile(ctx context.Context) (*models.User, error) {
	if !a.session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	user, err := a.api.Profile(ctx)
	if err != nil {
		if cached := a.session.User(); cached != nil {
			a.logger.Warn("profile fetch failed, serving cached user", zap.Error(err))
			return cached, nil
		}
		return nil, err
	}
	return user, nil
}

// Services lists nearby services. The returned notice is non-empty
// exactly once after a fall back to demo data. The demo fallback
// absorbs backend failures, so listing never fails.
func (a *App) Services(ctx context.Context) ([]models.Service, string) {
	services := a.directory.Fetch(ctx)
	return services, a.directory.DemoNotice()
}

// MapCenter resolves the coordinates to center the service list around.
func (a *App) MapCenter(ctx context.Context) (lat, lng float64) {
	return a.location.Resolve(ctx)
}

// Quote prices a prospective booking locally, without touching the
// backend.
func (a *App) Quote(service *models.Service, from, to time.Time) booking.Quote {
	return booking.NewQuote(from, to, service.HourlyRate)
}

// PaymentMethod returns the configured payment method, card or token.
func (a *App) PaymentMethod() string {
	return a.prefs.PaymentMethod
}

// Book reserves the service for the window. Unavailable services and
// invalid windows are rejected before any network call; how the session
// gets paid is decided separately.
func (a *App) Book(ctx context.Context, service *models.Service, from, to time.Time) (*models.Session, error) {
	if !a.session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	return a.booker.Submit(ctx, service, from, to)
}

// BookWithTokens reserves the service and then starts a token payment
// flow for the created session. The booking always happens first: a
// payment is never initiated for a window that was not reserved. When
// the flow fails to start, the session is still returned so the caller
// can report the reservation.
func (a *App) BookWithTokens(ctx context.Context, service *models.Service, from, to time.Time) (*models.Session, *payment.Flow, error) {
	session, err := a.Book(ctx, service, from, to)
	if err != nil {
		return nil, nil, err
	}

	user := a.session.User()
	flow := payment.NewFlow(a.api, a.logger.Named("payment"), service, from, to, user.WalletAddress)
	if err := flow.Start(ctx); err != nil {
		return session, nil, err
	}
	return session, flow, nil
}

func (a *App) History(ctx context.Context) ([]history.Entry, error) {
	if !a.session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	return a.history.Fetch(ctx)
}

func (a *App) WalletDetails(ctx context.Context) (*models.WalletDetails, error) {
	if !a.session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	return a.wallet.Details(ctx)
}

func (a *App) TokenBalance(ctx context.Context) (*models.TokenBalance, error) {
	if !a.session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	return a.wallet.TokenBalance(ctx)
}

func (a *App) WalletActivity(ctx context.Context) ([]wallet.Activity, error) {
	if !a.session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	return a.wallet.Activity(ctx)
}

func (a *App) WalletTransactions(ctx context.Context) ([]models.WalletTransaction, error) {
	if !a.session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	return a.wallet.Transactions(ctx, a.prefs.TransactionLimit)
}

func (a *App) SendTokens(ctx context.Context, toAddress string, amount decimal.Decimal) (*models.TransferReceipt, error) {
	if !a.session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	return a.wallet.Send(ctx, toAddress, amount)
}

func (a *App) ReceiveInfo(ctx context.Context) (*models.ReceiveInfo, error) {
	if !a.session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	return a.wallet.ReceiveInfo(ctx)
}
