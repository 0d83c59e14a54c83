// Package app wires the shared pieces every storefront service boots with:
// configuration, structured logging, persistence, the authenticator, and the
// HTTP server with its request guards. Services differ only in the routes
// they register and the guard status codes they are contractually stuck with.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	gconfig "github.com/goliatone/go-config/config"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	storefront "github.com/goliatone/go-storefront"
	"github.com/goliatone/go-storefront/config"
	"github.com/goliatone/go-storefront/middleware/guard"
	"github.com/goliatone/go-storefront/repository"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/schema"
)

// App carries the shared runtime of one service process.
type App struct {
	Name   string
	config *gconfig.Container[*config.BaseConfig]
	logger *glog.BaseLogger
	bunDB  *bun.DB
	repo   storefront.RepositoryManager
	auther *storefront.Auther
	srv    router.Server[*fiber.App]
}

// New loads configuration and builds the logging stack.
func New(ctx context.Context, name string) (*App, error) {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Info),
		glog.WithName(name),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(goerrors.ToSlogAttributes),
	)

	cfg := gconfig.New(&config.BaseConfig{Name: name}).
		WithLogger(lgr.GetLogger("config"))

	if err := cfg.Load(ctx); err != nil {
		return nil, err
	}

	if cfg.Raw().GetEnv() == "development" {
		fmt.Println(print.MaybeHighlightJSON(cfg.Raw()))
	}

	return &App{
		Name:   name,
		config: cfg,
		logger: lgr,
	}, nil
}

// Config returns the loaded configuration tree.
func (a *App) Config() *config.BaseConfig {
	return a.config.Raw()
}

// GetLogger returns a named child logger.
func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

// DB returns the database handle opened by WithPersistence.
func (a *App) DB() *bun.DB {
	return a.bunDB
}

// Repository returns the repository manager built by WithPersistence.
func (a *App) Repository() storefront.RepositoryManager {
	return a.repo
}

// Auther returns the authenticator built by WithAuth.
func (a *App) Auther() *storefront.Auther {
	return a.auther
}

// Server returns the HTTP server built by WithHTTPServer.
func (a *App) Server() router.Server[*fiber.App] {
	return a.srv
}

// Router returns the route registrar of the HTTP server.
func (a *App) Router() router.Router[*fiber.App] {
	return a.srv.Router()
}

// WithPersistence opens the configured database, runs migrations, and builds
// the repository manager. The process owns exactly one handle; everything
// downstream receives it injected.
func (a *App) WithPersistence(ctx context.Context) error {
	pcfg := a.Config().GetPersistence()

	var (
		sqldb   *sql.DB
		dialect schema.Dialect
		err     error
	)

	if pcfg.GetDriver() == "postgres" || strings.HasPrefix(pcfg.GetDSN(), "postgres://") {
		sqldb = sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(pcfg.GetDSN())))
		dialect = pgdialect.New()
	} else {
		sqldb, err = sql.Open(sqliteshim.ShimName, pcfg.GetDSN())
		if err != nil {
			return err
		}
		dialect = sqlitedialect.New()
	}

	persistence.RegisterModel((*storefront.User)(nil))
	persistence.RegisterModel((*storefront.Product)(nil))
	persistence.RegisterModel((*storefront.CartLine)(nil))
	persistence.RegisterModel((*storefront.Order)(nil))
	persistence.RegisterModel((*storefront.Shipment)(nil))

	client, err := persistence.New(pcfg, sqldb, dialect)
	if err != nil {
		return err
	}

	client.SetLogger(a.GetLogger("persistence"))

	migrationsFS, err := fs.Sub(storefront.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return err
	}
	client.RegisterDialectMigrations(
		migrationsFS,
		persistence.WithDialectSourceLabel("data/sql/migrations"),
		persistence.WithValidationTargets("postgres", "sqlite"),
	)

	if err := client.ValidateDialects(ctx); err != nil {
		return err
	}

	if err := client.Migrate(ctx); err != nil {
		return err
	}

	a.bunDB = client.DB()
	a.repo = repository.NewRepositoryManager(a.bunDB)

	return nil
}

// WithAuth builds the credential authenticator and token service over the
// account store. Requires WithPersistence.
func (a *App) WithAuth(sink storefront.ActivitySink) error {
	a.repo.MustValidate()

	provider := storefront.NewUserProvider(a.repo.Users()).
		WithLogger(a.GetLogger("identity"))

	a.auther = storefront.NewAuthenticator(provider, a.Config().GetAuth()).
		WithLogger(a.GetLogger("auth")).
		WithActivitySink(sink)

	return nil
}

// WithHTTPServer builds the HTTP server.
func (a *App) WithHTTPServer(ctx context.Context) error {
	srv := router.NewFiberAdapter(func(fa *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			AppName:       a.Name,
			UnescapePath:  true,
			StrictRouting: false,
		}))
	})

	srv.Router().WithLogger(a.GetLogger("router"))

	a.srv = srv
	return nil
}

// Serve starts the HTTP listener on the configured address.
func (a *App) Serve() error {
	return a.srv.Serve(a.Config().GetServer().GetAddr())
}

// TokenValidator adapts the token service for the request guard.
func (a *App) TokenValidator() guard.TokenValidator {
	ts := a.auther.TokenService()
	return guard.TokenValidatorFunc(func(raw string) (guard.AuthClaims, error) {
		claims, err := ts.Validate(raw)
		if err != nil {
			return nil, err
		}
		return claims, nil
	})
}

// Authenticated builds the request guard from the auth configuration. Pass a
// guard.Config to override per-service settings such as the status codes.
func (a *App) Authenticated(overrides ...guard.Config) router.MiddlewareFunc {
	acfg := a.Config().GetAuth()

	cfg := guard.Config{}
	if len(overrides) > 0 {
		cfg = overrides[0]
	}

	if cfg.TokenValidator == nil {
		cfg.TokenValidator = a.TokenValidator()
	}
	if cfg.SigningKey.Key == nil {
		cfg.SigningKey = guard.SigningKey{
			JWTAlg: acfg.GetSigningMethod(),
			Key:    []byte(acfg.GetSigningKey()),
		}
	}
	if cfg.ContextKey == "" {
		cfg.ContextKey = acfg.GetContextKey()
	}
	if cfg.TokenLookup == "" {
		cfg.TokenLookup = acfg.GetTokenLookup()
	}
	if cfg.AuthScheme == "" {
		cfg.AuthScheme = acfg.GetAuthScheme()
	}

	return guard.New(cfg)
}

// AdminOnly builds a guard that additionally requires the admin role.
func (a *App) AdminOnly(overrides ...guard.Config) router.MiddlewareFunc {
	cfg := guard.Config{}
	if len(overrides) > 0 {
		cfg = overrides[0]
	}
	cfg.MinimumRole = string(storefront.RoleAdmin)

	return a.Authenticated(cfg)
}

// WaitExitSignal blocks until the process receives a termination signal.
func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
