package routes

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lumina-store/config"
	"lumina-store/database"
	"lumina-store/libs"
	"lumina-store/middleware"
	"lumina-store/repositories"
	"lumina-store/services"

	"github.com/gin-gonic/gin"
)

const janitorInterval = time.Minute

// App is a fully wired storefront: router plus the background work it owns.
type App struct {
	Router   *gin.Engine
	Sessions *services.SessionService

	closers []func()
}

// NewApp loads the catalog, opens the session store and builds the router.
func NewApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	app := &App{}

	source, err := catalogSource(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	catalog, err := services.NewCatalogService(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	log.Info("catalog loaded", "source", cfg.CatalogSource, "products", len(catalog.ListAll()))

	store, err := app.sessionStore(ctx, cfg, log)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Sessions = services.NewSessionService(store, services.SessionOptions{
		SignUpDelay:     cfg.SignUpDelay,
		ProcessingDelay: cfg.CheckoutProcessingDelay,
		Notifier:        notifier(cfg, log),
		Logger:          libs.NewLogger("sessions"),
	})

	app.Router = NewRouter(cfg, log, Dependencies{
		Catalog:    catalog,
		Sessions:   app.Sessions,
		JWTSecret:  cfg.JWTSecret,
		SessionTTL: cfg.SessionTTL,
	})
	return app, nil
}

// NewRouter builds the gin engine with the standard middleware chain.
func NewRouter(cfg *config.Config, log *slog.Logger, deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.Logging(log))
	router.Use(middleware.CORSMiddleware(cfg.OriginURL))
	SetupRoutes(router, deps)
	return router
}

// RunJanitor evicts idle in-memory sessions until ctx is done.
func (a *App) RunJanitor(ctx context.Context, idle time.Duration) {
	a.Sessions.RunJanitor(ctx, janitorInterval, idle)
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func catalogSource(ctx context.Context, cfg *config.Config, log *slog.Logger) (repositories.ProductSource, error) {
	switch cfg.CatalogSource {
	case "", "static":
		return repositories.NewStaticProductRepository(), nil
	case "postgres":
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
	}

	if err := database.RunMigrations(cfg.DSN()); err != nil {
		return nil, err
	}
	pool, err := config.ConnectDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	repo := repositories.NewPostgresProductRepository(pool)
	if err := repo.Seed(ctx, repositories.SeedProducts()); err != nil {
		pool.Close()
		return nil, err
	}

	// The catalog is read once at startup, so the pool is not kept around.
	products, err := repo.ListAll(ctx)
	pool.Close()
	if err != nil {
		return nil, err
	}
	log.Info("catalog read from database", "products", len(products))
	return repositories.NewStaticProductRepositoryWith(products), nil
}

func (a *App) sessionStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (repositories.KeyValueStore, error) {
	switch cfg.KVBackend {
	case "", "memory":
		return repositories.NewMemoryKVStore(), nil
	case "redis":
		rdb, err := config.ConnectRedis(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() {
			if err := rdb.Close(); err != nil {
				log.Warn("redis close failed", "error", err)
			}
		})
		log.Info("session store connected", "backend", "redis")
		return repositories.NewRedisKVStore(rdb, cfg.SessionTTL), nil
	}
	return nil, fmt.Errorf("unknown kv backend %q", cfg.KVBackend)
}

func notifier(cfg *config.Config, log *slog.Logger) services.OrderNotifier {
	notifiers := services.MultiNotifier{services.NewLogNotifier(libs.NewLogger("orders"))}
	if !cfg.SMTPEnabled() {
		return notifiers
	}
	mailer, err := libs.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	if err != nil {
		log.Warn("email notifications disabled", "error", err)
		return notifiers
	}
	return append(notifiers, services.NewEmailNotifier(mailer, libs.NewLogger("mailer")))
}
