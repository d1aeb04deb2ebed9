package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/formsaas/migrations"
	billingmod "github.com/dmitrymomot/formsaas/modules/billing"
	formsmod "github.com/dmitrymomot/formsaas/modules/forms"
	"github.com/dmitrymomot/formsaas/modules/mail"
	"github.com/dmitrymomot/formsaas/pkg/billing"
	"github.com/dmitrymomot/formsaas/pkg/config"
	"github.com/dmitrymomot/formsaas/pkg/email"
	"github.com/dmitrymomot/formsaas/pkg/forms"
	"github.com/dmitrymomot/formsaas/pkg/guard"
	"github.com/dmitrymomot/formsaas/pkg/httpserver"
	"github.com/dmitrymomot/formsaas/pkg/jwt"
	"github.com/dmitrymomot/formsaas/pkg/logger"
	"github.com/dmitrymomot/formsaas/pkg/metrics"
	"github.com/dmitrymomot/formsaas/pkg/pg"
	"github.com/dmitrymomot/formsaas/pkg/ratelimit"
	"github.com/dmitrymomot/formsaas/pkg/redis"
	"github.com/dmitrymomot/formsaas/pkg/requestid"
	"github.com/dmitrymomot/formsaas/pkg/subscription"
	"github.com/dmitrymomot/formsaas/pkg/verifier"
)

type AppConfig struct {
	Env           string `env:"APP_ENV" envDefault:"development"`
	Name          string `env:"APP_NAME" envDefault:"formsaas"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`
}

func main() {
	if err := config.LoadEnv(); err != nil {
		slog.Warn("failed to load .env file", logger.Error(err))
	}

	var appCfg AppConfig
	config.MustLoad(&appCfg)

	log := logger.New(
		logger.WithEnvironment(appCfg.Env, appCfg.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	if err := run(context.Background(), appCfg, log); err != nil {
		log.Error("server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, appCfg AppConfig, log *slog.Logger) error {
	var (
		httpCfg    httpserver.Config
		pgCfg      pg.Config
		redisCfg   redis.Config
		billingCfg billing.Config
		verifyCfg  verifier.Config
		limitCfg   ratelimit.Config
		jwtCfg     jwt.Config
		emailCfg   email.Config
		cacheCfg   subscription.CacheConfig
	)
	if err := errors.Join(
		config.Load(&httpCfg),
		config.Load(&pgCfg),
		config.Load(&redisCfg),
		config.Load(&billingCfg),
		config.Load(&verifyCfg),
		config.Load(&limitCfg),
		config.Load(&jwtCfg),
		config.Load(&emailCfg),
		config.Load(&cacheCfg),
	); err != nil {
		return err
	}

	var checks []httpserver.Check

	// Storage: Postgres when configured, in-memory stores otherwise.
	var (
		profiles  subscription.ProfileStore
		formStore forms.Store
	)
	if pgCfg.Enabled() {
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := pg.Migrate(ctx, pool, pgCfg, migrations.FS, log); err != nil {
			return err
		}
		profiles = subscription.NewPGStore(pool)
		formStore = forms.NewPGStore(pool)
		checks = append(checks, httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)})
	} else {
		log.Warn("PG_CONN_URL is not set, using in-memory stores")
		profiles = subscription.NewMemoryStore()
		formStore = forms.NewMemoryStore()
	}

	queryOpts := []subscription.QueryOption{subscription.WithLogger(log)}
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Error("failed to close redis client", logger.Error(err))
			}
		}()
		storage := redis.NewStorage(client, redisCfg.KeyPrefix)
		queryOpts = append(queryOpts, subscription.WithCache(subscription.NewRedisCache(storage, cacheCfg.TTL)))
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
	} else {
		queryOpts = append(queryOpts, subscription.WithCache(subscription.NewMemoryCache(cacheCfg)))
	}
	query := subscription.NewQuery(profiles, queryOpts...)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	// Subscription verification. A broken billing config keeps the server
	// up; the endpoint answers 500 until it is fixed.
	gw, err := billing.NewGateway(billingCfg)
	if err != nil {
		log.Error("failed to configure billing gateway", logger.Error(err))
	}
	v := verifier.New(gw,
		verifier.WithBudget(verifyCfg.Timeout),
		verifier.WithLogger(log),
		verifier.WithRecorder(collector),
	)

	limiter, err := ratelimit.New(limitCfg)
	if err != nil {
		return err
	}
	defer limiter.Stop()

	var tokens *jwt.Service
	if jwtCfg.Enabled() {
		if tokens, err = jwt.NewFromConfig(jwtCfg); err != nil {
			return err
		}
	} else {
		log.Warn("SUPABASE_JWT_SECRET is not set, every request is anonymous")
	}

	sender, err := email.NewSender(emailCfg, log)
	if err != nil {
		return err
	}

	formService := forms.NewService(formStore,
		forms.WithBaseURL(appCfg.PublicBaseURL),
		forms.WithLogger(log),
	)

	r := chi.NewRouter()
	r.Use(
		middleware.RealIP,
		requestid.Middleware,
		middleware.Recoverer,
		collector.Middleware,
		jwt.Middleware(tokens),
	)

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, checks...))
	r.Method(http.MethodGet, "/metrics", metrics.Handler(registry))

	r.Mount("/t", formsmod.NewService(formService, log).Handle())
	r.With(jwt.Required(tokens)).Mount("/send-email", mail.NewService(sender, log).Handle())

	r.Route("/app", func(r chi.Router) {
		r.Use(guard.Middleware(query, guard.WithLogger(log)))
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte("subscriber area"))
		})
	})

	r.Mount("/", billingmod.Router(billingmod.RouterOptions{
		Verify:       billingmod.NewVerifyService(v, limiter, log),
		Subscription: billingmod.NewSubscriptionService(query, log),
	}))

	server := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	return server.Run(ctx, r)
}
