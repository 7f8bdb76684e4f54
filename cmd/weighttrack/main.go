package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapthttp "weighttrack/internal/adapter/http"
	"weighttrack/internal/adapter/memory"
	"weighttrack/internal/adapter/postgres"
	"weighttrack/internal/adapter/rabbitmq"
	"weighttrack/internal/app"
	"weighttrack/internal/config"
	"weighttrack/internal/domain"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// store is satisfied by both the Postgres and the in-memory databases.
type store interface {
	domain.UserRepository
	domain.PersonRepository
	domain.WeightRepository
	domain.GoalRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db store
	if cfg.DatabaseURL == "" {
		log.Println("WARNING: DATABASE_URL not set, using in-memory store; data is lost on restart")
		db = memory.New()
	} else {
		pg, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db open: %v", err)
		}
		defer func() { _ = pg.Close() }()
		db = pg
	}

	var pub domain.EventPublisher
	if cfg.AMQPURL != "" {
		p := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPQueue)
		defer func() { _ = p.Close() }()
		pub = p
	}

	svc := adapthttp.Services{
		Auth:    app.NewAuthService(db, []byte(cfg.JWTSecret), cfg.AccessTokenTTL),
		Persons: app.NewPersonService(db, pub),
		Weights: app.NewWeightService(db, db, pub),
		Goals:   app.NewGoalService(db, db, db, pub),
		Summary: app.NewSummaryService(db, db, db),
	}
	server := adapthttp.New(svc, adapthttp.Options{
		CORSOrigins:      cfg.CORSOrigins,
		TrustForwardAuth: cfg.TrustForwardAuth,
		SSORedirectURL:   cfg.SSORedirectURL,
	})
	if cfg.SSOEnabled() {
		server.WithOIDC(setupOIDC(ctx, cfg))
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("server stopped")
}

// setupOIDC discovers the provider. SSO stays disabled when discovery fails.
func setupOIDC(ctx context.Context, cfg config.Config) adapthttp.OIDCConfig {
	discoverCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	provider, err := oidc.NewProvider(discoverCtx, cfg.OIDCIssuer)
	if err != nil {
		log.Printf("oidc: provider %s unavailable, SSO disabled: %v", cfg.OIDCIssuer, err)
		return adapthttp.OIDCConfig{}
	}
	log.Printf("oidc: SSO enabled via %s", cfg.OIDCIssuer)
	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: oauth2.Config{
			ClientID:     cfg.OIDCClientID,
			ClientSecret: cfg.OIDCClientSecret,
			RedirectURL:  cfg.OIDCRedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
	}
}
