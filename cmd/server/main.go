package main

import (
	"context"
	"crypto"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"session-auth-service/backend/internal/config"
	"session-auth-service/backend/internal/db"
	identityservice "session-auth-service/backend/internal/identity/service"
	"session-auth-service/backend/internal/security"
	"session-auth-service/backend/internal/server"
	sessionrepo "session-auth-service/backend/internal/session/repository"
	telemetryotel "session-auth-service/backend/internal/telemetry/otel"
	userrepo "session-auth-service/backend/internal/user/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	pool, err := db.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	// Private key is optional: without it the deployment can verify tokens
	// but not issue them.
	var privateKey crypto.Signer
	if cfg.JWTPrivateKey != "" {
		privateKey, err = security.ParsePrivateKey(cfg.JWTPrivateKey)
		if err != nil {
			log.Fatalf("JWT_PRIVATE_KEY: %v", err)
		}
	}
	publicKey, err := security.ParsePublicKey(cfg.JWTPublicKey)
	if err != nil {
		log.Fatalf("JWT_PUBLIC_KEY: %v", err)
	}
	tokens := security.NewTokenProvider(privateKey, publicKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL(), cfg.ClockTolerance())

	providers, err := telemetryotel.NewProviders(context.Background(), cfg.OTLPEndpoint, "session-auth-service", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}

	auth := identityservice.NewAuthService(
		userrepo.NewPostgresRepository(pool),
		sessionrepo.NewPostgresRepository(pool),
		security.NewHasher(cfg.BcryptCost),
		tokens,
		cfg.TokenTTL(),
	)

	router := server.New(server.Deps{
		Auth:         auth,
		HealthPinger: pool,
		Telemetry:    server.TelemetryMiddleware(providers),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Printf("telemetry shutdown: %v", err)
	}
	log.Println("HTTP server stopped")
}
