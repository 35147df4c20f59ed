package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"matchup/database"
	"matchup/initializers"
	"matchup/metrics"
	"matchup/server"
	"matchup/services"
)

func init() {
	initializers.LoadEnvVariables()
}

func main() {
	cfg := initializers.LoadConfig()
	log := initializers.NewLogger(cfg.LogLevel, cfg.LogPretty)
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set, token operations will fail")
	}
	if cfg.TwilioVerifyServiceSID == "" {
		log.Warn().Msg("TWILIO_VERIFY_SERVICE_SID is not set, OTP login will fail")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := database.Connect(ctx, cfg.MongoURI, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	db := client.Database(cfg.DBName)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}
	images, err := database.NewGridFSImageStore(db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open image bucket")
	}

	srv := server.New(server.Deps{
		Config:   cfg,
		Stores:   database.NewMongoStores(db),
		Images:   images,
		Verifier: services.NewTwilioVerifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioVerifyServiceSID),
		Metrics:  metrics.New(),
		Log:      log,
	})
	srv.Limiter.StartCleanup(ctx, time.Minute)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	srv.Hub.Close()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
