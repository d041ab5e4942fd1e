package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/layer-3/dropregards/adapters/events"
	"github.com/layer-3/dropregards/adapters/postgres"
	"github.com/layer-3/dropregards/adapters/solana"
	"github.com/layer-3/dropregards/adapters/store"
	"github.com/layer-3/dropregards/adapters/tokenizer"
	"github.com/layer-3/dropregards/adapters/wallet"
	"github.com/layer-3/dropregards/internal/config"
	"github.com/layer-3/dropregards/internal/logger"
	"github.com/layer-3/dropregards/service"
	transport "github.com/layer-3/dropregards/transport/http"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "address", Aliases: []string{"a"}, Usage: "run on ip:port"},
			&cli.StringFlag{Name: "mode", Usage: "dev or production"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
		},
		Action: serve,
	}
}

// loadOptions reads the configuration and applies command line overrides
func loadOptions(c *cli.Context) (*config.Options, error) {
	options, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("address") {
		options.Address = c.String("address")
	}
	if c.IsSet("mode") {
		options.Mode = c.String("mode")
	}
	if c.IsSet("log-level") {
		options.LogLevel = c.String("log-level")
	}
	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return options, nil
}

func serve(c *cli.Context) error {
	options, err := loadOptions(c)
	if err != nil {
		return err
	}

	// Initialize structured logging.
	lg := logger.New()
	if err := lg.Init(options.LogLevel); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	zapLogger := lg.Log
	defer func() { _ = zapLogger.Sync() }()

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// PostgreSQL for profiles and regards
	db, err := postgres.Open(ctx, options.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}

	// Redis for nonces and the event stream
	redisOpts, err := redis.ParseURL(options.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{
			Client: redisClient,
		},
		logger.NewWatermillAdapter(zapLogger),
	)
	if err != nil {
		return fmt.Errorf("failed to create Redis publisher: %w", err)
	}
	defer publisher.Close()

	ledger, err := solana.NewClient(ctx, solana.Config{
		URL:      options.SolanaRPCURL,
		Timeout:  time.Duration(options.LedgerTimeout),
		Attempts: options.LedgerRetries,
	}, zapLogger.Named("solana"))
	if err != nil {
		return err
	}
	defer ledger.Close()

	profiles := postgres.NewProfileStore(db)
	regards := postgres.NewRegardStore(db)
	tokens := tokenizer.NewJWTTokenizer([]byte(options.JWTSecret), tokenizer.WithTTL(time.Duration(options.TokenTTL)))

	authService := service.NewAuthService(
		tokens,
		store.NewRedisNonceStore(redisClient),
		wallet.NewEd25519Verifier(),
		profiles,
		zapLogger.Named("auth"),
		service.WithNonceTTL(time.Duration(options.NonceTTL)),
	)
	profileService := service.NewProfileService(profiles, zapLogger.Named("profiles"))
	regardService := service.NewRegardService(
		regards,
		profiles,
		service.NewTransactionVerifier(ledger, zapLogger.Named("verifier")),
		events.NewWatermillPublisher(publisher),
		zapLogger.Named("regards"),
	)

	transport.Version = version
	router := transport.SetupRouter(transport.Services{
		Auth:     authService,
		Profiles: profileService,
		Regards:  regardService,
	}, zapLogger)

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{options.CORSOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	srv := &http.Server{
		Addr:              options.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Address), zap.String("mode", options.Mode))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zapLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
