package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Guilhem-Bonnet/tubebrowse/internal/adapters/catalogapi"
	"github.com/Guilhem-Bonnet/tubebrowse/internal/adapters/httpapi"
	"github.com/Guilhem-Bonnet/tubebrowse/internal/adapters/memorybus"
	"github.com/Guilhem-Bonnet/tubebrowse/internal/app"
	"github.com/Guilhem-Bonnet/tubebrowse/internal/auth"
	"github.com/Guilhem-Bonnet/tubebrowse/internal/buildinfo"
	"github.com/Guilhem-Bonnet/tubebrowse/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

func main() {
	def := config.Load()
	addr := flag.String("addr", def.Addr, "Adresse d'écoute (ex: 127.0.0.1:8080)")
	apiRoot := flag.String("api-root", def.APIRoot, "Racine de l'API catalogue")
	callTimeout := flag.Duration("call-timeout", def.CallTimeout, "Délai par appel catalogue")
	cardinality := flag.Int("limit", def.Cardinality, "Nombre d'éléments par liste")
	debug := flag.Bool("debug", false, "Logs de niveau debug")
	flag.Parse()

	cfg := def
	cfg.Addr = *addr
	cfg.APIRoot = *apiRoot
	cfg.CallTimeout = *callTimeout
	cfg.Cardinality = *cardinality

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("app", "tubebrowse-server").Logger()
	log.Logger = logger

	logger.Info().Interface("build", buildinfo.Current()).Str("api_root", cfg.APIRoot).Msg("starting")

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// refresh token prioritaire sur le jeton fixe
	var ts oauth2.TokenSource
	if src := auth.RefreshToken(shutdownCtx, cfg.OAuthClientID, cfg.OAuthClientSecret, cfg.OAuthRefreshToken, cfg.OAuthTokenURL); src != nil {
		ts = src
	} else if src := auth.Static(cfg.AccessToken); src != nil {
		ts = src
	}
	provider := auth.NewProvider(ts, logger)
	if !provider.Configured() && cfg.APIKey == "" {
		logger.Warn().Msg("no API key and no access token: catalog calls will likely be rejected")
	}

	client := catalogapi.New(cfg.APIKey, logger).
		WithEndpoint(cfg.APIRoot).
		WithRetry(cfg.RetryAttempts, 200*time.Millisecond).
		WithUserAgent(buildinfo.UserAgent())

	bus := memorybus.New()
	defer bus.Close()

	nav := app.NewNavigator(client, bus, logger, app.Options{
		CallTimeout:    cfg.CallTimeout,
		MaxConcurrency: cfg.MaxConcurrency,
		Cardinality:    cfg.Cardinality,
		Locale:         cfg.Locale,
		Region:         cfg.Region,
	})

	srv := httpapi.NewServer(logger, nav, provider.Snapshot, bus)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Addr).Bool("authenticated", provider.Configured()).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server crashed")
			stop()
		}
	}()

	<-shutdownCtx.Done()
	logger.Info().Msg("shutting down")

	// fermer le bus libère les flux SSE avant l'arrêt du serveur
	bus.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctx)
	logger.Info().Msg("bye")
}
