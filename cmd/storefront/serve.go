package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/app"
	"github.com/99minutos/storefront/internal/devserver"
	"github.com/99minutos/storefront/internal/infrastructure/notify"
	"github.com/99minutos/storefront/internal/web"
	"github.com/99minutos/storefront/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// server is what runUntilSignal drives.
type server interface {
	Start(addr string) error
	Shutdown(ctx context.Context) error
}

// runUntilSignal serves until ctx is cancelled, then shuts down gracefully.
func runUntilSignal(ctx context.Context, srv server, addr string, log zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type serveCommand struct {
	Addr string `long:"addr" description:"Listen address (default SERVE_ADDR)"`
}

func (c *serveCommand) Execute([]string) error {
	ctx, cancel := signalContext()
	defer cancel()

	cfg, log, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	flash := notify.NewFlash()
	nav := web.NewRedirects()
	a, err := app.New(ctx, cfg, app.Options{
		Notifier:  flash,
		Navigator: nav,
		Logger:    log,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn().Err(err).Msg("close app")
		}
	}()
	a.Start(ctx)

	srv, err := web.New(a, flash, nav, web.Options{Logger: logger.Component("web")})
	if err != nil {
		return err
	}

	addr := c.Addr
	if addr == "" {
		addr = cfg.Serve.Addr
	}
	return runUntilSignal(ctx, srv, addr, log)
}

type devServerCommand struct {
	Addr string `long:"addr" description:"Listen address (default DEVSERVER_ADDR)"`
	Seed bool   `long:"seed" description:"Load demo accounts and products"`
}

func (c *devServerCommand) Execute([]string) error {
	ctx, cancel := signalContext()
	defer cancel()

	cfg, log, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	srv, err := devserver.New(devserver.Options{
		JWTSecret: cfg.Dev.JWTSecret,
		TokenTTL:  cfg.Dev.TokenTTL,
		Seed:      c.Seed,
		Logger:    log,
	})
	if err != nil {
		return err
	}
	if c.Seed {
		log.Info().
			Str("seller", devserver.SeedSellerEmail).
			Str("buyer", devserver.SeedBuyerEmail).
			Str("password", devserver.SeedPassword).
			Msg("demo data loaded")
	}

	addr := c.Addr
	if addr == "" {
		addr = cfg.Dev.Addr
	}
	return runUntilSignal(ctx, srv, addr, log)
}
