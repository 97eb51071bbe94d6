// Command storefront is the storefront client: a terminal front end, a local
// web UI (serve) and an in-memory reference backend (devserver).
//
//	@title						Storefront reference API
//	@version					1.0
//	@description				In-memory backend the storefront client talks to during development.
//	@BasePath					/api
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/app"
	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/infrastructure/config"
	"github.com/99minutos/storefront/internal/infrastructure/notify"
	"github.com/99minutos/storefront/internal/infrastructure/render/terminal"
	"github.com/99minutos/storefront/pkg/logger"
)

type globalOptions struct {
	Verbose bool `short:"v" long:"verbose" description:"Log at debug level"`
}

var global globalOptions

func main() {
	parser := flags.NewParser(&global, flags.HelpFlag|flags.PassDoubleDash)
	parser.ShortDescription = "storefront client"

	addCommand(parser, "login", "Log in and persist the session", &loginCommand{})
	addCommand(parser, "register", "Create an account and log in", &registerCommand{})
	addCommand(parser, "logout", "Clear the persisted session", &logoutCommand{})
	addCommand(parser, "whoami", "Show the current account", &whoamiCommand{})
	addCommand(parser, "become-seller", "Upgrade the current account to seller", &becomeSellerCommand{})
	addCommand(parser, "products", "List products", &productsCommand{})
	addCommand(parser, "product", "Show one product", &productCommand{})
	addCommand(parser, "cart", "Show or change the cart", &cartCommand{})
	addCommand(parser, "checkout", "Place an order for the cart", &checkoutCommand{})
	addCommand(parser, "seller", "Manage your products", &sellerCommand{})
	addCommand(parser, "serve", "Run the local web UI", &serveCommand{})
	addCommand(parser, "devserver", "Run the in-memory reference backend", &devServerCommand{})

	if _, err := parser.Parse(); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, err)
			os.Exit(0)
		}
		var rerr reportedError
		if !errors.As(err, &rerr) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// reportedError is a failure the user was already notified about.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// reported marks a controller error as already shown.
func reported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err: err}
}

func addCommand(p *flags.Parser, name, short string, data any) {
	if _, err := p.AddCommand(name, short, "", data); err != nil {
		panic(err)
	}
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func loadConfig(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	level := cfg.LogLevel
	if global.Verbose {
		level = "debug"
	}
	log := logger.Init(logger.Options{Level: level, Pretty: cfg.LogPretty})
	return cfg, log, nil
}

// session is one terminal invocation: the wired app plus its renderer.
type session struct {
	*app.App
	out *terminal.Renderer
	log zerolog.Logger
}

// openSession wires the app with console notifications and restores the
// persisted session.
func openSession(ctx context.Context) (*session, error) {
	cfg, log, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	nav := ports.NavigatorFunc(func(p domain.Page) {
		if p == domain.PageLogin {
			fmt.Fprintln(os.Stderr, "Run `storefront login` to continue.")
		}
		log.Debug().Str("page", string(p)).Msg("redirect")
	})
	a, err := app.New(ctx, cfg, app.Options{
		Notifier:  notify.NewConsole(os.Stderr),
		Navigator: nav,
		Logger:    log,
	})
	if err != nil {
		return nil, err
	}
	a.Start(ctx)
	return &session{App: a, out: terminal.New(os.Stdout), log: log}, nil
}

// withSession runs fn against a fresh session and closes it afterwards.
func withSession(fn func(ctx context.Context, s *session) error) error {
	ctx, cancel := signalContext()
	defer cancel()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			s.log.Warn().Err(err).Msg("close app")
		}
	}()
	return fn(ctx, s)
}
