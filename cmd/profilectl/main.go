// Command profilectl updates or shows an EvalAI user profile.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caio-campos/profilectl/dispatch"
	"github.com/caio-campos/profilectl/internal/config"
	"github.com/caio-campos/profilectl/internal/console"
	"github.com/caio-campos/profilectl/internal/logging"
	"github.com/caio-campos/profilectl/profile"
)

type options struct {
	dotenv      string
	profileFile string
	formValid   bool
	show        bool
}

func main() {
	var opts options
	flag.StringVar(&opts.dotenv, "config", ".env", "dotenv file to load before reading PROFILECTL_* variables")
	flag.StringVar(&opts.profileFile, "profile", "profile.toml", "TOML file with the profile fields to submit")
	flag.BoolVar(&opts.formValid, "valid", true, "submit the form as valid (false exercises the client-side rejection)")
	flag.BoolVar(&opts.show, "show", false, "print the stored profile instead of updating it")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var errFormFailed = errors.New("profile was not saved")

func run(ctx context.Context, opts options, out io.Writer) error {
	cfg, err := config.Load(opts.dotenv)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctrl, nav, err := newController(cfg, logger, out)
	if err != nil {
		return err
	}

	if opts.show {
		ctrl.FetchProfile(ctx)
		if ctrl.Outcome().Failed() {
			return fmt.Errorf("fetch profile: %s", ctrl.Outcome())
		}
		return console.PrintProfile(out, ctrl.User)
	}

	user, err := config.LoadProfile(opts.profileFile)
	if err != nil {
		return err
	}
	ctrl.User = user

	// The profile view shows what the server accepted. Use -show to read
	// it back.
	nav.Handle(profile.StateProfile, func() {
		if err := console.PrintProfile(out, ctrl.User); err != nil {
			logger.Warn("print profile", zap.Error(err))
		}
	})

	ctrl.UpdateProfile(ctx, opts.formValid)
	outcome := ctrl.Outcome()

	if ctrl.IsFormError && ctrl.FormError != "" {
		fmt.Fprintln(out, ctrl.FormError)
	}
	if outcome.Failed() {
		return fmt.Errorf("%w: %s", errFormFailed, outcome)
	}
	return nil
}

func newController(cfg config.Config, logger *zap.Logger, out io.Writer) (*profile.Controller, *console.Navigator, error) {
	d, err := dispatch.New(dispatch.Config{
		BaseURL:          cfg.APIURL,
		Timeout:          cfg.Timeout,
		Logger:           logging.NewZap(logger),
		MetricsCollector: logging.NewMetrics(logger),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create dispatcher: %w", err)
	}

	d.Interceptors.Request.Use(dispatch.HeaderInterceptor("X-Request-Id", func() string {
		return uuid.New().String()
	}))

	nav := console.NewNavigator(logger)

	ctrl, err := profile.New(profile.Config{
		Dispatcher: d,
		Notifier:   console.NewNotifier(out, logger),
		Navigator:  nav,
		Token:      cfg.Token,
		Logger:     logging.NewZap(logger.Named("profile")),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create controller: %w", err)
	}

	return ctrl, nav, nil
}
