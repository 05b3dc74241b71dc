package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/oauthcb/internal/server"
	"github.com/desertthunder/oauthcb/internal/shared"
	"github.com/desertthunder/oauthcb/internal/ui"
	"github.com/urfave/cli/v3"
)

// Serve binds the callback listener, prints the banner and blocks until SIGINT or SIGTERM.
//
// An interrupt is a normal stop: in-flight responses finish and the command returns nil.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	effective := *config
	applyListenerFlags(cmd, &effective)
	if cmd.IsSet("rate-limit") {
		effective.Server.RateLimit = cmd.Float("rate-limit")
	}

	srv, err := server.NewCallbackServer(&effective, r.logger)
	if err != nil {
		return err
	}

	callbackURL := srv.CallbackURL(effective.Server.CallbackPath)
	if err := ui.PrintBanner(r.output, ui.Banner{
		Service:     effective.Page.Service,
		ListenURL:   srv.URL(),
		CallbackURL: callbackURL,
	}); err != nil {
		r.logger.Warn("failed to print banner", "error", err)
	}

	if cmd.Bool("open") {
		r.openAuthURL(&effective, callbackURL)
	}

	if r.onListen != nil {
		r.onListen(srv)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cmd.Bool("once") {
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		defer cancel()
		go r.stopAfterFirstResult(ctx, cancel, srv.Result())
	}

	err = srv.Run(ctx, effective.Server.ShutdownTimeout)
	if perr := ui.PrintStopped(r.output, err); perr != nil {
		r.logger.Warn("failed to print shutdown notice", "error", perr)
	}
	return err
}

// stopAfterFirstResult cancels once the provider has redirected with a code or an error.
func (r *Runner) stopAfterFirstResult(ctx context.Context, cancel context.CancelFunc, results <-chan server.CallbackResult) {
	select {
	case res, ok := <-results:
		if !ok {
			return
		}
		if err := res.Error(); err != nil {
			r.logger.Warn("provider redirected with an error, stopping", "error", err)
		} else {
			r.logger.Info("authorization code delivered, stopping")
		}
		cancel()
	case <-ctx.Done():
	}
}

// openAuthURL opens the provider consent page. Failures only warn; the listener keeps running.
func (r *Runner) openAuthURL(config *shared.Config, callbackURL string) {
	authURL, err := buildAuthURL(config.OAuth, callbackURL, "")
	if err != nil {
		r.logger.Warn("cannot build authorization URL", "error", err)
		return
	}
	if err := ui.PrintAuthURL(r.output, authURL, callbackURL); err != nil {
		r.logger.Warn("failed to print authorization URL", "error", err)
	}
	if err := r.openBrowser(authURL); err != nil {
		r.logger.Warn("failed to open browser", "error", err)
	}
}

func applyListenerFlags(cmd *cli.Command, config *shared.Config) {
	if cmd.IsSet("port") {
		config.Server.Port = cmd.Int("port")
	}
	if cmd.IsSet("host") {
		config.Server.Host = cmd.String("host")
	}
	if cmd.IsSet("callback-path") {
		config.Server.CallbackPath = cmd.String("callback-path")
	}
}
