// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
		Sources: cli.EnvVars("OAUTHCB_CONFIG"),
	}
}

func logLevelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "log-level",
		Usage:   "Log level (debug, info, warn, error)",
		Sources: cli.EnvVars("OAUTHCB_LOG_LEVEL"),
	}
}

func listenerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "Port to listen on (0 picks a free port)",
			Sources: cli.EnvVars("OAUTHCB_PORT"),
		},
		&cli.StringFlag{
			Name:    "host",
			Usage:   "Interface to bind",
			Sources: cli.EnvVars("OAUTHCB_HOST"),
		},
		&cli.StringFlag{
			Name:  "callback-path",
			Usage: "Path the provider redirects to",
		},
	}
}

// serveCommand runs the callback listener
func serveCommand(r *Runner) *cli.Command {
	flags := append([]cli.Flag{configFlag(), logLevelFlag()}, listenerFlags()...)
	flags = append(flags,
		&cli.FloatFlag{
			Name:  "rate-limit",
			Usage: "Requests per second allowed (0 disables limiting)",
		},
		&cli.BoolFlag{
			Name:  "open",
			Usage: "Open the provider authorization URL in the browser once listening",
		},
		&cli.BoolFlag{
			Name:  "once",
			Usage: "Stop after the first redirect that carries a code or an error",
		},
	)

	return &cli.Command{
		Name:   "serve",
		Usage:  "Listen for the OAuth redirect and display the authorization code",
		Flags:  flags,
		Action: r.Serve,
	}
}

// urlCommand prints the provider authorization URL
func urlCommand(r *Runner) *cli.Command {
	flags := append([]cli.Flag{configFlag(), logLevelFlag()}, listenerFlags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:  "client-id",
			Usage: "OAuth client id (overrides oauth.client_id)",
		},
		&cli.StringFlag{
			Name:  "provider",
			Usage: "Provider name (github, gitlab, google, spotify)",
		},
		&cli.StringSliceFlag{
			Name:  "scope",
			Usage: "Scope to request; repeat for more (overrides oauth.scopes)",
		},
		&cli.StringFlag{
			Name:  "state",
			Usage: "State value to send (random when empty)",
		},
		&cli.BoolFlag{
			Name:  "open",
			Usage: "Open the URL in the browser",
		},
	)

	return &cli.Command{
		Name:   "url",
		Usage:  "Print the authorization URL that redirects to this listener",
		Flags:  flags,
		Action: r.AuthURL,
	}
}

// configCommand handles the configuration file
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration file commands",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write the example configuration file",
				Flags:  []cli.Flag{configFlag()},
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration",
				Flags:  []cli.Flag{configFlag(), logLevelFlag()},
				Action: r.ConfigShow,
			},
		},
	}
}
