package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"ducktodo/internal/app"
	"ducktodo/pkg/config"

	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    app.ServiceName,
		Usage:   "command line client for the ducktodo gateway",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
				EnvVars: []string{config.EnvConfigFile},
			},
			&cli.StringFlag{
				Name:  "api-base",
				Usage: "override the API base path or URL",
			},
		},
		Before: func(c *cli.Context) error {
			if base := c.String("api-base"); base != "" {
				config.SetAPIBaseOverride(base)
			}
			return nil
		},
		Commands: []*cli.Command{
			healthCommand(),
			loginCommand(),
			registerCommand(),
			logoutCommand(),
			whoamiCommand(),
			avatarCommand(),
			tasksCommand(),
			groupsCommand(),
			teamsCommand(),
			invitesCommand(),
			statsCommand(),
			reportCommand(),
			downloadCommand(),
		},
	}
}

type action func(c *cli.Context, a *app.App) error

// withApp builds the application for a single command and closes it after.
func withApp(fn action) cli.ActionFunc {
	return func(c *cli.Context) error {
		a, err := app.Build(c.Context, c.String("config"))
		if err != nil {
			return err
		}
		defer func() {
			if err := a.Close(); err != nil {
				a.Log.Warn("Failed to close application", "error", err)
			}
		}()
		return fn(c, a)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
