package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Black-And-White-Club/tourney-bot/app"
	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
	tournamentapi "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/infrastructure/api"
	"github.com/Black-And-White-Club/tourney-bot/config"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:    "tourney-bot",
		Usage:   "tournament companion bot backed by Toornament",
		Version: config.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the configuration file"},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the message handlers, refresh queue and HTTP API",
				Action: serve,
			},
			{
				Name:  "token",
				Usage: "issue an HTTP API bearer token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user", Required: true, Usage: "chat user id (token subject)"},
					&cli.StringSliceFlag{Name: "role", Usage: "chat role id; repeatable"},
					&cli.DurationFlag{Name: "ttl", Value: 24 * time.Hour, Usage: "token lifetime"},
				},
				Action: issueToken,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(c *cli.Context) error {
	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		return err
	}

	runErr := application.Run(ctx)
	if runErr != nil {
		application.Logger.Error("Application stopped with error", "error", runErr)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := application.Close(shutdownCtx); err != nil {
		application.Logger.Error("Error during shutdown", "error", err)
	}
	application.Logger.Info("Application shut down")
	return runErr
}

func issueToken(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret (JWT_SECRET) is not set")
	}

	token, err := tournamentapi.NewTokens(cfg.JWT.Secret).Issue(tournamentdomain.Actor{
		ID:    c.String("user"),
		Roles: c.StringSlice("role"),
	}, c.Duration("ttl"))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, token)
	return nil
}
