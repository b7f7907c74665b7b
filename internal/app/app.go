package app

import (
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/swimsync/swimsync/internal/config"
	"github.com/swimsync/swimsync/pkg/google"
)

// New builds the swimsync CLI application: compile swim-schedule rows
// into recurring Google Calendar events, and clean them up again.
func New() *cli.App {
	return &cli.App{
		Name:  "swimsync",
		Usage: "import swim schedules into Google Calendar and reconcile them later",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "./config/swimsync.yaml",
				Usage: "path to the configuration file",
			},
		},
		Before: func(c *cli.Context) error {
			log.Debugf("starting swimsync run %s", uuid.New())
			return nil
		},
		Commands: []*cli.Command{
			authCommand(),
			calendarsCommand(),
			importCommand(),
			cleanupCommand(),
		},
	}
}

func loadConfig(c *cli.Context) (config.Application, error) {
	return config.Load(c.String("config"))
}

func newAuth(cfg config.Application) *google.Auth {
	return google.NewAuth(cfg.Google.ClientId, cfg.Google.ClientSecret, cfg.Google.TokenFile)
}

func authCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "authorize calendar access and store the token",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if err := cfg.ValidateGoogle(); err != nil {
				return err
			}
			return newAuth(cfg).Authorize(c.Context)
		},
	}
}

func calendarsCommand() *cli.Command {
	return &cli.Command{
		Name:  "calendars",
		Usage: "list calendars visible to the authorized account",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if err := cfg.ValidateGoogle(); err != nil {
				return err
			}
			service, err := newAuth(cfg).Service(c.Context)
			if err != nil {
				return err
			}
			items, err := google.ListCalendars(c.Context, service)
			if err != nil {
				return err
			}
			for _, item := range items {
				fmt.Printf("%s\t%s\n", item.ID, item.Summary)
			}
			return nil
		},
	}
}
