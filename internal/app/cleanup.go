package app

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/swimsync/swimsync/pkg/calendar"
	"github.com/swimsync/swimsync/pkg/google"
	"github.com/swimsync/swimsync/pkg/reconcile"
)

func cleanupCommand() *cli.Command {
	return &cli.Command{
		Name:  "cleanup",
		Usage: "delete previously imported events within a date window",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "from",
				Usage:    "window start date (YYYY-MM-DD, inclusive at local midnight)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "to",
				Usage:    "window end date (YYYY-MM-DD, exclusive at local midnight)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "tag",
				Usage: "only match events carrying this private key=value property",
			},
			&cli.BoolFlag{
				Name:  "confirm",
				Usage: "perform the deletions instead of reporting them",
			},
			&cli.BoolFlag{
				Name:  "series",
				Usage: "delete whole recurring series instead of single occurrences",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			location, err := time.LoadLocation(cfg.Calendar.Timezone)
			if err != nil {
				return fmt.Errorf("could not load location for timezone %s: %w", cfg.Calendar.Timezone, err)
			}
			window, err := parseWindow(c.String("from"), c.String("to"), location)
			if err != nil {
				return err
			}

			var tag *calendar.Tag
			if expr := c.String("tag"); expr != "" {
				parsed, err := calendar.ParseTag(expr)
				if err != nil {
					return err
				}
				tag = &parsed
			}

			service, err := newAuth(cfg).Service(c.Context)
			if err != nil {
				return err
			}
			engine := reconcile.NewEngine(google.NewEventStore(service))
			_, err = engine.Run(c.Context, reconcile.Options{
				CalendarID:   cfg.Calendar.Id,
				Window:       window,
				Tag:          tag,
				Confirm:      c.Bool("confirm"),
				DeleteSeries: c.Bool("series"),
			})
			return err
		},
	}
}

// parseWindow turns two dates into the half-open window
// [from 00:00 local, to 00:00 local).
func parseWindow(from, to string, location *time.Location) (calendar.Window, error) {
	start, err := time.ParseInLocation("2006-01-02", from, location)
	if err != nil {
		return calendar.Window{}, fmt.Errorf("invalid --from date %q: %w", from, err)
	}
	end, err := time.ParseInLocation("2006-01-02", to, location)
	if err != nil {
		return calendar.Window{}, fmt.Errorf("invalid --to date %q: %w", to, err)
	}
	if !start.Before(end) {
		return calendar.Window{}, fmt.Errorf("--from must be before --to")
	}
	return calendar.Window{Start: start, End: end}, nil
}
