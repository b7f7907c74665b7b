package app

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/swimsync/swimsync/internal/config"
	"github.com/swimsync/swimsync/pkg/calendar"
	"github.com/swimsync/swimsync/pkg/google"
	"github.com/swimsync/swimsync/pkg/recurrence"
	"github.com/swimsync/swimsync/pkg/schedule"
)

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "compile a schedule file into recurring calendar events",
		ArgsUsage: "<schedule.csv>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "confirm",
				Usage: "create the compiled events instead of previewing them",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one schedule file argument")
			}
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if err := cfg.ValidateLocal(); err != nil {
				return err
			}

			templates, err := compileFile(c.Args().First(), cfg)
			if err != nil {
				return err
			}

			if !c.Bool("confirm") {
				for _, template := range templates {
					printTemplate(template)
				}
				log.Infof("preview only: %d event template(s) compiled, rerun with --confirm to create them", len(templates))
				return nil
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			service, err := newAuth(cfg).Service(c.Context)
			if err != nil {
				return err
			}
			store := google.NewEventStore(service)
			for _, template := range templates {
				// insert failures are not retried, a failed import is re-run manually
				created, err := store.Insert(c.Context, cfg.Calendar.Id, template)
				if err != nil {
					return fmt.Errorf("could not create event %q: %w", template.Summary, err)
				}
				log.Infof("created %q (%s) as %s", template.Summary, template.WeekdayCode, created.ID)
			}
			log.Infof("created %d recurring event(s)", len(templates))
			return nil
		},
	}
}

func compileFile(path string, cfg config.Application) ([]calendar.EventTemplate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open schedule file: %w", err)
	}
	defer f.Close()

	parsed, err := schedule.Parse(f)
	if err != nil {
		return nil, err
	}

	compilerConfig := recurrence.Config{
		Timezone:        cfg.Calendar.Timezone,
		DefaultLocation: cfg.Calendar.Location,
		DefaultColorID:  cfg.Calendar.ColorId,
		Places:          placesConfig(cfg),
	}
	templates := make([]calendar.EventTemplate, 0, len(parsed.Rows))
	for _, row := range parsed.Rows {
		compiled, err := recurrence.Compile(row, parsed.Season, compilerConfig)
		if err != nil {
			return nil, err
		}
		templates = append(templates, compiled...)
	}
	return templates, nil
}

func placesConfig(cfg config.Application) map[string]recurrence.Place {
	places := make(map[string]recurrence.Place, len(cfg.Places))
	for name, place := range cfg.Places {
		places[name] = recurrence.Place{
			Location: place.Location,
			ColorID:  place.ColorId,
		}
	}
	return places
}

func printTemplate(template calendar.EventTemplate) {
	fmt.Printf("%s (%s)\n", template.Summary, template.Place)
	fmt.Printf("  first occurrence: %s - %s %s\n",
		template.StartLocal.Format("2006-01-02 15:04"),
		template.EndLocal.Format("15:04"),
		template.Timezone)
	fmt.Printf("  recurrence:       %s\n", template.Recurrence)
	if template.Location != "" {
		fmt.Printf("  location:         %s\n", template.Location)
	}
	fmt.Printf("  color:            %s\n", template.ColorID)
	fmt.Printf("  sync key:         %s\n", template.SyncKey)
}
