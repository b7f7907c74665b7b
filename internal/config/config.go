package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

// ConfigError reports a required configuration field that is absent.
// It is raised before any network interaction.
type ConfigError struct {
	Field string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", e.Field)
}

type Application struct {
	Google   Google           `koanf:"google"`
	Calendar Calendar         `koanf:"calendar"`
	Places   map[string]Place `koanf:"places"`
}

type Google struct {
	ClientId     string `koanf:"clientid"`
	ClientSecret string `koanf:"clientsecret"`
	TokenFile    string `koanf:"tokenfile"`
}

type Calendar struct {
	Id       string `koanf:"id"`
	Timezone string `koanf:"timezone"`
	Location string `koanf:"location"`
	ColorId  string `koanf:"colorid"`
}

type Place struct {
	Location string `koanf:"location"`
	ColorId  string `koanf:"colorid"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Google: Google{
			TokenFile: "./config/token.json",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "SWIMSYNC_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "SWIMSYNC_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}

// ValidateLocal checks the fields needed before any compilation can
// happen, whether or not the run will touch the remote store.
func (a Application) ValidateLocal() error {
	if a.Calendar.Timezone == "" {
		return &ConfigError{Field: "calendar.timezone"}
	}
	return nil
}

// Validate checks everything a run that talks to Google needs.
func (a Application) Validate() error {
	if err := a.ValidateLocal(); err != nil {
		return err
	}
	if a.Calendar.Id == "" {
		return &ConfigError{Field: "calendar.id"}
	}
	return a.ValidateGoogle()
}

// ValidateGoogle checks the OAuth client fields.
func (a Application) ValidateGoogle() error {
	if a.Google.ClientId == "" {
		return &ConfigError{Field: "google.clientid"}
	}
	if a.Google.ClientSecret == "" {
		return &ConfigError{Field: "google.clientsecret"}
	}
	return nil
}
