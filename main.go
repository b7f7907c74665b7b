package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/swimsync/swimsync/internal/app"
)

func init() {
	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		logrusLevel, err := log.ParseLevel(level)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(logrusLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func main() {
	if err := app.New().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
