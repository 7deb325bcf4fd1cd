package logging

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

func Init(level string) {
	InitWithOutput(level, os.Stdout)
}

func InitWithOutput(level string, out io.Writer) {
	log.SetOutput(out)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	// default info
	l, err := log.ParseLevel(level)
	if err != nil {
		l = log.InfoLevel
	}
	log.SetLevel(l)
}

func L() *log.Logger { return log.StandardLogger() }
