package logging

import (
	"bytes"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInitWithOutput(t *testing.T) {
	defer Init("info")

	var buf bytes.Buffer
	InitWithOutput("debug", &buf)
	assert.Equal(t, log.DebugLevel, L().GetLevel())

	L().WithField("provider", "covid_provider").Debug("resolved")
	assert.Contains(t, buf.String(), "provider=covid_provider")

	InitWithOutput("not-a-level", &buf)
	assert.Equal(t, log.InfoLevel, L().GetLevel())
}
