package logutil

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	previous := log.Writer()
	flags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(previous)
		log.SetFlags(flags)
	})

	LogError("audio: play", nil)
	assert.Empty(t, buf.String())

	LogError("audio: play", errors.New("no device"))
	assert.Equal(t, "audio: play: no device\n", buf.String())
}
