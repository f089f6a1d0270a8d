package logger

import (
	"bytes"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleHook_MirrorsFormattedEntry(t *testing.T) {
	var buf bytes.Buffer

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(io.Discard)
	log.AddHook(&ConsoleHook{out: &buf})

	log.WithField("stage", "prompt").Info("moderation blocked content")

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, `"msg":"moderation blocked content"`)
	assert.Contains(t, out, `"stage":"prompt"`)
}

func TestConsoleHook_CoversAllLevels(t *testing.T) {
	h := NewConsoleHook()
	assert.Equal(t, logrus.AllLevels, h.Levels())
}
