package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	out := Entry().Logger.Out
	t.Cleanup(func() { Entry().Logger.SetOutput(out) })
	Entry().Logger.SetOutput(&buf)

	Component("pipeline").Info("run started")
	assert.Contains(t, buf.String(), "component=pipeline")
	assert.Contains(t, buf.String(), "run started")
}

func TestSetLevelName(t *testing.T) {
	prev := Entry().Logger.GetLevel()
	t.Cleanup(func() { SetLevel(prev) })

	require.NoError(t, SetLevelName("debug"))
	assert.Equal(t, logrus.DebugLevel, Entry().Logger.GetLevel())

	assert.Error(t, SetLevelName("loud"))
	assert.Equal(t, logrus.DebugLevel, Entry().Logger.GetLevel())
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	out := Entry().Logger.Out
	t.Cleanup(func() { Entry().Logger.SetOutput(out) })
	Entry().Logger.SetOutput(&buf)

	WithError(assert.AnError).Warn("run failed")
	assert.Contains(t, buf.String(), "error=")
	assert.Contains(t, buf.String(), "run failed")
}
