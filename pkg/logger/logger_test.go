package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogger_Level(t *testing.T) {
	buf := &bytes.Buffer{}
	l := newLogger(buf, "api", "warn")

	l.Infof("dropped %d", 1)
	require.Zero(t, buf.Len())

	l.Errorf("cannot close challenge %d", 42)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "cannot close challenge 42", line["message"])
	require.Equal(t, "error", line["level"])
	require.Equal(t, "api", line["service"])
}

func TestLogger_UnknownLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	l := newLogger(buf, "api", "verbose")

	l.Debugf("dropped")
	require.Zero(t, buf.Len())

	l.Infof("kept")
	require.NotZero(t, buf.Len())
}
