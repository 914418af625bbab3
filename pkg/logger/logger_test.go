package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmarin/posflow-api/pkg/logger"
)

func TestNew_JSONConCampoService(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "debug", Service: "posflow", Writer: &buf})

	l.Info().Str("traslado", "tr-1").Msg("entregado")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "posflow", line["service"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "tr-1", line["traslado"])
	assert.Contains(t, line, "time")
}

func TestNew_NivelInvalidoCaeEnInfo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Level: "gritando", Writer: &buf})

	l.Debug().Msg("no debería salir")
	assert.Empty(t, buf.String())

	l.Info().Msg("sí sale")
	assert.Contains(t, buf.String(), "sí sale")
}

func TestNew_DevelopmentUsaConsola(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "development", Writer: &buf})

	l.Warn().Msg("legible")

	// La salida de consola no es JSON.
	out := buf.String()
	assert.False(t, strings.HasPrefix(strings.TrimSpace(out), "{"))
	assert.Contains(t, out, "legible")
}
