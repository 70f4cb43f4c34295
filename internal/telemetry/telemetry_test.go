package telemetry_test

import (
	"context"
	"testing"

	"github.com/civiltoolbox/toolbox/internal/config"
	"github.com/civiltoolbox/toolbox/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Disabled(t *testing.T) {
	shutdown, err := telemetry.Init(context.Background(), config.TelemetryConfig{Enabled: false}, "test")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_NoEndpoint(t *testing.T) {
	shutdown, err := telemetry.Init(context.Background(), config.TelemetryConfig{Enabled: true}, "test")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
