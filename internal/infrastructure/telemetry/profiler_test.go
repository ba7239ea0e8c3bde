package telemetry_test

import (
	"context"
	"runtime/pprof"
	"testing"

	"github.com/neyamat7/pos-inventory-sub000/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewProfiler(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		p, err := telemetry.NewProfiler(telemetry.ProfilerConfig{Enabled: false}, zap.NewNop())
		require.NoError(t, err)
		assert.False(t, p.IsEnabled())
		assert.NoError(t, p.Stop())
		assert.NoError(t, p.Stop())
	})

	t.Run("missing server address", func(t *testing.T) {
		_, err := telemetry.NewProfiler(telemetry.ProfilerConfig{Enabled: true, ApplicationName: "pos"}, zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("missing application name", func(t *testing.T) {
		_, err := telemetry.NewProfiler(telemetry.ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"}, zap.NewNop())
		assert.Error(t, err)
	})
}

func TestWithProfilingLabels(t *testing.T) {
	t.Run("labels visible inside fn", func(t *testing.T) {
		called := false
		telemetry.WithProfilingLabels(context.Background(), map[string]string{
			telemetry.ProfilingLabelOperation: "checkout",
			telemetry.ProfilingLabelCartType:  "",
		}, func(ctx context.Context) {
			called = true
			v, ok := pprof.Label(ctx, telemetry.ProfilingLabelOperation)
			assert.True(t, ok)
			assert.Equal(t, "checkout", v)
			_, ok = pprof.Label(ctx, telemetry.ProfilingLabelCartType)
			assert.False(t, ok)
		})
		assert.True(t, called)
	})

	t.Run("no labels runs fn directly", func(t *testing.T) {
		called := false
		telemetry.WithProfilingLabels(context.Background(), nil, func(context.Context) { called = true })
		assert.True(t, called)
	})
}
