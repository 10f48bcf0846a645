package metrics

import (
	"testing"

	"github.com/raywall/petshop-client-toolkit/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestNewFromConfig(t *testing.T) {
	t.Run("desabilitado vira Noop", func(t *testing.T) {
		rec := NewFromConfig(config.MetricsConf{Enabled: false})
		assert.IsType(t, Noop{}, rec)
	})

	t.Run("habilitado sem endereço vira Noop", func(t *testing.T) {
		rec := NewFromConfig(config.MetricsConf{Enabled: true})
		assert.IsType(t, Noop{}, rec)
	})

	t.Run("habilitado com agente vira statsd", func(t *testing.T) {
		rec := NewFromConfig(config.MetricsConf{Enabled: true, Addr: "127.0.0.1:8125", Namespace: "petshop."})
		assert.IsType(t, &Statsd{}, rec)
	})
}

func TestNoop_DoesNothing(t *testing.T) {
	var rec Recorder = Noop{}
	assert.NotPanics(t, func() {
		rec.Count("api.request", 1, nil)
		rec.Gauge("api.inflight", 2, []string{"method:GET"})
		rec.Timing("api.request.duration", 0, nil)
	})
}
