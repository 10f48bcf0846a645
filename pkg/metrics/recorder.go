package metrics

import (
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/raywall/petshop-client-toolkit/pkg/config"
)

// Recorder define o contrato para envio de métricas do pipeline.
// Isso permite trocar Datadog por outro provider sem alterar o cliente.
type Recorder interface {
	Count(name string, value int64, tags []string)
	Gauge(name string, value float64, tags []string)
	Timing(name string, value time.Duration, tags []string)
}

// NewFromConfig retorna o recorder apropriado para a configuração:
// statsd/Datadog quando habilitado, Noop caso contrário.
func NewFromConfig(cfg config.MetricsConf) Recorder {
	if !cfg.Enabled || cfg.Addr == "" {
		return Noop{}
	}
	rec, err := NewStatsd(cfg.Addr, cfg.Namespace)
	if err != nil {
		return Noop{}
	}
	return rec
}

// Statsd envia métricas via agente Datadog (dogstatsd/UDP).
type Statsd struct {
	client *statsd.Client
}

// NewStatsd cria o recorder apontando para o agente no endereço informado.
func NewStatsd(addr, namespace string) (*Statsd, error) {
	opts := []statsd.Option{}
	if namespace != "" {
		opts = append(opts, statsd.WithNamespace(namespace))
	}
	client, err := statsd.New(addr, opts...)
	if err != nil {
		return nil, err
	}
	return &Statsd{client: client}, nil
}

func (s *Statsd) Count(name string, value int64, tags []string) {
	_ = s.client.Count(name, value, tags, 1)
}

func (s *Statsd) Gauge(name string, value float64, tags []string) {
	_ = s.client.Gauge(name, value, tags, 1)
}

func (s *Statsd) Timing(name string, value time.Duration, tags []string) {
	_ = s.client.Timing(name, value, tags, 1)
}

// Noop descarta todas as métricas.
type Noop struct{}

func (Noop) Count(string, int64, []string)          {}
func (Noop) Gauge(string, float64, []string)        {}
func (Noop) Timing(string, time.Duration, []string) {}
