package config

import "time"

// ClientConfig representa a estrutura raiz do arquivo YAML do cliente.
type ClientConfig struct {
	BaseURL string      `yaml:"base_url" env:"PETSHOP_BASE_URL" validate:"required,url"`
	Timeout string      `yaml:"timeout" env:"PETSHOP_TIMEOUT"` // Ex: "500ms", "30s"
	Storage StorageConf `yaml:"storage"`
	Logging LoggingConf `yaml:"logging"`
	Metrics MetricsConf `yaml:"metrics"`
}

// StorageConf define onde o par de tokens e o usuário são persistidos.
type StorageConf struct {
	Backend string    `yaml:"backend" env:"PETSHOP_STORAGE_BACKEND" envDefault:"file" validate:"oneof=file redis"`
	Path    string    `yaml:"path" env:"PETSHOP_STORAGE_PATH" validate:"required_if=Backend file"`
	Redis   RedisConf `yaml:"redis"`
}

// RedisConf configura o backend Redis (terminais PDV compartilhando a sessão).
type RedisConf struct {
	Addr     string `yaml:"addr" env:"PETSHOP_REDIS_ADDR"`
	Password string `yaml:"password" env:"PETSHOP_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"PETSHOP_REDIS_DB"`
}

type LoggingConf struct {
	Enabled bool   `yaml:"enabled" env:"PETSHOP_LOG_ENABLED" envDefault:"true"`
	Level   string `yaml:"level" env:"PETSHOP_LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`
	Format  string `yaml:"format" env:"PETSHOP_LOG_FORMAT" validate:"omitempty,oneof=json console"`
}

type MetricsConf struct {
	Enabled   bool   `yaml:"enabled" env:"DD_ENABLED"`
	Addr      string `yaml:"addr" env:"DD_AGENT_HOST" validate:"required_if=Enabled true"`
	Namespace string `yaml:"namespace"`
}

// GetTimeout converte o campo Timeout para Duration (default: 30s).
func (c ClientConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}
