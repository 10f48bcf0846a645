package petshopclient

import (
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/raywall/petshop-client-toolkit/api"
	"github.com/raywall/petshop-client-toolkit/pkg/config"
	"github.com/raywall/petshop-client-toolkit/pkg/entitlement"
	"github.com/raywall/petshop-client-toolkit/pkg/events"
	"github.com/raywall/petshop-client-toolkit/pkg/logger"
	"github.com/raywall/petshop-client-toolkit/pkg/metrics"
	"github.com/raywall/petshop-client-toolkit/pkg/navigation"
	"github.com/raywall/petshop-client-toolkit/pkg/services"
	"github.com/raywall/petshop-client-toolkit/pkg/session"
	"github.com/rs/zerolog"
)

// Toolkit agrega os componentes do cliente já conectados entre si.
type Toolkit struct {
	Log          zerolog.Logger
	Bus          *events.Bus
	Session      *session.Manager
	API          *api.Client
	Entitlements *entitlement.Store
	Services     *services.Set
	Guard        *navigation.Guard
}

// New monta o toolkit a partir da configuração: logger, barramento de
// eventos, storage de sessão (arquivo ou Redis), pipeline, serviços e
// guard de navegação. A sessão persistida, se houver, é restaurada — o
// usuário é recarregado sob demanda pelo guard (regra do token sem
// usuário).
func New(cfg *config.ClientConfig) (*Toolkit, error) {
	log := logger.Configure(cfg.Logging)
	bus := events.NewBus(log)

	store, err := newTokenStore(cfg.Storage)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.GetTimeout()}
	sess := session.NewManager(cfg.BaseURL, httpClient, store, bus, log)
	sess.Restore()

	client := api.NewClient(cfg.BaseURL, sess,
		api.WithHTTPClient(httpClient),
		api.WithBus(bus),
		api.WithMetrics(metrics.NewFromConfig(cfg.Metrics)),
		api.WithLogger(log),
	)

	return &Toolkit{
		Log:          log,
		Bus:          bus,
		Session:      sess,
		API:          client,
		Entitlements: entitlement.NewStore(client, bus, log),
		Services:     services.New(client),
		Guard:        navigation.NewGuard(sess, navigation.NewRegistry(navigation.DefaultRoutes()), log),
	}, nil
}

func newTokenStore(cfg config.StorageConf) (session.TokenStore, error) {
	switch cfg.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return session.NewRedisStore(client, ""), nil
	case "file", "":
		return session.NewFileStore(cfg.Path), nil
	default:
		return nil, fmt.Errorf("backend de storage desconhecido: %s", cfg.Backend)
	}
}
