package entitlement

import (
	"context"
	"fmt"
	"sync"

	"github.com/raywall/petshop-client-toolkit/api"
	"github.com/raywall/petshop-client-toolkit/pkg/events"
	"github.com/rs/zerolog"
)

// Estados de assinatura reconhecidos pelo backend.
const (
	StatusTrial   = "trial"
	StatusActive  = "active"
	StatusExpired = "expired"
)

// Status é o retorno de /subscription/status/.
type Status struct {
	Status             string `json:"status"`
	CanWrite           bool   `json:"can_write"`
	DaysRemainingTrial int    `json:"days_remaining_trial"`
	TrialEnd           string `json:"trial_end"`
	Plan               string `json:"plan"`
	CurrentPeriodEnd   string `json:"current_period_end"`
}

// Store mantém o estado de assinatura/direitos da loja.
//
// Ele reage a dois eventos do barramento: logout (volta ao estado
// inicial de trial) e expiração sinalizada pelo pipeline em um 403 com
// marcador (vira somente leitura). Nenhum outro pacote escreve aqui
// diretamente.
type Store struct {
	mu                 sync.RWMutex
	status             string
	canWrite           bool
	daysRemainingTrial int
	trialEnd           string
	plan               string
	currentPeriodEnd   string

	client *api.Client
	log    zerolog.Logger
}

// NewStore cria o estado de assinatura e o inscreve no barramento.
func NewStore(client *api.Client, bus *events.Bus, log zerolog.Logger) *Store {
	s := &Store{client: client, log: log}
	s.resetLocked()

	if bus != nil {
		bus.Subscribe(events.TopicLoggedOut, func(interface{}) { s.Reset() })
		bus.Subscribe(events.TopicEntitlementExpired, func(interface{}) { s.markExpired() })
	}
	return s
}

// FetchStatus consulta o backend e atualiza o estado local.
func (s *Store) FetchStatus(ctx context.Context) (*Status, error) {
	resp, err := s.client.Get(ctx, "/subscription/status/", nil)
	if err != nil {
		// Um 403 com marcador já terá virado o estado via barramento.
		return nil, fmt.Errorf("erro ao consultar assinatura: %w", err)
	}

	status := Status{CanWrite: true}
	if err := resp.DecodeJSON(&status); err != nil {
		return nil, err
	}
	if status.Status == "" {
		status.Status = StatusTrial
	}

	s.mu.Lock()
	s.status = status.Status
	s.canWrite = status.CanWrite
	s.daysRemainingTrial = status.DaysRemainingTrial
	s.trialEnd = status.TrialEnd
	s.plan = status.Plan
	s.currentPeriodEnd = status.CurrentPeriodEnd
	s.mu.Unlock()

	return &status, nil
}

// CreatePayment inicia o pagamento do plano.
func (s *Store) CreatePayment(ctx context.Context) (*api.Response, error) {
	return s.client.Post(ctx, "/subscription/pay/", nil)
}

// Reset devolve o estado inicial (trial com escrita liberada).
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Store) resetLocked() {
	s.status = StatusTrial
	s.canWrite = true
	s.daysRemainingTrial = 7
	s.trialEnd = ""
	s.plan = ""
	s.currentPeriodEnd = ""
}

// markExpired é o efeito do canal lateral do pipeline: a loja pode ler,
// mas não escrever.
func (s *Store) markExpired() {
	s.mu.Lock()
	s.status = StatusExpired
	s.canWrite = false
	s.mu.Unlock()
	s.log.Warn().Msg("assinatura marcada como expirada")
}

// CurrentStatus retorna o estado corrente.
func (s *Store) CurrentStatus() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// IsReadOnly informa se a loja está em modo somente leitura.
func (s *Store) IsReadOnly() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.canWrite
}

// IsTrial informa se a assinatura está em período de avaliação.
func (s *Store) IsTrial() bool {
	return s.CurrentStatus() == StatusTrial
}

// IsActive informa se a assinatura está ativa.
func (s *Store) IsActive() bool {
	return s.CurrentStatus() == StatusActive
}

// DaysRemainingTrial retorna os dias restantes de avaliação.
func (s *Store) DaysRemainingTrial() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.daysRemainingTrial
}
