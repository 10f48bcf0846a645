package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/raywall/petshop-client-toolkit/pkg/events"
	"github.com/rs/zerolog"
)

// Rotas do serviço de autenticação. O pipeline de requisições usa estes
// caminhos para identificar chamadas de login/refresh, que nunca são
// reexecutadas após um 401.
const (
	PathLogin      = "/auth/users/login/"
	PathRefresh    = "/auth/token/refresh/"
	PathMe         = "/auth/users/me/"
	PathFirstLogin = "/auth/first-login/"
)

var validate = validator.New()

type credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Manager é o dono do par de tokens e do usuário corrente.
//
// Invariante: a sessão está autenticada quando existem token de acesso E
// usuário carregado. Um token sem usuário é um estado transitório logo
// após o restart do processo, resolvido pelo guard de navegação via
// LoadCurrentUser (sucesso) ou Logout (falha).
type Manager struct {
	mu      sync.RWMutex
	access  string
	refresh string
	user    *User

	baseURL string
	client  *http.Client
	store   TokenStore
	bus     *events.Bus
	log     zerolog.Logger
}

// NewManager cria o gerenciador de sessão. O store pode ser nil quando a
// persistência entre execuções não for desejada.
func NewManager(baseURL string, client *http.Client, store TokenStore, bus *events.Bus, log zerolog.Logger) *Manager {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Manager{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		store:   store,
		bus:     bus,
		log:     log,
	}
}

// Restore carrega a sessão persistida, se houver. Retorna true quando um
// snapshot foi restaurado (o usuário pode ainda precisar ser recarregado).
func (m *Manager) Restore() bool {
	if m.store == nil {
		return false
	}
	snap, ok, err := m.store.Load()
	if err != nil {
		m.log.Warn().Err(err).Msg("falha ao restaurar sessão persistida")
		return false
	}
	if !ok {
		return false
	}

	m.mu.Lock()
	m.access = snap.AccessToken
	m.refresh = snap.RefreshToken
	m.user = snap.User
	m.mu.Unlock()

	m.log.Debug().Bool("has_user", snap.User != nil).Msg("sessão restaurada do storage")
	return true
}

// Login autentica o usuário. Em caso de sucesso grava atomicamente o par
// de tokens e o usuário (memória + storage) e informa se uma troca de
// senha é obrigatória. Em caso de falha de credencial retorna *AuthError
// com a mensagem do servidor, sem tocar no estado da sessão.
func (m *Manager) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	creds := credentials{Username: username, Password: password}
	if err := validate.StructCtx(ctx, creds); err != nil {
		return nil, &AuthError{Message: "usuário e senha são obrigatórios"}
	}

	var resp struct {
		Access             string `json:"access"`
		Refresh            string `json:"refresh"`
		User               *User  `json:"user"`
		MustChangePassword bool   `json:"must_change_password"`
	}
	if err := m.postJSON(ctx, PathLogin, creds, &resp); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.access = resp.Access
	m.refresh = resp.Refresh
	m.user = resp.User
	if m.user != nil && resp.MustChangePassword {
		m.user.MustChangePassword = true
	}
	m.mu.Unlock()

	m.persist()
	if m.bus != nil {
		m.bus.Publish(events.TopicLoggedIn, resp.User)
	}
	m.log.Info().Str("username", username).Msg("login efetuado")

	return &LoginResult{User: resp.User, MustChangePassword: resp.MustChangePassword}, nil
}

// LoadCurrentUser busca o registro do usuário para um token já presente
// (ex.: sessão restaurada do storage). Uma falha significa que a
// credencial é inutilizável: a sessão inteira é derrubada via Logout.
func (m *Manager) LoadCurrentUser(ctx context.Context) error {
	m.mu.RLock()
	token := m.access
	m.mu.RUnlock()
	if token == "" {
		return ErrNoAccessToken
	}

	var user User
	if err := m.getJSON(ctx, PathMe, token, &user); err != nil {
		m.log.Warn().Err(err).Msg("falha ao carregar usuário corrente, derrubando sessão")
		m.Logout()
		return fmt.Errorf("erro ao carregar usuário corrente: %w", err)
	}

	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()
	m.persist()
	return nil
}

// RefreshAccessToken troca o refresh token por um novo token de acesso
// (e possivelmente um novo refresh token), persistindo o par. Nunca
// retorna erro: o chamador decide pelo booleano.
func (m *Manager) RefreshAccessToken(ctx context.Context) (string, bool) {
	m.mu.RLock()
	refresh := m.refresh
	m.mu.RUnlock()
	if refresh == "" {
		return "", false
	}

	var resp struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	body := map[string]string{"refresh": refresh}
	if err := m.postJSON(ctx, PathRefresh, body, &resp); err != nil {
		m.log.Warn().Err(err).Msg("refresh do token falhou")
		return "", false
	}
	if resp.Access == "" {
		return "", false
	}

	m.mu.Lock()
	m.access = resp.Access
	if resp.Refresh != "" {
		m.refresh = resp.Refresh
	}
	m.mu.Unlock()

	m.persist()
	m.log.Debug().Msg("token de acesso renovado")
	return resp.Access, true
}

// FirstLoginChangePassword completa o fluxo de primeiro acesso, trocando
// usuário e senha. Em caso de sucesso a flag de troca obrigatória é
// limpa e a sessão é repersistida.
func (m *Manager) FirstLoginChangePassword(ctx context.Context, newUsername, newPassword, newPasswordConfirm string) error {
	m.mu.RLock()
	token := m.access
	m.mu.RUnlock()
	if token == "" {
		return ErrNoAccessToken
	}

	body := map[string]string{
		"new_username":         newUsername,
		"new_password":         newPassword,
		"new_password_confirm": newPasswordConfirm,
	}
	req, err := m.newRequest(ctx, http.MethodPost, PathFirstLogin, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	if err := m.do(req, nil); err != nil {
		return err
	}

	m.mu.Lock()
	if m.user != nil {
		m.user.MustChangePassword = false
		if newUsername != "" {
			m.user.Username = newUsername
		}
	}
	m.mu.Unlock()
	m.persist()
	return nil
}

// Logout limpa todos os campos da sessão e o storage durável, e publica
// o evento de logout (consumido pelo estado de assinatura). Idempotente.
func (m *Manager) Logout() {
	m.mu.Lock()
	wasAuthenticated := m.access != "" || m.user != nil
	m.access = ""
	m.refresh = ""
	m.user = nil
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.Clear(); err != nil {
			m.log.Warn().Err(err).Msg("falha ao limpar sessão persistida")
		}
	}
	if m.bus != nil {
		m.bus.Publish(events.TopicLoggedOut, nil)
	}
	if wasAuthenticated {
		m.log.Info().Msg("logout efetuado")
	}
}

// AccessToken retorna o token de acesso corrente ("" quando ausente).
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.access
}

// HasRefreshToken informa se existe um refresh token para renovação.
func (m *Manager) HasRefreshToken() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refresh != ""
}

// CurrentUser retorna uma cópia do usuário corrente, ou nil.
func (m *Manager) CurrentUser() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// IsAuthenticated vale quando há token de acesso E usuário carregado.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.access != "" && m.user != nil
}

// IsAdmin vale para superusuários, staff, ou papel "admin" (sem
// distinção de maiúsculas).
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return false
	}
	if m.user.IsSuperuser || m.user.IsStaff {
		return true
	}
	return strings.EqualFold(m.user.Role, "admin")
}

// IsManager vale para papéis "manager" ou "admin" (sem distinção de
// maiúsculas).
func (m *Manager) IsManager() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return false
	}
	return strings.EqualFold(m.user.Role, "manager") || strings.EqualFold(m.user.Role, "admin")
}

// MustChangePassword informa se o usuário corrente está marcado para
// troca obrigatória de senha.
func (m *Manager) MustChangePassword() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil && m.user.MustChangePassword
}

// persist grava o snapshot corrente no storage. Falha de persistência
// não invalida a sessão em memória.
func (m *Manager) persist() {
	if m.store == nil {
		return
	}

	m.mu.RLock()
	snap := Snapshot{AccessToken: m.access, RefreshToken: m.refresh, User: m.user}
	m.mu.RUnlock()

	if err := m.store.Save(snap); err != nil {
		m.log.Warn().Err(err).Msg("falha ao persistir sessão")
	}
}

// ------------------------------------------------------------------
// Chamadas HTTP diretas aos endpoints de autenticação. O pipeline de
// requisições não é usado aqui de propósito: login e refresh nunca
// participam do protocolo de retry.
// ------------------------------------------------------------------

func (m *Manager) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar corpo: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, m.baseURL+path, payload)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (m *Manager) postJSON(ctx context.Context, path string, body, out interface{}) error {
	req, err := m.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return m.do(req, out)
}

func (m *Manager) getJSON(ctx context.Context, path, token string, out interface{}) error {
	req, err := m.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return m.do(req, out)
}

func (m *Manager) do(req *http.Request, out interface{}) error {
	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("erro de conexão com o serviço de autenticação: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode >= 400 {
		return &AuthError{Status: resp.StatusCode, Message: serverMessage(data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("erro ao decodificar resposta: %w", err)
		}
	}
	return nil
}

// serverMessage extrai a mensagem exibível do corpo de erro ("error" ou
// "detail", conforme o endpoint).
func serverMessage(data []byte) string {
	var body struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Detail
}
