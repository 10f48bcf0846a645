// Package emulator fornece um backend falso da API pet-shop para
// desenvolvimento local e testes de integração do cliente: endpoints de
// autenticação (login, refresh, me, primeiro acesso), status de
// assinatura e uma coleção genérica de recursos em memória.
package emulator

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/raywall/petshop-client-toolkit/pkg/session"
)

// Account é uma conta conhecida pelo emulador.
type Account struct {
	Password           string
	User               session.User
	MustChangePassword bool
}

// Server é o backend emulado. Todos os métodos são seguros para uso
// concorrente.
type Server struct {
	mu            sync.Mutex
	accounts      map[string]*Account
	accessTokens  map[string]string // token -> username
	refreshTokens map[string]string // token -> username

	subscriptionExpired bool
	refreshFails        bool
	refreshCalls        int

	resources map[string][]map[string]interface{}

	router *mux.Router
}

// New cria o emulador com as rotas registradas.
func New() *Server {
	s := &Server{
		accounts:      make(map[string]*Account),
		accessTokens:  make(map[string]string),
		refreshTokens: make(map[string]string),
		resources:     make(map[string][]map[string]interface{}),
	}

	r := mux.NewRouter()
	r.HandleFunc("/auth/users/login/", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/token/refresh/", s.handleRefresh).Methods(http.MethodPost)
	r.HandleFunc("/auth/users/me/", s.handleMe).Methods(http.MethodGet)
	r.HandleFunc("/auth/first-login/", s.handleFirstLogin).Methods(http.MethodPost)
	r.HandleFunc("/subscription/status/", s.handleSubscription).Methods(http.MethodGet)
	r.HandleFunc("/{resource}/", s.handleResourceList).Methods(http.MethodGet)
	r.HandleFunc("/{resource}/", s.handleResourceCreate).Methods(http.MethodPost)
	s.router = r

	return s
}

// Handler expõe o roteador para httptest ou ListenAndServe.
func (s *Server) Handler() http.Handler { return s.router }

// AddAccount registra uma conta válida para login.
func (s *Server) AddAccount(username string, acc Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[username] = &acc
}

// InvalidateAccessTokens revoga todos os tokens de acesso emitidos,
// forçando 401 nas próximas chamadas autenticadas (o refresh continua
// válido).
func (s *Server) InvalidateAccessTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessTokens = make(map[string]string)
}

// FailRefresh faz as próximas chamadas de refresh retornarem 401.
func (s *Server) FailRefresh(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshFails = fail
}

// RefreshCalls retorna quantas chamadas de refresh o emulador recebeu.
func (s *Server) RefreshCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshCalls
}

// SetSubscriptionExpired controla o modo somente leitura: escritas em
// recursos passam a responder 403 com o marcador de assinatura.
func (s *Server) SetSubscriptionExpired(expired bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscriptionExpired = expired
}

// Seed adiciona itens a uma coleção de recursos.
func (s *Server) Seed(resource string, items ...map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources[resource] = append(s.resources[resource], items...)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "corpo inválido"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[creds.Username]
	if !ok || acc.Password != creds.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "usuário ou senha inválidos"})
		return
	}

	access := "acc-" + uuid.NewString()
	refresh := "ref-" + uuid.NewString()
	s.accessTokens[access] = creds.Username
	s.refreshTokens[refresh] = creds.Username

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access":               access,
		"refresh":              refresh,
		"user":                 acc.User,
		"must_change_password": acc.MustChangePassword,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Refresh string `json:"refresh"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "corpo inválido"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshCalls++
	username, ok := s.refreshTokens[body.Refresh]
	if !ok || s.refreshFails {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "refresh token inválido"})
		return
	}

	access := "acc-" + uuid.NewString()
	s.accessTokens[access] = username
	writeJSON(w, http.StatusOK, map[string]string{"access": access})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username, ok := s.authenticate(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token inválido"})
		return
	}
	writeJSON(w, http.StatusOK, s.accounts[username].User)
}

func (s *Server) handleFirstLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		NewUsername        string `json:"new_username"`
		NewPassword        string `json:"new_password"`
		NewPasswordConfirm string `json:"new_password_confirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "corpo inválido"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	username, ok := s.authenticate(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token inválido"})
		return
	}
	if body.NewPassword == "" || body.NewPassword != body.NewPasswordConfirm {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "senhas não conferem"})
		return
	}

	acc := s.accounts[username]
	acc.MustChangePassword = false
	acc.User.MustChangePassword = false
	acc.Password = body.NewPassword
	if body.NewUsername != "" && body.NewUsername != username {
		acc.User.Username = body.NewUsername
		s.accounts[body.NewUsername] = acc
		delete(s.accounts, username)
		for token, u := range s.accessTokens {
			if u == username {
				s.accessTokens[token] = body.NewUsername
			}
		}
		for token, u := range s.refreshTokens {
			if u == username {
				s.refreshTokens[token] = body.NewUsername
			}
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "ok"})
}

func (s *Server) handleSubscription(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.authenticate(r); !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token inválido"})
		return
	}
	if s.subscriptionExpired {
		writeJSON(w, http.StatusOK, map[string]interface{}{"status": "expired", "can_write": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "active", "can_write": true})
}

func (s *Server) handleResourceList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.authenticate(r); !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token inválido"})
		return
	}

	resource := mux.Vars(r)["resource"]
	items := s.resources[resource]
	if items == nil {
		items = []map[string]interface{}{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleResourceCreate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.authenticate(r); !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token inválido"})
		return
	}
	if s.subscriptionExpired {
		writeJSON(w, http.StatusForbidden, map[string]string{"detail": "subscription_expired"})
		return
	}

	var item map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "corpo inválido"})
		return
	}

	resource := mux.Vars(r)["resource"]
	s.resources[resource] = append(s.resources[resource], item)
	writeJSON(w, http.StatusCreated, item)
}

// authenticate resolve o bearer token para um usuário. Chamar com o
// mutex já adquirido.
func (s *Server) authenticate(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	username, ok := s.accessTokens[strings.TrimPrefix(header, "Bearer ")]
	if !ok {
		return "", false
	}
	if _, exists := s.accounts[username]; !exists {
		return "", false
	}
	return username, true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
