package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/raywall/petshop-client-toolkit/pkg/events"
	"github.com/raywall/petshop-client-toolkit/pkg/metrics"
	"github.com/raywall/petshop-client-toolkit/pkg/session"
	"github.com/rs/zerolog"
)

// TokenSource define o que o pipeline precisa do gerenciador de sessão.
// *session.Manager satisfaz a interface.
type TokenSource interface {
	AccessToken() string
	HasRefreshToken() bool
	RefreshAccessToken(ctx context.Context) (string, bool)
	Logout()
}

// Request descreve uma chamada à API. O corpo é mantido em forma
// reexecutável para que a requisição possa ser repetida após uma
// renovação de token.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body é serializado para JSON quando RawBody é nil.
	Body interface{}
	// RawBody transporta corpos pré-codificados (ex.: multipart).
	RawBody []byte
	// ContentType sobrepõe o default "application/json". Corpos
	// multipart trazem aqui o content-type com o boundary do transporte.
	ContentType string
	Headers     map[string]string
}

// Response é a resposta bruta de uma chamada bem-sucedida.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// DecodeJSON decodifica o corpo da resposta no destino informado.
func (r *Response) DecodeJSON(out interface{}) error {
	if err := json.Unmarshal(r.Body, out); err != nil {
		return fmt.Errorf("erro ao decodificar resposta: %w", err)
	}
	return nil
}

// Client é o pipeline de requisições autenticadas.
type Client struct {
	baseURL string
	http    *http.Client
	session TokenSource
	bus     *events.Bus
	metrics metrics.Recorder
	log     zerolog.Logger

	// refreshing é o slot de exclusão mútua do protocolo de renovação:
	// no máximo uma renovação em andamento; 401s concorrentes aguardam
	// o resultado dela em vez de dispararem renovações próprias.
	mu         sync.Mutex
	refreshing *refreshCall
}

// Option configura o cliente na construção.
type Option func(*Client)

// WithHTTPClient substitui o cliente HTTP default (timeout 30s).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithBus conecta o barramento de eventos (expiração de assinatura).
func WithBus(bus *events.Bus) Option {
	return func(c *Client) { c.bus = bus }
}

// WithMetrics conecta um recorder de métricas.
func WithMetrics(rec metrics.Recorder) Option {
	return func(c *Client) { c.metrics = rec }
}

// WithLogger substitui o logger default (silencioso).
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient cria o pipeline sobre a URL base e a fonte de tokens.
func NewClient(baseURL string, sess TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		session: sess,
		metrics: metrics.Noop{},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do executa a requisição através do pipeline completo: credencial na
// saída, protocolo de renovação na entrada.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()
	token := c.token()
	resp, err := c.send(ctx, req, token)
	if err != nil {
		c.metrics.Count("api.request.error", 1, []string{"method:" + req.Method})
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp, err = c.recoverUnauthorized(ctx, req, token)
		if err != nil {
			return nil, err
		}
	}

	c.metrics.Timing("api.request.duration", time.Since(start), []string{"method:" + req.Method})
	c.metrics.Count("api.request", 1, []string{"method:" + req.Method, "status:" + strconv.Itoa(resp.StatusCode)})

	return c.finish(req, resp)
}

// finish converte respostas de erro em *APIError e dispara o canal
// lateral de expiração de assinatura (403 + marcador), que não faz
// parte do protocolo de retry.
func (c *Client) finish(req *Request, resp *Response) (*Response, error) {
	if resp.StatusCode < 400 {
		return resp, nil
	}

	detail := errorDetail(resp.Body)
	if resp.StatusCode == http.StatusForbidden && detail == SubscriptionExpiredDetail {
		c.log.Warn().Str("path", req.Path).Msg("assinatura expirada, loja em modo somente leitura")
		if c.bus != nil {
			c.bus.Publish(events.TopicEntitlementExpired, nil)
		}
	}

	return nil, &APIError{Status: resp.StatusCode, Detail: detail, Body: resp.Body}
}

// recoverUnauthorized aplica as regras do protocolo de 401:
//  1. login/refresh falhando 401 → credencial irrecuperável, logout;
//  2. sem refresh token → idem;
//  3. renovação já em andamento → aguarda o mesmo resultado;
//  4. caso contrário → executa a única renovação.
//
// Em caso de sucesso a requisição original é reexecutada uma única vez
// com o novo token; um segundo 401 é devolvido como erro, sem loop.
func (c *Client) recoverUnauthorized(ctx context.Context, req *Request, staleToken string) (*Response, error) {
	if isAuthPath(req.Path) || !c.session.HasRefreshToken() {
		c.log.Warn().Str("path", req.Path).Msg("credencial irrecuperável, derrubando sessão")
		c.session.Logout()
		return nil, ErrSessionExpired
	}

	token, err := c.awaitRefresh(ctx, staleToken)
	if err != nil {
		return nil, err
	}

	c.metrics.Count("api.retry", 1, []string{"method:" + req.Method})
	resp, err := c.send(ctx, req, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &APIError{Status: resp.StatusCode, Detail: errorDetail(resp.Body), Body: resp.Body}
	}
	return resp, nil
}

// token lê o token de acesso corrente ("" quando não autenticado).
func (c *Client) token() string {
	if c.session == nil {
		return ""
	}
	return c.session.AccessToken()
}

// isAuthPath identifica as chamadas de login e refresh, que nunca
// entram no protocolo de renovação.
func isAuthPath(path string) bool {
	return strings.Contains(path, session.PathLogin) || strings.Contains(path, session.PathRefresh)
}

// send monta e executa a chamada HTTP, sem qualquer lógica de retry.
func (c *Client) send(ctx context.Context, req *Request, token string) (*Response, error) {
	u := c.baseURL + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var payload io.Reader
	hasBody := false
	switch {
	case req.RawBody != nil:
		payload = bytes.NewReader(req.RawBody)
		hasBody = true
	case req.Body != nil:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar corpo: %w", err)
		}
		payload = bytes.NewReader(data)
		hasBody = true
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, payload)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if hasBody {
		if req.ContentType != "" {
			httpReq.Header.Set("Content-Type", req.ContentType)
		} else {
			httpReq.Header.Set("Content-Type", "application/json")
		}
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("erro na chamada %s %s: %w", req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta de %s: %w", req.Path, err)
	}

	c.log.Debug().Str("method", req.Method).Str("path", req.Path).Int("status", resp.StatusCode).Msg("chamada executada")

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}
