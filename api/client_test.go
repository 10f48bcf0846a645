package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/raywall/petshop-client-toolkit/pkg/events"
	"github.com/raywall/petshop-client-toolkit/pkg/session"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession simula o gerenciador de sessão com controle fino sobre o
// resultado e a duração da renovação.
type fakeSession struct {
	mu           sync.Mutex
	token        string
	hasRefresh   bool
	nextToken    string
	refreshDelay time.Duration
	refreshFails bool
	refreshCalls int
	logoutCalls  int
}

func (f *fakeSession) AccessToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeSession) HasRefreshToken() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasRefresh
}

func (f *fakeSession) RefreshAccessToken(ctx context.Context) (string, bool) {
	f.mu.Lock()
	f.refreshCalls++
	delay := f.refreshDelay
	fails := f.refreshFails
	next := f.nextToken
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if fails {
		return "", false
	}

	f.mu.Lock()
	f.token = next
	f.mu.Unlock()
	return next, true
}

func (f *fakeSession) Logout() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++
	f.token = ""
	f.hasRefresh = false
}

// newAuthServer responde 200 apenas para o bearer informado.
func newAuthServer(validToken string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+validToken {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail": "token inválido"}`))
			return
		}
		w.Write([]byte(`{"ok": true}`))
	}))
}

func TestPipeline_AttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	sess := &fakeSession{token: "tok-1", hasRefresh: true}
	client := NewClient(server.URL, sess)

	_, err := client.Post(context.Background(), "/clients/", map[string]string{"name": "Rex"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "application/json", gotContentType)
}

func TestPipeline_NoCredentialWhenUnauthenticated(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, &fakeSession{})

	_, err := client.Get(context.Background(), "/public/booking/services/", nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestPipeline_MultipartKeepsTransportContentType(t *testing.T) {
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, &fakeSession{token: "tok-1"})

	_, err := client.PostMultipart(context.Background(), "/nfe/import-xml/",
		"multipart/form-data; boundary=xyz", []byte("--xyz--"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data; boundary=xyz", gotContentType)
}

func TestPipeline_ConcurrentExpiry_SingleRefresh(t *testing.T) {
	server := newAuthServer("tok-novo")
	defer server.Close()

	sess := &fakeSession{
		token:        "tok-vencido",
		hasRefresh:   true,
		nextToken:    "tok-novo",
		refreshDelay: 50 * time.Millisecond,
	}
	client := NewClient(server.URL, sess)

	const n = 10
	var wg sync.WaitGroup
	var failures atomic.Int32
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.Get(context.Background(), "/clients/", nil)
			if err != nil || resp.StatusCode != http.StatusOK {
				failures.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Zero(t, failures.Load(), "todas as requisições devem ser reexecutadas com o token novo")
	assert.Equal(t, 1, sess.refreshCalls, "exatamente uma renovação para N falhas concorrentes")
	assert.Zero(t, sess.logoutCalls)
}

func TestPipeline_RefreshFailure_AllRejectedAndSessionCleared(t *testing.T) {
	server := newAuthServer("tok-que-nunca-vem")
	defer server.Close()

	sess := &fakeSession{
		token:        "tok-vencido",
		hasRefresh:   true,
		refreshDelay: 50 * time.Millisecond,
		refreshFails: true,
	}
	client := NewClient(server.URL, sess)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.Get(context.Background(), "/clients/", nil)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.ErrorIs(t, err, ErrSessionExpired, "requisição %d deve receber o erro da renovação", i)
	}
	assert.Equal(t, 1, sess.refreshCalls)
	assert.Equal(t, 1, sess.logoutCalls, "logout disparado uma única vez, pelo dono do slot")
	assert.Empty(t, sess.token, "sessão totalmente limpa")
}

func TestPipeline_RefreshSlotReleasedAfterFailure(t *testing.T) {
	server := newAuthServer("tok-novo")
	defer server.Close()

	sess := &fakeSession{token: "tok-vencido", hasRefresh: true, refreshFails: true}
	client := NewClient(server.URL, sess)

	_, err := client.Get(context.Background(), "/clients/", nil)
	require.ErrorIs(t, err, ErrSessionExpired)

	// Uma nova sessão volta a renovar normalmente: o slot não ficou preso.
	sess.mu.Lock()
	sess.token = "tok-vencido"
	sess.hasRefresh = true
	sess.refreshFails = false
	sess.nextToken = "tok-novo"
	sess.mu.Unlock()

	resp, err := client.Get(context.Background(), "/clients/", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, sess.refreshCalls)
}

func TestPipeline_LoginAndRefreshPathsNeverRetried(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "usuário ou senha inválidos"}`))
	}))
	defer server.Close()

	for _, path := range []string{session.PathLogin, session.PathRefresh} {
		sess := &fakeSession{token: "tok", hasRefresh: true}
		client := NewClient(server.URL, sess)

		_, err := client.Post(context.Background(), path, map[string]string{})
		assert.ErrorIs(t, err, ErrSessionExpired, "path %s", path)
		assert.Zero(t, sess.refreshCalls, "path %s não deve disparar renovação", path)
		assert.Equal(t, 1, sess.logoutCalls, "path %s", path)
	}
}

func TestPipeline_NoRefreshToken_ForcesLogout(t *testing.T) {
	server := newAuthServer("outro")
	defer server.Close()

	sess := &fakeSession{token: "tok-vencido", hasRefresh: false}
	client := NewClient(server.URL, sess)

	_, err := client.Get(context.Background(), "/clients/", nil)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Zero(t, sess.refreshCalls)
	assert.Equal(t, 1, sess.logoutCalls)
}

func TestPipeline_SecondUnauthorizedAfterRetryIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "token inválido"}`))
	}))
	defer server.Close()

	sess := &fakeSession{token: "tok-vencido", hasRefresh: true, nextToken: "tok-novo"}
	client := NewClient(server.URL, sess)

	_, err := client.Get(context.Background(), "/clients/", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err), "segundo 401 é devolvido sem loop")
	assert.Equal(t, 1, sess.refreshCalls)
}

func TestPipeline_SubscriptionExpiredSideChannel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail": "subscription_expired"}`))
	}))
	defer server.Close()

	bus := events.NewBus(zerolog.Nop())
	var notified atomic.Bool
	bus.Subscribe(events.TopicEntitlementExpired, func(interface{}) { notified.Store(true) })

	sess := &fakeSession{token: "tok-1", hasRefresh: true}
	client := NewClient(server.URL, sess, WithBus(bus))

	_, err := client.Post(context.Background(), "/sales/sales/", map[string]string{})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, StatusOf(err), "a requisição ainda falha normalmente")
	assert.True(t, notified.Load(), "o canal lateral sinaliza a expiração")
	assert.Zero(t, sess.refreshCalls, "403 não participa do protocolo de renovação")
	assert.Zero(t, sess.logoutCalls)
}

func TestAPIError_Detail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "não encontrado"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, &fakeSession{token: "tok"})

	_, err := client.Get(context.Background(), "/clients/999/", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
	assert.Contains(t, err.Error(), "não encontrado")
}
