package emulator_test

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"

	petshopclient "github.com/raywall/petshop-client-toolkit"
	"github.com/raywall/petshop-client-toolkit/api"
	"github.com/raywall/petshop-client-toolkit/pkg/config"
	"github.com/raywall/petshop-client-toolkit/pkg/session"
	"github.com/raywall/petshop-client-toolkit/tools/emulator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Testes de integração do toolkit inteiro contra o backend emulado:
// login, chamadas autenticadas, renovação sob concorrência, queda de
// sessão e assinatura expirada — o mesmo caminho que o app real percorre.

func newStack(t *testing.T) (*emulator.Server, *petshopclient.Toolkit) {
	t.Helper()

	srv := emulator.New()
	srv.AddAccount("maria", emulator.Account{
		Password: "segredo",
		User:     session.User{ID: 1, Username: "maria", Role: "manager"},
	})
	srv.Seed("clients",
		map[string]interface{}{"id": 1, "name": "João"},
		map[string]interface{}{"id": 2, "name": "Ana"},
	)

	backend := httptest.NewServer(srv.Handler())
	t.Cleanup(backend.Close)

	tk, err := petshopclient.New(&config.ClientConfig{
		BaseURL: backend.URL,
		Storage: config.StorageConf{Backend: "file", Path: t.TempDir() + "/session.json"},
	})
	require.NoError(t, err)
	return srv, tk
}

func login(t *testing.T, tk *petshopclient.Toolkit) {
	t.Helper()
	_, err := tk.Session.Login(context.Background(), "maria", "segredo")
	require.NoError(t, err)
}

func TestIntegration_LoginAndList(t *testing.T) {
	_, tk := newStack(t)
	login(t, tk)

	resp, err := tk.Services.Clients.List(context.Background(), nil)
	require.NoError(t, err)

	var items []map[string]interface{}
	require.NoError(t, resp.DecodeJSON(&items))
	assert.Len(t, items, 2)
}

func TestIntegration_ExpiredTokensTriggerSingleRefresh(t *testing.T) {
	srv, tk := newStack(t)
	login(t, tk)
	srv.InvalidateAccessTokens()

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = tk.Services.Clients.List(context.Background(), nil)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "worker %d", i)
	}
	assert.Equal(t, 1, srv.RefreshCalls(), "uma única renovação para todos os 401 concorrentes")
	assert.True(t, tk.Session.IsAuthenticated())
}

func TestIntegration_RefreshFailureDropsSession(t *testing.T) {
	srv, tk := newStack(t)
	login(t, tk)
	srv.InvalidateAccessTokens()
	srv.FailRefresh(true)

	_, err := tk.Services.Clients.List(context.Background(), nil)
	assert.ErrorIs(t, err, api.ErrSessionExpired)
	assert.False(t, tk.Session.IsAuthenticated())
	assert.Empty(t, tk.Session.AccessToken())
}

func TestIntegration_SubscriptionExpiredTurnsReadOnly(t *testing.T) {
	srv, tk := newStack(t)
	login(t, tk)

	status, err := tk.Entitlements.FetchStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "active", status.Status)

	srv.SetSubscriptionExpired(true)

	// Leitura continua funcionando.
	_, err = tk.Services.Clients.List(context.Background(), nil)
	require.NoError(t, err)

	// Escrita é bloqueada e o estado local vira somente leitura.
	_, err = tk.API.Post(context.Background(), "/clients/", map[string]string{"name": "Novo"})
	require.Error(t, err)
	assert.Equal(t, 403, api.StatusOf(err))
	assert.True(t, tk.Entitlements.IsReadOnly())

	// Logout zera o estado para o próximo usuário.
	tk.Session.Logout()
	assert.False(t, tk.Entitlements.IsReadOnly())
}

func TestIntegration_SessionSurvivesRestart(t *testing.T) {
	srv := emulator.New()
	srv.AddAccount("maria", emulator.Account{
		Password: "segredo",
		User:     session.User{ID: 1, Username: "maria"},
	})
	backend := httptest.NewServer(srv.Handler())
	defer backend.Close()

	cfg := &config.ClientConfig{
		BaseURL: backend.URL,
		Storage: config.StorageConf{Backend: "file", Path: t.TempDir() + "/session.json"},
	}

	tk1, err := petshopclient.New(cfg)
	require.NoError(t, err)
	login(t, tk1)

	// Novo toolkit sobre o mesmo arquivo, como em um restart do app.
	tk2, err := petshopclient.New(cfg)
	require.NoError(t, err)
	assert.True(t, tk2.Session.IsAuthenticated())

	_, err = tk2.Services.Clients.List(context.Background(), nil)
	assert.NoError(t, err)
}

func TestIntegration_FirstLoginFlow(t *testing.T) {
	srv := emulator.New()
	srv.AddAccount("novo", emulator.Account{
		Password:           "provisoria",
		User:               session.User{ID: 2, Username: "novo", MustChangePassword: true},
		MustChangePassword: true,
	})
	backend := httptest.NewServer(srv.Handler())
	defer backend.Close()

	tk, err := petshopclient.New(&config.ClientConfig{
		BaseURL: backend.URL,
		Storage: config.StorageConf{Backend: "file", Path: t.TempDir() + "/session.json"},
	})
	require.NoError(t, err)

	result, err := tk.Session.Login(context.Background(), "novo", "provisoria")
	require.NoError(t, err)
	require.True(t, result.MustChangePassword)

	decision := tk.Guard.EvaluateName(context.Background(), "Dashboard")
	assert.Equal(t, "FirstLogin", decision.Redirect)

	err = tk.Session.FirstLoginChangePassword(context.Background(), "novo.silva", "senha-definitiva", "senha-definitiva")
	require.NoError(t, err)
	assert.False(t, tk.Session.MustChangePassword())

	decision = tk.Guard.EvaluateName(context.Background(), "Dashboard")
	assert.True(t, decision.Allowed)
}
