package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"exp":     exp.Unix(),
	})
	signed, err := token.SignedString([]byte("segredo-do-servidor"))
	require.NoError(t, err)
	return signed
}

func managerWithToken(token string) *Manager {
	mgr := NewManager("http://127.0.0.1:0", nil, nil, nil, zerolog.Nop())
	mgr.mu.Lock()
	mgr.access = token
	mgr.mu.Unlock()
	return mgr
}

func TestTokenExpiresAt(t *testing.T) {
	exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	mgr := managerWithToken(signedToken(t, exp))

	got, ok := mgr.TokenExpiresAt()
	require.True(t, ok)
	assert.Equal(t, exp.Unix(), got.Unix())
}

func TestTokenExpiresAt_Absent(t *testing.T) {
	mgr := NewManager("http://127.0.0.1:0", nil, nil, nil, zerolog.Nop())
	_, ok := mgr.TokenExpiresAt()
	assert.False(t, ok)

	// Token opaco (não-JWT) também não tem expiração conhecida.
	mgr = managerWithToken("token-opaco")
	_, ok = mgr.TokenExpiresAt()
	assert.False(t, ok)
}

func TestTokenNearExpiry(t *testing.T) {
	mgr := managerWithToken(signedToken(t, time.Now().Add(time.Minute)))
	assert.True(t, mgr.TokenNearExpiry(5*time.Minute))
	assert.False(t, mgr.TokenNearExpiry(10*time.Second))
}
