package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiresAt extrai a expiração (claim "exp") do token de acesso
// corrente, sem validar a assinatura — o cliente não possui a chave do
// servidor, e o dado serve apenas para diagnóstico e para decidir uma
// renovação antecipada.
//
// Retorna false quando não há token ou o token não carrega expiração.
func (m *Manager) TokenExpiresAt() (time.Time, bool) {
	m.mu.RLock()
	token := m.access
	m.mu.RUnlock()
	if token == "" {
		return time.Time{}, false
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// TokenNearExpiry informa se o token de acesso expira dentro da margem
// informada. Tokens sem claim de expiração nunca são considerados
// próximos de expirar.
func (m *Manager) TokenNearExpiry(margin time.Duration) bool {
	exp, ok := m.TokenExpiresAt()
	if !ok {
		return false
	}
	return time.Until(exp) <= margin
}
