package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrSessionExpired indica que a credencial é irrecuperável: o refresh
// token está ausente, a renovação falhou, ou o próprio login/refresh
// retornou 401. A sessão já foi derrubada quando este erro é retornado.
var ErrSessionExpired = errors.New("sessão expirada")

// SubscriptionExpiredDetail é o marcador retornado pelo backend em
// respostas 403 quando a assinatura da loja venceu.
const SubscriptionExpiredDetail = "subscription_expired"

// APIError representa uma resposta HTTP de erro (status >= 400).
type APIError struct {
	Status int
	Detail string
	Body   []byte
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api retornou %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api retornou %d", e.Status)
}

// StatusOf retorna o status HTTP de um erro do pipeline, ou 0 quando o
// erro não veio de uma resposta HTTP.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// errorDetail extrai o campo "detail" (ou "error") de um corpo de erro.
func errorDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	if parsed.Detail != "" {
		return parsed.Detail
	}
	return parsed.Error
}
