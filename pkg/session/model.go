package session

import (
	"errors"
	"fmt"
)

// User é o registro do usuário autenticado, no formato retornado por
// /auth/users/me/.
type User struct {
	ID                 int64  `json:"id"`
	Username           string `json:"username"`
	Role               string `json:"role"`
	IsSuperuser        bool   `json:"is_superuser"`
	IsStaff            bool   `json:"is_staff"`
	MustChangePassword bool   `json:"must_change_password"`
}

// Snapshot é o estado durável da sessão. Os três campos são gravados e
// limpos sempre juntos, nunca parcialmente.
type Snapshot struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user,omitempty"`
}

// LoginResult informa ao chamador o desfecho de um login bem-sucedido.
type LoginResult struct {
	User               *User
	MustChangePassword bool
}

// AuthError carrega a mensagem de erro exibível retornada pelo servidor
// de autenticação.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("falha de autenticação (status %d)", e.Status)
}

var (
	// ErrNoAccessToken indica operação que exige um token de acesso presente.
	ErrNoAccessToken = errors.New("sessão sem token de acesso")

	// ErrNoRefreshToken indica operação que exige um refresh token presente.
	ErrNoRefreshToken = errors.New("sessão sem refresh token")
)
