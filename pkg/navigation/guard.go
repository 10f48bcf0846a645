package navigation

import (
	"context"

	"github.com/raywall/petshop-client-toolkit/pkg/session"
	"github.com/rs/zerolog"
)

// Decision é o desfecho de uma navegação: permitir, ou redirecionar
// para outra rota (opcionalmente com marcadores de query).
type Decision struct {
	Allowed  bool
	Redirect string
	Query    map[string]string
}

// Allow é a decisão que libera a navegação.
func Allow() Decision {
	return Decision{Allowed: true}
}

// RedirectTo é a decisão que desvia a navegação para outra rota.
func RedirectTo(route string) Decision {
	return Decision{Redirect: route}
}

// SessionState é a foto do estado de sessão consumida pela cadeia de
// regras. Derivada do Manager em Evaluate, ou montada diretamente em
// testes.
type SessionState struct {
	Authenticated      bool
	Admin              bool
	MustChangePassword bool
}

// Session define o que o guard precisa do gerenciador de sessão.
// *session.Manager satisfaz a interface.
type Session interface {
	AccessToken() string
	CurrentUser() *session.User
	LoadCurrentUser(ctx context.Context) error
	IsAuthenticated() bool
	IsAdmin() bool
	MustChangePassword() bool
}

// Guard avalia a cadeia de decisão antes de cada transição de rota.
type Guard struct {
	session Session
	routes  *Registry
	log     zerolog.Logger
}

// NewGuard cria o guard sobre a sessão e o registro de rotas.
func NewGuard(sess Session, routes *Registry, log zerolog.Logger) *Guard {
	return &Guard{session: sess, routes: routes, log: log}
}

// EvaluateName resolve a rota pelo nome e a avalia. Rotas desconhecidas
// são desviadas para a rota default.
func (g *Guard) EvaluateName(ctx context.Context, name string) Decision {
	route, ok := g.routes.Lookup(name)
	if !ok {
		g.log.Warn().Str("route", name).Msg("rota desconhecida")
		return RedirectTo(RouteDashboard)
	}
	return g.Evaluate(ctx, route)
}

// Evaluate aplica a cadeia ordenada de regras; a primeira que casa
// decide. A regra 1 (token presente sem usuário carregado) suspende a
// navegação até o carregamento resolver — uma falha derruba a sessão
// (efeito do LoadCurrentUser) e desvia para o login.
func (g *Guard) Evaluate(ctx context.Context, route Route) Decision {
	if g.session.AccessToken() != "" && g.session.CurrentUser() == nil {
		if err := g.session.LoadCurrentUser(ctx); err != nil {
			g.log.Warn().Err(err).Str("route", route.Name).Msg("falha ao carregar usuário, desviando para login")
			return RedirectTo(RouteLogin)
		}
	}

	state := SessionState{
		Authenticated:      g.session.IsAuthenticated(),
		Admin:              g.session.IsAdmin(),
		MustChangePassword: g.session.MustChangePassword(),
	}

	decision := Decide(route, state)
	g.log.Debug().
		Str("route", route.Name).
		Bool("allowed", decision.Allowed).
		Str("redirect", decision.Redirect).
		Msg("navegação avaliada")
	return decision
}

// Decide é a função pura da cadeia de regras 2 a 7. Dado (rota, estado)
// produz exatamente um desfecho, na ordem fixa abaixo; regras
// posteriores são inalcançáveis quando uma anterior redireciona.
func Decide(route Route, state SessionState) Decision {
	// 2. Rota protegida sem sessão autenticada.
	if route.RequiresAuth && !state.Authenticated {
		return RedirectTo(RouteLogin)
	}

	// 3. Login com sessão já autenticada.
	if route.Name == RouteLogin && state.Authenticated {
		return RedirectTo(RouteDashboard)
	}

	// 4. Troca de senha pendente prende o usuário na rota dedicada.
	if state.MustChangePassword && !route.FirstLogin {
		return RedirectTo(RouteFirstLogin)
	}

	// 5. Rota de troca de senha sem a flag pendente.
	if route.FirstLogin && !state.MustChangePassword {
		return RedirectTo(RouteDashboard)
	}

	// 6. Rota administrativa sem papel administrativo.
	if route.RequiresAdmin && !state.Admin {
		return Decision{Redirect: RouteDashboard, Query: map[string]string{"adminRequired": "1"}}
	}

	// 7. Navegação liberada.
	return Allow()
}
