package api

import (
	"context"
)

// refreshCall é o slot único de renovação: o primeiro 401 cria o call e
// executa a renovação; os demais aguardam done e leem o mesmo resultado.
// Todos os que aguardam observam o mesmo desfecho (token novo ou erro).
type refreshCall struct {
	done  chan struct{}
	token string
	err   error
}

// awaitRefresh devolve um token de acesso renovado, garantindo no
// máximo uma renovação concorrente. Quando a renovação falha, a sessão
// é derrubada uma única vez (pelo dono do slot) e todos os que
// aguardavam recebem ErrSessionExpired.
func (c *Client) awaitRefresh(ctx context.Context, staleToken string) (string, error) {
	c.mu.Lock()
	if call := c.refreshing; call != nil {
		c.mu.Unlock()
		select {
		case <-call.done:
			return call.token, call.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	// O 401 pode ter vindo de um token antigo cuja renovação já foi
	// concluída por outro chamador: usa o token corrente direto.
	if current := c.session.AccessToken(); current != "" && current != staleToken {
		c.mu.Unlock()
		return current, nil
	}

	call := &refreshCall{done: make(chan struct{})}
	c.refreshing = call
	c.mu.Unlock()

	c.runRefresh(ctx, call)
	return call.token, call.err
}

// runRefresh executa a renovação e libera o slot. A liberação é feita
// em defer: qualquer saída (sucesso, falha ou panic do fetcher) limpa o
// slot e acorda os que aguardam, para que uma renovação futura não
// fique bloqueada atrás de uma que nunca vai terminar.
func (c *Client) runRefresh(ctx context.Context, call *refreshCall) {
	defer func() {
		c.mu.Lock()
		c.refreshing = nil
		c.mu.Unlock()
		close(call.done)

		if call.err != nil {
			c.session.Logout()
		}
	}()

	c.metrics.Count("api.refresh", 1, nil)
	token, ok := c.session.RefreshAccessToken(ctx)
	if !ok {
		c.log.Warn().Msg("renovação do token falhou, derrubando sessão")
		call.err = ErrSessionExpired
		return
	}
	call.token = token
}
