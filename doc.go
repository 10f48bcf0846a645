// Package petshopclient é o toolkit cliente da aplicação de gestão de
// pet-shop/clínica veterinária: ciclo de vida do par de tokens, pipeline
// de requisições autenticadas com renovação transparente, guard de
// navegação e os wrappers REST de todos os recursos (clientes, pets,
// produtos, vendas, agenda, crediário, fiscal e relatórios).
//
// Componentes principais:
//
// 1. pkg/session:
//   - Manager: dono do par access/refresh token e do usuário corrente.
//   - Persistência durável em arquivo ou Redis (TokenStore).
//
// 2. api:
//   - Pipeline de requisições: credencial Bearer na saída, protocolo de
//     renovação de token na entrada (no máximo uma renovação concorrente,
//     requisições enfileiradas atrás dela).
//
// 3. pkg/navigation:
//   - Guard: cadeia ordenada de regras (autenticação, troca obrigatória
//     de senha, papel administrativo) avaliada antes de cada rota.
//
// 4. pkg/services:
//   - Um wrapper fino por endpoint REST do backend.
//
// Exemplo de início rápido:
//
//	cfg := config.MustLoad("petshop.yaml")
//	tk, err := petshopclient.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := tk.Session.Login(ctx, "maria", "senha-secreta")
//	if err != nil {
//		// mensagem exibível vinda do servidor
//	}
//	if result.MustChangePassword {
//		// direcionar para o fluxo de primeiro acesso
//	}
//
//	resp, err := tk.Services.Clients.List(ctx, nil)
package petshopclient
