// Package api implementa o pipeline de requisições do cliente pet-shop.
//
// Toda chamada à API passa por dois estágios: na saída, o token de
// acesso corrente é anexado como credencial Bearer (e o Content-Type
// JSON default é omitido para corpos multipart); na entrada, um 401
// dispara o protocolo de renovação de token com no máximo uma renovação
// concorrente — requisições que falham enquanto uma renovação está em
// andamento aguardam o mesmo resultado e são reexecutadas com o novo
// token, ou rejeitadas todas com o mesmo erro.
package api
