package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/raywall/petshop-client-toolkit/pkg/session"
	"github.com/raywall/petshop-client-toolkit/tools/emulator"
)

func main() {
	port := flag.Int("port", 8080, "porta do backend emulado")
	flag.Parse()

	srv := emulator.New()
	srv.AddAccount("admin", emulator.Account{
		Password: "admin",
		User: session.User{
			ID:          1,
			Username:    "admin",
			Role:        "admin",
			IsSuperuser: true,
		},
	})
	srv.AddAccount("maria", emulator.Account{
		Password:           "maria",
		User:               session.User{ID: 2, Username: "maria", Role: "seller"},
		MustChangePassword: true,
	})
	srv.Seed("clients",
		map[string]interface{}{"id": 1, "name": "João da Silva", "cpf": "11122233344"},
		map[string]interface{}{"id": 2, "name": "Ana Souza", "cpf": "55566677788"},
	)

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Iniciando backend emulado na porta %d", *port)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatalf("Erro no servidor: %v", err)
	}
}
