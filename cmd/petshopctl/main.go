package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	petshopclient "github.com/raywall/petshop-client-toolkit"
	"github.com/raywall/petshop-client-toolkit/pkg/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Comandos esperados: login | whoami | route")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "login":
		loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
		cfgPtr := loginCmd.String("config", "petshop.yaml", "arquivo de configuração")
		userPtr := loginCmd.String("user", "", "usuário")
		passPtr := loginCmd.String("pass", "", "senha")
		loginCmd.Parse(os.Args[2:])
		runLogin(*cfgPtr, *userPtr, *passPtr)

	case "whoami":
		whoamiCmd := flag.NewFlagSet("whoami", flag.ExitOnError)
		cfgPtr := whoamiCmd.String("config", "petshop.yaml", "arquivo de configuração")
		whoamiCmd.Parse(os.Args[2:])
		runWhoami(*cfgPtr)

	case "route":
		routeCmd := flag.NewFlagSet("route", flag.ExitOnError)
		cfgPtr := routeCmd.String("config", "petshop.yaml", "arquivo de configuração")
		namePtr := routeCmd.String("name", "", "nome da rota a avaliar")
		routeCmd.Parse(os.Args[2:])
		runRoute(*cfgPtr, *namePtr)

	default:
		fmt.Println("Comando desconhecido")
		os.Exit(1)
	}
}

func newToolkit(cfgPath string) *petshopclient.Toolkit {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("Erro de configuração: %v\n", err)
		os.Exit(1)
	}
	tk, err := petshopclient.New(cfg)
	if err != nil {
		fmt.Printf("Erro ao montar o cliente: %v\n", err)
		os.Exit(1)
	}
	return tk
}

func runLogin(cfgPath, user, pass string) {
	tk := newToolkit(cfgPath)

	result, err := tk.Session.Login(context.Background(), user, pass)
	if err != nil {
		fmt.Printf("Falha no login: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Autenticado como %s (papel: %s)\n", result.User.Username, result.User.Role)
	if result.MustChangePassword {
		fmt.Println("Atenção: troca de senha obrigatória no primeiro acesso")
	}
}

func runWhoami(cfgPath string) {
	tk := newToolkit(cfgPath)

	if tk.Session.CurrentUser() == nil {
		if err := tk.Session.LoadCurrentUser(context.Background()); err != nil {
			fmt.Printf("Sessão inválida: %v\n", err)
			os.Exit(1)
		}
	}

	output, _ := json.MarshalIndent(tk.Session.CurrentUser(), "", "  ")
	fmt.Println(string(output))
}

func runRoute(cfgPath, name string) {
	if name == "" {
		fmt.Println("Erro: flag -name é obrigatória")
		os.Exit(1)
	}
	tk := newToolkit(cfgPath)

	decision := tk.Guard.EvaluateName(context.Background(), name)
	if decision.Allowed {
		fmt.Printf("Rota %s: liberada\n", name)
		return
	}
	fmt.Printf("Rota %s: redireciona para %s", name, decision.Redirect)
	if len(decision.Query) > 0 {
		fmt.Printf(" (query: %v)", decision.Query)
	}
	fmt.Println()
}
