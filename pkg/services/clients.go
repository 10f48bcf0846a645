package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/raywall/petshop-client-toolkit/api"
)

// ClientsService cobre /clients/ (tutores dos pets).
type ClientsService struct {
	api *api.Client
}

func (s *ClientsService) List(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, "/clients/", params)
}

func (s *ClientsService) Get(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Get(ctx, fmt.Sprintf("/clients/%d/", id), nil)
}

func (s *ClientsService) Create(ctx context.Context, data interface{}) (*api.Response, error) {
	return s.api.Post(ctx, "/clients/", data)
}

func (s *ClientsService) Update(ctx context.Context, id int64, data interface{}) (*api.Response, error) {
	return s.api.Patch(ctx, fmt.Sprintf("/clients/%d/", id), data)
}

func (s *ClientsService) Delete(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Delete(ctx, fmt.Sprintf("/clients/%d/", id))
}

func (s *ClientsService) Pets(ctx context.Context, clientID int64) (*api.Response, error) {
	return s.api.Get(ctx, fmt.Sprintf("/clients/%d/pets/", clientID), nil)
}

// ByCPF busca o cliente pelo CPF (somente dígitos) no fluxo de PDV.
func (s *ClientsService) ByCPF(ctx context.Context, cpf string) (*api.Response, error) {
	return s.api.Get(ctx, "/clients/by-cpf/", url.Values{"cpf": {cpf}})
}

// Credits retorna o histórico de crediários do cliente.
func (s *ClientsService) Credits(ctx context.Context, clientID int64) (*api.Response, error) {
	return s.api.Get(ctx, fmt.Sprintf("/clients/%d/credits/", clientID), nil)
}
