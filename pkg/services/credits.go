package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/raywall/petshop-client-toolkit/api"
)

// CreditsService cobre /credits/ (crediário e parcelas).
type CreditsService struct {
	api *api.Client
}

func (s *CreditsService) List(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, "/credits/", params)
}

func (s *CreditsService) Get(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Get(ctx, fmt.Sprintf("/credits/%d/", id), nil)
}

// Forecast retorna a previsão de recebimentos do crediário.
func (s *CreditsService) Forecast(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, "/credits/forecast/", params)
}

// PayInstallment registra o pagamento de uma parcela.
func (s *CreditsService) PayInstallment(ctx context.Context, installmentID int64, data interface{}) (*api.Response, error) {
	return s.api.Post(ctx, fmt.Sprintf("/credits/installments/%d/pay/", installmentID), data)
}
