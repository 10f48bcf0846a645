package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/raywall/petshop-client-toolkit/api"
)

// PayablesService cobre /payables/ (contas a pagar).
type PayablesService struct {
	api *api.Client
}

func (s *PayablesService) List(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, "/payables/", params)
}

func (s *PayablesService) Get(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Get(ctx, fmt.Sprintf("/payables/%d/", id), nil)
}

func (s *PayablesService) Create(ctx context.Context, data interface{}) (*api.Response, error) {
	return s.api.Post(ctx, "/payables/", data)
}

func (s *PayablesService) Update(ctx context.Context, id int64, data interface{}) (*api.Response, error) {
	return s.api.Patch(ctx, fmt.Sprintf("/payables/%d/", id), data)
}

func (s *PayablesService) Delete(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Delete(ctx, fmt.Sprintf("/payables/%d/", id))
}

// Alerts retorna contas vencidas e próximas do vencimento.
func (s *PayablesService) Alerts(ctx context.Context) (*api.Response, error) {
	return s.api.Get(ctx, "/payables/alerts/", nil)
}

// MarkPaid registra o pagamento; paidDate vazio usa a data corrente.
func (s *PayablesService) MarkPaid(ctx context.Context, id int64, paidDate string) (*api.Response, error) {
	body := map[string]string{}
	if paidDate != "" {
		body["paid_date"] = paidDate
	}
	return s.api.Post(ctx, fmt.Sprintf("/payables/%d/mark_paid/", id), body)
}
