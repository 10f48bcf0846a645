package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/raywall/petshop-client-toolkit/api"
)

// SalesService cobre /sales/ (vendas e PDV).
type SalesService struct {
	api *api.Client
}

func (s *SalesService) List(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, "/sales/sales/", params)
}

func (s *SalesService) Get(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Get(ctx, fmt.Sprintf("/sales/sales/%d/", id), nil)
}

func (s *SalesService) Create(ctx context.Context, data interface{}) (*api.Response, error) {
	return s.api.Post(ctx, "/sales/sales/", data)
}

func (s *SalesService) Update(ctx context.Context, id int64, data interface{}) (*api.Response, error) {
	return s.api.Patch(ctx, fmt.Sprintf("/sales/sales/%d/", id), data)
}

func (s *SalesService) CompletePayment(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Post(ctx, fmt.Sprintf("/sales/sales/%d/complete_payment/", id), nil)
}

func (s *SalesService) GenerateReceipt(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Post(ctx, fmt.Sprintf("/sales/sales/%d/generate_receipt/", id), nil)
}

func (s *SalesService) GenerateInvoice(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Post(ctx, fmt.Sprintf("/sales/sales/%d/generate_invoice/", id), nil)
}

// PDVCreate registra uma venda do caixa (fluxo rápido do PDV).
func (s *SalesService) PDVCreate(ctx context.Context, data interface{}) (*api.Response, error) {
	return s.api.Post(ctx, "/sales/sales/pdv/", data)
}

func (s *SalesService) Receipt(ctx context.Context, saleID int64) (*api.Response, error) {
	return s.api.Get(ctx, fmt.Sprintf("/sales/sales/%d/receipt/", saleID), nil)
}
