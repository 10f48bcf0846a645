package services

import (
	"context"
	"net/url"

	"github.com/raywall/petshop-client-toolkit/api"
)

const reportsBase = "/reports"

// ReportsService cobre /reports/ (relatórios gerenciais e exportações).
type ReportsService struct {
	api *api.Client
}

func (s *ReportsService) Sellers(ctx context.Context) (*api.Response, error) {
	return s.api.Get(ctx, reportsBase+"/sellers/", nil)
}

func (s *ReportsService) Dashboard(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, reportsBase+"/dashboard/", params)
}

// DashboardSummary alimenta os cards da tela inicial.
func (s *ReportsService) DashboardSummary(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, reportsBase+"/dashboard-summary/", params)
}

func (s *ReportsService) Sales(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, reportsBase+"/sales/", params)
}

func (s *ReportsService) ProductsSold(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, reportsBase+"/products-sold/", params)
}

func (s *ReportsService) SalesRanking(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, reportsBase+"/sales-ranking/", params)
}

func (s *ReportsService) LowStock(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, reportsBase+"/low-stock/", params)
}

func (s *ReportsService) ABCProducts(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, reportsBase+"/abc-products/", params)
}

func (s *ReportsService) ServicesSold(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, reportsBase+"/services-sold/", params)
}

func (s *ReportsService) TopClients(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, reportsBase+"/top-clients/", params)
}

func (s *ReportsService) SalesHeatmap(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, reportsBase+"/sales-heatmap/", params)
}

func (s *ReportsService) ProfitByProduct(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, reportsBase+"/profit-by-product/", params)
}

// ExportSalesCSV baixa o relatório de vendas em CSV.
func (s *ReportsService) ExportSalesCSV(ctx context.Context, params url.Values) ([]byte, error) {
	return blob(ctx, s.api, reportsBase+"/sales/export/", params)
}

// ExportProductsSoldCSV baixa o relatório de produtos vendidos em CSV.
func (s *ReportsService) ExportProductsSoldCSV(ctx context.Context, params url.Values) ([]byte, error) {
	return blob(ctx, s.api, reportsBase+"/products-sold/export/", params)
}
