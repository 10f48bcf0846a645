package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/raywall/petshop-client-toolkit/api"
)

// ProductsService cobre /products/ (produtos e categorias).
type ProductsService struct {
	api *api.Client
}

func (s *ProductsService) List(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, "/products/products/", params)
}

func (s *ProductsService) Get(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Get(ctx, fmt.Sprintf("/products/products/%d/", id), nil)
}

func (s *ProductsService) Create(ctx context.Context, data interface{}) (*api.Response, error) {
	return s.api.Post(ctx, "/products/products/", data)
}

func (s *ProductsService) Update(ctx context.Context, id int64, data interface{}) (*api.Response, error) {
	return s.api.Patch(ctx, fmt.Sprintf("/products/products/%d/", id), data)
}

func (s *ProductsService) Delete(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Delete(ctx, fmt.Sprintf("/products/products/%d/", id))
}

func (s *ProductsService) LowStock(ctx context.Context) (*api.Response, error) {
	return s.api.Get(ctx, "/products/products/low_stock/", nil)
}

// UpdatePricing altera apenas os campos de precificação do produto.
func (s *ProductsService) UpdatePricing(ctx context.Context, id int64, data interface{}) (*api.Response, error) {
	return s.api.Patch(ctx, fmt.Sprintf("/products/products/%d/pricing/", id), data)
}

// Search busca produtos por nome no PDV.
func (s *ProductsService) Search(ctx context.Context, q string) (*api.Response, error) {
	return s.api.Get(ctx, "/products/products/search/", url.Values{"q": {q}})
}

// ByCode busca um produto pelo código de barras.
func (s *ProductsService) ByCode(ctx context.Context, code string) (*api.Response, error) {
	return s.api.Get(ctx, "/products/products/by-code/", url.Values{"code": {code}})
}

func (s *ProductsService) ListCategories(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, "/products/categories/", params)
}

func (s *ProductsService) CreateCategory(ctx context.Context, data interface{}) (*api.Response, error) {
	return s.api.Post(ctx, "/products/categories/", data)
}

func (s *ProductsService) UpdateCategory(ctx context.Context, id int64, data interface{}) (*api.Response, error) {
	return s.api.Patch(ctx, fmt.Sprintf("/products/categories/%d/", id), data)
}

func (s *ProductsService) DeleteCategory(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Delete(ctx, fmt.Sprintf("/products/categories/%d/", id))
}
