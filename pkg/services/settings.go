package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/raywall/petshop-client-toolkit/api"
)

// SettingsService cobre /settings/ e o catálogo de serviços da loja.
type SettingsService struct {
	api *api.Client
}

func (s *SettingsService) BusinessHours(ctx context.Context) (*api.Response, error) {
	return s.api.Get(ctx, "/settings/business-hours/", nil)
}

func (s *SettingsService) UpdateBusinessHours(ctx context.Context, data interface{}) (*api.Response, error) {
	return s.api.Put(ctx, "/settings/business-hours/", data)
}

// Closures lista os fechamentos (feriados e recessos) da agenda.
func (s *SettingsService) Closures(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, "/settings/closures/", params)
}

func (s *SettingsService) AddClosure(ctx context.Context, data interface{}) (*api.Response, error) {
	return s.api.Post(ctx, "/settings/closures/", data)
}

func (s *SettingsService) DeleteClosure(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Delete(ctx, fmt.Sprintf("/settings/closures/%d/", id))
}

func (s *SettingsService) ListServices(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, "/services/", params)
}

func (s *SettingsService) GetService(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Get(ctx, fmt.Sprintf("/services/%d/", id), nil)
}

func (s *SettingsService) CreateService(ctx context.Context, data interface{}) (*api.Response, error) {
	return s.api.Post(ctx, "/services/", data)
}

func (s *SettingsService) UpdateService(ctx context.Context, id int64, data interface{}) (*api.Response, error) {
	return s.api.Patch(ctx, fmt.Sprintf("/services/%d/", id), data)
}

func (s *SettingsService) DeleteService(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Delete(ctx, fmt.Sprintf("/services/%d/", id))
}
