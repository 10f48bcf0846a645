package services

import (
	"context"
	"fmt"

	"github.com/raywall/petshop-client-toolkit/api"
)

// CompanyService cobre os dados cadastrais da empresa.
type CompanyService struct {
	api *api.Client
}

func (s *CompanyService) Get(ctx context.Context) (*api.Response, error) {
	return s.api.Get(ctx, "/auth/company/", nil)
}

func (s *CompanyService) GetSettings(ctx context.Context) (*api.Response, error) {
	return s.api.Get(ctx, "/admin/company-settings/", nil)
}

func (s *CompanyService) UpdateSettings(ctx context.Context, id int64, data interface{}) (*api.Response, error) {
	return s.api.Patch(ctx, fmt.Sprintf("/admin/company-settings/%d/", id), data)
}
