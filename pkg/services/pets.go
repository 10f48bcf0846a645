package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/raywall/petshop-client-toolkit/api"
)

// PetsService cobre /pets/.
type PetsService struct {
	api *api.Client
}

func (s *PetsService) List(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, "/pets/", params)
}

func (s *PetsService) Get(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Get(ctx, fmt.Sprintf("/pets/%d/", id), nil)
}

func (s *PetsService) Create(ctx context.Context, data interface{}) (*api.Response, error) {
	return s.api.Post(ctx, "/pets/", data)
}

// CreateMultipart cria um pet com foto (corpo multipart; o content-type
// com boundary vem do transporte).
func (s *PetsService) CreateMultipart(ctx context.Context, contentType string, body []byte) (*api.Response, error) {
	return s.api.PostMultipart(ctx, "/pets/", contentType, body)
}

func (s *PetsService) Update(ctx context.Context, id int64, data interface{}) (*api.Response, error) {
	return s.api.Patch(ctx, fmt.Sprintf("/pets/%d/", id), data)
}

func (s *PetsService) Delete(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Delete(ctx, fmt.Sprintf("/pets/%d/", id))
}

// Card retorna a carteirinha do pet em PDF.
func (s *PetsService) Card(ctx context.Context, id int64) ([]byte, error) {
	return blob(ctx, s.api, fmt.Sprintf("/pets/%d/card/", id), nil)
}
