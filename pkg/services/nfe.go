package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/raywall/petshop-client-toolkit/api"
)

// NFeService cobre /nfe/ (importação de notas para entrada de estoque).
type NFeService struct {
	api *api.Client
}

// ImportXML envia o arquivo XML da nota (corpo multipart).
func (s *NFeService) ImportXML(ctx context.Context, contentType string, body []byte) (*api.Response, error) {
	return s.api.PostMultipart(ctx, "/nfe/import-xml/", contentType, body)
}

// ImportByKey importa pela chave de acesso; caracteres não numéricos
// são descartados antes do envio.
func (s *NFeService) ImportByKey(ctx context.Context, accessKey string) (*api.Response, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, accessKey)
	return s.api.Post(ctx, "/nfe/import-by-key/", map[string]string{"access_key": digits})
}

func (s *NFeService) List(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, "/nfe/", params)
}

func (s *NFeService) Get(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Get(ctx, fmt.Sprintf("/nfe/%d/", id), nil)
}

// Confirm efetiva a importação dos itens selecionados no estoque.
func (s *NFeService) Confirm(ctx context.Context, importID int64, items interface{}) (*api.Response, error) {
	return s.api.Post(ctx, fmt.Sprintf("/nfe/%d/confirm/", importID), map[string]interface{}{"items": items})
}
