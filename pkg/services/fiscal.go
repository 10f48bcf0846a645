package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/raywall/petshop-client-toolkit/api"
)

// FiscalService cobre /fiscal/ (configuração fiscal e NF-e da SEFAZ).
type FiscalService struct {
	api *api.Client
}

func (s *FiscalService) GetConfig(ctx context.Context) (*api.Response, error) {
	return s.api.Get(ctx, "/fiscal/config/", nil)
}

// SaveConfig envia a configuração fiscal (certificado A1 em multipart).
func (s *FiscalService) SaveConfig(ctx context.Context, contentType string, body []byte) (*api.Response, error) {
	return s.api.PostMultipart(ctx, "/fiscal/config/", contentType, body)
}

// ImportByKey importa uma NF-e pela chave de acesso de 44 dígitos.
func (s *FiscalService) ImportByKey(ctx context.Context, accessKey string) (*api.Response, error) {
	return s.api.Post(ctx, "/fiscal/nfe/import-by-key/", map[string]string{"access_key": accessKey})
}

// Sync dispara a sincronização de notas destinadas junto à SEFAZ.
func (s *FiscalService) Sync(ctx context.Context) (*api.Response, error) {
	return s.api.Post(ctx, "/fiscal/nfe/sync/", nil)
}

func (s *FiscalService) ListNFe(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, "/fiscal/nfe/", params)
}

func (s *FiscalService) GetNFe(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Get(ctx, fmt.Sprintf("/fiscal/nfe/%d/", id), nil)
}

// NFeXML baixa o XML original da nota.
func (s *FiscalService) NFeXML(ctx context.Context, id int64) ([]byte, error) {
	return blob(ctx, s.api, fmt.Sprintf("/fiscal/nfe/%d/xml/", id), nil)
}
