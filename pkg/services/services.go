// Package services expõe os wrappers REST da aplicação pet-shop: um
// método por endpoint, todos passando pelo pipeline autenticado. Não há
// lógica aqui além do mapeamento caminho/método — regras de negócio
// vivem no backend.
package services

import (
	"context"
	"net/url"

	"github.com/raywall/petshop-client-toolkit/api"
)

// Set agrupa todos os serviços sobre um mesmo pipeline.
type Set struct {
	Clients    *ClientsService
	Pets       *PetsService
	Products   *ProductsService
	Sales      *SalesService
	Scheduling *SchedulingService
	Credits    *CreditsService
	Fiscal     *FiscalService
	NFe        *NFeService
	Reports    *ReportsService
	Payables   *PayablesService
	Settings   *SettingsService
	Admin      *AdminService
	Company    *CompanyService
	Booking    *BookingService
}

// New monta o conjunto completo de serviços.
func New(c *api.Client) *Set {
	return &Set{
		Clients:    &ClientsService{api: c},
		Pets:       &PetsService{api: c},
		Products:   &ProductsService{api: c},
		Sales:      &SalesService{api: c},
		Scheduling: &SchedulingService{api: c},
		Credits:    &CreditsService{api: c},
		Fiscal:     &FiscalService{api: c},
		NFe:        &NFeService{api: c},
		Reports:    &ReportsService{api: c},
		Payables:   &PayablesService{api: c},
		Settings:   &SettingsService{api: c},
		Admin:      &AdminService{api: c},
		Company:    &CompanyService{api: c},
		Booking:    &BookingService{api: c},
	}
}

// blob executa um GET e retorna o corpo binário (PDFs, CSVs).
func blob(ctx context.Context, c *api.Client, path string, query url.Values) ([]byte, error) {
	resp, err := c.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
