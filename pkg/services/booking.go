package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/raywall/petshop-client-toolkit/api"
)

// BookingService cobre o agendamento online público (sem autenticação:
// o pipeline simplesmente não anexa credencial quando não há sessão).
type BookingService struct {
	api *api.Client
}

// CheckCPF verifica se o CPF já possui cadastro na loja.
func (s *BookingService) CheckCPF(ctx context.Context, cpf string) (*api.Response, error) {
	return s.api.Get(ctx, "/public/booking/check-cpf/", url.Values{"cpf": {cpf}})
}

// Register cadastra tutor e pet no fluxo público.
func (s *BookingService) Register(ctx context.Context, data interface{}) (*api.Response, error) {
	return s.api.Post(ctx, "/public/booking/register/", data)
}

// AvailableSlots lista os horários livres para um serviço em uma data.
func (s *BookingService) AvailableSlots(ctx context.Context, serviceID int64, date string, excludeAppointmentID int64) (*api.Response, error) {
	params := url.Values{
		"service": {strconv.FormatInt(serviceID, 10)},
		"date":    {date},
	}
	if excludeAppointmentID > 0 {
		params.Set("exclude", strconv.FormatInt(excludeAppointmentID, 10))
	}
	return s.api.Get(ctx, "/public/booking/slots/", params)
}

// CreateAppointment agenda o atendimento.
func (s *BookingService) CreateAppointment(ctx context.Context, data interface{}) (*api.Response, error) {
	return s.api.Post(ctx, "/public/booking/appointments/", data)
}

// Services lista os serviços agendáveis online.
func (s *BookingService) Services(ctx context.Context) (*api.Response, error) {
	return s.api.Get(ctx, "/public/booking/services/", nil)
}

// MyAppointments lista os agendamentos do CPF informado.
func (s *BookingService) MyAppointments(ctx context.Context, cpf string) (*api.Response, error) {
	return s.api.Get(ctx, "/public/booking/my-appointments/", url.Values{"cpf": {cpf}})
}
