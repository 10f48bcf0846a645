package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/raywall/petshop-client-toolkit/api"
)

// SchedulingService cobre /scheduling/ (agenda de banho, tosa e consulta).
type SchedulingService struct {
	api *api.Client
}

func (s *SchedulingService) List(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, "/scheduling/", params)
}

func (s *SchedulingService) Get(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Get(ctx, fmt.Sprintf("/scheduling/%d/", id), nil)
}

func (s *SchedulingService) Create(ctx context.Context, data interface{}) (*api.Response, error) {
	return s.api.Post(ctx, "/scheduling/", data)
}

func (s *SchedulingService) Update(ctx context.Context, id int64, data interface{}) (*api.Response, error) {
	return s.api.Patch(ctx, fmt.Sprintf("/scheduling/%d/", id), data)
}

func (s *SchedulingService) Delete(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Delete(ctx, fmt.Sprintf("/scheduling/%d/", id))
}

func (s *SchedulingService) Today(ctx context.Context) (*api.Response, error) {
	return s.api.Get(ctx, "/scheduling/today/", nil)
}

func (s *SchedulingService) Upcoming(ctx context.Context) (*api.Response, error) {
	return s.api.Get(ctx, "/scheduling/upcoming/", nil)
}

func (s *SchedulingService) Complete(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Post(ctx, fmt.Sprintf("/scheduling/%d/complete/", id), nil)
}

func (s *SchedulingService) Cancel(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Post(ctx, fmt.Sprintf("/scheduling/%d/cancel/", id), nil)
}
