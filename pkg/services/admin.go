package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/raywall/petshop-client-toolkit/api"
)

// AdminService cobre /admin/ (usuários, papéis e permissões da loja).
type AdminService struct {
	api *api.Client
}

func (s *AdminService) ListUsers(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, "/admin/users/", params)
}

func (s *AdminService) GetUser(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Get(ctx, fmt.Sprintf("/admin/users/%d/", id), nil)
}

func (s *AdminService) CreateUser(ctx context.Context, data interface{}) (*api.Response, error) {
	return s.api.Post(ctx, "/admin/users/", data)
}

func (s *AdminService) UpdateUser(ctx context.Context, id int64, data interface{}) (*api.Response, error) {
	return s.api.Patch(ctx, fmt.Sprintf("/admin/users/%d/", id), data)
}

// ToggleActive ativa/desativa o acesso do usuário.
func (s *AdminService) ToggleActive(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Post(ctx, fmt.Sprintf("/admin/users/%d/toggle-active/", id), nil)
}

// SetPassword define a senha do usuário (o backend liga a flag de troca
// obrigatória no primeiro acesso).
func (s *AdminService) SetPassword(ctx context.Context, id int64, password string) (*api.Response, error) {
	return s.api.Post(ctx, fmt.Sprintf("/admin/users/%d/set-password/", id), map[string]string{"password": password})
}

func (s *AdminService) ListRoles(ctx context.Context) (*api.Response, error) {
	return s.api.Get(ctx, "/admin/roles/", nil)
}

func (s *AdminService) GetRole(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Get(ctx, fmt.Sprintf("/admin/roles/%d/", id), nil)
}

func (s *AdminService) CreateRole(ctx context.Context, data interface{}) (*api.Response, error) {
	return s.api.Post(ctx, "/admin/roles/", data)
}

func (s *AdminService) UpdateRole(ctx context.Context, id int64, data interface{}) (*api.Response, error) {
	return s.api.Patch(ctx, fmt.Sprintf("/admin/roles/%d/", id), data)
}

func (s *AdminService) DeleteRole(ctx context.Context, id int64) (*api.Response, error) {
	return s.api.Delete(ctx, fmt.Sprintf("/admin/roles/%d/", id))
}

func (s *AdminService) ListPermissions(ctx context.Context) (*api.Response, error) {
	return s.api.Get(ctx, "/admin/permissions/", nil)
}

func (s *AdminService) ListRoleOptions(ctx context.Context) (*api.Response, error) {
	return s.api.Get(ctx, "/admin/role-options/", nil)
}

// AuditLogs lista o log de auditoria da loja.
func (s *AdminService) AuditLogs(ctx context.Context, params url.Values) (*api.Response, error) {
	return s.api.Get(ctx, "/admin/audit/", params)
}
