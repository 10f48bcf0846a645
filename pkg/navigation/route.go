package navigation

// Nomes das rotas centrais, referenciados pelas decisões do guard.
const (
	RouteLogin      = "Login"
	RouteDashboard  = "Dashboard"
	RouteFirstLogin = "FirstLogin"
)

// Route é a definição declarativa de uma rota: o guard decide apenas a
// partir destes atributos e do estado da sessão, sem conhecer as telas.
type Route struct {
	Name string
	Path string
	// RequiresAuth exige sessão autenticada.
	RequiresAuth bool
	// RequiresAdmin exige papel administrativo.
	RequiresAdmin bool
	// FirstLogin marca a rota dedicada de troca obrigatória de senha.
	FirstLogin bool
}

// Registry indexa as rotas por nome.
type Registry struct {
	routes map[string]Route
}

// NewRegistry cria o registro a partir de uma tabela de rotas.
func NewRegistry(routes []Route) *Registry {
	r := &Registry{routes: make(map[string]Route, len(routes))}
	for _, route := range routes {
		r.routes[route.Name] = route
	}
	return r
}

// Lookup retorna a rota registrada com o nome informado.
func (r *Registry) Lookup(name string) (Route, bool) {
	route, ok := r.routes[name]
	return route, ok
}

// DefaultRoutes é a tabela de rotas da aplicação de gestão pet-shop.
// Rotas públicas (login, agendamento online, recibo) não exigem
// autenticação; o bloco admin/* exige papel administrativo.
func DefaultRoutes() []Route {
	return []Route{
		{Name: RouteLogin, Path: "/login"},
		{Name: RouteFirstLogin, Path: "/first-login", RequiresAuth: true, FirstLogin: true},
		{Name: "BookAppointment", Path: "/agendar"},
		{Name: "MyAppointments", Path: "/agendar/meus"},
		{Name: "ReceiptPrint", Path: "/receipt/:id"},

		{Name: RouteDashboard, Path: "/", RequiresAuth: true},
		{Name: "PdvSale", Path: "/pdv", RequiresAuth: true},
		{Name: "Clients", Path: "/clients", RequiresAuth: true},
		{Name: "Pets", Path: "/pets", RequiresAuth: true},
		{Name: "Products", Path: "/products", RequiresAuth: true},
		{Name: "Categories", Path: "/categories", RequiresAuth: true},
		{Name: "ImportNFe", Path: "/nfe", RequiresAuth: true},
		{Name: "Services", Path: "/services", RequiresAuth: true},
		{Name: "Scheduling", Path: "/scheduling", RequiresAuth: true},
		{Name: "Sales", Path: "/sales", RequiresAuth: true},
		{Name: "CreditsList", Path: "/credits", RequiresAuth: true},
		{Name: "ClientCredits", Path: "/credits/client/:clientId", RequiresAuth: true},
		{Name: "CreditDetail", Path: "/credits/:id", RequiresAuth: true},
		{Name: "ReportsDashboard", Path: "/reports/dashboard", RequiresAuth: true},
		{Name: "ReportsSales", Path: "/reports/sales", RequiresAuth: true},
		{Name: "ReportsProductsSold", Path: "/reports/products-sold", RequiresAuth: true},
		{Name: "ReportsSalesRanking", Path: "/reports/ranking", RequiresAuth: true},
		{Name: "ReportsLowStock", Path: "/reports/low-stock", RequiresAuth: true},
		{Name: "ReportsTopClients", Path: "/reports/top-clients", RequiresAuth: true},
		{Name: "AdminPlanPayment", Path: "/admin/plan", RequiresAuth: true},

		{Name: "AdminCompanyData", Path: "/admin/company", RequiresAuth: true, RequiresAdmin: true},
		{Name: "AdminUsersList", Path: "/admin/users", RequiresAuth: true, RequiresAdmin: true},
		{Name: "AdminUserCreate", Path: "/admin/users/new", RequiresAuth: true, RequiresAdmin: true},
		{Name: "AdminUserEdit", Path: "/admin/users/:id/edit", RequiresAuth: true, RequiresAdmin: true},
		{Name: "AdminRoles", Path: "/admin/roles", RequiresAuth: true, RequiresAdmin: true},
		{Name: "AdminAudit", Path: "/admin/audit", RequiresAuth: true, RequiresAdmin: true},
		{Name: "AdminSettings", Path: "/admin/settings", RequiresAuth: true, RequiresAdmin: true},
	}
}
