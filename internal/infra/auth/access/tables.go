package access

// APIRoot is the prefix under which unclassified routes are denied
// instead of passed through. A new endpoint must be registered in
// exactly one table below or every request to it is rejected.
const APIRoot = "/api/"

var publicRoutes = []Pattern{
	{"POST", "/api/auth/login"},
	{"GET", "/api/doc"},
	{"GET", "/api/doc.json"},
	{"GET", "/api/shared/transactions/details"},
}

var agentOnlyRoutes = []Pattern{
	{"POST", "/api/clients"},
	{"PUT", "/api/clients"},
	{"GET", "/api/clients/my-clients"},
	{"GET", "/api/exchange-offices/my-office"},
	{"POST", "/api/transactions"},
	{"GET", "/api/transactions/my-office"},
	{"POST", "/api/agent/quick-message"},
	{"GET", "/api/agent/quick-message"},
	{"GET", "/api/agent/quick-messages"},
	{"POST", "/api/marketing-campaigns"},
	{"GET", "/api/marketing-campaigns"},
	{"GET", "/api/marketing-campaigns/list"},
	{"PATCH", "/api/marketing-campaigns/status"},
	{"POST", "/api/agent/marketing-action"},
	{"GET", "/api/agent/marketing-action"},
	{"GET", "/api/agent/marketing-actions/by-campaign"},
	{"POST", "/api/marketing-campaigns/add-target-clients"},
	{"DELETE", "/api/marketing-campaigns/remove-target-clients"},
}

var adminOnlyRoutes = []Pattern{
	{"POST", "/api/users"},
	{"GET", "/api/users/agents/grouped-by-exchange-office"},
	{"PATCH", "/api/users/status"},
	{"PUT", "/api/users/update"},
	{"POST", "/api/exchange-offices"},
	{"PUT", "/api/exchange-offices"},
	{"DELETE", "/api/exchange-offices"},
	{"GET", "/api/exchange-offices"},
	{"GET", "/api/clients/by-office"},
	{"GET", "/api/clients/admin/by-exchange-office"},
	{"GET", "/api/clients/grouped-by-exchange-office"},
	{"PATCH", "/api/exchange-offices/status"},
	{"PUT", "/api/users/reset-password"},
	{"GET", "/api/transactions/by-exchange-office"},
	{"PUT", "/api/transactions/update"},
	{"DELETE", "/api/transactions/delete"},
}

var agentOrAdminRoutes = []Pattern{
	{"DELETE", "/api/clients"},
	{"GET", "/api/clients/details"},
	{"GET", "/api/auth/me"},
	{"PUT", "/api/users/change-password"},
	{"GET", "/api/enums/genders"},
	{"GET", "/api/enums/nationalities"},
	{"GET", "/api/enums/acquisition-sources"},
	{"GET", "/api/enums/roles"},
	{"GET", "/api/enums/statuses"},
	{"GET", "/api/enums/all"},
	{"GET", "/api/enums/currencies"},
	{"GET", "/api/enums/campaign-statuses"},
	{"GET", "/api/enums/channel-types"},
	{"GET", "/api/transactions/by-client"},
	{"GET", "/api/transactions/details"},
	{"GET", "/api/countries"},
	{"GET", "/api/users"},
	{"GET", "/api/clients/segment-history"},
}

// Default returns the classifier over the application's route tables.
func Default() *Classifier {
	return NewClassifier(publicRoutes, agentOnlyRoutes, adminOnlyRoutes, agentOrAdminRoutes)
}
