package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"exsys/internal/domain"
	"exsys/internal/infra/ratelimit"
)

func do(env *testEnv, method, path, bearer string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	env.server.r.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return body.Error
}

func TestOptionsAlwaysNoContent(t *testing.T) {
	env := newTestEnv(t)
	for _, path := range []string{"/api/auth/login", "/api/users", "/api/not/registered", "/anything"} {
		w := do(env, http.MethodOptions, path, "", nil)
		if w.Code != http.StatusNoContent {
			t.Fatalf("OPTIONS %s = %d, want 204", path, w.Code)
		}
	}
}

func TestPublicLoginNeedsNoToken(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "u1", "agent@exsys.test", domain.RoleAgent, domain.StatusActive, "o1")

	w := do(env, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "agent@exsys.test", "password": "s3cret",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login = %d body %s", w.Code, w.Body.String())
	}
	var body loginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Token == "" || body.User.Email != "agent@exsys.test" {
		t.Fatalf("body = %+v", body)
	}
}

func TestLoginBadCredentialsDistinctFromDisabled(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "u1", "agent@exsys.test", domain.RoleAgent, domain.StatusActive, "o1")
	env.addUser(t, "u2", "off@exsys.test", domain.RoleAgent, domain.StatusInactive, "o1")

	w := do(env, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "agent@exsys.test", "password": "wrong",
	})
	if w.Code != http.StatusUnauthorized || errorBody(t, w) != "Invalid credentials" {
		t.Fatalf("bad password: %d %s", w.Code, w.Body.String())
	}

	w = do(env, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "off@exsys.test", "password": "s3cret",
	})
	if w.Code != http.StatusForbidden || errorBody(t, w) != "Account disabled" {
		t.Fatalf("disabled: %d %s", w.Code, w.Body.String())
	}
}

func TestMissingTokenDenied(t *testing.T) {
	env := newTestEnv(t)

	w := do(env, http.MethodGet, "/api/auth/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if errorBody(t, w) != "Access denied. Invalid token." {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestGarbageTokenDenied(t *testing.T) {
	env := newTestEnv(t)

	w := do(env, http.MethodGet, "/api/auth/me", "not-a-jwt", nil)
	if w.Code != http.StatusUnauthorized || errorBody(t, w) != "Access denied. Invalid token." {
		t.Fatalf("%d %s", w.Code, w.Body.String())
	}
}

// An inactive account's valid token must produce the same response as
// no token at all.
func TestInactiveAccountIndistinguishableFromBadToken(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "u1", "agent@exsys.test", domain.RoleAgent, domain.StatusActive, "o1")
	signed := env.tokenFor(t, user)

	if w := do(env, http.MethodGet, "/api/auth/me", signed, nil); w.Code != http.StatusOK {
		t.Fatalf("active: %d %s", w.Code, w.Body.String())
	}

	if err := env.users.UpdateStatus(context.Background(), "u1", domain.StatusInactive); err != nil {
		t.Fatal(err)
	}
	w := do(env, http.MethodGet, "/api/auth/me", signed, nil)
	missing := do(env, http.MethodGet, "/api/auth/me", "", nil)
	if w.Code != missing.Code || w.Body.String() != missing.Body.String() {
		t.Fatalf("inactive (%d %s) differs from missing (%d %s)",
			w.Code, w.Body.String(), missing.Code, missing.Body.String())
	}
}

func TestRoleMatrix(t *testing.T) {
	env := newTestEnv(t)
	env.offices.Create(context.Background(), domain.ExchangeOffice{ID: "o1", Name: "Casa", Email: "casa@exsys.test"})
	agent := env.tokenFor(t, env.addUser(t, "u1", "agent@exsys.test", domain.RoleAgent, domain.StatusActive, "o1"))
	admin := env.tokenFor(t, env.addUser(t, "u2", "admin@exsys.test", domain.RoleAdmin, domain.StatusActive, ""))

	// Admin-only route rejects agents.
	w := do(env, http.MethodGet, "/api/exchange-offices", agent, nil)
	if w.Code != http.StatusForbidden || errorBody(t, w) != "Access denied. Only administrators can access this resource." {
		t.Fatalf("agent on admin route: %d %s", w.Code, w.Body.String())
	}
	if w := do(env, http.MethodGet, "/api/exchange-offices", admin, nil); w.Code != http.StatusOK {
		t.Fatalf("admin on admin route: %d %s", w.Code, w.Body.String())
	}

	// Agent-only route rejects admins.
	w = do(env, http.MethodGet, "/api/exchange-offices/my-office", admin, nil)
	if w.Code != http.StatusForbidden || errorBody(t, w) != "Access denied. Only agents can access this resource." {
		t.Fatalf("admin on agent route: %d %s", w.Code, w.Body.String())
	}
	if w := do(env, http.MethodGet, "/api/exchange-offices/my-office", agent, nil); w.Code != http.StatusOK {
		t.Fatalf("agent my-office: %d %s", w.Code, w.Body.String())
	}

	// Shared route admits both.
	if w := do(env, http.MethodGet, "/api/auth/me", agent, nil); w.Code != http.StatusOK {
		t.Fatalf("agent me: %d", w.Code)
	}
	if w := do(env, http.MethodGet, "/api/auth/me", admin, nil); w.Code != http.StatusOK {
		t.Fatalf("admin me: %d", w.Code)
	}
}

func TestUnregisteredAPIPathDenied(t *testing.T) {
	env := newTestEnv(t)
	admin := env.tokenFor(t, env.addUser(t, "u1", "admin@exsys.test", domain.RoleAdmin, domain.StatusActive, ""))

	// Even with a perfectly good admin token.
	w := do(env, http.MethodGet, "/api/internal/debug", admin, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if errorBody(t, w) != "Endpoint not configured for authentication" {
		t.Fatalf("body = %s", w.Body.String())
	}

	// A known path with an unregistered method is just as unknown.
	w = do(env, http.MethodPatch, "/api/clients", admin, nil)
	if w.Code != http.StatusForbidden || errorBody(t, w) != "Endpoint not configured for authentication" {
		t.Fatalf("%d %s", w.Code, w.Body.String())
	}
}

func TestNonAPIPathFallsThrough(t *testing.T) {
	env := newTestEnv(t)

	if w := do(env, http.MethodGet, "/healthz", "", nil); w.Code != http.StatusOK {
		t.Fatalf("healthz = %d", w.Code)
	}
	if w := do(env, http.MethodGet, "/nothing/here", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("unknown non-api path = %d, want 404", w.Code)
	}
}

func TestDocEndpointsArePublic(t *testing.T) {
	env := newTestEnv(t)

	if w := do(env, http.MethodGet, "/api/doc", "", nil); w.Code != http.StatusOK {
		t.Fatalf("doc = %d", w.Code)
	}
	if w := do(env, http.MethodGet, "/api/doc.json", "", nil); w.Code != http.StatusOK {
		t.Fatalf("doc.json = %d", w.Code)
	}
}

func TestTenantIsolationOnClientDetails(t *testing.T) {
	env := newTestEnv(t)
	env.clients.Create(context.Background(), domain.Client{ID: "c1", FirstName: "N", LastName: "B", OfficeID: "o2"})
	agent := env.tokenFor(t, env.addUser(t, "u1", "agent@exsys.test", domain.RoleAgent, domain.StatusActive, "o1"))
	admin := env.tokenFor(t, env.addUser(t, "u2", "admin@exsys.test", domain.RoleAdmin, domain.StatusActive, ""))

	w := do(env, http.MethodGet, "/api/clients/details?id=c1", agent, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("cross-office read = %d, want 403", w.Code)
	}
	if w := do(env, http.MethodGet, "/api/clients/details?id=c1", admin, nil); w.Code != http.StatusOK {
		t.Fatalf("admin read = %d %s", w.Code, w.Body.String())
	}
}

func TestAgentCreateClientForcedIntoOwnOffice(t *testing.T) {
	env := newTestEnv(t)
	agent := env.tokenFor(t, env.addUser(t, "u1", "agent@exsys.test", domain.RoleAgent, domain.StatusActive, "o1"))

	w := do(env, http.MethodPost, "/api/clients", agent, map[string]any{
		"firstName":        "Nadia",
		"lastName":         "B",
		"exchangeOfficeId": "o2",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", w.Code, w.Body.String())
	}
	var body clientResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.OfficeID != "o1" {
		t.Fatalf("officeID = %q, want the agent's own office", body.OfficeID)
	}
}

func TestSharedTransactionDetailsIsPublic(t *testing.T) {
	env := newTestEnv(t)
	env.txs.Create(context.Background(), domain.Transaction{
		ID: "t1", Amount: 100, SourceCurrency: domain.CurrencyEUR,
		TargetCurrency: domain.CurrencyMAD, ClientID: "c1", OfficeID: "o1",
		TransactionDate: time.Now(),
	})

	w := do(env, http.MethodGet, "/api/shared/transactions/details?id=t1", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("shared details = %d %s", w.Code, w.Body.String())
	}

	w = do(env, http.MethodGet, "/api/shared/transactions/details?id=missing", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing shared details = %d, want 404", w.Code)
	}
}

func TestTransactionDetailsScopedToOffice(t *testing.T) {
	env := newTestEnv(t)
	env.txs.Create(context.Background(), domain.Transaction{
		ID: "t1", Amount: 100, SourceCurrency: domain.CurrencyEUR,
		TargetCurrency: domain.CurrencyMAD, ClientID: "c1", OfficeID: "o2",
		TransactionDate: time.Now(),
	})
	agent := env.tokenFor(t, env.addUser(t, "u1", "agent@exsys.test", domain.RoleAgent, domain.StatusActive, "o1"))
	admin := env.tokenFor(t, env.addUser(t, "u2", "admin@exsys.test", domain.RoleAdmin, domain.StatusActive, ""))

	w := do(env, http.MethodGet, "/api/transactions/details?id=t1", agent, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("cross-office read = %d, want 403", w.Code)
	}
	if w := do(env, http.MethodGet, "/api/transactions/details?id=t1", admin, nil); w.Code != http.StatusOK {
		t.Fatalf("admin read = %d %s", w.Code, w.Body.String())
	}
}

func TestEnumsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	agent := env.tokenFor(t, env.addUser(t, "u1", "agent@exsys.test", domain.RoleAgent, domain.StatusActive, "o1"))

	w := do(env, http.MethodGet, "/api/enums/currencies", agent, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("currencies = %d", w.Code)
	}
	var currencies []string
	if err := json.Unmarshal(w.Body.Bytes(), &currencies); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(currencies) != 16 {
		t.Fatalf("currencies = %d entries, want 16", len(currencies))
	}
}

func TestLoginRateLimit(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "u1", "agent@exsys.test", domain.RoleAgent, domain.StatusActive, "o1")
	env.server.cfg.LoginRateLimit = 2
	env.server.cfg.LoginRateWindowSeconds = 60
	env.server.loginLimiter = ratelimit.NewMemoryLimiter(ratelimit.MemoryLimiterConfig{})

	creds := map[string]string{"email": "agent@exsys.test", "password": "wrong"}
	for i := 0; i < 2; i++ {
		if w := do(env, http.MethodPost, "/api/auth/login", "", creds); w.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d = %d", i, w.Code)
		}
	}
	w := do(env, http.MethodPost, "/api/auth/login", "", creds)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("throttled attempt = %d, want 429", w.Code)
	}
	if w.Header().Get("RateLimit-Limit") != "2" || w.Header().Get("Retry-After") == "" {
		t.Fatalf("headers = %v", w.Header())
	}
}

func TestUserListScopedForAgents(t *testing.T) {
	env := newTestEnv(t)
	agent := env.tokenFor(t, env.addUser(t, "u1", "agent@exsys.test", domain.RoleAgent, domain.StatusActive, "o1"))
	env.addUser(t, "u2", "other@exsys.test", domain.RoleAgent, domain.StatusActive, "o2")

	w := do(env, http.MethodGet, "/api/users", agent, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list = %d %s", w.Code, w.Body.String())
	}
	var users []userResponse
	if err := json.Unmarshal(w.Body.Bytes(), &users); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(users) != 1 || users[0].ID != "u1" {
		t.Fatalf("users = %+v", users)
	}
}

func TestChangePasswordFlow(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "u1", "agent@exsys.test", domain.RoleAgent, domain.StatusActive, "o1")
	signed := env.tokenFor(t, user)

	w := do(env, http.MethodPut, "/api/users/change-password", signed, map[string]string{
		"currentPassword": "nope", "newPassword": "next",
	})
	if w.Code != http.StatusBadRequest || errorBody(t, w) != "Current password is incorrect" {
		t.Fatalf("%d %s", w.Code, w.Body.String())
	}

	w = do(env, http.MethodPut, "/api/users/change-password", signed, map[string]string{
		"currentPassword": "s3cret", "newPassword": "next",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("change = %d %s", w.Code, w.Body.String())
	}

	// Old password no longer logs in, the new one does.
	if w := do(env, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "agent@exsys.test", "password": "s3cret",
	}); w.Code != http.StatusUnauthorized {
		t.Fatalf("old password = %d", w.Code)
	}
	if w := do(env, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "agent@exsys.test", "password": "next",
	}); w.Code != http.StatusOK {
		t.Fatalf("new password = %d %s", w.Code, w.Body.String())
	}
}
