package http

import (
	"context"
	"strings"
	"testing"
	"time"

	"exsys/internal/config"
	"exsys/internal/domain"
	"exsys/internal/infra/auth/token"
	"exsys/internal/infra/db"
	"exsys/internal/usecase"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memUsers doubles as user repository and principal directory so the
// gate and the services observe the same accounts.
type memUsers struct {
	users map[string]domain.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[string]domain.User)}
}

func (m *memUsers) Create(_ context.Context, user domain.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.FindByEmail(ctx, email)
	return err == nil, nil
}

func (m *memUsers) Update(_ context.Context, user domain.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *memUsers) UpdateStatus(_ context.Context, id string, status domain.Status) error {
	user, ok := m.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	user.Status = status
	m.users[id] = user
	return nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id, passwordHash string) error {
	user, ok := m.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	user.PasswordHash = passwordHash
	m.users[id] = user
	return nil
}

func (m *memUsers) List(_ context.Context, officeID string) ([]domain.User, error) {
	var out []domain.User
	for _, user := range m.users {
		if officeID == "" || user.OfficeID == officeID {
			out = append(out, user)
		}
	}
	return out, nil
}

func (m *memUsers) CountByOffice(_ context.Context, officeID string) (int64, error) {
	var n int64
	for _, user := range m.users {
		if user.OfficeID == officeID {
			n++
		}
	}
	return n, nil
}

func (m *memUsers) FindPrincipalByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	user, err := m.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	principal := user.Principal()
	return &principal, nil
}

type memDirectory struct {
	users *memUsers
}

func (d *memDirectory) FindByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	return d.users.FindPrincipalByEmail(ctx, email)
}

type memClients struct {
	clients map[string]domain.Client
}

func newMemClients() *memClients {
	return &memClients{clients: make(map[string]domain.Client)}
}

func (m *memClients) Create(_ context.Context, client domain.Client) error {
	m.clients[client.ID] = client
	return nil
}

func (m *memClients) GetByID(_ context.Context, id string) (*domain.Client, error) {
	client, ok := m.clients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &client, nil
}

func (m *memClients) Update(_ context.Context, client domain.Client) error {
	m.clients[client.ID] = client
	return nil
}

func (m *memClients) Delete(_ context.Context, id string) error {
	delete(m.clients, id)
	return nil
}

func (m *memClients) List(_ context.Context, filter db.ClientFilter) ([]domain.Client, int64, error) {
	var out []domain.Client
	for _, client := range m.clients {
		if filter.OfficeID != "" && client.OfficeID != filter.OfficeID {
			continue
		}
		out = append(out, client)
	}
	return out, int64(len(out)), nil
}

func (m *memClients) FindByPassportInOffice(_ context.Context, passport, officeID string) (*domain.Client, error) {
	for _, client := range m.clients {
		if client.Passport == passport && client.OfficeID == officeID {
			c := client
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memClients) FindByNationalIDInOffice(_ context.Context, nationalID, officeID string) (*domain.Client, error) {
	for _, client := range m.clients {
		if client.NationalID == nationalID && client.OfficeID == officeID {
			c := client
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memClients) CountInOffice(_ context.Context, ids []string, officeID string) (int64, error) {
	var n int64
	for _, id := range ids {
		if client, ok := m.clients[id]; ok && client.OfficeID == officeID {
			n++
		}
	}
	return n, nil
}

func (m *memClients) CountByOffice(_ context.Context, officeID string) (int64, error) {
	var n int64
	for _, client := range m.clients {
		if client.OfficeID == officeID {
			n++
		}
	}
	return n, nil
}

type memOffices struct {
	offices map[string]domain.ExchangeOffice
}

func newMemOffices() *memOffices {
	return &memOffices{offices: make(map[string]domain.ExchangeOffice)}
}

func (m *memOffices) Create(_ context.Context, office domain.ExchangeOffice) error {
	m.offices[office.ID] = office
	return nil
}

func (m *memOffices) GetByID(_ context.Context, id string) (*domain.ExchangeOffice, error) {
	office, ok := m.offices[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &office, nil
}

func (m *memOffices) ExistsByEmail(_ context.Context, email, excludeID string) (bool, error) {
	for _, office := range m.offices {
		if office.ID != excludeID && strings.EqualFold(office.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memOffices) Update(_ context.Context, office domain.ExchangeOffice) error {
	m.offices[office.ID] = office
	return nil
}

func (m *memOffices) UpdateStatus(_ context.Context, id string, status domain.Status) error {
	office, ok := m.offices[id]
	if !ok {
		return domain.ErrNotFound
	}
	office.Status = status
	m.offices[id] = office
	return nil
}

func (m *memOffices) Delete(_ context.Context, id string) error {
	delete(m.offices, id)
	return nil
}

func (m *memOffices) List(_ context.Context) ([]domain.ExchangeOffice, error) {
	var out []domain.ExchangeOffice
	for _, office := range m.offices {
		out = append(out, office)
	}
	return out, nil
}

type memTransactions struct {
	txs map[string]domain.Transaction
}

func newMemTransactions() *memTransactions {
	return &memTransactions{txs: make(map[string]domain.Transaction)}
}

func (m *memTransactions) Create(_ context.Context, tx domain.Transaction) error {
	m.txs[tx.ID] = tx
	return nil
}

func (m *memTransactions) GetByID(_ context.Context, id string) (*domain.Transaction, error) {
	tx, ok := m.txs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &tx, nil
}

func (m *memTransactions) Update(_ context.Context, tx domain.Transaction) error {
	m.txs[tx.ID] = tx
	return nil
}

func (m *memTransactions) Delete(_ context.Context, id string) error {
	delete(m.txs, id)
	return nil
}

func (m *memTransactions) ListByOffice(_ context.Context, officeID string) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, tx := range m.txs {
		if tx.OfficeID == officeID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (m *memTransactions) ListByClient(_ context.Context, clientID string) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, tx := range m.txs {
		if tx.ClientID == clientID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (m *memTransactions) ListAll(_ context.Context) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, tx := range m.txs {
		out = append(out, tx)
	}
	return out, nil
}

type memSegments struct {
	entries []domain.SegmentHistoryEntry
}

func (m *memSegments) Append(_ context.Context, entry domain.SegmentHistoryEntry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memSegments) ListByClient(_ context.Context, clientID string) ([]domain.SegmentHistoryEntry, error) {
	var out []domain.SegmentHistoryEntry
	for _, entry := range m.entries {
		if entry.ClientID == clientID {
			out = append(out, entry)
		}
	}
	return out, nil
}

type memCountries struct {
	countries []domain.Country
}

func (m *memCountries) List(_ context.Context) ([]domain.Country, error) {
	return m.countries, nil
}

func (m *memCountries) GetByCode(_ context.Context, code string) (*domain.Country, error) {
	for _, country := range m.countries {
		if country.Code == code {
			c := country
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

// testEnv bundles a fully wired server over in-memory state.
type testEnv struct {
	server  *Server
	users   *memUsers
	clients *memClients
	offices *memOffices
	txs     *memTransactions
	tokens  *token.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	tokens, err := token.NewService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}

	users := newMemUsers()
	clients := newMemClients()
	offices := newMemOffices()
	txs := newMemTransactions()
	segments := &memSegments{}
	countries := &memCountries{countries: []domain.Country{
		{Code: "MA", Name: "Morocco", Nationality: "Moroccan"},
	}}

	cfg := config.Config{HTTPAddr: ":0", JWTSecret: "test-secret"}
	server := NewServerWithDeps(cfg, ServerDeps{
		Verifier:     tokens,
		Directory:    &memDirectory{users: users},
		Auth:         &usecase.AuthService{Users: users, Tokens: tokens},
		Users:        &usecase.UserService{Users: users, Offices: offices},
		Offices:      &usecase.OfficeService{Offices: offices, Users: users, Clients: clients},
		Clients:      &usecase.ClientService{Clients: clients, Segments: segments, Offices: offices},
		Transactions: &usecase.TransactionService{Transactions: txs, Clients: clients},
		Reference:    &usecase.ReferenceService{Countries: countries},
	})
	return &testEnv{server: server, users: users, clients: clients, offices: offices, txs: txs, tokens: tokens}
}

func (e *testEnv) addUser(t *testing.T, id, email string, role domain.Role, status domain.Status, officeID string) domain.User {
	t.Helper()
	hash, err := usecase.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := domain.User{
		ID:           id,
		Email:        email,
		PasswordHash: hash,
		FirstName:    "T",
		LastName:     "U",
		Role:         role,
		Status:       status,
		OfficeID:     officeID,
	}
	if err := e.users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func (e *testEnv) tokenFor(t *testing.T, user domain.User) string {
	t.Helper()
	signed, err := e.tokens.Issue(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return signed
}
