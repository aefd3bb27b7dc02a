package usecase

import (
	"context"
	"strings"
	"time"

	"exsys/internal/domain"
	"exsys/internal/infra/db"
)

// In-memory repositories for service tests. They implement just enough
// of the persistence contracts to drive the service logic.

type fakeUserRepo struct {
	users map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user domain.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdateStatus(_ context.Context, id string, status domain.Status) error {
	user, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	user.Status = status
	f.users[id] = user
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	user, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	user.PasswordHash = passwordHash
	f.users[id] = user
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, officeID string) ([]domain.User, error) {
	var out []domain.User
	for _, user := range f.users {
		if officeID == "" || user.OfficeID == officeID {
			out = append(out, user)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) CountByOffice(_ context.Context, officeID string) (int64, error) {
	var n int64
	for _, user := range f.users {
		if user.OfficeID == officeID {
			n++
		}
	}
	return n, nil
}

type fakeOfficeRepo struct {
	offices map[string]domain.ExchangeOffice
}

func newFakeOfficeRepo() *fakeOfficeRepo {
	return &fakeOfficeRepo{offices: make(map[string]domain.ExchangeOffice)}
}

func (f *fakeOfficeRepo) Create(_ context.Context, office domain.ExchangeOffice) error {
	f.offices[office.ID] = office
	return nil
}

func (f *fakeOfficeRepo) GetByID(_ context.Context, id string) (*domain.ExchangeOffice, error) {
	office, ok := f.offices[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &office, nil
}

func (f *fakeOfficeRepo) ExistsByEmail(_ context.Context, email, excludeID string) (bool, error) {
	for _, office := range f.offices {
		if office.ID != excludeID && strings.EqualFold(office.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeOfficeRepo) Update(_ context.Context, office domain.ExchangeOffice) error {
	if _, ok := f.offices[office.ID]; !ok {
		return domain.ErrNotFound
	}
	f.offices[office.ID] = office
	return nil
}

func (f *fakeOfficeRepo) UpdateStatus(_ context.Context, id string, status domain.Status) error {
	office, ok := f.offices[id]
	if !ok {
		return domain.ErrNotFound
	}
	office.Status = status
	f.offices[id] = office
	return nil
}

func (f *fakeOfficeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.offices[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.offices, id)
	return nil
}

func (f *fakeOfficeRepo) List(_ context.Context) ([]domain.ExchangeOffice, error) {
	var out []domain.ExchangeOffice
	for _, office := range f.offices {
		out = append(out, office)
	}
	return out, nil
}

type fakeClientRepo struct {
	clients map[string]domain.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[string]domain.Client)}
}

func (f *fakeClientRepo) Create(_ context.Context, client domain.Client) error {
	f.clients[client.ID] = client
	return nil
}

func (f *fakeClientRepo) GetByID(_ context.Context, id string) (*domain.Client, error) {
	client, ok := f.clients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &client, nil
}

func (f *fakeClientRepo) Update(_ context.Context, client domain.Client) error {
	if _, ok := f.clients[client.ID]; !ok {
		return domain.ErrNotFound
	}
	f.clients[client.ID] = client
	return nil
}

func (f *fakeClientRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.clients[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.clients, id)
	return nil
}

func (f *fakeClientRepo) List(_ context.Context, filter db.ClientFilter) ([]domain.Client, int64, error) {
	var out []domain.Client
	for _, client := range f.clients {
		if filter.OfficeID != "" && client.OfficeID != filter.OfficeID {
			continue
		}
		if filter.Segment != "" && client.CurrentSegment != filter.Segment {
			continue
		}
		if filter.Status != "" && string(client.Status) != filter.Status {
			continue
		}
		out = append(out, client)
	}
	return out, int64(len(out)), nil
}

func (f *fakeClientRepo) FindByPassportInOffice(_ context.Context, passport, officeID string) (*domain.Client, error) {
	for _, client := range f.clients {
		if client.Passport == passport && client.OfficeID == officeID {
			c := client
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeClientRepo) FindByNationalIDInOffice(_ context.Context, nationalID, officeID string) (*domain.Client, error) {
	for _, client := range f.clients {
		if client.NationalID == nationalID && client.OfficeID == officeID {
			c := client
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeClientRepo) CountInOffice(_ context.Context, ids []string, officeID string) (int64, error) {
	var n int64
	for _, id := range ids {
		if client, ok := f.clients[id]; ok && client.OfficeID == officeID {
			n++
		}
	}
	return n, nil
}

func (f *fakeClientRepo) CountByOffice(_ context.Context, officeID string) (int64, error) {
	var n int64
	for _, client := range f.clients {
		if client.OfficeID == officeID {
			n++
		}
	}
	return n, nil
}

type fakeTransactionRepo struct {
	txs map[string]domain.Transaction
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{txs: make(map[string]domain.Transaction)}
}

func (f *fakeTransactionRepo) Create(_ context.Context, tx domain.Transaction) error {
	f.txs[tx.ID] = tx
	return nil
}

func (f *fakeTransactionRepo) GetByID(_ context.Context, id string) (*domain.Transaction, error) {
	tx, ok := f.txs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &tx, nil
}

func (f *fakeTransactionRepo) Update(_ context.Context, tx domain.Transaction) error {
	if _, ok := f.txs[tx.ID]; !ok {
		return domain.ErrNotFound
	}
	f.txs[tx.ID] = tx
	return nil
}

func (f *fakeTransactionRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.txs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.txs, id)
	return nil
}

func (f *fakeTransactionRepo) ListByOffice(_ context.Context, officeID string) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, tx := range f.txs {
		if tx.OfficeID == officeID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) ListByClient(_ context.Context, clientID string) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, tx := range f.txs {
		if tx.ClientID == clientID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) ListAll(_ context.Context) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, tx := range f.txs {
		out = append(out, tx)
	}
	return out, nil
}

type fakeCampaignRepo struct {
	campaigns map[string]domain.MarketingCampaign
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{campaigns: make(map[string]domain.MarketingCampaign)}
}

func (f *fakeCampaignRepo) Create(_ context.Context, campaign domain.MarketingCampaign) error {
	f.campaigns[campaign.ID] = campaign
	return nil
}

func (f *fakeCampaignRepo) GetByID(_ context.Context, id string) (*domain.MarketingCampaign, error) {
	campaign, ok := f.campaigns[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &campaign, nil
}

func (f *fakeCampaignRepo) ListByOffice(_ context.Context, officeID string) ([]domain.MarketingCampaign, error) {
	var out []domain.MarketingCampaign
	for _, campaign := range f.campaigns {
		if officeID == "" || campaign.OfficeID == officeID {
			out = append(out, campaign)
		}
	}
	return out, nil
}

func (f *fakeCampaignRepo) UpdateStatus(_ context.Context, id string, status domain.CampaignStatus) error {
	campaign, ok := f.campaigns[id]
	if !ok {
		return domain.ErrNotFound
	}
	campaign.Status = status
	f.campaigns[id] = campaign
	return nil
}

func (f *fakeCampaignRepo) AddTargets(_ context.Context, campaignID string, clientIDs []string) error {
	campaign, ok := f.campaigns[campaignID]
	if !ok {
		return domain.ErrNotFound
	}
	existing := make(map[string]bool, len(campaign.TargetClients))
	for _, id := range campaign.TargetClients {
		existing[id] = true
	}
	for _, id := range clientIDs {
		if !existing[id] {
			campaign.TargetClients = append(campaign.TargetClients, id)
		}
	}
	f.campaigns[campaignID] = campaign
	return nil
}

func (f *fakeCampaignRepo) RemoveTargets(_ context.Context, campaignID string, clientIDs []string) error {
	campaign, ok := f.campaigns[campaignID]
	if !ok {
		return domain.ErrNotFound
	}
	drop := make(map[string]bool, len(clientIDs))
	for _, id := range clientIDs {
		drop[id] = true
	}
	var kept []string
	for _, id := range campaign.TargetClients {
		if !drop[id] {
			kept = append(kept, id)
		}
	}
	campaign.TargetClients = kept
	f.campaigns[campaignID] = campaign
	return nil
}

type fakeActionRepo struct {
	actions map[string]domain.MarketingAction
}

func newFakeActionRepo() *fakeActionRepo {
	return &fakeActionRepo{actions: make(map[string]domain.MarketingAction)}
}

func (f *fakeActionRepo) Create(_ context.Context, action domain.MarketingAction) error {
	f.actions[action.ID] = action
	return nil
}

func (f *fakeActionRepo) GetByID(_ context.Context, id string) (*domain.MarketingAction, error) {
	action, ok := f.actions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &action, nil
}

func (f *fakeActionRepo) ListByCampaign(_ context.Context, campaignID string) ([]domain.MarketingAction, error) {
	var out []domain.MarketingAction
	for _, action := range f.actions {
		if action.CampaignID == campaignID {
			out = append(out, action)
		}
	}
	return out, nil
}

func (f *fakeActionRepo) MarkSent(_ context.Context, id string, sentAt *time.Time) error {
	action, ok := f.actions[id]
	if !ok {
		return domain.ErrNotFound
	}
	action.SentAt = sentAt
	f.actions[id] = action
	return nil
}

type fakeQuickMessageRepo struct {
	messages map[string]domain.QuickMessage
}

func newFakeQuickMessageRepo() *fakeQuickMessageRepo {
	return &fakeQuickMessageRepo{messages: make(map[string]domain.QuickMessage)}
}

func (f *fakeQuickMessageRepo) Create(_ context.Context, msg domain.QuickMessage) error {
	f.messages[msg.ID] = msg
	return nil
}

func (f *fakeQuickMessageRepo) GetByID(_ context.Context, id string) (*domain.QuickMessage, error) {
	msg, ok := f.messages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &msg, nil
}

func (f *fakeQuickMessageRepo) ListByOffice(_ context.Context, officeID string) ([]domain.QuickMessage, error) {
	var out []domain.QuickMessage
	for _, msg := range f.messages {
		if officeID == "" || msg.OfficeID == officeID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (f *fakeQuickMessageRepo) MarkSent(_ context.Context, id string, sentAt *time.Time) error {
	msg, ok := f.messages[id]
	if !ok {
		return domain.ErrNotFound
	}
	msg.SentAt = sentAt
	f.messages[id] = msg
	return nil
}

type fakeSegmentRepo struct {
	entries []domain.SegmentHistoryEntry
}

func (f *fakeSegmentRepo) Append(_ context.Context, entry domain.SegmentHistoryEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeSegmentRepo) ListByClient(_ context.Context, clientID string) ([]domain.SegmentHistoryEntry, error) {
	var out []domain.SegmentHistoryEntry
	for _, entry := range f.entries {
		if entry.ClientID == clientID {
			out = append(out, entry)
		}
	}
	return out, nil
}

type fakeSender struct {
	sent []domain.OutboundMessage
}

func (f *fakeSender) Send(_ context.Context, msg domain.OutboundMessage) error {
	f.sent = append(f.sent, msg)
	return nil
}

func adminPrincipal() domain.Principal {
	return domain.Principal{ID: "admin-1", Email: "admin@exsys.test", Role: domain.RoleAdmin, Status: domain.StatusActive}
}

func agentPrincipal(officeID string) domain.Principal {
	return domain.Principal{ID: "agent-1", Email: "agent@exsys.test", Role: domain.RoleAgent, Status: domain.StatusActive, OfficeID: officeID}
}

func denialReason(t interface{ Fatalf(string, ...any) }, err error) string {
	denial, ok := domain.AsDenial(err)
	if !ok {
		t.Fatalf("expected denial, got %v", err)
	}
	return denial.Reason
}
