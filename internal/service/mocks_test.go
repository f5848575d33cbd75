package service_test

import (
	"context"
	"sync"

	"github.com/boddenberg/ardesk-go/internal/domain"
	"github.com/boddenberg/ardesk-go/internal/view"
)

// --- Mocks ---

type mockCustomerAPI struct {
	mu        sync.Mutex
	customers []domain.Customer
	listErr   error
	createErr error
	deleteErr error

	listCalls int
	created   []domain.CustomerForm
	deleted   []domain.ID
}

func (m *mockCustomerAPI) ListCustomers(_ context.Context) ([]domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]domain.Customer(nil), m.customers...), nil
}

func (m *mockCustomerAPI) CreateCustomer(_ context.Context, form domain.CustomerForm) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, form)
	return m.createErr
}

func (m *mockCustomerAPI) DeleteCustomer(_ context.Context, id domain.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, id)
	return m.deleteErr
}

func (m *mockCustomerAPI) lists() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

type mockReceivableAPI struct {
	mu          sync.Mutex
	receivables []domain.Receivable
	listErr     error
	createErr   error
	settleErr   error
	// gate, when set, blocks ListReceivables until closed.
	gate chan struct{}
	// onList, when set, answers ListReceivables with the 1-based call number.
	onList func(ctx context.Context, call int) ([]domain.Receivable, error)

	listCalls int
	created   []*domain.NewReceivableRequest
	settled   []domain.ID
}

func (m *mockReceivableAPI) ListReceivables(ctx context.Context) ([]domain.Receivable, error) {
	if m.gate != nil {
		select {
		case <-m.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	m.mu.Lock()
	m.listCalls++
	call, onList := m.listCalls, m.onList
	m.mu.Unlock()
	if onList != nil {
		return onList(ctx, call)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]domain.Receivable(nil), m.receivables...), nil
}

func (m *mockReceivableAPI) CreateReceivable(_ context.Context, req *domain.NewReceivableRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, req)
	return m.createErr
}

func (m *mockReceivableAPI) SettleReceivable(_ context.Context, id domain.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settled = append(m.settled, id)
	return m.settleErr
}

func (m *mockReceivableAPI) lists() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

type mockDialog struct {
	mu       sync.Mutex
	answer   bool
	confirms []string
	alerts   []string
}

func (d *mockDialog) Confirm(message string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.confirms = append(d.confirms, message)
	return d.answer
}

func (d *mockDialog) Alert(message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.alerts = append(d.alerts, message)
}

type recordingCustomerView struct {
	mu     sync.Mutex
	tables []view.CustomerTable
	shown  int
	hidden int
	resets int
}

func (v *recordingCustomerView) RenderCustomers(t view.CustomerTable) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tables = append(v.tables, t)
}

func (v *recordingCustomerView) ShowModal() { v.mu.Lock(); v.shown++; v.mu.Unlock() }
func (v *recordingCustomerView) HideModal() { v.mu.Lock(); v.hidden++; v.mu.Unlock() }
func (v *recordingCustomerView) ResetForm() { v.mu.Lock(); v.resets++; v.mu.Unlock() }

func (v *recordingCustomerView) renders() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.tables)
}

type recordingReceivableView struct {
	mu         sync.Mutex
	tables     []view.ReceivableTable
	dashboards []view.BalanceDashboard
	options    [][]view.CustomerOption
	previews   []*view.BalancePreview
	modals     []view.TransactionModal
	hidden     int
	resets     int
}

func (v *recordingReceivableView) RenderReceivables(t view.ReceivableTable) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tables = append(v.tables, t)
}

func (v *recordingReceivableView) RenderBalances(d view.BalanceDashboard) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dashboards = append(v.dashboards, d)
}

func (v *recordingReceivableView) RenderCustomerOptions(o []view.CustomerOption) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.options = append(v.options, o)
}

func (v *recordingReceivableView) ShowBalancePreview(p *view.BalancePreview) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.previews = append(v.previews, p)
}

func (v *recordingReceivableView) ShowModal(m view.TransactionModal) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.modals = append(v.modals, m)
}

func (v *recordingReceivableView) HideModal() { v.mu.Lock(); v.hidden++; v.mu.Unlock() }
func (v *recordingReceivableView) ResetForm() { v.mu.Lock(); v.resets++; v.mu.Unlock() }

func (v *recordingReceivableView) renders() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.tables)
}

func (v *recordingReceivableView) lastPreview() *view.BalancePreview {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.previews) == 0 {
		return nil
	}
	return v.previews[len(v.previews)-1]
}
