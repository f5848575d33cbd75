package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/boddenberg/ardesk-go/internal/domain"
	"github.com/boddenberg/ardesk-go/internal/infra/observability"
	"github.com/boddenberg/ardesk-go/internal/service"
	"github.com/boddenberg/ardesk-go/internal/view"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type receivablesFixture struct {
	ctrl        *service.Receivables
	customers   *mockCustomerAPI
	receivables *mockReceivableAPI
	view        *recordingReceivableView
	dialog      *mockDialog
	metrics     *observability.Metrics
}

func newReceivables(t *testing.T) *receivablesFixture {
	t.Helper()
	f := &receivablesFixture{
		customers: &mockCustomerAPI{customers: []domain.Customer{
			{ID: 1, Nome: "Ana", Saldo: decimal.NewFromInt(100)},
			{ID: 2, Nome: "Bruno", Saldo: decimal.NewFromInt(-30)},
			{ID: 3, Nome: "Carla"},
		}},
		receivables: &mockReceivableAPI{receivables: []domain.Receivable{
			{ID: 10, ClienteID: 2, Tipo: domain.ReceivableTypeSale, Valor: decimal.NewFromInt(30), Status: domain.ReceivableStatusPending},
			{ID: 11, ClienteID: 1, Tipo: domain.ReceivableTypePayment, Valor: decimal.NewFromInt(100), Status: domain.ReceivableStatusReceived},
			{ID: 12, ClienteID: 99, Tipo: domain.ReceivableTypeSale, Valor: decimal.NewFromInt(5), Status: domain.ReceivableStatusReceived},
		}},
		view:    &recordingReceivableView{},
		dialog:  &mockDialog{answer: true},
		metrics: observability.NewMetrics(),
	}
	f.ctrl = service.NewReceivables(f.customers, f.receivables, f.metrics, zap.NewNop())
	f.ctrl.Attach(f.view, f.dialog)
	return f
}

func TestReceivables_LoadRendersEverything(t *testing.T) {
	f := newReceivables(t)

	require.NoError(t, f.ctrl.Load(context.Background()))

	require.Equal(t, 1, f.view.renders())
	rows := f.view.tables[0].Rows
	require.Len(t, rows, 3)
	assert.Equal(t, "Bruno", rows[0].Cliente)
	assert.True(t, rows[0].CanReceive)
	assert.False(t, rows[1].CanReceive)
	assert.Equal(t, view.UnknownCustomerName, rows[2].Cliente)

	require.Len(t, f.view.dashboards, 1)
	assert.Len(t, f.view.dashboards[0].Cards, 3)

	require.Len(t, f.view.options, 1)
	assert.Equal(t, view.SelectCustomerLabel, f.view.options[0][0].Label)
	assert.Len(t, f.view.options[0], 4)

	assert.Equal(t, float64(1), f.metrics.LoadCount("contas_receber", "success"))
}

func TestReceivables_LoadWaitsForBothFetches(t *testing.T) {
	f := newReceivables(t)
	f.receivables.gate = make(chan struct{})

	done := make(chan error, 1)
	go func() { done <- f.ctrl.Load(context.Background()) }()

	require.Eventually(t, func() bool { return f.customers.lists() == 1 }, time.Second, 5*time.Millisecond)
	assert.Zero(t, f.view.renders(), "must not render with only the customers fetched")

	close(f.receivables.gate)
	require.NoError(t, <-done)
	assert.Equal(t, 1, f.view.renders())
}

func TestReceivables_PartialFailureRendersNothing(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *receivablesFixture)
	}{
		{"receivables fail", func(f *receivablesFixture) {
			f.receivables.listErr = &domain.ErrServerRejected{StatusCode: 500}
		}},
		{"customers fail", func(f *receivablesFixture) {
			f.customers.listErr = &domain.ErrNetwork{Err: errors.New("refused")}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReceivables(t)
			tt.setup(f)

			err := f.ctrl.Load(context.Background())

			require.Error(t, err)
			assert.Zero(t, f.view.renders())
			assert.Empty(t, f.view.dashboards)
			assert.Empty(t, f.view.options)
			assert.Empty(t, f.dialog.alerts, "load failures are silent")
			assert.Equal(t, float64(1), f.metrics.LoadCount("contas_receber", "error"))
		})
	}
}

func TestReceivables_SaleSubmitReloadsOnce(t *testing.T) {
	f := newReceivables(t)
	require.NoError(t, f.ctrl.Load(context.Background()))
	f.ctrl.OpenModal(domain.ReceivableTypeSale)

	err := f.ctrl.SubmitTransaction(context.Background(), domain.TransactionForm{
		ClienteID:      "2",
		Valor:          "49,90",
		DataVencimento: "2024-05-10",
		Descricao:      "Pedido 12",
	})

	require.NoError(t, err)
	require.Len(t, f.receivables.created, 1)
	req := f.receivables.created[0]
	assert.Equal(t, domain.ID(2), req.ClienteID)
	assert.Equal(t, domain.ReceivableTypeSale, req.Tipo)
	assert.True(t, req.Valor.Equal(decimal.RequireFromString("49.90")))

	_, open := f.ctrl.Modal()
	assert.False(t, open)
	assert.Equal(t, 2, f.customers.lists(), "initial load plus one reload")
	assert.Equal(t, 2, f.receivables.lists(), "initial load plus one reload")
	assert.Equal(t, []string{"Transação registrada com sucesso!"}, f.dialog.alerts)
}

func TestReceivables_PaymentModalSendsPayment(t *testing.T) {
	f := newReceivables(t)
	f.ctrl.OpenModal(domain.ReceivableTypePayment)

	require.NoError(t, f.ctrl.SubmitTransaction(context.Background(), domain.TransactionForm{ClienteID: "1", Valor: "10"}))

	require.Len(t, f.view.modals, 1)
	assert.Equal(t, view.PaymentModalTitle, f.view.modals[0].Title)
	assert.Equal(t, domain.ReceivableTypePayment, f.receivables.created[0].Tipo)
}

func TestReceivables_SubmitFailureKeepsModalOpen(t *testing.T) {
	f := newReceivables(t)
	f.receivables.createErr = &domain.ErrServerRejected{StatusCode: 400}
	f.ctrl.OpenModal(domain.ReceivableTypeSale)

	err := f.ctrl.SubmitTransaction(context.Background(), domain.TransactionForm{ClienteID: "1", Valor: "10"})

	require.Error(t, err)
	_, open := f.ctrl.Modal()
	assert.True(t, open)
	assert.Zero(t, f.receivables.lists())
	assert.Equal(t, []string{"Erro ao salvar conta"}, f.dialog.alerts)
}

func TestReceivables_SubmitValidation(t *testing.T) {
	tests := []struct {
		name  string
		open  bool
		form  domain.TransactionForm
		field string
	}{
		{"no modal open", false, domain.TransactionForm{ClienteID: "1", Valor: "10"}, "tipo"},
		{"no customer", true, domain.TransactionForm{Valor: "10"}, "cliente_id"},
		{"bad amount", true, domain.TransactionForm{ClienteID: "1", Valor: "dez"}, "valor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReceivables(t)
			if tt.open {
				f.ctrl.OpenModal(domain.ReceivableTypeSale)
			}

			err := f.ctrl.SubmitTransaction(context.Background(), tt.form)

			var validation *domain.ErrValidation
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.field, validation.Field)
			assert.Empty(t, f.receivables.created)
			assert.Len(t, f.dialog.alerts, 1)
		})
	}
}

func TestReceivables_ReceiveSuccess(t *testing.T) {
	f := newReceivables(t)

	require.NoError(t, f.ctrl.Receive(context.Background(), 10))

	assert.Equal(t, []domain.ID{10}, f.receivables.settled)
	assert.Equal(t, []string{"Confirmar recebimento desta conta?"}, f.dialog.confirms)
	assert.Equal(t, []string{"Conta recebida com sucesso!"}, f.dialog.alerts)
	assert.Equal(t, 1, f.receivables.lists())
}

func TestReceivables_ReceiveDeclinedMakesNoCall(t *testing.T) {
	f := newReceivables(t)
	f.dialog.answer = false

	require.NoError(t, f.ctrl.Receive(context.Background(), 10))

	assert.Empty(t, f.receivables.settled)
	assert.Zero(t, f.receivables.lists())
	assert.Empty(t, f.dialog.alerts)
}

func TestReceivables_ReceiveFailureDoesNotReload(t *testing.T) {
	f := newReceivables(t)
	require.NoError(t, f.ctrl.Load(context.Background()))
	f.receivables.settleErr = &domain.ErrServerRejected{StatusCode: 409}

	err := f.ctrl.Receive(context.Background(), 10)

	require.Error(t, err)
	assert.Equal(t, 1, f.receivables.lists())
	assert.Equal(t, 1, f.view.renders())
	assert.True(t, f.ctrl.Receivables()[0].CanReceive(), "row stays pending")
	assert.Equal(t, []string{"Erro ao receber conta"}, f.dialog.alerts)
}

func TestReceivables_OnCustomerSelected(t *testing.T) {
	f := newReceivables(t)
	require.NoError(t, f.ctrl.Load(context.Background()))

	f.ctrl.OnCustomerSelected("2")
	preview := f.view.lastPreview()
	require.NotNil(t, preview)
	assert.Equal(t, "🔴 Cliente NEGATIVADO em R$ 30,00", preview.Text)

	f.ctrl.OnCustomerSelected("1")
	assert.Equal(t, "🟢 Cliente com CRÉDITO de R$ 100,00", f.view.lastPreview().Text)

	f.ctrl.OnCustomerSelected("3")
	assert.Equal(t, view.ToneNeutral, f.view.lastPreview().Tone)

	shown := len(f.view.previews)
	f.ctrl.OnCustomerSelected("99")
	assert.Len(t, f.view.previews, shown, "unknown id leaves the summary alone")

	f.ctrl.OnCustomerSelected("")
	assert.Nil(t, f.view.lastPreview())

	assert.Equal(t, 1, f.customers.lists(), "selection never fetches")
}

func TestReceivables_ReloadRefreshesSelectedPreview(t *testing.T) {
	f := newReceivables(t)
	require.NoError(t, f.ctrl.Load(context.Background()))
	f.ctrl.OpenModal(domain.ReceivableTypeSale)
	f.ctrl.OnCustomerSelected("2")

	f.customers.mu.Lock()
	f.customers.customers[1].Saldo = decimal.NewFromInt(-80)
	f.customers.mu.Unlock()
	require.NoError(t, f.ctrl.Load(context.Background()))

	assert.Equal(t, "🔴 Cliente NEGATIVADO em R$ 80,00", f.view.lastPreview().Text)
}

func TestReceivables_CloseModalClearsPreview(t *testing.T) {
	f := newReceivables(t)
	require.NoError(t, f.ctrl.Load(context.Background()))
	f.ctrl.OpenModal(domain.ReceivableTypeSale)
	f.ctrl.OnCustomerSelected("2")

	f.ctrl.CloseModal()

	assert.Nil(t, f.view.lastPreview())
	assert.Equal(t, 1, f.view.hidden)
	assert.Equal(t, 1, f.view.resets)
}

func TestReceivables_OverlappingLoadsLastResolvedWins(t *testing.T) {
	f := newReceivables(t)
	all := f.receivables.receivables
	older, newer := all, all[:1]

	// The first load's receivables answer is held back until the second
	// load has rendered.
	release := make(chan struct{})
	f.receivables.onList = func(ctx context.Context, call int) ([]domain.Receivable, error) {
		if call == 1 {
			select {
			case <-release:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			return older, nil
		}
		return newer, nil
	}

	first := make(chan error, 1)
	go func() { first <- f.ctrl.Load(context.Background()) }()
	require.Eventually(t, func() bool { return f.receivables.lists() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, f.ctrl.Load(context.Background()))
	require.Equal(t, 1, f.view.renders())
	assert.Len(t, f.view.tables[0].Rows, 1)

	close(release)
	require.NoError(t, <-first)

	require.Equal(t, 2, f.view.renders())
	assert.Len(t, f.view.tables[1].Rows, 3, "the load that resolved last rendered last")
	assert.Len(t, f.ctrl.Receivables(), 3)
}
