package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/boddenberg/ardesk-go/internal/domain"
	"github.com/boddenberg/ardesk-go/internal/infra/observability"
	"github.com/boddenberg/ardesk-go/internal/port"
	"github.com/boddenberg/ardesk-go/internal/view"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	receivablesPage = "contas_receber"

	confirmReceive   = "Confirmar recebimento desta conta?"
	alertSaveAccount = "Erro ao salvar conta"
	alertReceive     = "Erro ao receber conta"
)

// Success notices shown after a mutation went through.
const (
	NoticeTransactionSaved  = "Transação registrada com sucesso!"
	NoticeReceivableSettled = "Conta recebida com sucesso!"
)

// Receivables drives the receivables page: the receivables table, the
// per-customer balance dashboard, and the sale/payment transaction form.
type Receivables struct {
	customersAPI   port.CustomerAPI
	receivablesAPI port.ReceivableAPI
	metrics        *observability.Metrics
	logger         *zap.Logger

	mu          sync.Mutex
	view        port.ReceivableView
	dialog      port.Dialog
	customers   []domain.Customer
	receivables []domain.Receivable
	modal       *view.TransactionModal
	selected    domain.ID
}

// NewReceivables creates the controller. Call Attach before use.
func NewReceivables(
	customers port.CustomerAPI,
	receivables port.ReceivableAPI,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Receivables {
	return &Receivables{
		customersAPI:   customers,
		receivablesAPI: receivables,
		metrics:        metrics,
		logger:         logger,
		view:           nopReceivableView{},
		dialog:         nopDialog{},
	}
}

// Attach binds the controller to the view and dialog it renders into.
func (r *Receivables) Attach(v port.ReceivableView, d port.Dialog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.view = v
	r.dialog = d
}

// Load fetches receivables and customers concurrently. Nothing is
// rendered unless both succeed; a partial result is discarded.
// When loads overlap, the one that resolves last renders last.
func (r *Receivables) Load(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Receivables.Load")
	defer span.End()

	var (
		receivables []domain.Receivable
		customers   []domain.Customer
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rs, err := r.receivablesAPI.ListReceivables(gCtx)
		if err != nil {
			return fmt.Errorf("receivables fetch: %w", err)
		}
		receivables = rs
		return nil
	})

	g.Go(func() error {
		cs, err := r.customersAPI.ListCustomers(gCtx)
		if err != nil {
			return fmt.Errorf("customers fetch: %w", err)
		}
		customers = cs
		return nil
	})

	if err := g.Wait(); err != nil {
		r.logger.Error("failed to load receivables page",
			zap.String("kind", domain.ErrorKind(err)),
			zap.Error(err),
		)
		r.metrics.IncrLoad(receivablesPage, "error")
		return err
	}
	span.SetAttributes(
		attribute.Int("receivables.count", len(receivables)),
		attribute.Int("customers.count", len(customers)),
	)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.receivables = receivables
	r.customers = customers
	r.renderReceivablesLocked()
	r.renderBalancesLocked()
	r.view.RenderCustomerOptions(view.NewCustomerOptions(r.customers))
	r.metrics.IncrRender("customer_options")
	// The selected customer's balance may have moved with this load.
	if r.selected != 0 {
		if c, ok := domain.FindCustomer(r.customers, r.selected); ok {
			r.view.ShowBalancePreview(view.NewBalancePreview(c.Saldo))
		}
	}
	r.metrics.IncrLoad(receivablesPage, "success")
	return nil
}

// RenderReceivablesTable rebuilds the receivables table from the snapshot.
func (r *Receivables) RenderReceivablesTable() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderReceivablesLocked()
}

func (r *Receivables) renderReceivablesLocked() {
	r.view.RenderReceivables(view.NewReceivableTable(r.receivables, r.customers))
	r.metrics.IncrRender("receivables_table")
}

// RenderBalanceDashboard rebuilds the per-customer balance cards.
func (r *Receivables) RenderBalanceDashboard() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderBalancesLocked()
}

func (r *Receivables) renderBalancesLocked() {
	r.view.RenderBalances(view.NewBalanceDashboard(r.customers))
	r.metrics.IncrRender("balance_dashboard")
}

// Customers returns a copy of the last fetched customer list.
func (r *Receivables) Customers() []domain.Customer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Customer(nil), r.customers...)
}

// Receivables returns a copy of the last fetched receivables.
func (r *Receivables) Receivables() []domain.Receivable {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Receivable(nil), r.receivables...)
}

// OnCustomerSelected shows the inline balance of the selected customer,
// read from the snapshot. An empty value clears the summary; an id that
// is not in the snapshot leaves it as it was. No network call is made.
func (r *Receivables) OnCustomerSelected(value string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	value = strings.TrimSpace(value)
	if value == "" {
		r.selected = 0
		r.view.ShowBalancePreview(nil)
		return
	}

	id, err := domain.ParseID(value)
	if err != nil {
		return
	}
	c, ok := domain.FindCustomer(r.customers, id)
	if !ok {
		return
	}
	r.selected = id
	r.view.ShowBalancePreview(view.NewBalancePreview(c.Saldo))
}

// OpenModal opens the transaction form for a sale or a payment. The type
// is fixed here, not chosen in the form.
func (r *Receivables) OpenModal(tipo domain.ReceivableType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	modal := view.NewTransactionModal(tipo)
	r.modal = &modal
	r.view.ShowModal(modal)
}

// CloseModal hides the form, resets it and clears the balance summary.
func (r *Receivables) CloseModal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modal = nil
	r.selected = 0
	r.view.HideModal()
	r.view.ResetForm()
	r.view.ShowBalancePreview(nil)
}

// Modal returns the open transaction modal, if any.
func (r *Receivables) Modal() (view.TransactionModal, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.modal == nil {
		return view.TransactionModal{}, false
	}
	return *r.modal, true
}

// SubmitTransaction posts the form with the type of the open modal. On
// success the modal closes, data is reloaded and the operator is told; on
// failure the modal stays open and the operator is alerted.
func (r *Receivables) SubmitTransaction(ctx context.Context, form domain.TransactionForm) error {
	ctx, span := tracer.Start(ctx, "Receivables.SubmitTransaction")
	defer span.End()

	modal, open := r.Modal()
	if !open {
		err := &domain.ErrValidation{Field: "tipo", Message: "nenhuma transação aberta"}
		r.alert(validationMessage(err))
		return err
	}
	span.SetAttributes(attribute.String("receivable.tipo", modal.Tipo.String()))

	req, err := form.BuildRequest(modal.Tipo)
	if err != nil {
		r.alert(validationMessage(err))
		r.metrics.IncrMutation("create_receivable", "error")
		return err
	}

	if err := r.receivablesAPI.CreateReceivable(ctx, req); err != nil {
		r.logger.Error("failed to create receivable",
			zap.String("customer_id", req.ClienteID.String()),
			zap.String("tipo", req.Tipo.String()),
			zap.String("kind", domain.ErrorKind(err)),
			zap.Error(err),
		)
		r.metrics.IncrMutation("create_receivable", "error")
		r.alert(alertSaveAccount)
		return fmt.Errorf("create receivable: %w", err)
	}
	r.metrics.IncrMutation("create_receivable", "success")

	r.CloseModal()
	_ = r.Load(ctx)
	r.alert(NoticeTransactionSaved)
	return nil
}

// Receive asks for confirmation and settles a pending sale. On failure
// nothing is reloaded and the operator is alerted.
func (r *Receivables) Receive(ctx context.Context, id domain.ID) error {
	ctx, span := tracer.Start(ctx, "Receivables.Receive")
	defer span.End()
	span.SetAttributes(attribute.String("receivable.id", id.String()))

	if !r.confirm(confirmReceive) {
		r.metrics.IncrMutation("settle_receivable", "cancelled")
		return nil
	}

	if err := r.receivablesAPI.SettleReceivable(ctx, id); err != nil {
		r.logger.Error("failed to settle receivable",
			zap.String("receivable_id", id.String()),
			zap.String("kind", domain.ErrorKind(err)),
			zap.Error(err),
		)
		r.metrics.IncrMutation("settle_receivable", "error")
		r.alert(alertReceive)
		return fmt.Errorf("settle receivable %s: %w", id, err)
	}
	r.metrics.IncrMutation("settle_receivable", "success")

	_ = r.Load(ctx)
	r.alert(NoticeReceivableSettled)
	return nil
}

func (r *Receivables) confirm(message string) bool {
	r.mu.Lock()
	d := r.dialog
	r.mu.Unlock()
	return d.Confirm(message)
}

func (r *Receivables) alert(message string) {
	r.mu.Lock()
	d := r.dialog
	r.mu.Unlock()
	d.Alert(message)
}
