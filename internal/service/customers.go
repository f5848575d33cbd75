package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/boddenberg/ardesk-go/internal/domain"
	"github.com/boddenberg/ardesk-go/internal/infra/observability"
	"github.com/boddenberg/ardesk-go/internal/port"
	"github.com/boddenberg/ardesk-go/internal/view"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	customersPage = "clientes"

	confirmDeleteCustomer = "Tem certeza que deseja excluir este cliente?"
	alertSaveCustomer     = "Erro ao salvar cliente"
	alertDeleteCustomer   = "Erro ao deletar cliente"
)

// CustomerList drives the customers page: table with balance badges,
// the "novo cliente" modal, and deletion.
type CustomerList struct {
	api     port.CustomerAPI
	metrics *observability.Metrics
	logger  *zap.Logger

	mu        sync.Mutex
	view      port.CustomerView
	dialog    port.Dialog
	customers []domain.Customer
	modalOpen bool
}

// NewCustomerList creates the controller. Call Attach before use.
func NewCustomerList(api port.CustomerAPI, metrics *observability.Metrics, logger *zap.Logger) *CustomerList {
	return &CustomerList{
		api:     api,
		metrics: metrics,
		logger:  logger,
		view:    nopCustomerView{},
		dialog:  nopDialog{},
	}
}

// Attach binds the controller to the view and dialog it renders into.
func (c *CustomerList) Attach(v port.CustomerView, d port.Dialog) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = v
	c.dialog = d
}

// Load fetches all customers and re-renders. On failure the error is
// logged, the previous render is left untouched, and the error returned.
func (c *CustomerList) Load(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "CustomerList.Load")
	defer span.End()

	customers, err := c.api.ListCustomers(ctx)
	if err != nil {
		c.logger.Error("failed to load customers",
			zap.String("kind", domain.ErrorKind(err)),
			zap.Error(err),
		)
		c.metrics.IncrLoad(customersPage, "error")
		return fmt.Errorf("load customers: %w", err)
	}
	span.SetAttributes(attribute.Int("customers.count", len(customers)))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.customers = customers
	c.renderLocked()
	c.metrics.IncrLoad(customersPage, "success")
	return nil
}

// Render rebuilds the table from the last fetched list.
func (c *CustomerList) Render() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderLocked()
}

func (c *CustomerList) renderLocked() {
	c.view.RenderCustomers(view.NewCustomerTable(c.customers))
	c.metrics.IncrRender("customers_table")
}

// Customers returns a copy of the last fetched list.
func (c *CustomerList) Customers() []domain.Customer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Customer(nil), c.customers...)
}

// OpenModal shows the creation form. No network effect.
func (c *CustomerList) OpenModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modalOpen = true
	c.view.ShowModal()
}

// CloseModal hides the creation form and always resets its fields.
func (c *CustomerList) CloseModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeModalLocked()
}

func (c *CustomerList) closeModalLocked() {
	c.modalOpen = false
	c.view.HideModal()
	c.view.ResetForm()
}

// ModalOpen reports whether the creation form is visible.
func (c *CustomerList) ModalOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modalOpen
}

// SubmitCreate posts the form. On success the modal is closed and the list
// reloaded; on failure the modal stays open and the operator is alerted.
func (c *CustomerList) SubmitCreate(ctx context.Context, form domain.CustomerForm) error {
	ctx, span := tracer.Start(ctx, "CustomerList.SubmitCreate")
	defer span.End()

	if err := form.Validate(); err != nil {
		c.alert(validationMessage(err))
		c.metrics.IncrMutation("create_customer", "error")
		return err
	}

	if err := c.api.CreateCustomer(ctx, form); err != nil {
		c.logger.Error("failed to create customer",
			zap.String("kind", domain.ErrorKind(err)),
			zap.Error(err),
		)
		c.metrics.IncrMutation("create_customer", "error")
		c.alert(alertSaveCustomer)
		return fmt.Errorf("create customer: %w", err)
	}
	c.metrics.IncrMutation("create_customer", "success")

	c.CloseModal()
	_ = c.Load(ctx)
	return nil
}

// Delete asks for confirmation, deletes the customer and reloads.
// A declined confirmation is not an error.
func (c *CustomerList) Delete(ctx context.Context, id domain.ID) error {
	ctx, span := tracer.Start(ctx, "CustomerList.Delete")
	defer span.End()
	span.SetAttributes(attribute.String("customer.id", id.String()))

	if !c.confirm(confirmDeleteCustomer) {
		c.metrics.IncrMutation("delete_customer", "cancelled")
		return nil
	}

	if err := c.api.DeleteCustomer(ctx, id); err != nil {
		c.logger.Error("failed to delete customer",
			zap.String("customer_id", id.String()),
			zap.String("kind", domain.ErrorKind(err)),
			zap.Error(err),
		)
		c.metrics.IncrMutation("delete_customer", "error")
		c.alert(alertDeleteCustomer)
		return fmt.Errorf("delete customer %s: %w", id, err)
	}
	c.metrics.IncrMutation("delete_customer", "success")

	_ = c.Load(ctx)
	return nil
}

func (c *CustomerList) confirm(message string) bool {
	c.mu.Lock()
	d := c.dialog
	c.mu.Unlock()
	return d.Confirm(message)
}

func (c *CustomerList) alert(message string) {
	c.mu.Lock()
	d := c.dialog
	c.mu.Unlock()
	d.Alert(message)
}
