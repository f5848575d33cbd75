// Package port defines the interfaces (ports) the page controllers depend on.
// Following hexagonal architecture, the receivables API and the views are
// reached only through these ports, so controllers can be driven by the
// terminal, by the web front, or by test fakes.
package port

import (
	"context"

	"github.com/boddenberg/ardesk-go/internal/domain"
	"github.com/boddenberg/ardesk-go/internal/view"
)

// CustomerAPI is the customers half of the receivables REST API.
type CustomerAPI interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	CreateCustomer(ctx context.Context, form domain.CustomerForm) error
	DeleteCustomer(ctx context.Context, id domain.ID) error
}

// ReceivableAPI is the receivables half of the REST API.
type ReceivableAPI interface {
	ListReceivables(ctx context.Context) ([]domain.Receivable, error)
	CreateReceivable(ctx context.Context, req *domain.NewReceivableRequest) error
	SettleReceivable(ctx context.Context, id domain.ID) error
}

// Dialog is the blocking interaction surface: yes/no prompts and alerts.
type Dialog interface {
	Confirm(message string) bool
	Alert(message string)
}

// CustomerView is what the customer list page renders into.
type CustomerView interface {
	RenderCustomers(table view.CustomerTable)
	ShowModal()
	HideModal()
	ResetForm()
}

// ReceivableView is what the receivables page renders into.
type ReceivableView interface {
	RenderReceivables(table view.ReceivableTable)
	RenderBalances(dashboard view.BalanceDashboard)
	RenderCustomerOptions(options []view.CustomerOption)
	// ShowBalancePreview displays the inline balance summary; nil clears it.
	ShowBalancePreview(preview *view.BalancePreview)
	ShowModal(modal view.TransactionModal)
	HideModal()
	ResetForm()
}
