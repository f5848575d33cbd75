// Package service holds the page controllers. Each controller owns the
// snapshot of the lists it last fetched and follows the same cycle:
// load, render, user action, mutate through the API, reload, render.
package service

import (
	"errors"
	"fmt"

	"github.com/boddenberg/ardesk-go/internal/domain"
	"github.com/boddenberg/ardesk-go/internal/view"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("service")

func validationMessage(err error) string {
	var validation *domain.ErrValidation
	if errors.As(err, &validation) {
		return fmt.Sprintf("Campo inválido: %s (%s)", validation.Field, validation.Message)
	}
	return err.Error()
}

// Views start detached; these keep an unattached controller from panicking.

type nopDialog struct{}

func (nopDialog) Confirm(string) bool { return false }
func (nopDialog) Alert(string)        {}

type nopCustomerView struct{}

func (nopCustomerView) RenderCustomers(view.CustomerTable) {}
func (nopCustomerView) ShowModal()                         {}
func (nopCustomerView) HideModal()                         {}
func (nopCustomerView) ResetForm()                         {}

type nopReceivableView struct{}

func (nopReceivableView) RenderReceivables(view.ReceivableTable)      {}
func (nopReceivableView) RenderBalances(view.BalanceDashboard)        {}
func (nopReceivableView) RenderCustomerOptions([]view.CustomerOption) {}
func (nopReceivableView) ShowBalancePreview(*view.BalancePreview)     {}
func (nopReceivableView) ShowModal(view.TransactionModal)             {}
func (nopReceivableView) HideModal()                                  {}
func (nopReceivableView) ResetForm()                                  {}
