package handler

import (
	"net/http"

	"github.com/boddenberg/ardesk-go/internal/domain"
	"github.com/boddenberg/ardesk-go/internal/infra/observability"
	"github.com/boddenberg/ardesk-go/internal/port"
	"github.com/boddenberg/ardesk-go/internal/service"

	"go.uber.org/zap"
)

// Each request gets its own controller and page: the snapshot belongs to
// the page being rendered, never to the process.
func newCustomerPage(api port.CustomerAPI, metrics *observability.Metrics, logger *zap.Logger, dialog *pageDialog) (*service.CustomerList, *customerPage) {
	page := &customerPage{Title: "Clientes", Active: "clientes"}
	ctrl := service.NewCustomerList(api, metrics, logger)
	ctrl.Attach(page, dialog)
	return ctrl, page
}

func customerFormFrom(r *http.Request) domain.CustomerForm {
	return domain.CustomerForm{
		Nome:     r.PostForm.Get("nome"),
		CPFCNPJ:  r.PostForm.Get("cpf_cnpj"),
		Telefone: r.PostForm.Get("telefone"),
		Email:    r.PostForm.Get("email"),
		Endereco: r.PostForm.Get("endereco"),
		Cidade:   r.PostForm.Get("cidade"),
		Estado:   r.PostForm.Get("estado"),
	}
}

// GET /clientes
func customersPageHandler(api port.CustomerAPI, metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "handler.CustomersPage")
		defer span.End()

		dialog := &pageDialog{}
		ctrl, page := newCustomerPage(api, metrics, logger, dialog)

		err := ctrl.Load(ctx)
		if r.URL.Query().Get("novo") == "1" {
			ctrl.OpenModal()
		}

		page.Alerts = append(dialog.alerts, noticeFrom(r)...)
		renderPage(w, statusFor(err), "clientes", page, logger)
	}
}

// POST /clientes
func createCustomerHandler(api port.CustomerAPI, metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "handler.CreateCustomer")
		defer span.End()

		if err := r.ParseForm(); err != nil {
			http.Error(w, "formulário inválido", http.StatusBadRequest)
			return
		}

		dialog := &pageDialog{}
		ctrl, page := newCustomerPage(api, metrics, logger, dialog)

		// The form was submitted from the open modal.
		ctrl.OpenModal()
		page.Form = customerFormFrom(r)

		err := ctrl.SubmitCreate(ctx, page.Form)
		if err == nil {
			redirectAfterPost(w, r, "/clientes", "")
			return
		}
		// The modal stays open with the typed values; the table still
		// needs the current list.
		_ = ctrl.Load(ctx)

		page.Alerts = dialog.alerts
		renderPage(w, statusFor(err), "clientes", page, logger)
	}
}

// POST /clientes/{id}/excluir
func deleteCustomerHandler(api port.CustomerAPI, metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "handler.DeleteCustomer")
		defer span.End()

		id, err := pathID(r)
		if err != nil {
			http.Error(w, "id de cliente inválido", http.StatusBadRequest)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "formulário inválido", http.StatusBadRequest)
			return
		}

		dialog := &pageDialog{
			confirmed: r.PostForm.Get("confirmado") == "sim",
			action:    r.URL.Path,
			cancel:    "/clientes",
		}
		ctrl, page := newCustomerPage(api, metrics, logger, dialog)

		err = ctrl.Delete(ctx, id)
		if err == nil && dialog.pending == nil {
			redirectAfterPost(w, r, "/clientes", "")
			return
		}
		_ = ctrl.Load(ctx)

		page.Alerts = dialog.alerts
		page.Confirm = dialog.pending
		renderPage(w, statusFor(err), "clientes", page, logger)
	}
}
