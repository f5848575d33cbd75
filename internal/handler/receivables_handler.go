package handler

import (
	"net/http"
	"net/url"

	"github.com/boddenberg/ardesk-go/internal/domain"
	"github.com/boddenberg/ardesk-go/internal/infra/observability"
	"github.com/boddenberg/ardesk-go/internal/port"
	"github.com/boddenberg/ardesk-go/internal/service"

	"go.uber.org/zap"
)

func newReceivablesPage(
	customers port.CustomerAPI,
	receivables port.ReceivableAPI,
	metrics *observability.Metrics,
	logger *zap.Logger,
	dialog *pageDialog,
) (*service.Receivables, *receivablesPage) {
	page := &receivablesPage{Title: "Contas a Receber", Active: "contas"}
	ctrl := service.NewReceivables(customers, receivables, metrics, logger)
	ctrl.Attach(page, dialog)
	return ctrl, page
}

func transactionFormFrom(values url.Values) domain.TransactionForm {
	return domain.TransactionForm{
		ClienteID:      values.Get("cliente_id"),
		Valor:          values.Get("valor"),
		DataVencimento: values.Get("data_vencimento"),
		Descricao:      values.Get("descricao"),
	}
}

// GET /contas-receber
//
// ?tipo=venda|pagamento opens the transaction form; ?cliente_id= selects a
// customer in it and shows that customer's balance.
func receivablesPageHandler(customers port.CustomerAPI, receivables port.ReceivableAPI, metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "handler.ReceivablesPage")
		defer span.End()

		dialog := &pageDialog{}
		ctrl, page := newReceivablesPage(customers, receivables, metrics, logger, dialog)

		err := ctrl.Load(ctx)

		query := r.URL.Query()
		if tipo := query.Get("tipo"); tipo != "" {
			ctrl.OpenModal(domain.ParseReceivableType(tipo))
			page.Form = transactionFormFrom(query)
			ctrl.OnCustomerSelected(page.Form.ClienteID)
		}

		page.Alerts = append(dialog.alerts, noticeFrom(r)...)
		renderPage(w, statusFor(err), "contas_receber", page, logger)
	}
}

// POST /contas-receber
func createReceivableHandler(customers port.CustomerAPI, receivables port.ReceivableAPI, metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "handler.CreateReceivable")
		defer span.End()

		if err := r.ParseForm(); err != nil {
			http.Error(w, "formulário inválido", http.StatusBadRequest)
			return
		}

		dialog := &pageDialog{}
		ctrl, page := newReceivablesPage(customers, receivables, metrics, logger, dialog)

		// The type comes from the hidden field set when the modal was opened.
		ctrl.OpenModal(domain.ParseReceivableType(r.PostForm.Get("tipo")))
		page.Form = transactionFormFrom(r.PostForm)

		err := ctrl.SubmitTransaction(ctx, page.Form)
		if err == nil {
			redirectAfterPost(w, r, "/contas-receber", "transacao")
			return
		}
		_ = ctrl.Load(ctx)
		ctrl.OnCustomerSelected(page.Form.ClienteID)

		page.Alerts = dialog.alerts
		renderPage(w, statusFor(err), "contas_receber", page, logger)
	}
}

// POST /contas-receber/{id}/receber
func receiveHandler(customers port.CustomerAPI, receivables port.ReceivableAPI, metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "handler.Receive")
		defer span.End()

		id, err := pathID(r)
		if err != nil {
			http.Error(w, "id de conta inválido", http.StatusBadRequest)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "formulário inválido", http.StatusBadRequest)
			return
		}

		dialog := &pageDialog{
			confirmed: r.PostForm.Get("confirmado") == "sim",
			action:    r.URL.Path,
			cancel:    "/contas-receber",
		}
		ctrl, page := newReceivablesPage(customers, receivables, metrics, logger, dialog)

		err = ctrl.Receive(ctx, id)
		if err == nil && dialog.pending == nil {
			redirectAfterPost(w, r, "/contas-receber", "recebimento")
			return
		}
		_ = ctrl.Load(ctx)

		page.Alerts = dialog.alerts
		page.Confirm = dialog.pending
		renderPage(w, statusFor(err), "contas_receber", page, logger)
	}
}
