package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/boddenberg/ardesk-go/internal/domain"
	"github.com/boddenberg/ardesk-go/internal/view"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = map[string]*template.Template{
	"clientes":       parsePage("templates/clientes.html"),
	"contas_receber": parsePage("templates/contas_receber.html"),
}

func parsePage(file string) *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/layout.html", file))
}

// confirmPrompt asks the operator to resubmit a destructive form with
// confirmado=sim.
type confirmPrompt struct {
	Message string
	Action  string
	Cancel  string
}

// pageDialog is the per-request Dialog of the web front. A confirmation is
// granted by the form itself; without it the prompt is shown on the page.
type pageDialog struct {
	confirmed bool
	action    string
	cancel    string

	alerts  []string
	pending *confirmPrompt
}

func (d *pageDialog) Confirm(message string) bool {
	if d.confirmed {
		return true
	}
	d.pending = &confirmPrompt{Message: message, Action: d.action, Cancel: d.cancel}
	return false
}

func (d *pageDialog) Alert(message string) {
	d.alerts = append(d.alerts, message)
}

// --- customers page ---

type customerPage struct {
	Title     string
	Active    string
	Alerts    []string
	Confirm   *confirmPrompt
	Table     *view.CustomerTable
	ModalOpen bool
	Form      domain.CustomerForm
}

func (p *customerPage) RenderCustomers(t view.CustomerTable) { p.Table = &t }
func (p *customerPage) ShowModal()                           { p.ModalOpen = true }
func (p *customerPage) HideModal()                           { p.ModalOpen = false }
func (p *customerPage) ResetForm()                           { p.Form = domain.CustomerForm{} }

// --- receivables page ---

type receivablesPage struct {
	Title     string
	Active    string
	Alerts    []string
	Confirm   *confirmPrompt
	Table     *view.ReceivableTable
	Dashboard *view.BalanceDashboard
	Options   []view.CustomerOption
	Preview   *view.BalancePreview
	Modal     *view.TransactionModal
	Form      domain.TransactionForm
}

func (p *receivablesPage) RenderReceivables(t view.ReceivableTable)      { p.Table = &t }
func (p *receivablesPage) RenderBalances(d view.BalanceDashboard)        { p.Dashboard = &d }
func (p *receivablesPage) RenderCustomerOptions(o []view.CustomerOption) { p.Options = o }
func (p *receivablesPage) ShowBalancePreview(b *view.BalancePreview)     { p.Preview = b }
func (p *receivablesPage) ShowModal(m view.TransactionModal)             { p.Modal = &m }
func (p *receivablesPage) HideModal()                                    { p.Modal = nil }
func (p *receivablesPage) ResetForm()                                    { p.Form = domain.TransactionForm{} }

// renderPage executes the page template into a buffer first so a template
// error never leaves a half-written response.
func renderPage(w http.ResponseWriter, status int, name string, data any, logger *zap.Logger) {
	tmpl, ok := pageTemplates[name]
	if !ok {
		logger.Error("unknown page template", zap.String("page", name))
		http.Error(w, fmt.Sprintf("página desconhecida: %s", name), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.Error("failed to render page", zap.String("page", name), zap.Error(err))
		http.Error(w, "erro ao renderizar página", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
