package term

import (
	"strings"

	"github.com/boddenberg/ardesk-go/internal/view"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

var (
	customerHeaders   = []string{"ID", "Nome", "CPF/CNPJ", "Telefone", "Email", "Saldo", "Ações"}
	receivableHeaders = []string{"ID", "Vencimento", "Cliente", "Tipo", "Descrição", "Valor", "Status", "Ações"}
)

// CustomerView prints the customers page.
type CustomerView struct {
	*Renderer
}

// NewCustomerView creates a customers page view on r.
func NewCustomerView(r *Renderer) *CustomerView {
	return &CustomerView{Renderer: r}
}

func (v *CustomerView) RenderCustomers(t view.CustomerTable) {
	v.println(v.title("Clientes"))
	tbl := table{headers: customerHeaders}
	if t.IsEmpty() {
		tbl.placeholder = t.Placeholder.Text
	}
	tbl.rows = lo.Map(t.Rows, func(row view.CustomerRow, _ int) []cell {
		return []cell{
			plain(row.ID.String()),
			styled(row.Nome, v.style().Bold(true)),
			plain(row.CPFCNPJ),
			plain(row.Telefone),
			plain(row.Email),
			v.badgeCell(row.Saldo),
			plain("Excluir"),
		}
	})
	v.println(v.renderTable(tbl))
}

func (v *CustomerView) ShowModal() {
	v.println(v.title("Novo Cliente"))
}

func (v *CustomerView) HideModal() {}

// ResetForm is a no-op: terminal forms are flags, never retained.
func (v *CustomerView) ResetForm() {}

// ReceivableView prints the receivables page.
type ReceivableView struct {
	*Renderer
}

// NewReceivableView creates a receivables page view on r.
func NewReceivableView(r *Renderer) *ReceivableView {
	return &ReceivableView{Renderer: r}
}

func (v *ReceivableView) RenderReceivables(t view.ReceivableTable) {
	v.println(v.title("Contas a Receber"))
	tbl := table{headers: receivableHeaders}
	if t.Placeholder != nil {
		tbl.placeholder = t.Placeholder.Text
	}
	tbl.rows = lo.Map(t.Rows, func(row view.ReceivableRow, _ int) []cell {
		return []cell{
			plain(row.ID.String()),
			plain(row.Vencimento),
			styled(row.Cliente, v.style().Bold(true)),
			v.badgeCell(row.Tipo),
			plain(row.Descricao),
			plain(row.Valor),
			v.badgeCell(row.Status),
			plain(lo.Ternary(row.CanReceive, "Receber", "-")),
		}
	})
	v.println(v.renderTable(tbl))
}

// RenderBalances prints one bordered card per customer, wrapped in rows.
func (v *ReceivableView) RenderBalances(d view.BalanceDashboard) {
	v.println(v.title("Saldos dos Clientes"))
	if d.Empty != "" {
		v.println(v.muted(d.Empty))
		return
	}

	cards := lo.Map(d.Cards, func(c view.BalanceCard, _ int) string {
		body := c.Icon + " " + c.Nome + "\n" + v.badge(c.Saldo)
		if v.noColor {
			return body
		}
		return v.style().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(v.toneColor(c.Saldo.Tone)).
			Padding(0, 1).
			Width(28).
			Render(body)
	})

	rows := lo.Map(lo.Chunk(cards, 3), func(chunk []string, _ int) string {
		if v.noColor {
			return strings.Join(chunk, "\n\n")
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, chunk...)
	})
	v.println(strings.Join(rows, "\n"))
}

func (v *ReceivableView) RenderCustomerOptions(options []view.CustomerOption) {
	// The terminal takes the customer as a flag; only the available ids
	// are listed, skipping the empty choice.
	ids := lo.FilterMap(options, func(o view.CustomerOption, _ int) (string, bool) {
		return o.Value + "=" + o.Label, o.Value != ""
	})
	if len(ids) > 0 {
		v.println(v.muted("Clientes: " + strings.Join(ids, ", ")))
	}
}

func (v *ReceivableView) ShowBalancePreview(p *view.BalancePreview) {
	if p == nil {
		return
	}
	style := v.style().
		Foreground(lipgloss.Color(p.Color)).
		Background(lipgloss.Color(p.Background)).
		Padding(0, 1)
	v.println(v.apply(p.Text, style))
}

func (v *ReceivableView) ShowModal(m view.TransactionModal) {
	v.println(v.title(m.Title))
}

func (v *ReceivableView) HideModal() {}

// ResetForm is a no-op: terminal forms are flags, never retained.
func (v *ReceivableView) ResetForm() {}

func (r *Renderer) badgeCell(b view.Badge) cell {
	return styled(b.Text, r.style().Foreground(r.toneColor(b.Tone)).Bold(true))
}
