package term_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/boddenberg/ardesk-go/internal/domain"
	"github.com/boddenberg/ardesk-go/internal/render/term"
	"github.com/boddenberg/ardesk-go/internal/view"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer() (*term.Renderer, *bytes.Buffer) {
	var buf bytes.Buffer
	return term.NewRenderer(&buf, term.Options{Theme: term.DefaultTheme(), NoColor: true}), &buf
}

func TestCustomerView_RendersRows(t *testing.T) {
	r, buf := newRenderer()
	v := term.NewCustomerView(r)

	v.RenderCustomers(view.NewCustomerTable([]domain.Customer{
		{ID: 1, Nome: "Ana", CPFCNPJ: "111", Saldo: decimal.RequireFromString("150.5")},
		{ID: 2, Nome: "Bruno", CPFCNPJ: "222", Saldo: decimal.NewFromInt(-30)},
	}))

	out := buf.String()
	assert.Contains(t, out, "CPF/CNPJ")
	assert.Contains(t, out, "Crédito: R$ 150,50")
	assert.Contains(t, out, "Deve: R$ 30,00")
	assert.NotContains(t, out, "\x1b[", "no escape codes without color")
}

func TestCustomerView_Placeholder(t *testing.T) {
	r, buf := newRenderer()

	term.NewCustomerView(r).RenderCustomers(view.NewCustomerTable(nil))

	assert.Contains(t, buf.String(), view.NoCustomersMessage)
}

func TestTableColumnsAlign(t *testing.T) {
	r, buf := newRenderer()

	term.NewReceivableView(r).RenderReceivables(view.NewReceivableTable(
		[]domain.Receivable{
			{ID: 1, ClienteID: 1, Tipo: domain.ReceivableTypeSale, Valor: decimal.NewFromInt(10), Status: domain.ReceivableStatusPending},
			{ID: 2, ClienteID: 1, Tipo: domain.ReceivableTypePayment, Valor: decimal.NewFromInt(5), Status: domain.ReceivableStatusReceived},
		},
		[]domain.Customer{{ID: 1, Nome: "Ana"}},
	))

	lines := splitLines(buf.String())
	require.GreaterOrEqual(t, len(lines), 6)
	// Every line of the table has the same display width.
	width := lipgloss.Width(lines[1])
	for _, l := range lines[1:] {
		assert.Equal(t, width, lipgloss.Width(l), l)
	}
	assert.Contains(t, buf.String(), "Receber")
}

func TestReceivableView_Balances(t *testing.T) {
	r, buf := newRenderer()
	v := term.NewReceivableView(r)

	v.RenderBalances(view.NewBalanceDashboard([]domain.Customer{
		{ID: 1, Nome: "Ana", Saldo: decimal.NewFromInt(100)},
		{ID: 2, Nome: "Carla"},
	}))

	out := buf.String()
	assert.Contains(t, out, "🟢 Ana")
	assert.Contains(t, out, "Crédito: R$ 100,00")
	assert.Contains(t, out, "⚪ Carla")
	assert.Contains(t, out, "Quitado")
}

func TestReceivableView_EmptyBalances(t *testing.T) {
	r, buf := newRenderer()

	term.NewReceivableView(r).RenderBalances(view.NewBalanceDashboard(nil))

	assert.Contains(t, buf.String(), view.NoCustomersMessage)
}

func TestReceivableView_PreviewAndOptions(t *testing.T) {
	r, buf := newRenderer()
	v := term.NewReceivableView(r)

	v.RenderCustomerOptions(view.NewCustomerOptions([]domain.Customer{{ID: 4, Nome: "Dani"}}))
	v.ShowBalancePreview(view.NewBalancePreview(decimal.NewFromInt(-12)))
	v.ShowBalancePreview(nil)

	out := buf.String()
	assert.Contains(t, out, "4=Dani")
	assert.NotContains(t, out, view.SelectCustomerLabel)
	assert.Contains(t, out, "🔴 Cliente NEGATIVADO em R$ 12,00")
}

func TestDialog_Confirm(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		assumeYes   bool
		interactive bool
		want        bool
	}{
		{"yes in portuguese", "s\n", false, true, true},
		{"sim", "Sim\n", false, true, true},
		{"empty answer declines", "\n", false, true, false},
		{"eof declines", "", false, true, false},
		{"anything else declines", "talvez\n", false, true, false},
		{"assume yes", "", true, false, true},
		{"non-interactive declines", "s\n", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			d := term.NewDialog(strings.NewReader(tt.input), &out, tt.assumeYes, tt.interactive)

			assert.Equal(t, tt.want, d.Confirm("Confirmar recebimento desta conta?"))
			assert.Contains(t, out.String(), "Confirmar recebimento desta conta?")
		})
	}
}

func TestDialog_Alert(t *testing.T) {
	var out bytes.Buffer
	d := term.NewDialog(strings.NewReader(""), &out, false, false)

	d.Alert("Erro ao receber conta")

	assert.Equal(t, "Erro ao receber conta\n", out.String())
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
