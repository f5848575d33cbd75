package view

import (
	"github.com/boddenberg/ardesk-go/internal/domain"

	"github.com/samber/lo"
)

const (
	// ReceivableColumns is the column count of the receivables table.
	ReceivableColumns = 8
	// NoReceivablesMessage is shown when there is no receivable at all.
	NoReceivablesMessage = "Nenhuma conta cadastrada"
	// UnknownCustomerName replaces the name of an unresolved cliente_id.
	UnknownCustomerName = "Cliente não encontrado"
	// SelectCustomerLabel is the first, empty option of the customer selector.
	SelectCustomerLabel = "Selecione um cliente"

	SaleModalTitle    = "Registrar Venda (Cliente fica negativado)"
	PaymentModalTitle = "Receber Pagamento/Adiantamento"
)

// ReceivableRow is one line of the receivables table.
type ReceivableRow struct {
	ID         domain.ID
	Vencimento string
	Cliente    string
	Tipo       Badge
	Descricao  string
	Valor      string
	Status     Badge
	// CanReceive is true only for pending sales.
	CanReceive bool
}

// ReceivableTable is either a list of rows or a placeholder.
type ReceivableTable struct {
	Rows        []ReceivableRow
	Placeholder *Placeholder
}

// NewReceivableTable builds the receivables table, resolving customer
// names against the customer list fetched in the same load.
func NewReceivableTable(receivables []domain.Receivable, customers []domain.Customer) ReceivableTable {
	if len(receivables) == 0 {
		return ReceivableTable{Placeholder: &Placeholder{Text: NoReceivablesMessage, Colspan: ReceivableColumns}}
	}
	return ReceivableTable{
		Rows: lo.Map(receivables, func(r domain.Receivable, _ int) ReceivableRow {
			return ReceivableRow{
				ID:         r.ID,
				Vencimento: orDash(r.DataVencimento),
				Cliente:    CustomerName(customers, r.ClienteID),
				Tipo:       TypeBadge(r.Tipo),
				Descricao:  orDash(r.Descricao),
				Valor:      FormatMoney(r.Valor),
				Status:     StatusBadge(r.Status),
				CanReceive: r.CanReceive(),
			}
		}),
	}
}

// CustomerName resolves a cliente_id locally, falling back to a fixed text.
func CustomerName(customers []domain.Customer, id domain.ID) string {
	if c, ok := domain.FindCustomer(customers, id); ok {
		return c.Nome
	}
	return UnknownCustomerName
}

// TypeBadge styles a sale as debt and anything else as credit.
func TypeBadge(t domain.ReceivableType) Badge {
	if t.IsSale() {
		return Badge{Text: "🔴 Venda (negativação)", Class: "badge-danger", Tone: ToneNegative}
	}
	return Badge{Text: "🟢 Pagamento", Class: "badge-success", Tone: TonePositive}
}

// StatusBadge labels the raw status and colors the known ones.
func StatusBadge(s domain.ReceivableStatus) Badge {
	switch s {
	case domain.ReceivableStatusPending:
		return Badge{Text: s.String(), Class: "badge-warning", Tone: ToneWarning}
	case domain.ReceivableStatusReceived:
		return Badge{Text: s.String(), Class: "badge-success", Tone: TonePositive}
	default:
		return Badge{Text: s.String(), Class: "badge-info", Tone: ToneInfo}
	}
}

// BalanceCard is one tile of the per-customer balance dashboard.
type BalanceCard struct {
	Icon  string
	Nome  string
	Saldo Badge
	Class string
}

// BalanceDashboard has one card per customer, or an empty-state message.
type BalanceDashboard struct {
	Cards []BalanceCard
	Empty string
}

// NewBalanceDashboard builds the dashboard view model.
func NewBalanceDashboard(customers []domain.Customer) BalanceDashboard {
	if len(customers) == 0 {
		return BalanceDashboard{Empty: NoCustomersMessage}
	}
	return BalanceDashboard{
		Cards: lo.Map(customers, func(c domain.Customer, _ int) BalanceCard {
			card := BalanceCard{Icon: "⚪", Nome: c.Nome, Saldo: BalanceBadge(c.Saldo), Class: "stat-card"}
			switch Classify(c.Saldo) {
			case BalanceCredit:
				card.Icon, card.Class = "🟢", "stat-card positive"
			case BalanceDebt:
				card.Icon, card.Class = "🔴", "stat-card negative"
			}
			return card
		}),
	}
}

// CustomerOption is one entry of the transaction form's customer selector.
type CustomerOption struct {
	Value string
	Label string
}

// NewCustomerOptions lists the selector entries, the empty choice first.
func NewCustomerOptions(customers []domain.Customer) []CustomerOption {
	options := make([]CustomerOption, 0, len(customers)+1)
	options = append(options, CustomerOption{Value: "", Label: SelectCustomerLabel})
	for _, c := range customers {
		options = append(options, CustomerOption{Value: c.ID.String(), Label: c.Nome})
	}
	return options
}

// TransactionModal is the state of the transaction form when opened.
type TransactionModal struct {
	Title string
	Tipo  domain.ReceivableType
}

// NewTransactionModal picks the modal title from the triggering action.
func NewTransactionModal(tipo domain.ReceivableType) TransactionModal {
	if tipo.IsSale() {
		return TransactionModal{Title: SaleModalTitle, Tipo: domain.ReceivableTypeSale}
	}
	return TransactionModal{Title: PaymentModalTitle, Tipo: tipo}
}
