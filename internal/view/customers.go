package view

import (
	"github.com/boddenberg/ardesk-go/internal/domain"

	"github.com/samber/lo"
)

const (
	// CustomerColumns is the column count of the customers table.
	CustomerColumns = 7
	// NoCustomersMessage is shown when there is no customer at all.
	NoCustomersMessage = "Nenhum cliente cadastrado"

	emptyCell = "-"
)

// Placeholder is a single row spanning the whole table.
type Placeholder struct {
	Text    string
	Colspan int
}

// CustomerRow is one line of the customers table.
type CustomerRow struct {
	ID       domain.ID
	Nome     string
	CPFCNPJ  string
	Telefone string
	Email    string
	Saldo    Badge
}

// CustomerTable is either a list of rows or a placeholder, never both.
type CustomerTable struct {
	Rows        []CustomerRow
	Placeholder *Placeholder
}

// IsEmpty reports whether the table renders the placeholder row.
func (t CustomerTable) IsEmpty() bool {
	return t.Placeholder != nil
}

// NewCustomerTable builds the customers table view model.
func NewCustomerTable(customers []domain.Customer) CustomerTable {
	if len(customers) == 0 {
		return CustomerTable{Placeholder: &Placeholder{Text: NoCustomersMessage, Colspan: CustomerColumns}}
	}
	return CustomerTable{
		Rows: lo.Map(customers, func(c domain.Customer, _ int) CustomerRow {
			return CustomerRow{
				ID:       c.ID,
				Nome:     c.Nome,
				CPFCNPJ:  c.CPFCNPJ,
				Telefone: orDash(c.Telefone),
				Email:    orDash(c.Email),
				Saldo:    BalanceBadge(c.Saldo),
			}
		}),
	}
}

func orDash(s string) string {
	return lo.Ternary(s == "", emptyCell, s)
}
