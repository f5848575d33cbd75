package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ============================================================
// Receivable (conta a receber)
// ============================================================

// ReceivableType tells a sale from a payment. Anything that is not a
// sale is treated as a payment or advance.
type ReceivableType string

const (
	// ReceivableTypeSale increases the customer's debt.
	ReceivableTypeSale ReceivableType = "venda"
	// ReceivableTypePayment reduces debt or adds credit.
	ReceivableTypePayment ReceivableType = "pagamento"
)

func (t ReceivableType) String() string {
	return string(t)
}

// IsSale reports whether t is a sale.
func (t ReceivableType) IsSale() bool {
	return t == ReceivableTypeSale
}

// ParseReceivableType maps a form or CLI value to a type.
// Unknown values fall back to a payment, like the server does.
func ParseReceivableType(s string) ReceivableType {
	if strings.EqualFold(strings.TrimSpace(s), string(ReceivableTypeSale)) {
		return ReceivableTypeSale
	}
	return ReceivableTypePayment
}

// ReceivableStatus is server-authoritative; the client only observes it.
type ReceivableStatus string

const (
	ReceivableStatusPending  ReceivableStatus = "pendente"
	ReceivableStatusReceived ReceivableStatus = "recebido"
)

func (s ReceivableStatus) String() string {
	return string(s)
}

// Receivable is one entry of GET /api/contas-receber. Customer details
// are not embedded; ClienteID must be resolved against the customer list.
type Receivable struct {
	ID              ID               `json:"id"`
	ClienteID       ID               `json:"cliente_id"`
	Tipo            ReceivableType   `json:"tipo"`
	Valor           decimal.Decimal  `json:"valor"`
	DataVencimento  string           `json:"data_vencimento,omitempty"`
	Descricao       string           `json:"descricao,omitempty"`
	Status          ReceivableStatus `json:"status"`
	DataRecebimento string           `json:"data_recebimento,omitempty"`
}

// CanReceive reports whether the settle action applies: only pending sales
// can move to recebido.
func (r Receivable) CanReceive() bool {
	return r.Status == ReceivableStatusPending && r.Tipo.IsSale()
}

// TransactionForm carries the fields of the transaction modal as typed.
// The type is not part of the form: it is fixed by the button that
// opened the modal.
type TransactionForm struct {
	ClienteID      string
	Valor          string
	DataVencimento string
	Descricao      string
}

// NewReceivableRequest is the POST /api/contas-receber body.
type NewReceivableRequest struct {
	ClienteID      ID              `json:"cliente_id"`
	Tipo           ReceivableType  `json:"tipo"`
	Valor          decimal.Decimal `json:"valor"`
	DataVencimento string          `json:"data_vencimento"`
	Descricao      string          `json:"descricao"`
}

// BuildRequest turns the typed form into a request of the given type.
// Only the checks of the native controls are applied: a selected customer
// and a numeric amount.
func (f TransactionForm) BuildRequest(tipo ReceivableType) (*NewReceivableRequest, error) {
	if strings.TrimSpace(f.ClienteID) == "" {
		return nil, &ErrValidation{Field: "cliente_id", Message: "selecione um cliente"}
	}
	clienteID, err := ParseID(f.ClienteID)
	if err != nil {
		return nil, &ErrValidation{Field: "cliente_id", Message: err.Error()}
	}
	valor, err := decimal.NewFromString(strings.Replace(strings.TrimSpace(f.Valor), ",", ".", 1))
	if err != nil {
		return nil, &ErrValidation{Field: "valor", Message: "valor numérico obrigatório"}
	}
	return &NewReceivableRequest{
		ClienteID:      clienteID,
		Tipo:           tipo,
		Valor:          valor,
		DataVencimento: f.DataVencimento,
		Descricao:      f.Descricao,
	}, nil
}
