package domain

import "github.com/shopspring/decimal"

// ============================================================
// Customer (cliente)
// ============================================================

// Customer is a receivables customer as returned by GET /api/clientes.
// Saldo is maintained by the server: positive means the customer holds
// credit, negative means the customer owes money, zero means settled.
type Customer struct {
	ID       ID              `json:"id"`
	Nome     string          `json:"nome"`
	CPFCNPJ  string          `json:"cpf_cnpj"`
	Telefone string          `json:"telefone,omitempty"`
	Email    string          `json:"email,omitempty"`
	Endereco string          `json:"endereco,omitempty"`
	Cidade   string          `json:"cidade,omitempty"`
	Estado   string          `json:"estado,omitempty"`
	Saldo    decimal.Decimal `json:"saldo"`
}

// CustomerForm carries the fields of the "novo cliente" form.
// It is also the POST /api/clientes body: id and saldo are never sent.
type CustomerForm struct {
	Nome     string `json:"nome"`
	CPFCNPJ  string `json:"cpf_cnpj"`
	Telefone string `json:"telefone"`
	Email    string `json:"email"`
	Endereco string `json:"endereco"`
	Cidade   string `json:"cidade"`
	Estado   string `json:"estado"`
}

// Validate applies the checks a required form control would apply.
func (f CustomerForm) Validate() error {
	if f.Nome == "" {
		return &ErrValidation{Field: "nome", Message: "campo obrigatório"}
	}
	if f.CPFCNPJ == "" {
		return &ErrValidation{Field: "cpf_cnpj", Message: "campo obrigatório"}
	}
	return nil
}

// FindCustomer returns the customer with the given id from a fetched list.
func FindCustomer(customers []Customer, id ID) (*Customer, bool) {
	for i := range customers {
		if customers[i].ID == id {
			return &customers[i], true
		}
	}
	return nil, false
}
