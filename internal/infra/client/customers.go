package client

import (
	"context"
	"net/http"

	"github.com/boddenberg/ardesk-go/internal/domain"
)

const customersPath = "/api/clientes"

// ListCustomers fetches every customer (GET /api/clientes).
func (c *Client) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	err := c.do(ctx, call{
		operation: "list_customers",
		method:    http.MethodGet,
		path:      customersPath,
		out:       &customers,
	})
	if err != nil {
		return nil, err
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	return customers, nil
}

// CreateCustomer posts the customer form (POST /api/clientes).
func (c *Client) CreateCustomer(ctx context.Context, form domain.CustomerForm) error {
	return c.do(ctx, call{
		operation: "create_customer",
		method:    http.MethodPost,
		path:      customersPath,
		body:      form,
	})
}

// DeleteCustomer removes a customer by id (DELETE /api/clientes/{id}).
func (c *Client) DeleteCustomer(ctx context.Context, id domain.ID) error {
	return c.do(ctx, call{
		operation: "delete_customer",
		method:    http.MethodDelete,
		path:      customersPath + "/" + id.String(),
	})
}
