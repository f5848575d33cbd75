package client

import (
	"context"
	"net/http"

	"github.com/boddenberg/ardesk-go/internal/domain"
)

const receivablesPath = "/api/contas-receber"

// ListReceivables fetches every receivable (GET /api/contas-receber).
func (c *Client) ListReceivables(ctx context.Context) ([]domain.Receivable, error) {
	var receivables []domain.Receivable
	err := c.do(ctx, call{
		operation: "list_receivables",
		method:    http.MethodGet,
		path:      receivablesPath,
		out:       &receivables,
	})
	if err != nil {
		return nil, err
	}
	if receivables == nil {
		receivables = []domain.Receivable{}
	}
	return receivables, nil
}

// CreateReceivable registers a sale or a payment (POST /api/contas-receber).
func (c *Client) CreateReceivable(ctx context.Context, req *domain.NewReceivableRequest) error {
	return c.do(ctx, call{
		operation: "create_receivable",
		method:    http.MethodPost,
		path:      receivablesPath,
		body:      req,
	})
}

// SettleReceivable marks a pending sale as received
// (POST /api/contas-receber/{id}/receber). No body is sent.
func (c *Client) SettleReceivable(ctx context.Context, id domain.ID) error {
	return c.do(ctx, call{
		operation: "settle_receivable",
		method:    http.MethodPost,
		path:      receivablesPath + "/" + id.String() + "/receber",
	})
}
