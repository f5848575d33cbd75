package main

import (
	"context"
	"fmt"
	"io"

	"github.com/boddenberg/ardesk-go/internal/domain"
	"github.com/boddenberg/ardesk-go/internal/render/term"
	"github.com/boddenberg/ardesk-go/internal/service"

	"github.com/spf13/cobra"
)

func (a *app) receivables() (*service.Receivables, *term.ReceivableView) {
	ctrl := service.NewReceivables(a.api, a.api, a.metrics, a.logger)
	v := term.NewReceivableView(term.NewStdoutRenderer())
	ctrl.Attach(v, a.dialog())
	return ctrl, v
}

// loadQuietly fills the snapshot without printing the page, for commands
// that only need it to resolve a customer.
func (a *app) loadQuietly(ctx context.Context, ctrl *service.Receivables, v *term.ReceivableView) error {
	ctrl.Attach(term.NewReceivableView(term.NewRenderer(io.Discard, term.Options{NoColor: true})), a.dialog())
	err := ctrl.Load(ctx)
	ctrl.Attach(v, a.dialog())
	return err
}

func newReceivablesCommand(a *app) *cobra.Command {
	list := func(cmd *cobra.Command, args []string) error {
		ctrl, _ := a.receivables()
		return ctrl.Load(cmd.Context())
	}

	cmd := &cobra.Command{
		Use:     "contas",
		Aliases: []string{"contas-receber", "receivables"},
		Short:   "Show the receivables ledger and the balance of every customer",
		Args:    cobra.NoArgs,
		RunE:    list,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "listar",
		Short: "Show the receivables ledger and the balance of every customer",
		Args:  cobra.NoArgs,
		RunE:  list,
	})
	cmd.AddCommand(newTransactionCommand(a, domain.ReceivableTypeSale,
		"venda", "Register a sale: the customer's balance goes down"))
	cmd.AddCommand(newTransactionCommand(a, domain.ReceivableTypePayment,
		"pagamento", "Register a payment or advance: debt goes down or credit goes up"))
	cmd.AddCommand(newReceiveCommand(a))
	cmd.AddCommand(newBalanceCommand(a))

	return cmd
}

func newTransactionCommand(a *app, tipo domain.ReceivableType, use, short string) *cobra.Command {
	var form domain.TransactionForm

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctrl, v := a.receivables()
			if err := a.loadQuietly(ctx, ctrl, v); err != nil {
				return err
			}
			ctrl.OpenModal(tipo)
			ctrl.OnCustomerSelected(form.ClienteID)
			return ctrl.SubmitTransaction(ctx, form)
		},
	}

	cmd.Flags().StringVar(&form.ClienteID, "cliente", "", "customer id (required)")
	cmd.Flags().StringVar(&form.Valor, "valor", "", "amount, e.g. 49,90 (required)")
	cmd.Flags().StringVar(&form.DataVencimento, "vencimento", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&form.Descricao, "descricao", "", "description")

	return cmd
}

func newReceiveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "receber <id>",
		Short: "Mark a pending sale as received after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseID(args[0])
			if err != nil {
				return fmt.Errorf("id de conta inválido: %w", err)
			}
			ctrl, _ := a.receivables()
			return ctrl.Receive(cmd.Context(), id)
		},
	}
}

func newBalanceCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "saldo <cliente-id>",
		Short: "Show the balance of one customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseID(args[0])
			if err != nil {
				return fmt.Errorf("id de cliente inválido: %w", err)
			}
			ctrl, v := a.receivables()
			if err := a.loadQuietly(cmd.Context(), ctrl, v); err != nil {
				return err
			}
			if _, ok := domain.FindCustomer(ctrl.Customers(), id); !ok {
				return fmt.Errorf("cliente %s não encontrado", id)
			}
			ctrl.OnCustomerSelected(id.String())
			return nil
		},
	}
}
