package main

import (
	"fmt"

	"github.com/boddenberg/ardesk-go/internal/domain"
	"github.com/boddenberg/ardesk-go/internal/render/term"
	"github.com/boddenberg/ardesk-go/internal/service"

	"github.com/spf13/cobra"
)

func (a *app) customerList() *service.CustomerList {
	ctrl := service.NewCustomerList(a.api, a.metrics, a.logger)
	ctrl.Attach(term.NewCustomerView(term.NewStdoutRenderer()), a.dialog())
	return ctrl
}

func newCustomersCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clientes",
		Aliases: []string{"customers"},
		Short:   "List customers with their balance",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.customerList().Load(cmd.Context())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "listar",
		Short: "List customers with their balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.customerList().Load(cmd.Context())
		},
	})
	cmd.AddCommand(newCreateCustomerCommand(a))
	cmd.AddCommand(newDeleteCustomerCommand(a))

	return cmd
}

func newCreateCustomerCommand(a *app) *cobra.Command {
	var form domain.CustomerForm

	cmd := &cobra.Command{
		Use:   "criar",
		Short: "Create a customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := a.customerList()
			ctrl.OpenModal()
			return ctrl.SubmitCreate(cmd.Context(), form)
		},
	}

	cmd.Flags().StringVar(&form.Nome, "nome", "", "name (required)")
	cmd.Flags().StringVar(&form.CPFCNPJ, "cpf-cnpj", "", "CPF or CNPJ (required)")
	cmd.Flags().StringVar(&form.Telefone, "telefone", "", "phone")
	cmd.Flags().StringVar(&form.Email, "email", "", "email")
	cmd.Flags().StringVar(&form.Endereco, "endereco", "", "address")
	cmd.Flags().StringVar(&form.Cidade, "cidade", "", "city")
	cmd.Flags().StringVar(&form.Estado, "estado", "", "state (UF)")

	return cmd
}

func newDeleteCustomerCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "excluir <id>",
		Short: "Delete a customer after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseID(args[0])
			if err != nil {
				return fmt.Errorf("id de cliente inválido: %w", err)
			}
			return a.customerList().Delete(cmd.Context(), id)
		},
	}
}
